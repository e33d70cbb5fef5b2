package bundle

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/meigma/bundle/internal/zstdpool"
)

// ContentSupplier produces the bytes of an entry.
//
// Every call must return a new, independent stream positioned at the start
// of the same logical content, or an error if the content is unavailable.
// Implementations must not share a single stream between calls, since the
// supplier may be invoked concurrently. The caller closes the stream.
type ContentSupplier func() (io.ReadCloser, error)

// decoders is shared by all zstd-backed suppliers.
var decoders = zstdpool.New(0)

// BytesSupplier returns a supplier over a private copy of data.
func BytesSupplier(data []byte) ContentSupplier {
	data = bytes.Clone(data)
	return func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	}
}

// FileSupplier returns a supplier that opens the named file on every call.
func FileSupplier(name string) ContentSupplier {
	return func() (io.ReadCloser, error) {
		f, err := os.Open(name) //nolint:gosec // User-provided path is intentional
		if err != nil {
			return nil, err
		}
		return f, nil
	}
}

// FSSupplier returns a supplier that opens name from fsys on every call.
func FSSupplier(fsys fs.FS, name string) ContentSupplier {
	return func() (io.ReadCloser, error) {
		return fsys.Open(name)
	}
}

// ZstdSupplier returns a supplier that decompresses a zstd frame on every
// call. The frame is copied once; decoders are pooled and returned on Close.
func ZstdSupplier(frame []byte) ContentSupplier {
	frame = bytes.Clone(frame)
	return func() (io.ReadCloser, error) {
		rc, err := decoders.ReadCloser(bytes.NewReader(frame))
		if err != nil {
			return nil, fmt.Errorf("zstd decoder: %w", err)
		}
		return rc, nil
	}
}
