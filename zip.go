package bundle

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
)

// ReadZip builds one Entry per regular file in the zip archive read from r.
//
// Entries are returned in archive order. Each entry's supplier reopens its
// archive member on every call, so r must remain readable for as long as
// the entries are used. Members stored without compression produce entries
// with ShouldCompress false. Zstd members (method 93) are supported.
func ReadZip(r io.ReaderAt, size int64, opts ...ZipOption) ([]*Entry, error) {
	cfg := zipConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("read zip: %w", err)
	}
	return entriesFromZip(zr, &cfg)
}

// ZipFile holds entries imported from a zip file on disk together with the
// open file handle backing their suppliers.
// Close must be called to release file resources.
type ZipFile struct {
	Entries []*Entry
	rc      *zip.ReadCloser
}

// Close closes the underlying archive. Suppliers of the imported entries
// fail after Close.
func (zf *ZipFile) Close() error {
	if zf.rc == nil {
		return nil
	}
	err := zf.rc.Close()
	zf.rc = nil
	return err
}

// OpenZip opens the named zip file and imports its entries as ReadZip does.
func OpenZip(name string, opts ...ZipOption) (*ZipFile, error) {
	cfg := zipConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	rc, err := zip.OpenReader(name)
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	entries, err := entriesFromZip(&rc.Reader, &cfg)
	if err != nil {
		rc.Close()
		return nil, err
	}
	return &ZipFile{Entries: entries, rc: rc}, nil
}

func entriesFromZip(zr *zip.Reader, cfg *zipConfig) ([]*Entry, error) {
	log := cfg.log()

	var dopts []zstd.DOption
	if cfg.decoderMaxMemory > 0 {
		dopts = append(dopts, zstd.WithDecoderMaxMemory(cfg.decoderMaxMemory))
	}
	zr.RegisterDecompressor(zstd.ZipMethodWinZip, zstd.ZipDecompressor(dopts...))

	limit := cfg.limit()
	seen := make(map[Path]struct{}, len(zr.File))
	entries := make([]*Entry, 0, len(zr.File))
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			log.Debug("skipping directory", "name", f.Name)
			continue
		}
		if limit >= 0 && len(entries) >= limit {
			return nil, fmt.Errorf("%w: limit %d", ErrTooManyEntries, limit)
		}

		p, err := NewPath(f.Name)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[p]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePath, p)
		}
		seen[p] = struct{}{}

		entry, err := NewBuilder().
			SetPath(p).
			SetShouldCompress(f.Method != zip.Store).
			SetContentSupplier(f.Open).
			Build()
		if err != nil {
			return nil, err
		}
		log.Debug("imported entry",
			"path", p,
			"method", f.Method,
			"size", f.UncompressedSize64,
		)
		entries = append(entries, entry)
	}
	return entries, nil
}
