package bundle

import (
	"fmt"
	"io"

	"github.com/opencontainers/go-digest"
)

// Entry is one file inside a module, independent of where its bytes live.
//
// An Entry is immutable once built and safe to share between goroutines.
// Its content is produced on demand by a ContentSupplier, so constructing
// an Entry never reads the underlying bytes. Use ToBuilder to derive a
// modified copy.
type Entry struct {
	path           Path
	shouldCompress bool
	content        ContentSupplier
}

// Path returns the entry's path relative to the module root.
func (e *Entry) Path() Path {
	return e.path
}

// ShouldCompress reports whether archive writers should compress the entry.
func (e *Entry) ShouldCompress() bool {
	return e.shouldCompress
}

// ContentSupplier returns the function producing the entry's bytes.
//
// Each call returns an independent stream starting at offset 0. The caller
// owns the returned stream and must close it.
func (e *Entry) ContentSupplier() ContentSupplier {
	return e.content
}

// ToBuilder returns a Builder populated with the entry's current values.
func (e *Entry) ToBuilder() *Builder {
	shouldCompress := e.shouldCompress
	return &Builder{
		path:           e.path,
		shouldCompress: &shouldCompress,
		content:        e.content,
	}
}

// Open invokes the content supplier. Failures are reported as *ContentError.
func (e *Entry) Open() (io.ReadCloser, error) {
	rc, err := e.content()
	if err != nil {
		return nil, &ContentError{Path: e.path, Op: "open", Err: err}
	}
	return rc, nil
}

// ReadAll reads the entry's full content into memory.
func (e *Entry) ReadAll() ([]byte, error) {
	rc, err := e.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, &ContentError{Path: e.path, Op: "read", Err: err}
	}
	return data, nil
}

// Digest returns the sha256 digest of the entry's content.
func (e *Entry) Digest() (digest.Digest, error) {
	rc, err := e.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	d := digest.SHA256.Digester()
	if _, err := io.Copy(d.Hash(), rc); err != nil {
		return "", &ContentError{Path: e.path, Op: "read", Err: err}
	}
	return d.Digest(), nil
}

// Equal reports whether e and other have the same path and byte-identical
// content. ShouldCompress is not compared.
//
// Comparing distinct entries invokes both content suppliers and streams
// the results. A read failure on either side is returned as an error and
// never reported as a mismatch.
func (e *Entry) Equal(other *Entry) (bool, error) {
	if e == other {
		return true, nil
	}
	if e == nil || other == nil {
		return false, nil
	}
	if e.path != other.path {
		return false, nil
	}
	equal, err := compareContent(e, other)
	if err != nil {
		return false, err
	}
	return equal, nil
}

// HashKey returns a key consistent with Equal: entries that are equal
// always share a key. The key is derived from the path alone, so distinct
// entries at the same path collide and must be told apart with Equal.
func (e *Entry) HashKey() string {
	return string(e.path)
}

func (e *Entry) String() string {
	return fmt.Sprintf("Entry{path=%s, shouldCompress=%t}", e.path, e.shouldCompress)
}
