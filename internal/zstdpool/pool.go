// Package zstdpool keeps reusable zstd decoders for content suppliers that
// decompress on every call.
package zstdpool

import (
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// Pool manages reusable zstd decoders to reduce allocation overhead.
type Pool struct {
	pool      sync.Pool
	maxMemory uint64
}

// New creates a decoder pool.
// If maxMemory is 0, no memory limit is applied to decoders.
func New(maxMemory uint64) *Pool {
	return &Pool{maxMemory: maxMemory}
}

// Get returns a decoder reading from r.
// The caller must call the returned release function when done.
// If an error is returned, no release function needs to be called.
func (p *Pool) Get(r io.Reader) (*zstd.Decoder, func(), error) {
	if p == nil {
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return dec, dec.Close, nil
	}

	if dec, ok := p.pool.Get().(*zstd.Decoder); ok {
		if err := dec.Reset(r); err == nil {
			return dec, p.releaser(dec), nil
		}
		dec.Close()
	}

	dec, err := p.newDecoder(r)
	if err != nil {
		return nil, nil, err
	}
	return dec, p.releaser(dec), nil
}

// ReadCloser wraps a pooled decoder over r as an io.ReadCloser.
// Close returns the decoder to the pool and closes r if it is an io.Closer.
func (p *Pool) ReadCloser(r io.Reader) (io.ReadCloser, error) {
	dec, release, err := p.Get(r)
	if err != nil {
		return nil, err
	}
	return &readCloser{dec: dec, src: r, release: release}, nil
}

func (p *Pool) releaser(dec *zstd.Decoder) func() {
	return func() {
		_ = dec.Reset(nil) //nolint:errcheck // clearing state before pool return
		p.pool.Put(dec)
	}
}

func (p *Pool) newDecoder(r io.Reader) (*zstd.Decoder, error) {
	if p.maxMemory == 0 {
		return zstd.NewReader(r)
	}
	return zstd.NewReader(r, zstd.WithDecoderMaxMemory(p.maxMemory))
}

type readCloser struct {
	dec     *zstd.Decoder
	src     io.Reader
	release func()
}

func (rc *readCloser) Read(p []byte) (int, error) {
	if rc.dec == nil {
		return 0, io.ErrClosedPipe
	}
	return rc.dec.Read(p)
}

func (rc *readCloser) Close() error {
	if rc.dec == nil {
		return nil
	}
	rc.dec = nil
	rc.release()
	if c, ok := rc.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
