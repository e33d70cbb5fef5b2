// Package testutil provides content suppliers with observable behavior for tests.
package testutil

import (
	"bytes"
	"errors"
	"io"
	"sync"
	"sync/atomic"
)

// ErrInjected is the error returned by failing suppliers and readers.
var ErrInjected = errors.New("testutil: injected failure")

// TrackingSupplier counts supplier invocations and open streams.
type TrackingSupplier struct {
	data   []byte
	opened atomic.Int64
	closed atomic.Int64
}

// NewTrackingSupplier returns a tracking supplier over data.
func NewTrackingSupplier(data []byte) *TrackingSupplier {
	return &TrackingSupplier{data: data}
}

// Open returns a new stream over the backing data. It has the signature of
// a content supplier.
func (s *TrackingSupplier) Open() (io.ReadCloser, error) {
	s.opened.Add(1)
	return &trackedReader{Reader: bytes.NewReader(s.data), closed: &s.closed}, nil
}

// Opened returns how many streams have been opened.
func (s *TrackingSupplier) Opened() int64 {
	return s.opened.Load()
}

// Closed returns how many streams have been closed.
func (s *TrackingSupplier) Closed() int64 {
	return s.closed.Load()
}

type trackedReader struct {
	*bytes.Reader
	closed *atomic.Int64
	once   sync.Once
}

func (r *trackedReader) Close() error {
	r.once.Do(func() { r.closed.Add(1) })
	return nil
}

// FailingOpen is a content supplier whose every call fails.
func FailingOpen() (io.ReadCloser, error) {
	return nil, ErrInjected
}

// FailAfterSupplier returns a supplier whose streams yield prefix and then
// fail with ErrInjected.
func FailAfterSupplier(prefix []byte) func() (io.ReadCloser, error) {
	return func() (io.ReadCloser, error) {
		return io.NopCloser(io.MultiReader(bytes.NewReader(prefix), failingReader{})), nil
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, ErrInjected
}

// OneByteReader returns a supplier whose streams deliver one byte per Read.
func OneByteReader(data []byte) func() (io.ReadCloser, error) {
	return func() (io.ReadCloser, error) {
		return io.NopCloser(&oneByte{data: data}), nil
	}
}

type oneByte struct {
	data []byte
}

func (r *oneByte) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	if len(p) == 0 {
		return 0, nil
	}
	p[0] = r.data[0]
	r.data = r.data[1:]
	return 1, nil
}
