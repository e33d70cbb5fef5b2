package bundle

import (
	"bytes"
	"errors"
	"io"
)

// compareChunkSize bounds the memory used by a content comparison.
const compareChunkSize = 32 << 10

// compareContent streams the content of a and b and reports whether the
// byte sequences are identical. Both streams are closed before returning.
func compareContent(a, b *Entry) (bool, error) {
	ra, err := a.Open()
	if err != nil {
		return false, err
	}
	defer ra.Close()

	rb, err := b.Open()
	if err != nil {
		return false, err
	}
	defer rb.Close()

	bufA := make([]byte, compareChunkSize)
	bufB := make([]byte, compareChunkSize)
	for {
		na, errA := readChunk(ra, bufA)
		if errA != nil {
			return false, &ContentError{Path: a.path, Op: "read", Err: errA}
		}
		nb, errB := readChunk(rb, bufB)
		if errB != nil {
			return false, &ContentError{Path: b.path, Op: "read", Err: errB}
		}

		if na != nb || !bytes.Equal(bufA[:na], bufB[:nb]) {
			return false, nil
		}
		// A short chunk on both sides means both streams ended together.
		if na < len(bufA) {
			return true, nil
		}
	}
}

// readChunk fills buf as far as the stream allows. It returns a short count
// only at end of stream.
func readChunk(r io.Reader, buf []byte) (int, error) {
	n, err := io.ReadFull(r, buf)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return n, nil
	}
	return n, err
}
