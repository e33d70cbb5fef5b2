package bundle

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/bundle/internal/testutil"
)

func TestCompareContentChunkBoundaries(t *testing.T) {
	t.Parallel()

	sizes := []int{0, 1, compareChunkSize - 1, compareChunkSize, compareChunkSize + 1, 3 * compareChunkSize}
	for _, size := range sizes {
		base := bytes.Repeat([]byte{0x5a}, size)

		a := createEntry(t, "a", base)
		b := createEntry(t, "a", base)
		equal, err := compareContent(a, b)
		require.NoError(t, err)
		assert.True(t, equal, "size %d", size)

		if size == 0 {
			continue
		}

		flipped := bytes.Clone(base)
		flipped[size-1] ^= 0xff
		equal, err = compareContent(a, createEntry(t, "a", flipped))
		require.NoError(t, err)
		assert.False(t, equal, "size %d with last byte changed", size)

		equal, err = compareContent(a, createEntry(t, "a", base[:size-1]))
		require.NoError(t, err)
		assert.False(t, equal, "size %d against truncated copy", size)
	}
}

func TestCompareContentStopsAtFirstDifference(t *testing.T) {
	t.Parallel()

	// The failure lies past the first chunk; a difference inside it
	// must be reported without reaching the failing read.
	prefix := bytes.Repeat([]byte{1}, compareChunkSize)
	a := createEntryWithSupplier(t, "a", testutil.FailAfterSupplier(prefix))
	b := createEntry(t, "a", bytes.Repeat([]byte{2}, 2*compareChunkSize))

	equal, err := compareContent(a, b)
	require.NoError(t, err)
	assert.False(t, equal)
}
