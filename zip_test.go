package bundle

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type zipMember struct {
	name    string
	content string
	method  uint16
}

func createZip(t *testing.T, members ...zipMember) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	zw.RegisterCompressor(zstd.ZipMethodWinZip, zstd.ZipCompressor())
	for _, m := range members {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: m.name, Method: m.method})
		require.NoError(t, err)
		_, err = w.Write([]byte(m.content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestReadZip(t *testing.T) {
	t.Parallel()

	data := createZip(t,
		zipMember{name: "manifest/", method: zip.Store},
		zipMember{name: "manifest/AndroidManifest.xml", content: "<manifest/>", method: zip.Deflate},
		zipMember{name: "res/raw/song.mp3", content: "ID3", method: zip.Store},
		zipMember{name: "dex/classes.dex", content: "dex\n035", method: zstd.ZipMethodWinZip},
	)

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	entries, err := ReadZip(bytes.NewReader(data), int64(len(data)), ZipWithLogger(logger))
	require.NoError(t, err)
	require.Len(t, entries, 3)

	want := []struct {
		path     Path
		content  string
		compress bool
	}{
		{"manifest/AndroidManifest.xml", "<manifest/>", true},
		{"res/raw/song.mp3", "ID3", false},
		{"dex/classes.dex", "dex\n035", true},
	}
	for i, w := range want {
		assert.Equal(t, w.path, entries[i].Path())
		assert.Equal(t, w.compress, entries[i].ShouldCompress())
		// Read twice to check each call reopens the member.
		assert.Equal(t, []byte(w.content), readContent(t, entries[i].ContentSupplier()))
		assert.Equal(t, []byte(w.content), readContent(t, entries[i].ContentSupplier()))
	}

	assert.Contains(t, logs.String(), "skipping directory")
	assert.Contains(t, logs.String(), "imported entry")
}

func TestReadZipEqualToBuiltEntry(t *testing.T) {
	t.Parallel()

	data := createZip(t, zipMember{name: "a", content: "a", method: zip.Deflate})
	entries, err := ReadZip(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	equal, err := entries[0].Equal(createEntry(t, "a", []byte("a")))
	require.NoError(t, err)
	assert.True(t, equal)
}

func TestReadZipErrors(t *testing.T) {
	t.Parallel()

	t.Run("not a zip", func(t *testing.T) {
		t.Parallel()
		data := []byte("not a zip archive")
		_, err := ReadZip(bytes.NewReader(data), int64(len(data)))
		require.Error(t, err)
	})

	t.Run("too many entries", func(t *testing.T) {
		t.Parallel()
		members := make([]zipMember, 3)
		for i := range members {
			members[i] = zipMember{name: fmt.Sprintf("f%d", i), method: zip.Store}
		}
		data := createZip(t, members...)

		_, err := ReadZip(bytes.NewReader(data), int64(len(data)), ZipWithMaxEntries(2))
		require.ErrorIs(t, err, ErrTooManyEntries)

		entries, err := ReadZip(bytes.NewReader(data), int64(len(data)), ZipWithMaxEntries(-1))
		require.NoError(t, err)
		assert.Len(t, entries, 3)
	})

	t.Run("duplicate path", func(t *testing.T) {
		t.Parallel()
		data := createZip(t,
			zipMember{name: "a//b", method: zip.Store},
			zipMember{name: "a/b", method: zip.Store},
		)
		_, err := ReadZip(bytes.NewReader(data), int64(len(data)))
		require.ErrorIs(t, err, ErrDuplicatePath)
	})

	t.Run("dot element", func(t *testing.T) {
		t.Parallel()
		data := createZip(t, zipMember{name: "res/./a", method: zip.Store})
		_, err := ReadZip(bytes.NewReader(data), int64(len(data)))
		require.ErrorIs(t, err, ErrInvalidPath)
	})
}

func TestOpenZip(t *testing.T) {
	t.Parallel()

	name := filepath.Join(t.TempDir(), "base.zip")
	data := createZip(t, zipMember{name: "assets/a.txt", content: "asset", method: zip.Deflate})
	require.NoError(t, os.WriteFile(name, data, 0o600))

	zf, err := OpenZip(name, ZipWithDecoderMaxMemory(64<<20))
	require.NoError(t, err)
	require.Len(t, zf.Entries, 1)

	entry := zf.Entries[0]
	content, err := entry.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []byte("asset"), content)

	require.NoError(t, zf.Close())
	require.NoError(t, zf.Close(), "second close is a no-op")

	_, err = entry.ReadAll()
	require.ErrorIs(t, err, ErrContent)
}

func TestOpenZipMissing(t *testing.T) {
	t.Parallel()

	_, err := OpenZip(filepath.Join(t.TempDir(), "missing.zip"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
