package stream

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckExtension(t *testing.T) {
	for _, tc := range []struct {
		path string
		ok   bool
	}{
		{"in.bmp", true},
		{"dir/IN.BMP", true},
		{"in.bmp.zst", true},
		{"in.BMP.ZST", true},
		{"in.Bmp", false},
		{"in.png", false},
		{"in", false},
		{"in.zst", false},
		{"bmp", false},
	} {
		err := CheckExtension(tc.path)
		if tc.ok {
			assert.NoError(t, err, tc.path)
		} else {
			assert.ErrorIs(t, err, ErrExtension, tc.path)
		}
	}
}

func TestPlainRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.bmp")
	payload := []byte("BM plain bytes")

	require.NoError(t, WriteFile(path, func(w io.Writer) error {
		_, err := w.Write(payload)
		return err
	}))

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, payload, onDisk)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}

func TestCompressedRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.bmp.zst")
	payload := bytes.Repeat([]byte{0x42, 0x4d, 0, 1, 2, 3}, 1000)

	require.NoError(t, WriteFile(path, func(w io.Writer) error {
		_, err := w.Write(payload)
		return err
	}))

	// The file on disk is a real zstd frame
	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	dec, err := zstd.NewReader(nil)
	require.NoError(t, err)
	defer dec.Close()
	raw, err := dec.DecodeAll(onDisk, nil)
	require.NoError(t, err)
	assert.Equal(t, payload, raw)

	r, err := Open(path)
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.Equal(t, payload, got)
}

func TestFailedWriteLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	boom := errors.New("boom")

	for _, name := range []string{"a.bmp", "a.bmp.zst"} {
		path := filepath.Join(dir, name)
		err := WriteFile(path, func(w io.Writer) error {
			w.Write([]byte("partial"))
			return boom
		})
		assert.ErrorIs(t, err, boom)
		_, err = os.Stat(path)
		assert.True(t, os.IsNotExist(err), name)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temporary files left behind")
}

func TestFailedWriteKeepsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.bmp")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

	err := WriteFile(path, func(io.Writer) error { return errors.New("nope") })
	require.Error(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.bmp"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
