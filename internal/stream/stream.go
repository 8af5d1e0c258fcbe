// Package stream opens the byte streams the codec reads from and writes to.
// Paths ending in ".zst" are transparently (de)compressed with zstd.
package stream

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

const zstdExt = ".zst"

var ErrExtension = errors.New("file must be in .bmp or .BMP format")

// IsCompressed reports whether path names a zstd-compressed stream.
func IsCompressed(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), zstdExt)
}

// CheckExtension accepts "x.bmp", "x.BMP" and the same names followed by ".zst".
func CheckExtension(path string) error {
	name := path
	if IsCompressed(name) {
		name = name[:len(name)-len(zstdExt)]
	}
	if ext := filepath.Ext(name); ext != ".bmp" && ext != ".BMP" {
		return fmt.Errorf("%s: %w", path, ErrExtension)
	}
	return nil
}

type readCloser struct {
	io.Reader
	closers []func() error
}

func (rc *readCloser) Close() error {
	var errs []error
	for _, c := range rc.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// Open opens path for reading, positioned at its first byte.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !IsCompressed(path) {
		return f, nil
	}

	dec, err := zstd.NewReader(f, zstd.WithDecoderConcurrency(1))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &readCloser{
		Reader: dec,
		closers: []func() error{
			func() error { dec.Close(); return nil },
			f.Close,
		},
	}, nil
}

// WriteFile runs write against an in-memory buffer and, only if it
// succeeds, replaces path with the result. A failed write never leaves a
// partial file behind.
func WriteFile(path string, write func(w io.Writer) error) error {
	var buf bytes.Buffer
	if IsCompressed(path) {
		enc, err := zstd.NewWriter(&buf,
			zstd.WithEncoderConcurrency(1),
			zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
		)
		if err != nil {
			return err
		}
		if err := write(enc); err != nil {
			enc.Close()
			return err
		}
		if err := enc.Close(); err != nil {
			return err
		}
	} else if err := write(&buf); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) // No-op once renamed

	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
