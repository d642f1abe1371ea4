package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Local stores images in a directory on disk, the same way the original
// deployment kept its images/ folder next to the binary
type Local struct {
	dir string
}

func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create image directory, %w", err)
	}

	return &Local{dir: dir}, nil
}

// keyPath resolves key inside the image directory and refuses anything
// that would escape it
func (l *Local) keyPath(key string) (string, error) {
	clean := filepath.Clean(key)
	if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid image key %q", key)
	}

	return filepath.Join(l.dir, clean), nil
}

func (l *Local) Save(key, contentType string, size int64, r io.Reader) error {
	p, err := l.keyPath(key)
	if err != nil {
		return err
	}

	f, err := os.Create(p)
	if err != nil {
		return fmt.Errorf("failed to create image file, %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(p)
		return fmt.Errorf("failed to write image file, %w", err)
	}

	return nil
}

func (l *Local) Open(key string) (io.ReadCloser, error) {
	p, err := l.keyPath(key)
	if err != nil {
		return nil, err
	}

	return os.Open(p)
}

func (l *Local) Remove(key string) error {
	p, err := l.keyPath(key)
	if err != nil {
		return err
	}

	return os.Remove(p)
}
