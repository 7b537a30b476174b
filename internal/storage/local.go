package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrInvalidFilename is returned when a client filename has no usable base name
var ErrInvalidFilename = errors.New("invalid filename")

// LocalStorage stores uploads in a single flat directory. A file with the
// same base name replaces the previous one.
type LocalStorage struct {
	dir string
}

// NewLocalStorage creates dir if needed
func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStorage{dir: dir}, nil
}

// Dir returns the upload directory
func (s *LocalStorage) Dir() string {
	return s.dir
}

// Save writes body to <dir>/<base name of filename> and returns the path
func (s *LocalStorage) Save(ctx context.Context, filename string, body io.Reader) (string, error) {
	name := filepath.Base(filepath.Clean("/" + filepath.ToSlash(filename)))
	if name == "/" || name == "." || name == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilename, filename)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	path := filepath.Join(s.dir, name)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}
	return path, nil
}
