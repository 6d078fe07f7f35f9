package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalStorage writes documents under <baseDir>/documents and returns the
// /uploads path the router serves statically.
type LocalStorage struct {
	baseDir string
}

func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	dir := filepath.Join(baseDir, "documents")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStorage{baseDir: baseDir}, nil
}

func (s *LocalStorage) Save(filename string, content io.Reader) (string, error) {
	// uuid-named to avoid collisions and path games in client filenames
	name := uuid.New().String() + filepath.Ext(filename)
	path := filepath.Join(s.baseDir, "documents", name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create document file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write document file: %w", err)
	}

	return "/uploads/documents/" + name, nil
}
