package infra

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FileStore keeps uploaded files (reference photos, request attachments) on
// local disk under one root directory. Stored paths are relative to the root.
type FileStore struct {
	root string
}

func NewFileStore(cfg *Config) (*FileStore, error) {
	if err := os.MkdirAll(cfg.PhotoDir, 0o755); err != nil {
		return nil, fmt.Errorf("file store: %w", err)
	}
	return &FileStore{root: cfg.PhotoDir}, nil
}

// Save writes data under a fresh name in the given subdirectory and returns
// the relative path to store in the database.
func (s *FileStore) Save(subdir, ext string, data []byte) (string, error) {
	dir := filepath.Join(s.root, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("file store: %w", err)
	}

	rel := filepath.Join(subdir, uuid.New().String()+ext)
	if err := os.WriteFile(filepath.Join(s.root, rel), data, 0o644); err != nil {
		return "", fmt.Errorf("file store: %w", err)
	}
	return rel, nil
}

func (s *FileStore) Read(rel string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.root, rel))
	if err != nil {
		return nil, fmt.Errorf("file store: %w", err)
	}
	return data, nil
}
