// Package store reads and writes the changelog file.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File is a text file on disk. A missing file reads as absent, not as an error.
type File struct {
	Path string
}

// NewFile returns a store for path.
func NewFile(path string) *File {
	return &File{Path: path}
}

// Read returns the file content and whether the file exists.
func (f *File) Read() (string, bool, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading %s: %w", f.Path, err)
	}
	return string(data), true, nil
}

// Write replaces the file content, creating parent directories as needed.
// Existing files keep their permissions.
func (f *File) Write(content string) error {
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(f.Path); err == nil {
		mode = info.Mode().Perm()
	}

	if dir := filepath.Dir(f.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(f.Path, []byte(content), mode); err != nil {
		return fmt.Errorf("writing %s: %w", f.Path, err)
	}
	return nil
}
