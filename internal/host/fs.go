// Package host is a local stand-in for the Firebot host: it reads documents,
// executes effects, and provides logging.
package host

import (
	"fmt"
	"os"
	"path/filepath"

	"streamtasks/internal/tasklist"
)

// Documents reads and replaces task list documents.
type Documents interface {
	tasklist.DocumentReader
	WriteDocument(path string, data []byte) error
}

// FileSystem implements Documents on the local disk.
// Relative paths are resolved against Root when it is set.
type FileSystem struct {
	Root string
}

func (f FileSystem) resolve(path string) string {
	if f.Root == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(f.Root, path)
}

// ReadDocument implements tasklist.DocumentReader.
func (f FileSystem) ReadDocument(path string) ([]byte, error) {
	return os.ReadFile(f.resolve(path))
}

// WriteDocument replaces the file at path, creating parent directories as needed.
// The contents are written to a temporary file first and renamed into place.
func (f FileSystem) WriteDocument(path string, data []byte) error {
	path = f.resolve(path)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".tasklist-*")
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
