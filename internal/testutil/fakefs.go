// Package testutil provides testing utilities.
package testutil

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"sync"

	"streamtasks/internal/tasklist"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = fs.ErrNotExist

// FakeFS is an in-memory document store for testing.
// It satisfies tasklist.DocumentReader and host.Documents.
type FakeFS struct {
	mu    sync.RWMutex
	files map[string][]byte
	reads map[string]int

	// Error injection for testing
	ReadErr  map[string]error // path -> error
	WriteErr error

	// AfterRead, if set, is called after a successful read has copied the contents.
	// Set it before the fake is shared between goroutines.
	AfterRead func(path string)
}

// NewFakeFS creates an empty FakeFS.
func NewFakeFS() *FakeFS {
	return &FakeFS{
		files:   make(map[string][]byte),
		reads:   make(map[string]int),
		ReadErr: make(map[string]error),
	}
}

// SetFile stores raw contents at path.
func (f *FakeFS) SetFile(path, contents string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[path] = []byte(contents)
}

// SetTasks stores tasks at path in the document format.
func (f *FakeFS) SetTasks(path string, tasks tasklist.Tasks) {
	f.SetFile(path, tasklist.Encode(tasks))
}

// File returns the contents at path and whether it exists.
func (f *FakeFS) File(path string) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	data, ok := f.files[path]
	return string(data), ok
}

// Tasks decodes the document at path.
func (f *FakeFS) Tasks(path string) tasklist.Tasks {
	data, _ := f.File(path)
	return tasklist.Decode([]byte(data))
}

// Paths returns every stored path, sorted.
func (f *FakeFS) Paths() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	paths := make([]string, 0, len(f.files))
	for p := range f.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Reads returns how many times path has been read.
func (f *FakeFS) Reads(path string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.reads[path]
}

// ReadDocument implements tasklist.DocumentReader.
func (f *FakeFS) ReadDocument(path string) ([]byte, error) {
	out, err := f.read(path)
	if err == nil && f.AfterRead != nil {
		f.AfterRead(path)
	}
	return out, err
}

func (f *FakeFS) read(path string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads[path]++

	if err, ok := f.ReadErr[path]; ok && err != nil {
		return nil, err
	}
	data, ok := f.files[path]
	if !ok {
		return nil, fmt.Errorf("read %s: %w", path, ErrNotFound)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// WriteDocument implements host.Documents.
func (f *FakeFS) WriteDocument(path string, data []byte) error {
	if f.WriteErr != nil {
		return f.WriteErr
	}
	if path == "" {
		return errors.New("empty path")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	f.files[path] = stored
	return nil
}
