package storage

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// Mem keeps files in a map. Only used by tests
type Mem struct {
	mu    sync.Mutex
	files map[string][]byte
}

func NewMem() *Mem {
	return &Mem{files: map[string][]byte{}}
}

func (m *Mem) Save(key, contentType string, size int64, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[key] = data

	return nil
}

func (m *Mem) Open(key string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.files[key]
	if !ok {
		return nil, fmt.Errorf("no such file %q", key)
	}

	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *Mem) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.files[key]; !ok {
		return fmt.Errorf("no such file %q", key)
	}

	delete(m.files, key)
	return nil
}

// Has reports whether a file is currently stored
func (m *Mem) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.files[key]
	return ok
}

// Len returns the number of stored files
func (m *Mem) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.files)
}
