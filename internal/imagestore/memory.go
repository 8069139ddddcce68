package imagestore

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// MemoryStore keeps uploads in a map. Test use only.
type MemoryStore struct {
	mu       sync.Mutex
	files    map[string][]byte
	maxBytes int64
}

func NewMemoryStore(maxBytes int64) *MemoryStore {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	return &MemoryStore{
		files:    make(map[string][]byte),
		maxBytes: maxBytes,
	}
}

func (s *MemoryStore) Save(ctx context.Context, filename string, size int64, r io.Reader) (string, error) {
	name, _, err := objectName(filename, size, s.maxBytes)
	if err != nil {
		return "", err
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.files[name] = data
	s.mu.Unlock()

	return "/uploads/" + name, nil
}

func (s *MemoryStore) Remove(ctx context.Context, name string) error {
	name = strings.TrimPrefix(name, "/uploads/")

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.files[name]; !ok {
		return fmt.Errorf("imagestore: %s not found", name)
	}
	delete(s.files, name)

	return nil
}

func (s *MemoryStore) Driver() Driver {
	return DriverMemory
}

// Get returns a stored file by name or URL. Test helper.
func (s *MemoryStore) Get(name string) ([]byte, bool) {
	name = strings.TrimPrefix(name, "/uploads/")

	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.files[name]
	return data, ok
}

// Len reports the number of stored files. Test helper.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.files)
}
