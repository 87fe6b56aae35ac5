package storage

import (
	"context"
	"errors"
	"sync"
)

// Object is an archived file held by MemoryStorage
type Object struct {
	Data        []byte
	ContentType string
}

// MemoryStorage keeps archived files in memory. Used when object storage is
// disabled in development and by tests.
type MemoryStorage struct {
	mu      sync.RWMutex
	objects map[string]Object
}

// NewMemoryStorage creates an empty MemoryStorage
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{objects: make(map[string]Object)}
}

// Put stores a copy of data under key
func (s *MemoryStorage) Put(_ context.Context, key string, data []byte, contentType string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = Object{Data: append([]byte(nil), data...), ContentType: contentType}
	return nil
}

// Get returns the object stored under key
func (s *MemoryStorage) Get(key string) (Object, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	return obj, ok
}

// Len returns the number of stored objects
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

var _ Archive = (*MemoryStorage)(nil)
