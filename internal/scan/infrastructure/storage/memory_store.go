package storage

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore 内存图片存储,仅用于测试。
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemoryStore 创建内存图片存储实例。
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

func (s *MemoryStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if key == "" {
		return fmt.Errorf("empty image key")
	}
	buf := make([]byte, len(data))
	copy(buf, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = buf
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.objects[key]
	if !ok {
		return nil, fmt.Errorf("image not found: %s", key)
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	return buf, nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}
