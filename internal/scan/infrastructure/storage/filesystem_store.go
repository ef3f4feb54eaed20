package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FilesystemStore 基于本地文件系统的图片存储,适用于单机部署与开发环境。
type FilesystemStore struct {
	rootDir string
	mu      sync.RWMutex
}

// NewFilesystemStore 创建文件系统图片存储,根目录不存在时自动创建。
func NewFilesystemStore(rootDir string) (*FilesystemStore, error) {
	if rootDir == "" {
		rootDir = "data/images"
	}
	if err := os.MkdirAll(rootDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to ensure image dir: %w", err)
	}
	return &FilesystemStore{rootDir: rootDir}, nil
}

// Put 将图片写入本地磁盘,先写临时文件再原子重命名。
func (s *FilesystemStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to ensure dir for %s: %w", key, err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to commit image: %w", err)
	}
	return nil
}

// Get 读取本地磁盘上的图片。
func (s *FilesystemStore) Get(ctx context.Context, key string) ([]byte, error) {
	path, err := s.resolve(key)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image not found: %s", key)
		}
		return nil, err
	}
	return data, nil
}

// Delete 删除本地磁盘上的图片,不存在时视为成功。
func (s *FilesystemStore) Delete(ctx context.Context, key string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

// resolve 校验 key 并映射为根目录下的安全路径。
func (s *FilesystemStore) resolve(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("empty image key")
	}
	cleaned := filepath.Clean(filepath.FromSlash(key))
	if filepath.IsAbs(cleaned) || strings.HasPrefix(cleaned, "..") {
		return "", fmt.Errorf("invalid image key: %s", key)
	}
	return filepath.Join(s.rootDir, cleaned), nil
}
