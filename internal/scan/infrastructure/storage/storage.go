// Package storage 提供扫描图片的对象存储实现,支持 S3、本地文件系统与内存三种驱动。
package storage

import (
	"context"
	"fmt"

	"github.com/wyfcoding/atlasvision/internal/scan/domain"
)

// Driver 存储驱动类型
type Driver string

const (
	DriverS3         Driver = "s3"
	DriverFilesystem Driver = "filesystem"
	DriverMemory     Driver = "memory"
)

// Config 对象存储配置
type Config struct {
	Driver          string
	Bucket          string
	Region          string
	Endpoint        string
	ForcePathStyle  bool
	AccessKeyID     string
	SecretAccessKey string
	RootDir         string
}

// New 根据配置创建对应驱动的图片存储。
func New(ctx context.Context, cfg Config) (domain.ImageStore, error) {
	switch Driver(cfg.Driver) {
	case DriverS3:
		return NewS3Store(ctx, cfg)
	case DriverFilesystem:
		return NewFilesystemStore(cfg.RootDir)
	case DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}
