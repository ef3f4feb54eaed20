package domain

import "context"

// ImageStore 扫描图片对象存储接口
type ImageStore interface {
	// Put 保存图片内容，key 形如 scans/<scan-id>.jpg
	Put(ctx context.Context, key string, data []byte, contentType string) error
	// Get 读取图片内容
	Get(ctx context.Context, key string) ([]byte, error)
	// Delete 删除图片
	Delete(ctx context.Context, key string) error
}
