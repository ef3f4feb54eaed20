package redis

import (
	"context"
	"errors"
	"time"

	"github.com/wyfcoding/atlasvision/internal/scan/domain"
	"github.com/wyfcoding/atlasvision/pkg/cache"
)

// ScanRedisRepository 扫描任务的 Redis 读缓存
type ScanRedisRepository struct {
	cache  *cache.RedisCache
	prefix string
	ttl    time.Duration
}

// NewScanRedisRepository 创建扫描任务缓存仓储,ttl 非正时使用默认 5 分钟。
func NewScanRedisRepository(c *cache.RedisCache, ttl time.Duration) *ScanRedisRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ScanRedisRepository{
		cache:  c,
		prefix: "scan:task:",
		ttl:    ttl,
	}
}

func (r *ScanRedisRepository) Save(ctx context.Context, scan *domain.Scan) error {
	if scan == nil {
		return nil
	}
	return r.cache.SetJSON(ctx, r.key(scan.ID), scan, r.ttl)
}

func (r *ScanRedisRepository) Get(ctx context.Context, id string) (*domain.Scan, error) {
	var scan domain.Scan
	err := r.cache.GetJSON(ctx, r.key(id), &scan)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, nil
		}
		return nil, err
	}
	return &scan, nil
}

func (r *ScanRedisRepository) Delete(ctx context.Context, id string) error {
	return r.cache.Delete(ctx, r.key(id))
}

func (r *ScanRedisRepository) key(id string) string {
	return r.prefix + id
}
