package persistence

import (
	"context"

	"github.com/wyfcoding/atlasvision/internal/scan/domain"
	scanredis "github.com/wyfcoding/atlasvision/internal/scan/infrastructure/persistence/redis"
)

type compositeScanRepository struct {
	mysql domain.ScanRepository
	cache *scanredis.ScanRedisRepository
}

// NewCompositeScanRepository 创建一个组合仓储,MySQL 持久化加 Redis 读缓存。
func NewCompositeScanRepository(mysql domain.ScanRepository, cache *scanredis.ScanRedisRepository) domain.ScanRepository {
	return &compositeScanRepository{
		mysql: mysql,
		cache: cache,
	}
}

func (r *compositeScanRepository) Save(ctx context.Context, scan *domain.Scan) error {
	if err := r.mysql.Save(ctx, scan); err != nil {
		return err
	}
	_ = r.cache.Save(ctx, scan) // Cache 写入失败不影响主库
	return nil
}

func (r *compositeScanRepository) Get(ctx context.Context, id string) (*domain.Scan, error) {
	// 1. Try Cache
	scan, err := r.cache.Get(ctx, id)
	if err == nil && scan != nil {
		return scan, nil
	}

	// 2. Fallback to MySQL
	scan, err = r.mysql.Get(ctx, id)
	if err != nil || scan == nil {
		return scan, err
	}

	// 3. Backfill Cache
	_ = r.cache.Save(ctx, scan)
	return scan, nil
}

func (r *compositeScanRepository) ListByShop(ctx context.Context, shopID string, status domain.ScanStatus, offset, limit int) ([]*domain.Scan, int64, error) {
	// 列表查询不走缓存
	return r.mysql.ListByShop(ctx, shopID, status, offset, limit)
}
