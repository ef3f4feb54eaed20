package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/atlasvision/internal/scan/domain"
	"github.com/wyfcoding/atlasvision/pkg/contextx"
	"gorm.io/gorm"
)

// scanRepository 扫描任务仓储的 MySQL 实现
type scanRepository struct {
	db *gorm.DB
}

// NewScanRepository 创建扫描任务仓储实例
func NewScanRepository(db *gorm.DB) domain.ScanRepository {
	return &scanRepository{db: db}
}

// getDB 从上下文中获取事务或返回默认连接。
func (r *scanRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := contextx.GetTx(ctx).(*gorm.DB); ok {
		return tx
	}
	return r.db
}

// Save 保存扫描任务(存在则更新,不存在则创建)。
func (r *scanRepository) Save(ctx context.Context, scan *domain.Scan) error {
	model := toScanModel(scan)

	var existing ScanModel
	err := r.getDB(ctx).WithContext(ctx).Where("id = ?", scan.ID).First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return r.getDB(ctx).WithContext(ctx).Create(model).Error
		}
		return err
	}

	model.Model.ID = existing.Model.ID
	model.CreatedAt = existing.CreatedAt
	return r.getDB(ctx).WithContext(ctx).Save(model).Error
}

// Get 根据 ID 获取扫描任务,未找到时返回 nil。
func (r *scanRepository) Get(ctx context.Context, id string) (*domain.Scan, error) {
	var model ScanModel
	err := r.getDB(ctx).WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toScan(&model), nil
}

// ListByShop 按店铺分页查询扫描任务,status 为空时返回全部状态。
func (r *scanRepository) ListByShop(ctx context.Context, shopID string, status domain.ScanStatus, offset, limit int) ([]*domain.Scan, int64, error) {
	query := r.getDB(ctx).WithContext(ctx).Model(&ScanModel{}).Where("shop_id = ?", shopID)
	if status != "" {
		query = query.Where("status = ?", string(status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []ScanModel
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&models).Error; err != nil {
		return nil, 0, err
	}

	scans := make([]*domain.Scan, 0, len(models))
	for i := range models {
		scans = append(scans, toScan(&models[i]))
	}
	return scans, total, nil
}
