package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/atlasvision/internal/identity/domain"
	"github.com/wyfcoding/atlasvision/pkg/contextx"
	"gorm.io/gorm"
)

// shopRepository 门店仓储的 MySQL 实现
type shopRepository struct {
	db *gorm.DB
}

// NewShopRepository 创建门店仓储实例
func NewShopRepository(db *gorm.DB) domain.ShopRepository {
	return &shopRepository{db: db}
}

// getDB 从上下文中获取事务或返回默认连接。
func (r *shopRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := contextx.GetTx(ctx).(*gorm.DB); ok {
		return tx
	}
	return r.db
}

// Save 保存门店(存在则更新,不存在则创建)。
func (r *shopRepository) Save(ctx context.Context, shop *domain.Shop) error {
	model := toShopModel(shop)

	var existing ShopModel
	err := r.getDB(ctx).WithContext(ctx).Where("id = ?", shop.ID).First(&existing).Error
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

// Get 根据 ID 获取门店,未找到时返回 nil。
func (r *shopRepository) Get(ctx context.Context, id string) (*domain.Shop, error) {
	var model ShopModel
	err := r.getDB(ctx).WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toShop(&model), nil
}

// List 分页查询门店。
func (r *shopRepository) List(ctx context.Context, offset, limit int) ([]*domain.Shop, int64, error) {
	query := r.getDB(ctx).WithContext(ctx).Model(&ShopModel{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []ShopModel
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&models).Error; err != nil {
		return nil, 0, err
	}

	shops := make([]*domain.Shop, 0, len(models))
	for i := range models {
		shops = append(shops, toShop(&models[i]))
	}
	return shops, total, nil
}
