package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/atlasvision/internal/inventory/domain"
	"github.com/wyfcoding/atlasvision/pkg/contextx"
	"gorm.io/gorm"
)

// inventoryRepository 库存仓储的 MySQL 实现
type inventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository 创建库存仓储实例
func NewInventoryRepository(db *gorm.DB) domain.InventoryRepository {
	return &inventoryRepository{db: db}
}

// getDB 从上下文中获取事务或返回默认连接。
func (r *inventoryRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := contextx.GetTx(ctx).(*gorm.DB); ok {
		return tx
	}
	return r.db
}

// GetProductByShopAndName 按店铺与商品名精确匹配查询,未找到时返回 nil。
func (r *inventoryRepository) GetProductByShopAndName(ctx context.Context, shopID, name string) (*domain.Product, error) {
	var model ProductModel
	err := r.getDB(ctx).WithContext(ctx).
		Where("shop_id = ? AND name = ?", shopID, name).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toProduct(&model), nil
}

// GetProduct 根据 ID 获取商品,未找到时返回 nil。
func (r *inventoryRepository) GetProduct(ctx context.Context, id uint) (*domain.Product, error) {
	var model ProductModel
	err := r.getDB(ctx).WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toProduct(&model), nil
}

// SaveProduct 保存商品(存在则更新,不存在则创建)。
func (r *inventoryRepository) SaveProduct(ctx context.Context, product *domain.Product) error {
	model := toProductModel(product)
	if model.Model.ID == 0 {
		if err := r.getDB(ctx).WithContext(ctx).Create(model).Error; err != nil {
			return err
		}
		product.ID = model.Model.ID
		product.CreatedAt = model.CreatedAt
		return nil
	}
	return r.getDB(ctx).WithContext(ctx).Save(model).Error
}

// ListProducts 按店铺分页查询商品,category 非空时按分类过滤。
func (r *inventoryRepository) ListProducts(ctx context.Context, shopID, category string, offset, limit int) ([]*domain.Product, int64, error) {
	query := r.getDB(ctx).WithContext(ctx).Model(&ProductModel{}).Where("shop_id = ?", shopID)
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []ProductModel
	if err := query.Order("updated_at DESC").Offset(offset).Limit(limit).Find(&models).Error; err != nil {
		return nil, 0, err
	}

	products := make([]*domain.Product, 0, len(models))
	for i := range models {
		products = append(products, toProduct(&models[i]))
	}
	return products, total, nil
}

// ListAllProducts 查询店铺下全部商品,用于报表导出。
func (r *inventoryRepository) ListAllProducts(ctx context.Context, shopID string) ([]*domain.Product, error) {
	var models []ProductModel
	err := r.getDB(ctx).WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("name ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	products := make([]*domain.Product, 0, len(models))
	for i := range models {
		products = append(products, toProduct(&models[i]))
	}
	return products, nil
}

// AddPriceHistory 追加一条价格历史记录。
func (r *inventoryRepository) AddPriceHistory(ctx context.Context, history *domain.PriceHistory) error {
	return r.getDB(ctx).WithContext(ctx).Create(toPriceHistoryModel(history)).Error
}

// ListPriceHistory 查询商品最近的价格历史。
func (r *inventoryRepository) ListPriceHistory(ctx context.Context, productID uint, limit int) ([]*domain.PriceHistory, error) {
	var models []PriceHistoryModel
	err := r.getDB(ctx).WithContext(ctx).
		Where("product_id = ?", productID).
		Order("recorded_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	histories := make([]*domain.PriceHistory, 0, len(models))
	for i := range models {
		histories = append(histories, toPriceHistory(&models[i]))
	}
	return histories, nil
}

// SaveAlert 保存告警记录。
func (r *inventoryRepository) SaveAlert(ctx context.Context, alert *domain.Alert) error {
	model := toAlertModel(alert)
	if err := r.getDB(ctx).WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	alert.ID = model.Model.ID
	return nil
}

// ListAlerts 按店铺分页查询告警,按创建时间倒序。
func (r *inventoryRepository) ListAlerts(ctx context.Context, shopID string, offset, limit int) ([]*domain.Alert, int64, error) {
	query := r.getDB(ctx).WithContext(ctx).Model(&AlertModel{}).Where("shop_id = ?", shopID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []AlertModel
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&models).Error; err != nil {
		return nil, 0, err
	}

	alerts := make([]*domain.Alert, 0, len(models))
	for i := range models {
		alerts = append(alerts, toAlert(&models[i]))
	}
	return alerts, total, nil
}
