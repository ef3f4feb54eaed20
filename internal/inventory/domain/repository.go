package domain

import "context"

// InventoryRepository 库存仓储接口
type InventoryRepository interface {
	// GetProductByShopAndName 按 (shop_id, name) 精确匹配查询，未命中返回 (nil, nil)
	GetProductByShopAndName(ctx context.Context, shopID, name string) (*Product, error)
	GetProduct(ctx context.Context, id uint) (*Product, error)
	SaveProduct(ctx context.Context, product *Product) error
	ListProducts(ctx context.Context, shopID, category string, offset, limit int) ([]*Product, int64, error)
	ListAllProducts(ctx context.Context, shopID string) ([]*Product, error)

	AddPriceHistory(ctx context.Context, entry *PriceHistory) error
	ListPriceHistory(ctx context.Context, productID uint, limit int) ([]*PriceHistory, error)

	SaveAlert(ctx context.Context, alert *Alert) error
	ListAlerts(ctx context.Context, shopID string, offset, limit int) ([]*Alert, int64, error)
}
