package application

import (
	"context"

	"github.com/wyfcoding/atlasvision/internal/inventory/domain"
)

// InventoryQueryService 处理所有库存相关的查询操作（Queries）。
type InventoryQueryService struct {
	repo domain.InventoryRepository
}

// NewInventoryQueryService 构造函数。
func NewInventoryQueryService(repo domain.InventoryRepository) *InventoryQueryService {
	return &InventoryQueryService{repo: repo}
}

// GetProduct 按 ID 查询商品，未找到时返回 (nil, nil)。
func (q *InventoryQueryService) GetProduct(ctx context.Context, id uint) (*ProductDTO, error) {
	product, err := q.repo.GetProduct(ctx, id)
	if err != nil || product == nil {
		return nil, err
	}
	return toProductDTO(product), nil
}

// ListProducts 按店铺分页查询商品，category 为空表示不过滤分类。
func (q *InventoryQueryService) ListProducts(ctx context.Context, shopID, category string, page, size int) (*ProductListDTO, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 200 {
		size = 20
	}

	products, total, err := q.repo.ListProducts(ctx, shopID, category, (page-1)*size, size)
	if err != nil {
		return nil, err
	}

	items := make([]*ProductDTO, 0, len(products))
	for _, p := range products {
		items = append(items, toProductDTO(p))
	}
	return &ProductListDTO{Total: total, Items: items}, nil
}

// ListPriceHistory 查询商品最近的价格历史，按记录时间倒序。
func (q *InventoryQueryService) ListPriceHistory(ctx context.Context, productID uint, limit int) ([]*PriceHistoryDTO, error) {
	if limit < 1 || limit > 500 {
		limit = 50
	}

	histories, err := q.repo.ListPriceHistory(ctx, productID, limit)
	if err != nil {
		return nil, err
	}

	items := make([]*PriceHistoryDTO, 0, len(histories))
	for _, h := range histories {
		items = append(items, toPriceHistoryDTO(h))
	}
	return items, nil
}

// ListAlerts 按店铺分页查询告警。
func (q *InventoryQueryService) ListAlerts(ctx context.Context, shopID string, page, size int) (*AlertListDTO, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 200 {
		size = 20
	}

	alerts, total, err := q.repo.ListAlerts(ctx, shopID, (page-1)*size, size)
	if err != nil {
		return nil, err
	}

	items := make([]*AlertDTO, 0, len(alerts))
	for _, a := range alerts {
		items = append(items, toAlertDTO(a))
	}
	return &AlertListDTO{Total: total, Items: items}, nil
}
