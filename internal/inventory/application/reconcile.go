package application

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/atlasvision/internal/inventory/domain"
	"github.com/wyfcoding/atlasvision/pkg/logging"
	"github.com/wyfcoding/atlasvision/pkg/metrics"
)

// ReconcileService 把一次扫描的识别结果对账进商品表。
// 匹配规则只有 (shop_id, product_name) 精确相等这一条。
type ReconcileService struct {
	repo           domain.InventoryRepository
	metrics        *metrics.Metrics
	alertThreshold decimal.Decimal
}

// NewReconcileService 构造函数,alertThresholdPercent 为价格波动告警阈值(百分比)。
func NewReconcileService(
	repo domain.InventoryRepository,
	metrics *metrics.Metrics,
	alertThresholdPercent float64,
) *ReconcileService {
	return &ReconcileService{
		repo:           repo,
		metrics:        metrics,
		alertThreshold: decimal.NewFromFloat(alertThresholdPercent),
	}
}

// ReconcileScan 按商品名精确匹配做 upsert:命中则更新分类、最近价格并累加
// seen_count,未命中则新建。识别出价格时追加一条价格历史,价格相对上次
// 波动达到阈值时落一条 price_change 告警。返回关联的商品 ID。
//
// seen_count 的累加是普通的读-改-写,没有行锁或原子自增,两个 worker 同时
// 处理同一商品时会各加一次。
func (s *ReconcileService) ReconcileScan(ctx context.Context, shopID, scanID, productName, category string, price decimal.Decimal, hasPrice bool) (*uint, error) {
	if productName == "" {
		logging.Warn(ctx, "Empty product name, skipping reconcile", "scan_id", scanID)
		return nil, nil
	}

	product, err := s.repo.GetProductByShopAndName(ctx, shopID, productName)
	if err != nil {
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}

	now := time.Now()
	var prevPrice decimal.Decimal
	hadPrevPrice := false

	if product == nil {
		product = &domain.Product{
			ShopID:     shopID,
			Name:       productName,
			Category:   category,
			SeenCount:  1,
			LastScanID: scanID,
			LastSeenAt: &now,
		}
		if hasPrice {
			product.LastPrice = price
		}
	} else {
		prevPrice = product.LastPrice
		hadPrevPrice = !prevPrice.IsZero()

		product.SeenCount = product.SeenCount + 1
		product.Category = category
		if hasPrice {
			product.LastPrice = price
		}
		product.LastScanID = scanID
		product.LastSeenAt = &now
	}

	if err := s.repo.SaveProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	if hasPrice {
		history := &domain.PriceHistory{
			ProductID:  product.ID,
			ShopID:     shopID,
			Price:      price,
			ScanID:     scanID,
			RecordedAt: now,
		}
		if err := s.repo.AddPriceHistory(ctx, history); err != nil {
			return nil, fmt.Errorf("failed to record price history: %w", err)
		}

		if hadPrevPrice && !prevPrice.Equal(price) {
			if err := s.raisePriceAlert(ctx, product, scanID, prevPrice, price); err != nil {
				return nil, err
			}
		}
	}

	return &product.ID, nil
}

// raisePriceAlert 价格相对上次波动达到阈值时写入告警。
func (s *ReconcileService) raisePriceAlert(ctx context.Context, product *domain.Product, scanID string, prevPrice, newPrice decimal.Decimal) error {
	changePercent := newPrice.Sub(prevPrice).Div(prevPrice).Mul(decimal.NewFromInt(100)).Abs()
	if changePercent.LessThan(s.alertThreshold) {
		return nil
	}

	alert := &domain.Alert{
		ShopID:    product.ShopID,
		ProductID: product.ID,
		AlertType: domain.AlertTypePriceChange,
		Severity:  domain.AlertSeverityWarning,
		Message: fmt.Sprintf("price of %q changed %s%% (%s -> %s)",
			product.Name, changePercent.StringFixed(2), prevPrice.String(), newPrice.String()),
		PrevPrice:     prevPrice,
		NewPrice:      newPrice,
		ChangePercent: changePercent.Round(4),
		ScanID:        scanID,
	}
	if err := s.repo.SaveAlert(ctx, alert); err != nil {
		return fmt.Errorf("failed to save alert: %w", err)
	}

	s.metrics.RecordAlert()
	logging.Warn(ctx, "Price change alert raised",
		"shop_id", product.ShopID,
		"product_id", product.ID,
		"product_name", product.Name,
		"change_percent", changePercent.StringFixed(2))
	return nil
}
