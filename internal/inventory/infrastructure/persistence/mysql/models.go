package mysql

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/atlasvision/internal/inventory/domain"
	"gorm.io/gorm"
)

// ProductModel MySQL 商品表映射
type ProductModel struct {
	gorm.Model
	ShopID     string          `gorm:"column:shop_id;type:varchar(36);uniqueIndex:idx_shop_product;not null"`
	Name       string          `gorm:"column:name;type:varchar(255);uniqueIndex:idx_shop_product;not null"`
	Category   string          `gorm:"column:category;type:varchar(100);index"`
	LastPrice  decimal.Decimal `gorm:"column:last_price;type:decimal(20,8)"`
	SeenCount  int             `gorm:"column:seen_count;not null;default:0"`
	LastScanID string          `gorm:"column:last_scan_id;type:varchar(36)"`
	LastSeenAt *time.Time      `gorm:"column:last_seen_at"`
}

func (ProductModel) TableName() string { return "products" }

// PriceHistoryModel MySQL 价格历史表映射
type PriceHistoryModel struct {
	gorm.Model
	ProductID  uint            `gorm:"column:product_id;index;not null"`
	ShopID     string          `gorm:"column:shop_id;type:varchar(36);index;not null"`
	Price      decimal.Decimal `gorm:"column:price;type:decimal(20,8);not null"`
	ScanID     string          `gorm:"column:scan_id;type:varchar(36)"`
	RecordedAt time.Time       `gorm:"column:recorded_at;not null"`
}

func (PriceHistoryModel) TableName() string { return "price_histories" }

// AlertModel MySQL 告警表映射
type AlertModel struct {
	gorm.Model
	ShopID        string          `gorm:"column:shop_id;type:varchar(36);index;not null"`
	ProductID     uint            `gorm:"column:product_id;index;not null"`
	AlertType     string          `gorm:"column:alert_type;type:varchar(50);not null"`
	Severity      string          `gorm:"column:severity;type:varchar(20);not null"`
	Message       string          `gorm:"column:message;type:text;not null"`
	PrevPrice     decimal.Decimal `gorm:"column:prev_price;type:decimal(20,8)"`
	NewPrice      decimal.Decimal `gorm:"column:new_price;type:decimal(20,8)"`
	ChangePercent decimal.Decimal `gorm:"column:change_percent;type:decimal(10,4)"`
	ScanID        string          `gorm:"column:scan_id;type:varchar(36)"`
}

func (AlertModel) TableName() string { return "alerts" }

// --- mapping helpers ---

func toProductModel(p *domain.Product) *ProductModel {
	if p == nil {
		return nil
	}
	model := &ProductModel{
		ShopID:     p.ShopID,
		Name:       p.Name,
		Category:   p.Category,
		LastPrice:  p.LastPrice,
		SeenCount:  p.SeenCount,
		LastScanID: p.LastScanID,
		LastSeenAt: p.LastSeenAt,
	}
	model.Model.ID = p.ID
	model.CreatedAt = p.CreatedAt
	model.UpdatedAt = p.UpdatedAt
	return model
}

func toProduct(m *ProductModel) *domain.Product {
	if m == nil {
		return nil
	}
	return &domain.Product{
		Model:      m.Model,
		ShopID:     m.ShopID,
		Name:       m.Name,
		Category:   m.Category,
		LastPrice:  m.LastPrice,
		SeenCount:  m.SeenCount,
		LastScanID: m.LastScanID,
		LastSeenAt: m.LastSeenAt,
	}
}

func toPriceHistoryModel(h *domain.PriceHistory) *PriceHistoryModel {
	if h == nil {
		return nil
	}
	model := &PriceHistoryModel{
		ProductID:  h.ProductID,
		ShopID:     h.ShopID,
		Price:      h.Price,
		ScanID:     h.ScanID,
		RecordedAt: h.RecordedAt,
	}
	model.Model.ID = h.ID
	return model
}

func toPriceHistory(m *PriceHistoryModel) *domain.PriceHistory {
	if m == nil {
		return nil
	}
	return &domain.PriceHistory{
		Model:      m.Model,
		ProductID:  m.ProductID,
		ShopID:     m.ShopID,
		Price:      m.Price,
		ScanID:     m.ScanID,
		RecordedAt: m.RecordedAt,
	}
}

func toAlertModel(a *domain.Alert) *AlertModel {
	if a == nil {
		return nil
	}
	model := &AlertModel{
		ShopID:        a.ShopID,
		ProductID:     a.ProductID,
		AlertType:     a.AlertType,
		Severity:      a.Severity,
		Message:       a.Message,
		PrevPrice:     a.PrevPrice,
		NewPrice:      a.NewPrice,
		ChangePercent: a.ChangePercent,
		ScanID:        a.ScanID,
	}
	model.Model.ID = a.ID
	return model
}

func toAlert(m *AlertModel) *domain.Alert {
	if m == nil {
		return nil
	}
	return &domain.Alert{
		Model:         m.Model,
		ShopID:        m.ShopID,
		ProductID:     m.ProductID,
		AlertType:     m.AlertType,
		Severity:      m.Severity,
		Message:       m.Message,
		PrevPrice:     m.PrevPrice,
		NewPrice:      m.NewPrice,
		ChangePercent: m.ChangePercent,
		ScanID:        m.ScanID,
	}
}
