// 包 库存服务的领域模型：商品、价格历史、库存告警与仓储接口
package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AlertTypePriceChange 价格波动告警类型
const AlertTypePriceChange = "price_change"

// 告警级别
const (
	AlertSeverityInfo     = "info"
	AlertSeverityWarning  = "warning"
	AlertSeverityCritical = "critical"
)

// Product 商品实体，(shop_id, name) 唯一
type Product struct {
	gorm.Model
	ShopID     string          `gorm:"column:shop_id;type:varchar(36);uniqueIndex:idx_shop_product;not null" json:"shop_id"`
	Name       string          `gorm:"column:name;type:varchar(255);uniqueIndex:idx_shop_product;not null" json:"name"`
	Category   string          `gorm:"column:category;type:varchar(100);index" json:"category"`
	LastPrice  decimal.Decimal `gorm:"column:last_price;type:decimal(20,8);not null" json:"last_price"`
	SeenCount  int             `gorm:"column:seen_count;not null;default:0" json:"seen_count"`
	LastScanID string          `gorm:"column:last_scan_id;type:varchar(36)" json:"last_scan_id"`
	LastSeenAt *time.Time      `gorm:"column:last_seen_at" json:"last_seen_at,omitempty"`
}

// PriceHistory 商品价格历史记录
type PriceHistory struct {
	gorm.Model
	ProductID  uint            `gorm:"column:product_id;index;not null" json:"product_id"`
	ShopID     string          `gorm:"column:shop_id;type:varchar(36);index;not null" json:"shop_id"`
	Price      decimal.Decimal `gorm:"column:price;type:decimal(20,8);not null" json:"price"`
	ScanID     string          `gorm:"column:scan_id;type:varchar(36)" json:"scan_id"`
	RecordedAt time.Time       `gorm:"column:recorded_at;not null" json:"recorded_at"`
}

// Alert 库存告警实体
type Alert struct {
	gorm.Model
	ShopID        string          `gorm:"column:shop_id;type:varchar(36);index;not null" json:"shop_id"`
	ProductID     uint            `gorm:"column:product_id;index;not null" json:"product_id"`
	AlertType     string          `gorm:"column:alert_type;type:varchar(50);not null" json:"alert_type"`
	Severity      string          `gorm:"column:severity;type:varchar(20);not null" json:"severity"`
	Message       string          `gorm:"column:message;type:text;not null" json:"message"`
	PrevPrice     decimal.Decimal `gorm:"column:prev_price;type:decimal(20,8)" json:"prev_price"`
	NewPrice      decimal.Decimal `gorm:"column:new_price;type:decimal(20,8)" json:"new_price"`
	ChangePercent decimal.Decimal `gorm:"column:change_percent;type:decimal(10,4)" json:"change_percent"`
	ScanID        string          `gorm:"column:scan_id;type:varchar(36)" json:"scan_id"`
}
