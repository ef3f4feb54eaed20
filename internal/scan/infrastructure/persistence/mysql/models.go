package mysql

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/atlasvision/internal/scan/domain"
	"gorm.io/gorm"
)

// ScanModel MySQL 扫描任务表映射
type ScanModel struct {
	gorm.Model
	ID          string `gorm:"primaryKey;type:varchar(36);column:id"`
	ShopID      string `gorm:"column:shop_id;type:varchar(36);index;not null"`
	UserID      string `gorm:"column:user_id;type:varchar(36);index"`
	ImageKey    string `gorm:"column:image_key;type:varchar(512);not null"`
	ContentType string `gorm:"column:content_type;type:varchar(100)"`
	Status      string `gorm:"column:status;type:varchar(20);index;not null;default:pending"`
	ErrorMsg    string `gorm:"column:error_msg;type:text"`

	OCRRaw            string `gorm:"column:ocr_raw;type:text"`
	ClassificationRaw string `gorm:"column:classification_raw;type:text"`
	VQARaw            string `gorm:"column:vqa_raw;type:text"`

	ProductName  string          `gorm:"column:product_name;type:varchar(255)"`
	Category     string          `gorm:"column:category;type:varchar(100)"`
	Price        decimal.Decimal `gorm:"column:price;type:decimal(20,8)"`
	QuantityHint int             `gorm:"column:quantity_hint;not null;default:0"`

	ProductID   *uint      `gorm:"column:product_id;index"`
	ProcessedAt *time.Time `gorm:"column:processed_at"`
}

func (ScanModel) TableName() string { return "scans" }

// --- mapping helpers ---

func toScanModel(s *domain.Scan) *ScanModel {
	if s == nil {
		return nil
	}
	return &ScanModel{
		ID:                s.ID,
		ShopID:            s.ShopID,
		UserID:            s.UserID,
		ImageKey:          s.ImageKey,
		ContentType:       s.ContentType,
		Status:            string(s.Status),
		ErrorMsg:          s.ErrorMsg,
		OCRRaw:            s.OCRRaw,
		ClassificationRaw: s.ClassificationRaw,
		VQARaw:            s.VQARaw,
		ProductName:       s.ProductName,
		Category:          s.Category,
		Price:             s.Price,
		QuantityHint:      s.QuantityHint,
		ProductID:         s.ProductID,
		ProcessedAt:       s.ProcessedAt,
	}
}

func toScan(m *ScanModel) *domain.Scan {
	if m == nil {
		return nil
	}
	scan := &domain.Scan{
		ID:                m.ID,
		ShopID:            m.ShopID,
		UserID:            m.UserID,
		ImageKey:          m.ImageKey,
		ContentType:       m.ContentType,
		Status:            domain.ScanStatus(m.Status),
		ErrorMsg:          m.ErrorMsg,
		OCRRaw:            m.OCRRaw,
		ClassificationRaw: m.ClassificationRaw,
		VQARaw:            m.VQARaw,
		ProductName:       m.ProductName,
		Category:          m.Category,
		Price:             m.Price,
		QuantityHint:      m.QuantityHint,
		ProductID:         m.ProductID,
		ProcessedAt:       m.ProcessedAt,
	}
	scan.CreatedAt = m.CreatedAt
	scan.UpdatedAt = m.UpdatedAt
	return scan
}
