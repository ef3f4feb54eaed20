// 包 扫描服务的领域模型、实体、仓储接口与管线契约
package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ScanStatus 扫描任务状态
type ScanStatus string

const (
	ScanStatusPending    ScanStatus = "pending"
	ScanStatusProcessing ScanStatus = "processing"
	ScanStatusDone       ScanStatus = "done"
	ScanStatusFailed     ScanStatus = "failed"
)

// Scan 货架扫描任务实体
type Scan struct {
	gorm.Model
	ID          string     `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	ShopID      string     `gorm:"column:shop_id;type:varchar(36);index;not null" json:"shop_id"`
	UserID      string     `gorm:"column:user_id;type:varchar(36);index" json:"user_id"`
	ImageKey    string     `gorm:"column:image_key;type:varchar(512);not null" json:"image_key"`
	ContentType string     `gorm:"column:content_type;type:varchar(100)" json:"content_type"`
	Status      ScanStatus `gorm:"column:status;type:varchar(20);not null;default:pending" json:"status"`
	ErrorMsg    string     `gorm:"column:error_msg;type:text" json:"error_msg,omitempty"`

	// 各模型的原始返回，按服务端返回的 JSON 原样保存
	OCRRaw            string `gorm:"column:ocr_raw;type:text" json:"ocr_raw,omitempty"`
	ClassificationRaw string `gorm:"column:classification_raw;type:text" json:"classification_raw,omitempty"`
	VQARaw            string `gorm:"column:vqa_raw;type:text" json:"vqa_raw,omitempty"`

	// 直传式规整结果
	ProductName  string          `gorm:"column:product_name;type:varchar(255)" json:"product_name,omitempty"`
	Category     string          `gorm:"column:category;type:varchar(100)" json:"category,omitempty"`
	Price        decimal.Decimal `gorm:"column:price;type:decimal(20,8)" json:"price"`
	QuantityHint int             `gorm:"column:quantity_hint;not null;default:0" json:"quantity_hint"`

	ProductID   *uint      `gorm:"column:product_id;index" json:"product_id,omitempty"`
	ProcessedAt *time.Time `gorm:"column:processed_at" json:"processed_at,omitempty"`
}

// NewScan 创建待处理的扫描任务
func NewScan(id, shopID, userID, imageKey, contentType string) *Scan {
	return &Scan{
		ID:          id,
		ShopID:      shopID,
		UserID:      userID,
		ImageKey:    imageKey,
		ContentType: contentType,
		Status:      ScanStatusPending,
	}
}

// MarkProcessing 标记任务进入处理中
func (s *Scan) MarkProcessing() {
	s.Status = ScanStatusProcessing
}

// MarkDone 标记任务完成并记录完成时间
func (s *Scan) MarkDone(now time.Time) {
	s.Status = ScanStatusDone
	s.ProcessedAt = &now
}

// MarkFailed 标记任务失败并保存错误文本
func (s *Scan) MarkFailed(now time.Time, errMsg string) {
	s.Status = ScanStatusFailed
	s.ErrorMsg = errMsg
	s.ProcessedAt = &now
}

// IsTerminal 任务是否已到终态
func (s *Scan) IsTerminal() bool {
	return s.Status == ScanStatusDone || s.Status == ScanStatusFailed
}
