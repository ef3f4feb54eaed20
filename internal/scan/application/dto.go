package application

import "github.com/wyfcoding/atlasvision/internal/scan/domain"

// SubmitScanResult 上传受理结果 DTO
type SubmitScanResult struct {
	ScanID string `json:"scan_id"`
	Status string `json:"status"`
}

// ScanDTO 扫描任务 DTO
type ScanDTO struct {
	ScanID            string `json:"scan_id"`
	ShopID            string `json:"shop_id"`
	UserID            string `json:"user_id,omitempty"`
	ImageKey          string `json:"image_key"`
	ContentType       string `json:"content_type,omitempty"`
	Status            string `json:"status"`
	ErrorMessage      string `json:"error_message,omitempty"`
	OCRRaw            string `json:"ocr_raw,omitempty"`
	ClassificationRaw string `json:"classification_raw,omitempty"`
	VQARaw            string `json:"vqa_raw,omitempty"`
	ProductName       string `json:"product_name,omitempty"`
	Category          string `json:"category,omitempty"`
	Price             string `json:"price,omitempty"`
	QuantityHint      int    `json:"quantity_hint"`
	ProductID         *uint  `json:"product_id,omitempty"`
	CreatedAt         int64  `json:"created_at"`
	ProcessedAt       int64  `json:"processed_at,omitempty"`
}

// ScanListDTO 扫描任务分页 DTO
type ScanListDTO struct {
	Total int64      `json:"total"`
	Items []*ScanDTO `json:"items"`
}

func toScanDTO(s *domain.Scan) *ScanDTO {
	if s == nil {
		return nil
	}
	dto := &ScanDTO{
		ScanID:            s.ID,
		ShopID:            s.ShopID,
		UserID:            s.UserID,
		ImageKey:          s.ImageKey,
		ContentType:       s.ContentType,
		Status:            string(s.Status),
		ErrorMessage:      s.ErrorMsg,
		OCRRaw:            s.OCRRaw,
		ClassificationRaw: s.ClassificationRaw,
		VQARaw:            s.VQARaw,
		ProductName:       s.ProductName,
		Category:          s.Category,
		QuantityHint:      s.QuantityHint,
		ProductID:         s.ProductID,
		CreatedAt:         s.CreatedAt.Unix(),
	}
	if !s.Price.IsZero() {
		dto.Price = s.Price.String()
	}
	if s.ProcessedAt != nil {
		dto.ProcessedAt = s.ProcessedAt.Unix()
	}
	return dto
}
