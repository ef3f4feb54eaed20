package application

import "github.com/wyfcoding/atlasvision/internal/inventory/domain"

// ProductDTO 商品 DTO
type ProductDTO struct {
	ID         uint   `json:"id"`
	ShopID     string `json:"shop_id"`
	Name       string `json:"name"`
	Category   string `json:"category,omitempty"`
	LastPrice  string `json:"last_price"`
	SeenCount  int    `json:"seen_count"`
	LastScanID string `json:"last_scan_id,omitempty"`
	LastSeenAt int64  `json:"last_seen_at,omitempty"`
	CreatedAt  int64  `json:"created_at"`
	UpdatedAt  int64  `json:"updated_at"`
}

// ProductListDTO 商品分页 DTO
type ProductListDTO struct {
	Total int64         `json:"total"`
	Items []*ProductDTO `json:"items"`
}

// PriceHistoryDTO 价格历史 DTO
type PriceHistoryDTO struct {
	ID         uint   `json:"id"`
	ProductID  uint   `json:"product_id"`
	Price      string `json:"price"`
	ScanID     string `json:"scan_id,omitempty"`
	RecordedAt int64  `json:"recorded_at"`
}

// AlertDTO 告警 DTO
type AlertDTO struct {
	ID            uint   `json:"id"`
	ShopID        string `json:"shop_id"`
	ProductID     uint   `json:"product_id"`
	AlertType     string `json:"alert_type"`
	Severity      string `json:"severity"`
	Message       string `json:"message"`
	PrevPrice     string `json:"prev_price,omitempty"`
	NewPrice      string `json:"new_price,omitempty"`
	ChangePercent string `json:"change_percent,omitempty"`
	ScanID        string `json:"scan_id,omitempty"`
	CreatedAt     int64  `json:"created_at"`
}

// AlertListDTO 告警分页 DTO
type AlertListDTO struct {
	Total int64       `json:"total"`
	Items []*AlertDTO `json:"items"`
}

func toProductDTO(p *domain.Product) *ProductDTO {
	if p == nil {
		return nil
	}
	dto := &ProductDTO{
		ID:         p.ID,
		ShopID:     p.ShopID,
		Name:       p.Name,
		Category:   p.Category,
		LastPrice:  p.LastPrice.String(),
		SeenCount:  p.SeenCount,
		LastScanID: p.LastScanID,
		CreatedAt:  p.CreatedAt.Unix(),
		UpdatedAt:  p.UpdatedAt.Unix(),
	}
	if p.LastSeenAt != nil {
		dto.LastSeenAt = p.LastSeenAt.Unix()
	}
	return dto
}

func toPriceHistoryDTO(h *domain.PriceHistory) *PriceHistoryDTO {
	if h == nil {
		return nil
	}
	return &PriceHistoryDTO{
		ID:         h.ID,
		ProductID:  h.ProductID,
		Price:      h.Price.String(),
		ScanID:     h.ScanID,
		RecordedAt: h.RecordedAt.Unix(),
	}
}

func toAlertDTO(a *domain.Alert) *AlertDTO {
	if a == nil {
		return nil
	}
	return &AlertDTO{
		ID:            a.ID,
		ShopID:        a.ShopID,
		ProductID:     a.ProductID,
		AlertType:     a.AlertType,
		Severity:      a.Severity,
		Message:       a.Message,
		PrevPrice:     a.PrevPrice.String(),
		NewPrice:      a.NewPrice.String(),
		ChangePercent: a.ChangePercent.String(),
		ScanID:        a.ScanID,
		CreatedAt:     a.CreatedAt.Unix(),
	}
}
