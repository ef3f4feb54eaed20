package domain

import "time"

// ScanCreatedEventType 扫描任务创建事件对应的 Kafka 主题
const ScanCreatedEventType = "atlasvision.scan.created"

// ScanCreatedEvent 扫描任务创建事件载荷
type ScanCreatedEvent struct {
	ScanID    string    `json:"scan_id"`
	ShopID    string    `json:"shop_id"`
	CreatedAt time.Time `json:"created_at"`
}
