package domain

import "context"

// ScanRepository 扫描任务仓储接口
type ScanRepository interface {
	Save(ctx context.Context, scan *Scan) error
	Get(ctx context.Context, id string) (*Scan, error)
	ListByShop(ctx context.Context, shopID string, status ScanStatus, offset, limit int) ([]*Scan, int64, error)
}
