package application

import (
	"context"

	"github.com/wyfcoding/atlasvision/internal/scan/domain"
)

// ScanQueryService 处理所有扫描相关的查询操作（Queries）。
type ScanQueryService struct {
	repo domain.ScanRepository
}

// NewScanQueryService 构造函数。
func NewScanQueryService(repo domain.ScanRepository) *ScanQueryService {
	return &ScanQueryService{repo: repo}
}

// GetScan 按 ID 查询扫描任务，未找到时返回 (nil, nil)。
func (q *ScanQueryService) GetScan(ctx context.Context, id string) (*ScanDTO, error) {
	scan, err := q.repo.Get(ctx, id)
	if err != nil || scan == nil {
		return nil, err
	}
	return toScanDTO(scan), nil
}

// ListScans 按店铺分页查询扫描任务，status 为空表示不过滤状态。
func (q *ScanQueryService) ListScans(ctx context.Context, shopID, status string, page, size int) (*ScanListDTO, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 200 {
		size = 20
	}

	scans, total, err := q.repo.ListByShop(ctx, shopID, domain.ScanStatus(status), (page-1)*size, size)
	if err != nil {
		return nil, err
	}

	items := make([]*ScanDTO, 0, len(scans))
	for _, s := range scans {
		items = append(items, toScanDTO(s))
	}
	return &ScanListDTO{Total: total, Items: items}, nil
}
