package application

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wyfcoding/atlasvision/internal/scan/domain"
	"github.com/wyfcoding/atlasvision/pkg/logging"
	"github.com/wyfcoding/atlasvision/pkg/metrics"
)

// SubmitScanCommand 上传扫描图片命令
type SubmitScanCommand struct {
	ShopID      string
	UserID      string
	Filename    string
	ContentType string
	Image       []byte
}

// ScanCommandService 处理所有扫描相关的写入操作（Commands）。
type ScanCommandService struct {
	repo      domain.ScanRepository
	store     domain.ImageStore
	publisher domain.EventPublisher
	metrics   *metrics.Metrics
}

// NewScanCommandService 构造函数。
func NewScanCommandService(
	repo domain.ScanRepository,
	store domain.ImageStore,
	publisher domain.EventPublisher,
	metrics *metrics.Metrics,
) *ScanCommandService {
	return &ScanCommandService{
		repo:      repo,
		store:     store,
		publisher: publisher,
		metrics:   metrics,
	}
}

// SubmitScan 受理上传：保存图片对象、写入 pending 任务、投递扫描创建事件。
func (s *ScanCommandService) SubmitScan(ctx context.Context, cmd SubmitScanCommand) (*SubmitScanResult, error) {
	if cmd.ShopID == "" {
		return nil, fmt.Errorf("shop_id is required")
	}
	if len(cmd.Image) == 0 {
		return nil, fmt.Errorf("image is required")
	}

	scanID := uuid.New().String()
	imageKey := fmt.Sprintf("scans/%s%s", scanID, imageExt(cmd.Filename, cmd.ContentType))

	if err := s.store.Put(ctx, imageKey, cmd.Image, cmd.ContentType); err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	scan := domain.NewScan(scanID, cmd.ShopID, cmd.UserID, imageKey, cmd.ContentType)
	if err := s.repo.Save(ctx, scan); err != nil {
		return nil, fmt.Errorf("failed to save scan: %w", err)
	}

	event := domain.ScanCreatedEvent{
		ScanID:    scan.ID,
		ShopID:    scan.ShopID,
		CreatedAt: time.Now(),
	}
	if err := s.publisher.PublishScanCreated(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to enqueue scan: %w", err)
	}

	s.metrics.RecordScanSubmitted()
	logging.Info(ctx, "Scan accepted",
		"scan_id", scan.ID,
		"shop_id", scan.ShopID,
		"image_key", imageKey,
		"size_bytes", len(cmd.Image))

	return &SubmitScanResult{
		ScanID: scan.ID,
		Status: string(domain.ScanStatusPending),
	}, nil
}

// imageExt 根据文件名或 Content-Type 推断对象存储后缀。
func imageExt(filename, contentType string) string {
	if ext := strings.ToLower(path.Ext(filename)); ext != "" {
		return ext
	}
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".bin"
	}
}
