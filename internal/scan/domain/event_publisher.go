package domain

import "context"

// EventPublisher 事件发布者接口
type EventPublisher interface {
	// PublishScanCreated 发布扫描任务创建事件，唤起异步处理
	PublishScanCreated(ctx context.Context, event ScanCreatedEvent) error
}
