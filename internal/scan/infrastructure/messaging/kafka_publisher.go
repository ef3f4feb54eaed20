package messaging

import (
	"context"

	"github.com/wyfcoding/atlasvision/internal/scan/domain"
	"github.com/wyfcoding/atlasvision/pkg/messagequeue"
)

// kafkaEventPublisher 基于 Kafka 的扫描事件发布者实现
type kafkaEventPublisher struct {
	publisher messagequeue.EventPublisher
	topic     string
}

// NewKafkaEventPublisher 创建扫描事件发布者,以 scan_id 作为分区键。
func NewKafkaEventPublisher(publisher messagequeue.EventPublisher, topic string) domain.EventPublisher {
	return &kafkaEventPublisher{
		publisher: publisher,
		topic:     topic,
	}
}

// PublishScanCreated 发布扫描任务创建事件。
func (p *kafkaEventPublisher) PublishScanCreated(ctx context.Context, event domain.ScanCreatedEvent) error {
	return p.publisher.Publish(ctx, p.topic, event.ScanID, event)
}
