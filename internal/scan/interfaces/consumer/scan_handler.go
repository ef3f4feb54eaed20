package consumer

import (
	"context"
	"log/slog"

	"github.com/wyfcoding/atlasvision/internal/scan/application"
	"github.com/wyfcoding/atlasvision/internal/scan/domain"
	"github.com/wyfcoding/atlasvision/pkg/messagequeue"
)

// ScanEventHandler 消费扫描创建事件并驱动处理管线
type ScanEventHandler struct {
	processor *application.ScanProcessor
	topic     string
	logger    *slog.Logger
}

// NewScanEventHandler 创建消费处理器,topic 为空时使用默认主题。
func NewScanEventHandler(processor *application.ScanProcessor, topic string, logger *slog.Logger) *ScanEventHandler {
	if topic == "" {
		topic = domain.ScanCreatedEventType
	}
	return &ScanEventHandler{
		processor: processor,
		topic:     topic,
		logger:    logger,
	}
}

// Handle 处理一条扫描事件消息。处理失败只记录日志,消息不会重投。
func (h *ScanEventHandler) Handle(ctx context.Context, msg *messagequeue.Message) error {
	switch msg.Topic {
	case h.topic:
		var payload struct {
			ScanID string `json:"scan_id"`
		}
		if err := msg.UnmarshalPayload(&payload); err != nil {
			h.logger.ErrorContext(ctx, "failed to unmarshal scan created event", "error", err)
			return err
		}
		if payload.ScanID == "" {
			h.logger.WarnContext(ctx, "scan created event missing scan_id", "offset", msg.Offset)
			return nil
		}
		return h.processor.Process(ctx, payload.ScanID)
	default:
		h.logger.WarnContext(ctx, "unknown scan event topic", "topic", msg.Topic)
		return nil
	}
}
