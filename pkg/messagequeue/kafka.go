// Package messagequeue 提供 Kafka producer/consumer 通用封装
package messagequeue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/wyfcoding/atlasvision/pkg/logging"
)

// EventPublisher 事件发布者接口，应用层通过它解耦具体的消息中间件
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, event any) error
}

// Config Kafka 配置
type Config struct {
	Brokers        []string
	GroupID        string
	SessionTimeout int
	MaxRetries     int
	RetryBackoff   int
}

// Producer Kafka 生产者
type Producer struct {
	writer *kafka.Writer
	config Config
}

// NewProducer 创建 Kafka 生产者
func NewProducer(cfg Config) (*Producer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are required")
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		AllowAutoTopicCreation: true,
		Compression:            kafka.Gzip,
		RequiredAcks:           kafka.RequireAll, // 等待所有副本确认
		MaxAttempts:            cfg.MaxRetries,
		WriteBackoffMin:        time.Duration(cfg.RetryBackoff) * time.Millisecond,
		WriteBackoffMax:        time.Duration(cfg.RetryBackoff*10) * time.Millisecond,
	}

	logging.Info(context.Background(), "Kafka producer created successfully", "brokers", cfg.Brokers)
	return &Producer{
		writer: writer,
		config: cfg,
	}, nil
}

// Publish 发送单条消息，value 会被序列化为 JSON
func (p *Producer) Publish(ctx context.Context, topic string, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		logging.Error(ctx, "Failed to send Kafka message",
			"topic", topic,
			"key", key,
			"error", err,
		)
		return err
	}

	logging.Debug(ctx, "Kafka message sent",
		"topic", topic,
		"key", key,
	)
	return nil
}

// Close 关闭生产者
func (p *Producer) Close() error {
	return p.writer.Close()
}

// Consumer Kafka 消费者
type Consumer struct {
	reader *kafka.Reader
	config Config
}

// NewConsumer 创建 Kafka 消费者，偏移量按消费组自动提交
func NewConsumer(cfg Config, topic string) (*Consumer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are required")
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		Topic:          topic,
		GroupID:        cfg.GroupID,
		SessionTimeout: time.Duration(cfg.SessionTimeout) * time.Second,
		CommitInterval: time.Second,
		StartOffset:    kafka.LastOffset,
		MaxBytes:       10e6, // 10MB
	})

	logging.Info(context.Background(), "Kafka consumer created successfully",
		"brokers", cfg.Brokers,
		"topic", topic,
		"group_id", cfg.GroupID,
	)
	return &Consumer{
		reader: reader,
		config: cfg,
	}, nil
}

// ReadMessage 读取单条消息，阻塞直到有消息或 ctx 取消
func (c *Consumer) ReadMessage(ctx context.Context) (*Message, error) {
	msg, err := c.reader.ReadMessage(ctx)
	if err != nil {
		return nil, err
	}

	return &Message{
		Topic:     msg.Topic,
		Partition: msg.Partition,
		Offset:    msg.Offset,
		Key:       string(msg.Key),
		Value:     msg.Value,
		Time:      msg.Time,
	}, nil
}

// Close 关闭消费者
func (c *Consumer) Close() error {
	return c.reader.Close()
}

// Message Kafka 消息结构
type Message struct {
	Topic     string
	Partition int
	Offset    int64
	Key       string
	Value     []byte
	Time      time.Time
}

// UnmarshalPayload 将消息值解析为 JSON
func (m *Message) UnmarshalPayload(dest any) error {
	return json.Unmarshal(m.Value, dest)
}
