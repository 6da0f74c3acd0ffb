package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

// ErrProducerStopped 在 Start 之前或 Close 之后调用 Publish 时返回。
var ErrProducerStopped = errors.New("kafka producer stopped")

const (
	startMaxAttempts = 10
	startBackoff     = 3 * time.Second
)

// EventProducer 是服务层看到的发布接口。
// 发布失败由调用方自行吞掉，这里不做重试也不做缓冲。
type EventProducer interface {
	Publish(ctx context.Context, topic string, key string, value map[string]any) error
}

type KafkaProducer struct {
	brokers []string
	writer  *kafka.Writer
}

func NewKafkaProducer(brokers []string) *KafkaProducer {
	return &KafkaProducer{brokers: brokers}
}

// Start 在对外提供服务之前确认 broker 可达，
// 最多尝试 startMaxAttempts 次，固定间隔退避。
func (p *KafkaProducer) Start(ctx context.Context) error {
	var lastErr error
	for attempt := 1; attempt <= startMaxAttempts; attempt++ {
		conn, err := kafka.DialContext(ctx, "tcp", p.brokers[0])
		if err == nil {
			_ = conn.Close()
			p.writer = &kafka.Writer{
				Addr:                   kafka.TCP(p.brokers...),
				Balancer:               &kafka.Hash{},
				AllowAutoTopicCreation: true,
			}
			log.Printf("✅ Kafka 已连接: %v", p.brokers)
			return nil
		}
		lastErr = err
		log.Printf("⚠️ Kafka 连接失败 (%d/%d): %v", attempt, startMaxAttempts, err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(startBackoff):
		}
	}
	return fmt.Errorf("kafka 连接失败: %w", lastErr)
}

func (p *KafkaProducer) Publish(ctx context.Context, topic string, key string, value map[string]any) error {
	if p.writer == nil {
		return ErrProducerStopped
	}

	payload, err := encodePayload(value)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: payload,
	})
}

func (p *KafkaProducer) Close() error {
	if p.writer == nil {
		return nil
	}
	writer := p.writer
	p.writer = nil
	return writer.Close()
}

// encodePayload 序列化事件消息。map 经 encoding/json 编码后键按字典序排列，
// 与下游消费者约定的 sorted-keys JSON 一致。
func encodePayload(value map[string]any) ([]byte, error) {
	return json.MarshalIndent(value, "", "    ")
}
