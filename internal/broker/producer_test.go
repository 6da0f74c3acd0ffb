package broker

import (
	"context"
	"errors"
	"testing"
	"time"
)

// 测试内容：验证 Start 之前调用 Publish 返回 ErrProducerStopped。
func TestKafkaProducer_PublishBeforeStart(t *testing.T) {
	producer := NewKafkaProducer([]string{"127.0.0.1:9092"})

	err := producer.Publish(context.Background(), "applications", "1", map[string]any{"id": 1})
	if !errors.Is(err, ErrProducerStopped) {
		t.Fatalf("期望 ErrProducerStopped，实际为 %v", err)
	}
}

// 测试内容：验证 Close 是幂等的。
func TestKafkaProducer_CloseIdempotent(t *testing.T) {
	producer := NewKafkaProducer([]string{"127.0.0.1:9092"})

	if err := producer.Close(); err != nil {
		t.Fatalf("Close 错误: %v", err)
	}
	if err := producer.Close(); err != nil {
		t.Fatalf("重复 Close 错误: %v", err)
	}
}

// 测试内容：验证 Start 在 context 取消后立即放弃重试。
func TestKafkaProducer_StartCancelled(t *testing.T) {
	// 不可路由地址，拨号必然失败
	producer := NewKafkaProducer([]string{"127.0.0.1:1"})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := producer.Start(ctx)
	if err == nil {
		t.Fatalf("期望 Start 失败")
	}
	if time.Since(start) > 10*time.Second {
		t.Fatalf("期望取消后快速返回")
	}
}

// 测试内容：验证事件载荷为缩进 JSON 且键按字典序排列。
func TestEncodePayload_SortedKeys(t *testing.T) {
	payload, err := encodePayload(map[string]any{
		"user_id": "u",
		"id":      1,
		"title":   "t",
	})
	if err != nil {
		t.Fatalf("encodePayload 错误: %v", err)
	}

	expected := "{\n    \"id\": 1,\n    \"title\": \"t\",\n    \"user_id\": \"u\"\n}"
	if string(payload) != expected {
		t.Fatalf("期望 %q，实际为 %q", expected, string(payload))
	}
}
