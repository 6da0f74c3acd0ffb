package testutils

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// PublishedMessage 记录 FakeProducer 收到的一条消息。
type PublishedMessage struct {
	Topic string
	Key   string
	Value map[string]any
}

// FakeProducer 实现 broker.EventProducer，可按需强制失败。
type FakeProducer struct {
	mu       sync.Mutex
	Fail     bool
	Messages []PublishedMessage
}

func (p *FakeProducer) Publish(_ context.Context, topic string, key string, value map[string]any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Fail {
		return errors.New("forced publish failure")
	}
	p.Messages = append(p.Messages, PublishedMessage{Topic: topic, Key: key, Value: value})
	return nil
}

// RecordedCall 记录 FakeRecorder 收到的一条审计调用。
type RecordedCall struct {
	Endpoint string
	UserID   *uuid.UUID
}

// FakeRecorder 实现 auditlog.EndpointCallRecorder，可按需强制失败。
type FakeRecorder struct {
	mu    sync.Mutex
	Fail  bool
	Calls []RecordedCall
}

func (r *FakeRecorder) LogEndpointCall(_ context.Context, endpoint string, userID *uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail {
		return errors.New("forced audit failure")
	}
	r.Calls = append(r.Calls, RecordedCall{Endpoint: endpoint, UserID: userID})
	return nil
}
