package service

import (
	"context"
	"testing"

	"applications-server/internal/common"
	"applications-server/internal/config"
	"applications-server/internal/consts"
	"applications-server/internal/dto"
	"applications-server/internal/repository"
	"applications-server/internal/testutils"

	"github.com/google/uuid"
)

func newTestApplicationService(t *testing.T) (*ApplicationService, *testutils.FakeProducer, *testutils.FakeRecorder) {
	t.Helper()
	testutils.SetupConfig(t)
	gdb := testutils.SetupDB(t)

	producer := &testutils.FakeProducer{}
	recorder := &testutils.FakeRecorder{}
	return NewApplicationService(repository.NewApplicationRepository(gdb), producer, recorder), producer, recorder
}

func mustNotFound(t *testing.T, err error, message string) {
	t.Helper()
	serviceErr, ok := common.AsServiceError(err)
	if !ok {
		t.Fatalf("期望 ServiceError，实际为 %v", err)
	}
	if serviceErr.Code != common.ErrorCodeNotFound {
		t.Fatalf("期望 not_found，实际为 %s", serviceErr.Code)
	}
	if serviceErr.Message != message {
		t.Fatalf("期望消息 %q，实际为 %q", message, serviceErr.Message)
	}
}

// 测试内容：验证创建成功时 kafka_status 为 true，消息与审计各记录一条。
func TestApplicationService_Create(t *testing.T) {
	svc, producer, recorder := newTestApplicationService(t)
	owner := uuid.New()

	description := "a demo app"
	resp, err := svc.Create(context.Background(), dto.ApplicationCreateRequest{
		Title:       "demo",
		Description: &description,
	}, owner)
	if err != nil {
		t.Fatalf("Create 错误: %v", err)
	}
	if !resp.KafkaStatus {
		t.Fatalf("期望 kafka_status=true")
	}
	if resp.Title != "demo" || resp.Description != "a demo app" {
		t.Fatalf("非预期响应: %+v", resp)
	}

	if len(producer.Messages) != 1 {
		t.Fatalf("期望发布 1 条消息，实际为 %d", len(producer.Messages))
	}
	msg := producer.Messages[0]
	if msg.Topic != config.Get().Kafka.Topic {
		t.Fatalf("期望 topic %q，实际为 %q", config.Get().Kafka.Topic, msg.Topic)
	}
	if msg.Key != "1" {
		t.Fatalf("期望 key 为实体 id，实际为 %q", msg.Key)
	}
	if msg.Value["user_id"] != owner.String() {
		t.Fatalf("期望消息携带 user_id，实际为 %v", msg.Value["user_id"])
	}

	if len(recorder.Calls) != 1 {
		t.Fatalf("期望 1 条审计记录，实际为 %d", len(recorder.Calls))
	}
	if recorder.Calls[0].Endpoint != consts.EndpointCreateApplication {
		t.Fatalf("期望端点 %q，实际为 %q", consts.EndpointCreateApplication, recorder.Calls[0].Endpoint)
	}
	if recorder.Calls[0].UserID == nil || *recorder.Calls[0].UserID != owner {
		t.Fatalf("期望审计记录携带用户 id")
	}
}

// 测试内容：验证 Kafka 发布失败时创建仍成功，仅 kafka_status 翻成 false。
func TestApplicationService_CreateKafkaDown(t *testing.T) {
	svc, producer, _ := newTestApplicationService(t)
	producer.Fail = true

	resp, err := svc.Create(context.Background(), dto.ApplicationCreateRequest{Title: "demo"}, uuid.New())
	if err != nil {
		t.Fatalf("期望创建成功，实际为 %v", err)
	}
	if resp.KafkaStatus {
		t.Fatalf("期望 kafka_status=false")
	}

	// 行确实写入了
	if _, err := svc.GetByID(context.Background(), resp.ID); err != nil {
		t.Fatalf("期望行已持久化: %v", err)
	}
}

// 测试内容：验证审计写入失败被吞掉，不影响创建结果。
func TestApplicationService_CreateAuditDown(t *testing.T) {
	svc, _, recorder := newTestApplicationService(t)
	recorder.Fail = true

	resp, err := svc.Create(context.Background(), dto.ApplicationCreateRequest{Title: "demo"}, uuid.New())
	if err != nil {
		t.Fatalf("期望创建成功，实际为 %v", err)
	}
	if !resp.KafkaStatus {
		t.Fatalf("期望 kafka_status=true")
	}
	if len(recorder.Calls) != 0 {
		t.Fatalf("期望无成功审计记录，实际为 %d", len(recorder.Calls))
	}
}

// 测试内容：验证主写之前请求被取消时不产生任何副作用。
func TestApplicationService_CreateCancelled(t *testing.T) {
	svc, producer, recorder := newTestApplicationService(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Create(ctx, dto.ApplicationCreateRequest{Title: "demo"}, uuid.New()); err == nil {
		t.Fatalf("期望取消错误")
	}
	if len(producer.Messages) != 0 || len(recorder.Calls) != 0 {
		t.Fatalf("期望无副作用，实际为 %d 条消息 %d 条审计", len(producer.Messages), len(recorder.Calls))
	}
	if _, err := svc.List(context.Background(), 1, 10); err == nil {
		t.Fatalf("期望列表为空")
	}
}

// 测试内容：验证空列表按 NotFound 上报而非返回空切片。
func TestApplicationService_ListEmpty(t *testing.T) {
	svc, _, _ := newTestApplicationService(t)

	_, err := svc.List(context.Background(), 1, 10)
	mustNotFound(t, err, "No applications found")
}

// 测试内容：验证按标题查询命中与未命中的行为。
func TestApplicationService_GetByTitle(t *testing.T) {
	svc, _, recorder := newTestApplicationService(t)
	owner := uuid.New()

	if _, err := svc.Create(context.Background(), dto.ApplicationCreateRequest{Title: "alpha"}, owner); err != nil {
		t.Fatalf("Create 错误: %v", err)
	}

	found, err := svc.GetByTitle(context.Background(), "alpha")
	if err != nil {
		t.Fatalf("GetByTitle 错误: %v", err)
	}
	if len(found) != 1 || found[0].Title != "alpha" {
		t.Fatalf("非预期结果: %+v", found)
	}

	// 公开读接口审计时不带用户 id
	last := recorder.Calls[len(recorder.Calls)-1]
	if last.Endpoint != consts.EndpointGetApplicationByTitle || last.UserID != nil {
		t.Fatalf("非预期审计记录: %+v", last)
	}

	_, err = svc.GetByTitle(context.Background(), "missing")
	mustNotFound(t, err, "No applications found titled missing")
}

// 测试内容：验证 GetByID 未命中时返回 NotFound。
func TestApplicationService_GetByIDNotFound(t *testing.T) {
	svc, _, _ := newTestApplicationService(t)

	_, err := svc.GetByID(context.Background(), 42)
	mustNotFound(t, err, "Application not found")
}

// 测试内容：验证删除对非所有者与不存在的 id 返回同样的 NotFound。
func TestApplicationService_Delete(t *testing.T) {
	svc, _, _ := newTestApplicationService(t)
	owner := uuid.New()

	resp, err := svc.Create(context.Background(), dto.ApplicationCreateRequest{Title: "demo"}, owner)
	if err != nil {
		t.Fatalf("Create 错误: %v", err)
	}

	err = svc.Delete(context.Background(), resp.ID, uuid.New())
	mustNotFound(t, err, "Application not found")

	if err := svc.Delete(context.Background(), resp.ID, owner); err != nil {
		t.Fatalf("所有者删除错误: %v", err)
	}

	err = svc.Delete(context.Background(), resp.ID, owner)
	mustNotFound(t, err, "Application not found")
}

// 测试内容：验证编辑只改提供的字段，非所有者编辑返回 NotFound。
func TestApplicationService_Edit(t *testing.T) {
	svc, _, _ := newTestApplicationService(t)
	owner := uuid.New()

	description := "old"
	created, err := svc.Create(context.Background(), dto.ApplicationCreateRequest{
		Title:       "old",
		Description: &description,
	}, owner)
	if err != nil {
		t.Fatalf("Create 错误: %v", err)
	}

	newTitle := "new"
	updated, err := svc.Edit(context.Background(), created.ID, owner, &newTitle, nil)
	if err != nil {
		t.Fatalf("Edit 错误: %v", err)
	}
	if updated.Title != "new" || updated.Description != "old" {
		t.Fatalf("非预期结果: %+v", updated)
	}

	stranger := uuid.New()
	_, err = svc.Edit(context.Background(), created.ID, stranger, &newTitle, nil)
	mustNotFound(t, err, "No application found for user: "+stranger.String())
}
