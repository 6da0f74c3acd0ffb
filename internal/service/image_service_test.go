package service

import (
	"context"
	"testing"

	"applications-server/internal/common"
	"applications-server/internal/consts"
	"applications-server/internal/repository"
	"applications-server/internal/testutils"

	"github.com/google/uuid"
)

func newTestImageService(t *testing.T) (*ImageService, *testutils.FakeProducer, *testutils.FakeRecorder) {
	t.Helper()
	testutils.SetupConfig(t)
	gdb := testutils.SetupDB(t)

	producer := &testutils.FakeProducer{}
	recorder := &testutils.FakeRecorder{}
	return NewImageService(repository.NewImageRepository(gdb), producer, recorder), producer, recorder
}

// 测试内容：验证上传成功时 kafka_status 为 true，消息与审计各记录一条。
func TestImageService_Upload(t *testing.T) {
	svc, producer, recorder := newTestImageService(t)
	owner := uuid.New()

	resp, err := svc.Upload(context.Background(), []byte("png-bytes"), "pic.png", owner)
	if err != nil {
		t.Fatalf("Upload 错误: %v", err)
	}
	if !resp.KafkaStatus {
		t.Fatalf("期望 kafka_status=true")
	}
	if resp.Filename != "pic.png" {
		t.Fatalf("期望 filename pic.png，实际为 %q", resp.Filename)
	}

	if len(producer.Messages) != 1 {
		t.Fatalf("期望发布 1 条消息，实际为 %d", len(producer.Messages))
	}
	if producer.Messages[0].Key != "1" {
		t.Fatalf("期望 key 为实体 id，实际为 %q", producer.Messages[0].Key)
	}
	if producer.Messages[0].Value["filename"] != "pic.png" {
		t.Fatalf("非预期消息: %+v", producer.Messages[0].Value)
	}

	if len(recorder.Calls) != 1 || recorder.Calls[0].Endpoint != consts.EndpointUploadImage {
		t.Fatalf("非预期审计记录: %+v", recorder.Calls)
	}
}

// 测试内容：验证 Kafka 发布失败时上传仍成功，仅 kafka_status 翻成 false。
func TestImageService_UploadKafkaDown(t *testing.T) {
	svc, producer, _ := newTestImageService(t)
	producer.Fail = true

	resp, err := svc.Upload(context.Background(), []byte("x"), "pic.png", uuid.New())
	if err != nil {
		t.Fatalf("期望上传成功，实际为 %v", err)
	}
	if resp.KafkaStatus {
		t.Fatalf("期望 kafka_status=false")
	}
	if _, err := svc.GetByID(context.Background(), resp.ID); err != nil {
		t.Fatalf("期望行已持久化: %v", err)
	}
}

// 测试内容：验证重复文件名映射为 conflict 错误。
func TestImageService_UploadDuplicate(t *testing.T) {
	svc, _, _ := newTestImageService(t)

	if _, err := svc.Upload(context.Background(), []byte("a"), "dup.png", uuid.New()); err != nil {
		t.Fatalf("Upload 错误: %v", err)
	}

	_, err := svc.Upload(context.Background(), []byte("b"), "dup.png", uuid.New())
	serviceErr, ok := common.AsServiceError(err)
	if !ok {
		t.Fatalf("期望 ServiceError，实际为 %v", err)
	}
	if serviceErr.Code != common.ErrorCodeConflict {
		t.Fatalf("期望 conflict，实际为 %s", serviceErr.Code)
	}
	if serviceErr.Message != "Image with name dup.png already exists" {
		t.Fatalf("非预期消息: %q", serviceErr.Message)
	}
}

// 测试内容：验证删除对非所有者与不存在的 id 返回同样的 NotFound。
func TestImageService_Delete(t *testing.T) {
	svc, _, _ := newTestImageService(t)
	owner := uuid.New()

	resp, err := svc.Upload(context.Background(), []byte("x"), "pic.png", owner)
	if err != nil {
		t.Fatalf("Upload 错误: %v", err)
	}

	err = svc.Delete(context.Background(), resp.ID, uuid.New())
	mustNotFound(t, err, "Image not found or access denied")

	if err := svc.Delete(context.Background(), resp.ID, owner); err != nil {
		t.Fatalf("所有者删除错误: %v", err)
	}

	_, err = svc.GetByID(context.Background(), resp.ID)
	mustNotFound(t, err, "Image not found or access denied")
}
