package service

import (
	"context"
	"log"

	"applications-server/internal/auditlog"
	"applications-server/internal/broker"
	"applications-server/internal/repository"

	"github.com/google/uuid"
)

type ApplicationService struct {
	applicationStore repository.ApplicationStore
	producer         broker.EventProducer
	recorder         auditlog.EndpointCallRecorder
}

type ImageService struct {
	imageStore repository.ImageStore
	producer   broker.EventProducer
	recorder   auditlog.EndpointCallRecorder
}

func NewApplicationService(
	applicationStore repository.ApplicationStore,
	producer broker.EventProducer,
	recorder auditlog.EndpointCallRecorder,
) *ApplicationService {
	return &ApplicationService{
		applicationStore: applicationStore,
		producer:         producer,
		recorder:         recorder,
	}
}

func NewImageService(
	imageStore repository.ImageStore,
	producer broker.EventProducer,
	recorder auditlog.EndpointCallRecorder,
) *ImageService {
	return &ImageService{
		imageStore: imageStore,
		producer:   producer,
		recorder:   recorder,
	}
}

// auditCall 旁路写审计日志：失败只记录，绝不向上传播。
// recorder 为 nil 时（审计库降级）直接跳过。
func auditCall(ctx context.Context, recorder auditlog.EndpointCallRecorder, endpoint string, userID *uuid.UUID) {
	if recorder == nil {
		return
	}
	if err := recorder.LogEndpointCall(ctx, endpoint, userID); err != nil {
		log.Printf("写入 MongoDB 审计日志失败: %v", err)
	}
}
