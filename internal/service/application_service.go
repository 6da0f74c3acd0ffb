package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"

	"applications-server/internal/cache"
	"applications-server/internal/common"
	"applications-server/internal/config"
	"applications-server/internal/consts"
	"applications-server/internal/dto"
	"applications-server/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Create 编排一次创建：主写必须成功，审计与事件发布都是旁路，
// 各自失败只记录日志，kafka_status 把发布结果透传给调用方。
func (s *ApplicationService) Create(ctx context.Context, req dto.ApplicationCreateRequest, userID uuid.UUID) (*dto.ApplicationCreateResponse, error) {
	// 请求在主写之前被取消时，不产生任何存储或事件副作用
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	description := ""
	if req.Description != nil {
		description = *req.Description
	}

	created, err := s.applicationStore.Create(ctx, req.Title, description, userID)
	if err != nil {
		// 主写失败原样向上抛，这是整个编排里唯一允许失败的环节
		return nil, err
	}
	log.Printf("申请创建成功: id=%d user_id=%s", created.ID, userID)

	// 主写提交后，取消不再中断旁路步骤
	sideCtx := context.WithoutCancel(ctx)
	auditCall(sideCtx, s.recorder, consts.EndpointCreateApplication, &userID)

	message := map[string]any{
		"id":          created.ID,
		"title":       created.Title,
		"description": created.Description,
		"created_at":  created.CreatedAt,
		"user_id":     userID.String(),
	}

	kafkaStatus := false
	key := strconv.FormatUint(uint64(created.ID), 10)
	if err := s.producer.Publish(sideCtx, config.Get().Kafka.Topic, key, message); err != nil {
		log.Printf("发送 Kafka 消息失败: %v", err)
	} else {
		kafkaStatus = true
	}

	return &dto.ApplicationCreateResponse{
		ID:          created.ID,
		Title:       created.Title,
		Description: created.Description,
		CreatedAt:   created.CreatedAt,
		KafkaStatus: kafkaStatus,
	}, nil
}

func (s *ApplicationService) GetByID(ctx context.Context, id uint) (*dto.ApplicationResponse, error) {
	application, err := s.applicationStore.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("申请不存在: id=%d", id)
			return nil, common.NewNotFoundError("Application not found")
		}
		return nil, err
	}

	auditCall(ctx, s.recorder, consts.EndpointGetApplicationByID, nil)
	resp := toApplicationResponse(application)
	return &resp, nil
}

func (s *ApplicationService) GetByTitle(ctx context.Context, title string) ([]dto.ApplicationResponse, error) {
	cacheKey := cache.Key("applications", "title", title)
	if cached, ok := fromCache(ctx, cacheKey); ok {
		auditCall(ctx, s.recorder, consts.EndpointGetApplicationByTitle, nil)
		return cached, nil
	}

	applications, err := s.applicationStore.FindByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	// 空结果按请求级失败处理（沿用既有 API 行为），不返回空列表
	if len(applications) == 0 {
		log.Printf("未找到标题为 %q 的申请", title)
		return nil, common.NewNotFoundError(fmt.Sprintf("No applications found titled %s", title))
	}

	auditCall(ctx, s.recorder, consts.EndpointGetApplicationByTitle, nil)
	responses := toApplicationResponses(applications)
	toCache(ctx, cacheKey, responses)
	return responses, nil
}

func (s *ApplicationService) List(ctx context.Context, page int, size int) ([]dto.ApplicationResponse, error) {
	cacheKey := cache.Key("applications", "list", strconv.Itoa(page), strconv.Itoa(size))
	if cached, ok := fromCache(ctx, cacheKey); ok {
		auditCall(ctx, s.recorder, consts.EndpointGetAllApplications, nil)
		return cached, nil
	}

	applications, err := s.applicationStore.List(ctx, page, size)
	if err != nil {
		return nil, err
	}
	if len(applications) == 0 {
		log.Printf("申请列表为空: page=%d size=%d", page, size)
		return nil, common.NewNotFoundError("No applications found")
	}

	auditCall(ctx, s.recorder, consts.EndpointGetAllApplications, nil)
	responses := toApplicationResponses(applications)
	toCache(ctx, cacheKey, responses)
	return responses, nil
}

// Delete 中 NotFound 同时覆盖"不存在"和"不是你的"两种情况，
// 响应上不区分，避免跨用户探测资源是否存在。
func (s *ApplicationService) Delete(ctx context.Context, id uint, userID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.applicationStore.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("申请删除被拒: id=%d user_id=%s", id, userID)
			return common.NewNotFoundError("Application not found")
		}
		return err
	}
	log.Printf("申请已删除: id=%d user_id=%s", id, userID)

	auditCall(context.WithoutCancel(ctx), s.recorder, consts.EndpointDeleteApplication, &userID)
	return nil
}

func (s *ApplicationService) Edit(ctx context.Context, id uint, userID uuid.UUID, newTitle *string, newDescription *string) (*dto.ApplicationResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	updated, err := s.applicationStore.Patch(ctx, id, userID, newTitle, newDescription)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("申请编辑被拒: id=%d user_id=%s", id, userID)
			return nil, common.NewNotFoundError(fmt.Sprintf("No application found for user: %s", userID))
		}
		return nil, err
	}

	auditCall(context.WithoutCancel(ctx), s.recorder, consts.EndpointEditApplication, &userID)
	resp := toApplicationResponse(updated)
	return &resp, nil
}

func toApplicationResponse(application *model.Application) dto.ApplicationResponse {
	return dto.ApplicationResponse{
		ID:          application.ID,
		Title:       application.Title,
		Description: application.Description,
		CreatedAt:   application.CreatedAt,
	}
}

func toApplicationResponses(applications []model.Application) []dto.ApplicationResponse {
	responses := make([]dto.ApplicationResponse, 0, len(applications))
	for i := range applications {
		responses = append(responses, toApplicationResponse(&applications[i]))
	}
	return responses
}

// 只缓存非空查询结果；空结果走 404 路径，不进缓存。
func fromCache(ctx context.Context, key string) ([]dto.ApplicationResponse, bool) {
	raw, ok := cache.GetBytes(ctx, key)
	if !ok {
		return nil, false
	}
	var responses []dto.ApplicationResponse
	if err := json.Unmarshal(raw, &responses); err != nil || len(responses) == 0 {
		return nil, false
	}
	return responses, true
}

func toCache(ctx context.Context, key string, responses []dto.ApplicationResponse) {
	raw, err := json.Marshal(responses)
	if err != nil {
		return
	}
	cache.SetBytes(ctx, key, raw, cache.ReadTTL)
}
