package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	"applications-server/internal/common"
	"applications-server/internal/config"
	"applications-server/internal/consts"
	"applications-server/internal/dto"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Upload 编排一次图片上传：文件落盘 + 行插入（主写）必须成功，
// 审计与事件发布旁路，kafka_status 透传发布结果。
func (s *ImageService) Upload(ctx context.Context, content []byte, filename string, userID uuid.UUID) (*dto.ImageCreateResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	uploaded, err := s.imageStore.Create(ctx, content, filename, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, common.NewConflictError(fmt.Sprintf("Image with name %s already exists", filename))
		}
		return nil, err
	}

	sideCtx := context.WithoutCancel(ctx)
	auditCall(sideCtx, s.recorder, consts.EndpointUploadImage, &userID)

	message := map[string]any{
		"id":          uploaded.ID,
		"filename":    uploaded.Filename,
		"size":        uploaded.Size,
		"upload_date": uploaded.UploadDate,
		"user_id":     userID.String(),
	}

	kafkaStatus := false
	key := strconv.FormatUint(uint64(uploaded.ID), 10)
	if err := s.producer.Publish(sideCtx, config.Get().Kafka.Topic, key, message); err != nil {
		log.Printf("发送 Kafka 消息失败: %v", err)
	} else {
		kafkaStatus = true
	}

	return &dto.ImageCreateResponse{
		ID:          uploaded.ID,
		Filename:    uploaded.Filename,
		Size:        uploaded.Size,
		UploadDate:  uploaded.UploadDate,
		KafkaStatus: kafkaStatus,
	}, nil
}

func (s *ImageService) GetByID(ctx context.Context, id uint) (*dto.ImageResponse, error) {
	image, err := s.imageStore.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("图片不存在: id=%d", id)
			return nil, common.NewNotFoundError("Image not found or access denied")
		}
		return nil, err
	}

	auditCall(ctx, s.recorder, consts.EndpointGetImage, nil)
	return &dto.ImageResponse{
		ID:         image.ID,
		Filename:   image.Filename,
		Size:       image.Size,
		UploadDate: image.UploadDate,
	}, nil
}

// Delete 的 NotFound 同时覆盖"不存在"和"不是你的"，响应上不区分。
func (s *ImageService) Delete(ctx context.Context, id uint, userID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.imageStore.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("图片删除被拒: id=%d user_id=%s", id, userID)
			return common.NewNotFoundError("Image not found or access denied")
		}
		return err
	}
	log.Printf("图片已删除: id=%d user_id=%s", id, userID)

	auditCall(context.WithoutCancel(ctx), s.recorder, consts.EndpointDeleteImage, &userID)
	return nil
}
