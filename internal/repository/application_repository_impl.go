package repository

import (
	"context"

	"applications-server/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApplicationRepository struct {
	db *gorm.DB
}

func (r *ApplicationRepository) Create(ctx context.Context, title string, description string, userID uuid.UUID) (*model.Application, error) {
	application := &model.Application{
		Title:       title,
		Description: description,
		UserID:      userID,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(application).Error
	})
	if err != nil {
		return nil, err
	}
	return application, nil
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id uint) (*model.Application, error) {
	var application model.Application
	if err := r.db.WithContext(ctx).First(&application, id).Error; err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *ApplicationRepository) FindByTitle(ctx context.Context, title string) ([]model.Application, error) {
	var applications []model.Application
	if err := r.db.WithContext(ctx).Where("title = ?", title).Order("id").Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}

func (r *ApplicationRepository) List(ctx context.Context, page int, size int) ([]model.Application, error) {
	offset := (page - 1) * size
	var applications []model.Application
	if err := r.db.WithContext(ctx).Order("id").Offset(offset).Limit(size).Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}

// Delete 的查找条件同时带上 user_id，避免向非所有者暴露资源是否存在。
func (r *ApplicationRepository) Delete(ctx context.Context, id uint, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var application model.Application
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&application).Error; err != nil {
			return err
		}
		return tx.Delete(&application).Error
	})
}

func (r *ApplicationRepository) Patch(ctx context.Context, id uint, userID uuid.UUID, newTitle *string, newDescription *string) (*model.Application, error) {
	var application model.Application
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&application).Error; err != nil {
			return err
		}

		updates := map[string]any{}
		if newTitle != nil {
			updates["title"] = *newTitle
		}
		if newDescription != nil {
			updates["description"] = *newDescription
		}
		if len(updates) == 0 {
			// 两个字段都未提供时行保持原样
			return nil
		}

		if err := tx.Model(&model.Application{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		// 更新后重读，返回数据库中的最终状态
		return tx.First(&application, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &application, nil
}
