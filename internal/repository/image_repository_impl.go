package repository

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"applications-server/internal/config"
	"applications-server/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const bytesPerMB = 1024 * 1024

type ImageRepository struct {
	db *gorm.DB
}

func uploadRoot() string {
	root := config.Get().Upload.Path
	if root == "" {
		root = "uploads/images"
	}
	return root
}

// Create 先落盘再写库。入库失败时已写入的文件不回收，
// 孤儿文件是可接受的不一致，由运维工具清理。
func (r *ImageRepository) Create(ctx context.Context, content []byte, filename string, userID uuid.UUID) (*model.Image, error) {
	root := uploadRoot()
	if err := os.MkdirAll(root, 0755); err != nil {
		log.Printf("❌ 无法创建上传目录 '%s': %v", root, err)
		return nil, err
	}

	dst := filepath.Join(root, filename)
	if err := os.WriteFile(dst, content, 0644); err != nil {
		log.Printf("❌ 图片文件写入失败: %v", err)
		return nil, err
	}

	image := &model.Image{
		Filename:   filename,
		UploadDate: time.Now().UTC(),
		Size:       float64(len(content)) / bytesPerMB,
		UserID:     userID,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(image).Error
	})
	if err != nil {
		log.Printf("图片入库失败（文件名 %s 可能已存在）: %v", filename, err)
		return nil, err
	}

	log.Printf("图片上传成功: user_id=%s size=%.2fMB path=%s", userID, image.Size, dst)
	return image, nil
}

func (r *ImageRepository) FindByID(ctx context.Context, id uint) (*model.Image, error) {
	var image model.Image
	if err := r.db.WithContext(ctx).First(&image, id).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

// Delete 先按 id+user_id 查找，行不存在立即返回 ErrRecordNotFound，
// 不会拿空行去拼文件路径。文件删除失败只记录，不阻塞行删除。
func (r *ImageRepository) Delete(ctx context.Context, id uint, userID uuid.UUID) error {
	var image model.Image
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&image).Error; err != nil {
		return err
	}

	path := filepath.Join(uploadRoot(), image.Filename)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("图片文件删除失败: image_id=%d err=%v", id, err)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Delete(&image).Error
	})
}
