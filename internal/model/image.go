package model

import (
	"time"

	"github.com/google/uuid"
)

type Image struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Filename   string    `json:"filename" gorm:"size:255;not null;unique"`
	UploadDate time.Time `json:"upload_date" gorm:"not null"`
	Size       float64   `json:"size" gorm:"not null"` // 文件大小 (MB)
	UserID     uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
}

// TableName 保持与历史库表一致。
func (Image) TableName() string {
	return "image_upload"
}
