package model

import (
	"time"

	"github.com/google/uuid"
)

type Application struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null;index"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at" gorm:"not null"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
}
