package repository

import (
	"gorm.io/gorm"
)

func NewApplicationRepository(db *gorm.DB) ApplicationStore {
	return &ApplicationRepository{db: db}
}

func NewImageRepository(db *gorm.DB) ImageStore {
	return &ImageRepository{db: db}
}
