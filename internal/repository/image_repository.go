package repository

import (
	"context"

	"applications-server/internal/model"

	"github.com/google/uuid"
)

type ImageStore interface {
	Create(ctx context.Context, content []byte, filename string, userID uuid.UUID) (*model.Image, error)
	FindByID(ctx context.Context, id uint) (*model.Image, error)
	Delete(ctx context.Context, id uint, userID uuid.UUID) error
}
