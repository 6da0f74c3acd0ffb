package repository

import (
	"context"

	"applications-server/internal/model"

	"github.com/google/uuid"
)

type ApplicationStore interface {
	Create(ctx context.Context, title string, description string, userID uuid.UUID) (*model.Application, error)
	FindByID(ctx context.Context, id uint) (*model.Application, error)
	FindByTitle(ctx context.Context, title string) ([]model.Application, error)
	List(ctx context.Context, page int, size int) ([]model.Application, error)
	Delete(ctx context.Context, id uint, userID uuid.UUID) error
	Patch(ctx context.Context, id uint, userID uuid.UUID, newTitle *string, newDescription *string) (*model.Application, error)
}
