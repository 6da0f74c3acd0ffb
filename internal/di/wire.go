//go:build wireinject
// +build wireinject

package di

import (
	"applications-server/internal/auditlog"
	"applications-server/internal/broker"
	"applications-server/internal/handler"
	"applications-server/internal/repository"
	"applications-server/internal/router"
	"applications-server/internal/service"

	"github.com/google/wire"
	"gorm.io/gorm"
)

func InitializeApplication(gormDB *gorm.DB, producer broker.EventProducer, recorder auditlog.EndpointCallRecorder) (*Application, error) {
	wire.Build(
		repository.NewApplicationRepository,
		repository.NewImageRepository,
		service.NewApplicationService,
		service.NewImageService,
		handler.NewApplicationHandler,
		handler.NewImageHandler,
		router.NewRouter,
		NewApplication,
	)
	return nil, nil
}
