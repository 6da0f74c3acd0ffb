package di

import (
	"applications-server/internal/router"
)

type Application struct {
	Router *router.Router
}

func NewApplication(r *router.Router) *Application {
	return &Application{
		Router: r,
	}
}
