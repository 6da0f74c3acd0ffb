package router

import (
	"applications-server/internal/handler"

	"github.com/gin-gonic/gin"
)

type Router struct {
	applicationHandler *handler.ApplicationHandler
	imageHandler       *handler.ImageHandler
}

func NewRouter(applicationHandler *handler.ApplicationHandler, imageHandler *handler.ImageHandler) *Router {
	return &Router{
		applicationHandler: applicationHandler,
		imageHandler:       imageHandler,
	}
}

func (rt *Router) Init(r *gin.Engine) {
	registerApplicationRoutes(r, rt.applicationHandler)
	registerImageRoutes(r, rt.imageHandler)
}
