package router

import (
	"applications-server/internal/handler"
	"applications-server/internal/middleware"

	"github.com/gin-gonic/gin"
)

func registerImageRoutes(r *gin.Engine, h *handler.ImageHandler) {
	// 图片接口全部要求 Bearer 身份
	images := r.Group("/image_upload", middleware.JWTAuth())

	images.POST("/image_upload", h.UploadImage)
	images.GET("/image_get/:id", h.GetImageByID)
	images.DELETE("/image_delete/:id", h.DeleteImage)
}
