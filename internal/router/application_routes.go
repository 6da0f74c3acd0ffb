package router

import (
	"applications-server/internal/handler"
	"applications-server/internal/middleware"

	"github.com/gin-gonic/gin"
)

func registerApplicationRoutes(r *gin.Engine, h *handler.ApplicationHandler) {
	apps := r.Group("/applications")

	// 读接口公开，审计时记 no_auth
	apps.GET("", h.ListApplications)
	apps.GET("/:id", h.GetApplicationByID)
	// by-title 实际路径为 /applications/by-title/{title}。
	// gin 不允许静态段 by-title 与 :id 通配同级，只能注册成二级参数再由处理器分派。
	apps.GET("/:id/:title", h.GetApplicationByTitle)

	// 写接口要求 Bearer 身份
	authed := apps.Group("", middleware.JWTAuth())
	authed.POST("", h.CreateApplication)
	authed.PATCH("/:id", h.PatchApplication)
	authed.DELETE("/:id", h.DeleteApplication)
}
