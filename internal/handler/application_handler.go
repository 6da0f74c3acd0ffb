package handler

import (
	"log"
	"net/http"
	"strconv"

	"applications-server/internal/common"
	"applications-server/internal/common/httpx"
	"applications-server/internal/dto"
	"applications-server/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (h *ApplicationHandler) CreateApplication(c *gin.Context) {
	var req dto.ApplicationCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "title is required"})
		return
	}

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
		return
	}

	resp, err := h.applicationService.Create(c.Request.Context(), req, userID)
	if err != nil {
		if _, ok := common.AsServiceError(err); !ok {
			log.Printf("创建申请失败: %v", err)
		}
		httpx.WriteServiceError(c, err, "Failed to create application")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	page, size, ok := parsePagination(c)
	if !ok {
		return
	}

	log.Printf("查询申请列表: page=%d size=%d", page, size)
	resp, err := h.applicationService.List(c.Request.Context(), page, size)
	if err != nil {
		httpx.WriteServiceError(c, err, "Failed to list applications")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetApplicationByTitle 注册在 /applications/:id/:title 上，
// gin 的路由树不允许 by-title 静态段与 :id 通配同级，这里在处理器内再分派。
func (h *ApplicationHandler) GetApplicationByTitle(c *gin.Context) {
	if c.Param("id") != "by-title" {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not Found"})
		return
	}

	resp, err := h.applicationService.GetByTitle(c.Request.Context(), c.Param("title"))
	if err != nil {
		httpx.WriteServiceError(c, err, "Failed to get applications")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ApplicationHandler) GetApplicationByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	resp, err := h.applicationService.GetByID(c.Request.Context(), id)
	if err != nil {
		httpx.WriteServiceError(c, err, "Failed to get application")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ApplicationHandler) PatchApplication(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
		return
	}

	// 两个参数都可选，缺省的字段保持不变
	var newTitle, newDescription *string
	if v, exists := c.GetQuery("new_title"); exists {
		newTitle = &v
	}
	if v, exists := c.GetQuery("new_description"); exists {
		newDescription = &v
	}

	resp, err := h.applicationService.Edit(c.Request.Context(), id, userID, newTitle, newDescription)
	if err != nil {
		httpx.WriteServiceError(c, err, "Failed to edit application")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ApplicationHandler) DeleteApplication(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
		return
	}

	if err := h.applicationService.Delete(c.Request.Context(), id, userID); err != nil {
		httpx.WriteServiceError(c, err, "Failed to delete application")
		return
	}

	c.JSON(http.StatusOK, dto.DeleteResponse{
		Status:  "success",
		Message: "Application deleted",
	})
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}

func parsePagination(c *gin.Context) (int, int, bool) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "page must be >= 1"})
		return 0, 0, false
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "10"))
	if err != nil || size < 1 || size > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "size must be between 1 and 100"})
		return 0, 0, false
	}
	return page, size, true
}
