package handler

import (
	"fmt"
	"io"
	"log"
	"net/http"

	"applications-server/internal/common"
	"applications-server/internal/common/httpx"
	"applications-server/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (h *ImageHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "image file is required"})
		return
	}

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "cannot read uploaded file"})
		return
	}
	defer func() { _ = src.Close() }()

	content, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "cannot read uploaded file"})
		return
	}

	resp, err := h.imageService.Upload(c.Request.Context(), content, file.Filename, userID)
	if err != nil {
		if _, ok := common.AsServiceError(err); !ok {
			log.Printf("图片上传失败: %v", err)
		}
		httpx.WriteServiceError(c, err, "Failed to upload image")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ImageHandler) GetImageByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	resp, err := h.imageService.GetByID(c.Request.Context(), id)
	if err != nil {
		httpx.WriteServiceError(c, err, "Failed to get image")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ImageHandler) DeleteImage(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
		return
	}

	if err := h.imageService.Delete(c.Request.Context(), id, userID); err != nil {
		httpx.WriteServiceError(c, err, "Failed to delete image")
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": fmt.Sprintf("Image %d deleted successfully", id)})
}
