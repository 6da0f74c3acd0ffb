package handler

import "applications-server/internal/service"

type ApplicationHandler struct {
	applicationService *service.ApplicationService
}

type ImageHandler struct {
	imageService *service.ImageService
}

func NewApplicationHandler(applicationService *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applicationService: applicationService}
}

func NewImageHandler(imageService *service.ImageService) *ImageHandler {
	return &ImageHandler{imageService: imageService}
}
