package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/sumafit/medstore/internal/models"
)

type ServiceHandler struct {
	DB *gorm.DB
}

func (h *ServiceHandler) GetServices(c echo.Context) error {
	var services []models.Service
	if err := h.DB.Order("created_at DESC").Find(&services).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) GetService(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var service models.Service
	if err := h.DB.First(&service, id).Error; err != nil {
		return errorResponse(c, http.StatusNotFound, "Service not found")
	}
	return c.JSON(http.StatusOK, service)
}

type serviceInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Benefits    []string `json:"benefits"`
	Images      []string `json:"images"`
	IsFeatured  *bool    `json:"isFeatured"`
}

func (h *ServiceHandler) CreateService(c echo.Context) error {
	var req serviceInput
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid body")
	}
	if req.Name == nil || *req.Name == "" || req.Description == nil {
		return errorResponse(c, http.StatusBadRequest, "name and description are required")
	}

	service := models.Service{
		Name:        *req.Name,
		Description: *req.Description,
		Benefits:    req.Benefits,
		Images:      req.Images,
	}
	if req.IsFeatured != nil {
		service.IsFeatured = *req.IsFeatured
	}

	if err := h.DB.Create(&service).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusCreated, service)
}

func (h *ServiceHandler) UpdateService(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var service models.Service
	if err := h.DB.First(&service, id).Error; err != nil {
		return errorResponse(c, http.StatusNotFound, "Service not found")
	}

	var req serviceInput
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid body")
	}

	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.Benefits != nil {
		service.Benefits = req.Benefits
	}
	if req.Images != nil {
		service.Images = req.Images
	}
	if req.IsFeatured != nil {
		service.IsFeatured = *req.IsFeatured
	}

	if err := h.DB.Save(&service).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusOK, service)
}

func (h *ServiceHandler) DeleteService(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.DB.Delete(&models.Service{}, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.NoContent(http.StatusNoContent)
}
