package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/sumafit/medstore/internal/models"
)

type NewsHandler struct {
	DB *gorm.DB
}

func (h *NewsHandler) GetNews(c echo.Context) error {
	tx := h.DB.Order("created_at DESC")
	if t := c.QueryParam("type"); t != "" {
		tx = tx.Where("type = ?", t)
	}

	var items []models.News
	if err := tx.Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *NewsHandler) GetNewsItem(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var item models.News
	if err := h.DB.First(&item, id).Error; err != nil {
		return errorResponse(c, http.StatusNotFound, "News not found")
	}
	return c.JSON(http.StatusOK, item)
}

type newsInput struct {
	Title      *string `json:"title"`
	Content    *string `json:"content"`
	Type       *string `json:"type"`
	IsUrgent   *bool   `json:"isUrgent"`
	ImageURL   *string `json:"imageUrl"`
	AuthorName *string `json:"authorName"`
}

func (h *NewsHandler) CreateNews(c echo.Context) error {
	var req newsInput
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid body")
	}
	if req.Title == nil || *req.Title == "" || req.Content == nil {
		return errorResponse(c, http.StatusBadRequest, "title and content are required")
	}

	item := models.News{
		Title:   *req.Title,
		Content: *req.Content,
		Type:    "news",
	}
	if req.Type != nil {
		item.Type = *req.Type
	}
	if req.IsUrgent != nil {
		item.IsUrgent = *req.IsUrgent
	}
	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}
	if req.AuthorName != nil {
		item.AuthorName = *req.AuthorName
	}

	if err := h.DB.Create(&item).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusCreated, item)
}

func (h *NewsHandler) UpdateNews(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var item models.News
	if err := h.DB.First(&item, id).Error; err != nil {
		return errorResponse(c, http.StatusNotFound, "News not found")
	}

	var req newsInput
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid body")
	}

	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Content != nil {
		item.Content = *req.Content
	}
	if req.Type != nil {
		item.Type = *req.Type
	}
	if req.IsUrgent != nil {
		item.IsUrgent = *req.IsUrgent
	}
	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}
	if req.AuthorName != nil {
		item.AuthorName = *req.AuthorName
	}

	if err := h.DB.Save(&item).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusOK, item)
}

func (h *NewsHandler) DeleteNews(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.DB.Delete(&models.News{}, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.NoContent(http.StatusNoContent)
}
