package handlers

import (
	"fmt"
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/sumafit/medstore/internal/models"
	"github.com/sumafit/medstore/internal/mykafka"
	"github.com/sumafit/medstore/internal/service/search"
	"github.com/sumafit/medstore/internal/util"
)

type ProductHandler struct {
	DB       *gorm.DB
	ES       *elasticsearch.Client
	Producer *mykafka.Producer
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		return errorResponse(c, http.StatusNotFound, "Product not found")
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	if q := c.QueryParam("search"); q != "" && h.ES != nil {
		total, items, err := search.Search(c.Request().Context(), h.ES, q, offset, limit)
		if err != nil {
			c.Logger().Errorf("search fallback: %v", err)
		} else {
			return c.JSON(http.StatusOK, echo.Map{"data": items, "total": total})
		}
	}

	tx := h.DB.Model(&models.Product{})
	if category := c.QueryParam("category"); category != "" {
		tx = tx.Where("category = ?", category)
	}
	if c.QueryParam("isFeatured") == "true" {
		tx = tx.Where("is_featured = ?", true)
	}
	if c.QueryParam("isTrending") == "true" {
		tx = tx.Where("is_trending = ?", true)
	}
	if q := c.QueryParam("search"); q != "" {
		pattern := search.LikePattern(q)
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	var items []models.Product
	if err := tx.Order("created_at DESC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, echo.Map{"data": items, "total": total})
}

type productInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *int64   `json:"price"`
	Category    *string  `json:"category"`
	Images      []string `json:"images"`
	IsFeatured  *bool    `json:"isFeatured"`
	IsTrending  *bool    `json:"isTrending"`
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req productInput
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid body")
	}
	if req.Name == nil || *req.Name == "" || req.Description == nil || req.Price == nil || req.Category == nil {
		return errorResponse(c, http.StatusBadRequest, "name, description, price and category are required")
	}

	product := models.Product{
		Name:        *req.Name,
		Description: *req.Description,
		Price:       *req.Price,
		Category:    *req.Category,
		Images:      req.Images,
	}
	if req.IsFeatured != nil {
		product.IsFeatured = *req.IsFeatured
	}
	if req.IsTrending != nil {
		product.IsTrending = *req.IsTrending
	}

	if err := h.DB.Create(&product).Error; err != nil {
		return errorResponse(c, http.StatusBadRequest, "could not create product")
	}

	if err := search.IndexProduct(c.Request().Context(), h.ES, &product); err != nil {
		c.Logger().Errorf("ES index error: %v", err)
	}
	publish(c, h.Producer, "product_events", fmt.Sprint(product.ID), map[string]any{
		"type":      "product_created",
		"productID": product.ID,
		"name":      product.Name,
	})

	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		return errorResponse(c, http.StatusNotFound, "Product not found")
	}

	var req productInput
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid body")
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Images != nil {
		product.Images = req.Images
	}
	if req.IsFeatured != nil {
		product.IsFeatured = *req.IsFeatured
	}
	if req.IsTrending != nil {
		product.IsTrending = *req.IsTrending
	}

	if err := h.DB.Save(&product).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	if err := search.IndexProduct(c.Request().Context(), h.ES, &product); err != nil {
		c.Logger().Errorf("ES index error: %v", err)
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.DB.Delete(&models.Product{}, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	if err := search.DeleteProduct(c.Request().Context(), h.ES, id); err != nil {
		c.Logger().Errorf("ES delete error: %v", err)
	}
	publish(c, h.Producer, "product_events", fmt.Sprint(id), map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})

	return c.NoContent(http.StatusNoContent)
}
