package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/sumafit/medstore/internal/ident"
	"github.com/sumafit/medstore/internal/middleware/auth"
	"github.com/sumafit/medstore/internal/models"
)

type FavoriteHandler struct {
	DB *gorm.DB
}

func (h *FavoriteHandler) GetFavorites(c echo.Context) error {
	user := auth.CurrentUser(c)

	var items []models.Favorite
	if err := h.DB.Where("user_id = ?", user.ID).Order("created_at DESC").Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, items)
}

// AddFavorite is idempotent: toggling on an already-marked product returns
// the existing record instead of creating a duplicate.
func (h *FavoriteHandler) AddFavorite(c echo.Context) error {
	user := auth.CurrentUser(c)

	// Ids arrive as numbers or strings depending on the client; both forms
	// must be tolerated.
	var req struct {
		ProductID any `json:"productId"`
		ServiceID any `json:"serviceId"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid body")
	}

	productID, okProduct := ident.Normalize(req.ProductID).Uint()
	serviceID, okService := ident.Normalize(req.ServiceID).Uint()
	if !okProduct && !okService {
		return errorResponse(c, http.StatusBadRequest, "productId or serviceId is required")
	}

	favorite := models.Favorite{UserID: user.ID}
	if okProduct {
		favorite.ProductID = &productID
	} else {
		favorite.ServiceID = &serviceID
	}

	// Each lookup builds its query from scratch; a chained gorm query must
	// not be reused after a finalizer.
	lookup := func() *gorm.DB {
		q := h.DB.Where("user_id = ?", user.ID)
		if okProduct {
			return q.Where("product_id = ?", productID)
		}
		return q.Where("service_id = ?", serviceID)
	}

	var existing models.Favorite
	if err := lookup().First(&existing).Error; err == nil {
		return c.JSON(http.StatusOK, existing)
	}

	if err := h.DB.Create(&favorite).Error; err != nil {
		// Lost a race with a concurrent toggle; the unique index kept the
		// pair single, return the winner.
		if err := lookup().First(&existing).Error; err == nil {
			return c.JSON(http.StatusOK, existing)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusCreated, favorite)
}

// RemoveFavorite removes by the referenced product or service id, which is
// what the client holds.
func (h *FavoriteHandler) RemoveFavorite(c echo.Context) error {
	user := auth.CurrentUser(c)

	id, ok := ident.ID(c.Param("id")).Uint()
	if !ok {
		return errorResponse(c, http.StatusBadRequest, "invalid id")
	}

	result := h.DB.Where("user_id = ? AND (product_id = ? OR service_id = ?)", user.ID, id, id).
		Delete(&models.Favorite{})
	if result.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	if result.RowsAffected == 0 {
		return errorResponse(c, http.StatusNotFound, "Favorite not found")
	}

	return c.NoContent(http.StatusNoContent)
}
