package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/sumafit/medstore/internal/middleware/auth"
	"github.com/sumafit/medstore/internal/models"
)

type ReviewHandler struct {
	DB *gorm.DB
}

// CreateReview stores the review and then recomputes the product's rating
// and review count. The two writes are independent; a crash between them
// leaves the aggregate one review behind until the next recompute.
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	user := auth.CurrentUser(c)

	var req struct {
		ProductID uint   `json:"productId"`
		Rating    int    `json:"rating"`
		Comment   string `json:"comment"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid body")
	}
	if req.ProductID == 0 || req.Rating < 1 || req.Rating > 5 {
		return errorResponse(c, http.StatusBadRequest, "productId and a rating between 1 and 5 are required")
	}

	var product models.Product
	if err := h.DB.First(&product, req.ProductID).Error; err != nil {
		return errorResponse(c, http.StatusNotFound, "Product not found")
	}

	review := models.Review{
		UserID:    user.ID,
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := h.DB.Create(&review).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	if err := h.recomputeRating(req.ProductID); err != nil {
		c.Logger().Errorf("rating recompute error: %v", err)
	}

	return c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) recomputeRating(productID uint) error {
	var agg struct {
		Avg   float64
		Count int
	}
	err := h.DB.Model(&models.Review{}).
		Select("AVG(rating) as avg, COUNT(*) as count").
		Where("product_id = ?", productID).
		Scan(&agg).Error
	if err != nil {
		return err
	}

	return h.DB.Model(&models.Product{}).
		Where("id = ?", productID).
		Updates(map[string]any{"rating": agg.Avg, "reviews_count": agg.Count}).Error
}

type reviewWithUser struct {
	models.Review
	User struct {
		Username string `json:"username"`
	} `json:"user"`
}

func (h *ReviewHandler) GetReviews(c echo.Context) error {
	productID, err := parseID(c, "productId")
	if err != nil {
		return err
	}

	var reviews []models.Review
	if err := h.DB.Where("product_id = ?", productID).Order("created_at DESC").Find(&reviews).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	out := make([]reviewWithUser, len(reviews))
	for i, r := range reviews {
		out[i].Review = r
		var user models.User
		if err := h.DB.Select("username").First(&user, r.UserID).Error; err == nil {
			out[i].User.Username = user.Username
		}
	}

	return c.JSON(http.StatusOK, out)
}
