package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/sumafit/medstore/internal/middleware/auth"
	"github.com/sumafit/medstore/internal/models"
	"github.com/sumafit/medstore/internal/mykafka"
)

type OrderHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
}

// CreateOrder accepts the whole cart in one submission. The lines are price
// snapshots taken by the client at add-to-cart time; they are stored as-is.
// Anonymous checkout is allowed, the order is linked when a caller identity
// is present.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var req struct {
		Items        []models.OrderLine  `json:"items"`
		TotalAmount  int64               `json:"totalAmount"`
		DeliveryInfo models.DeliveryInfo `json:"deliveryInfo"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid body")
	}
	if len(req.Items) == 0 {
		return errorResponse(c, http.StatusBadRequest, "order must contain at least one item")
	}

	var total int64
	for _, line := range req.Items {
		if line.Quantity < 1 {
			return errorResponse(c, http.StatusBadRequest, "line quantity must be at least 1")
		}
		total += line.Price * int64(line.Quantity)
	}
	// The client-computed total is advisory; the stored amount is recomputed
	// from the submitted lines.
	order := models.Order{
		Items:        req.Items,
		TotalAmount:  total,
		DeliveryInfo: req.DeliveryInfo,
		Status:       "pending",
	}
	if user := auth.CurrentUser(c); user != nil {
		order.UserID = &user.ID
	}

	if err := h.DB.Create(&order).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	publish(c, h.Producer, "order_events", fmt.Sprint(order.ID), map[string]any{
		"type":    "order_created",
		"orderID": order.ID,
		"total":   order.TotalAmount,
	})

	return c.JSON(http.StatusCreated, order)
}

// GetOrders lists the caller's orders; admins see every order.
func (h *OrderHandler) GetOrders(c echo.Context) error {
	user := auth.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	tx := h.DB.Order("created_at DESC")
	if user.Role != models.RoleAdmin && user.Role != models.RoleSuperAdmin {
		tx = tx.Where("user_id = ?", user.ID)
	}

	var orders []models.Order
	if err := tx.Find(&orders).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, orders)
}
