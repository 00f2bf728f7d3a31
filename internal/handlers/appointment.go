package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/sumafit/medstore/internal/middleware/auth"
	"github.com/sumafit/medstore/internal/models"
)

type AppointmentHandler struct {
	DB *gorm.DB
}

func (h *AppointmentHandler) CreateAppointment(c echo.Context) error {
	var req struct {
		ServiceID uint      `json:"serviceId"`
		Date      time.Time `json:"date"`
		Office    string    `json:"office"`
		Location  string    `json:"location"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid body")
	}
	if req.ServiceID == 0 || req.Date.IsZero() || req.Office == "" {
		return errorResponse(c, http.StatusBadRequest, "serviceId, date and office are required")
	}

	var service models.Service
	if err := h.DB.First(&service, req.ServiceID).Error; err != nil {
		return errorResponse(c, http.StatusNotFound, "Service not found")
	}

	appointment := models.Appointment{
		ServiceID: req.ServiceID,
		Date:      req.Date,
		Office:    req.Office,
		Location:  req.Location,
		Status:    "pending",
	}
	if user := auth.CurrentUser(c); user != nil {
		appointment.UserID = &user.ID
	}

	if err := h.DB.Create(&appointment).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusCreated, appointment)
}

func (h *AppointmentHandler) GetAppointments(c echo.Context) error {
	user := auth.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	tx := h.DB.Order("created_at DESC")
	if user.Role != models.RoleAdmin && user.Role != models.RoleSuperAdmin {
		tx = tx.Where("user_id = ?", user.ID)
	}

	var appointments []models.Appointment
	if err := tx.Find(&appointments).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, appointments)
}
