package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/sumafit/medstore/internal/middleware/auth"
	"github.com/sumafit/medstore/internal/models"
)

// UserAdminHandler is the back-office user management surface. Routes are
// gated by RequireAdmin / RequireSuperAdmin in the router.
type UserAdminHandler struct {
	DB *gorm.DB
}

func (h *UserAdminHandler) GetUsers(c echo.Context) error {
	var users []models.User
	if err := h.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserAdminHandler) ChangeRole(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid body")
	}
	switch req.Role {
	case models.RoleUser, models.RoleAdmin, models.RoleSuperAdmin:
	default:
		return errorResponse(c, http.StatusBadRequest, "invalid role")
	}

	var user models.User
	if err := h.DB.First(&user, id).Error; err != nil {
		return errorResponse(c, http.StatusNotFound, "User not found")
	}

	if err := h.DB.Model(&user).Update("role", req.Role).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserAdminHandler) DeleteUser(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if caller := auth.CurrentUser(c); caller != nil && caller.ID == id {
		return errorResponse(c, http.StatusBadRequest, "cannot delete your own account")
	}

	if err := h.DB.Delete(&models.User{}, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.NoContent(http.StatusNoContent)
}
