package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/sumafit/medstore/internal/middleware/auth"
	"github.com/sumafit/medstore/internal/models"
)

// SettingsHandler serves the single site-settings record.
type SettingsHandler struct {
	DB *gorm.DB
}

func (h *SettingsHandler) GetSettings(c echo.Context) error {
	var settings models.SiteSettings
	if err := h.DB.First(&settings).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			now := time.Now()
			return c.JSON(http.StatusOK, models.SiteSettings{
				DefaultWhatsappNumber: "254700000000",
				ShowUrgentBanner:      true,
				CreatedAt:             now,
				UpdatedAt:             now,
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusOK, settings)
}

func (h *SettingsHandler) UpsertSettings(c echo.Context) error {
	var req struct {
		DefaultWhatsappNumber *string `json:"defaultWhatsappNumber"`
		ShowUrgentBanner      *bool   `json:"showUrgentBanner"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid body")
	}

	var settings models.SiteSettings
	if err := h.DB.First(&settings).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
		}
		settings = models.SiteSettings{ShowUrgentBanner: true}
	}

	if req.DefaultWhatsappNumber != nil {
		settings.DefaultWhatsappNumber = *req.DefaultWhatsappNumber
	}
	if req.ShowUrgentBanner != nil {
		settings.ShowUrgentBanner = *req.ShowUrgentBanner
	}

	if err := h.DB.Save(&settings).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusOK, settings)
}

// OfficeHandler manages the in-person service offices.
type OfficeHandler struct {
	DB *gorm.DB
}

func (h *OfficeHandler) GetOffices(c echo.Context) error {
	var offices []models.ServiceOffice
	if err := h.DB.Order("created_at DESC").Find(&offices).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusOK, offices)
}

func (h *OfficeHandler) CreateOffice(c echo.Context) error {
	var req struct {
		Name    string `json:"name"`
		County  string `json:"county"`
		Address string `json:"address"`
		Phone   string `json:"phone"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid body")
	}
	if req.Name == "" || req.County == "" {
		return errorResponse(c, http.StatusBadRequest, "name and county are required")
	}

	office := models.ServiceOffice{
		Name:    req.Name,
		County:  req.County,
		Address: req.Address,
		Phone:   req.Phone,
	}
	if err := h.DB.Create(&office).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusCreated, office)
}

func (h *OfficeHandler) UpdateOffice(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var office models.ServiceOffice
	if err := h.DB.First(&office, id).Error; err != nil {
		return errorResponse(c, http.StatusNotFound, "Office not found")
	}

	var req struct {
		Name    *string `json:"name"`
		County  *string `json:"county"`
		Address *string `json:"address"`
		Phone   *string `json:"phone"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid body")
	}

	if req.Name != nil {
		office.Name = *req.Name
	}
	if req.County != nil {
		office.County = *req.County
	}
	if req.Address != nil {
		office.Address = *req.Address
	}
	if req.Phone != nil {
		office.Phone = *req.Phone
	}

	if err := h.DB.Save(&office).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusOK, office)
}

func (h *OfficeHandler) DeleteOffice(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.DB.Delete(&models.ServiceOffice{}, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.NoContent(http.StatusNoContent)
}

// LocationHandler serves the read-only Kenya locations reference dataset.
type LocationHandler struct {
	DB *gorm.DB
}

func (h *LocationHandler) GetCounties(c echo.Context) error {
	var counties []models.KenyaCounty
	if err := h.DB.Order("name ASC").Find(&counties).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusOK, counties)
}

func (h *LocationHandler) GetSubCounties(c echo.Context) error {
	countyID, err := parseID(c, "countyId")
	if err != nil {
		return err
	}

	var subCounties []models.KenyaSubCounty
	if err := h.DB.Where("county_id = ?", countyID).Order("name ASC").Find(&subCounties).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusOK, subCounties)
}

func (h *LocationHandler) GetAreas(c echo.Context) error {
	subCountyID, err := parseID(c, "subCountyId")
	if err != nil {
		return err
	}

	var areas []models.KenyaArea
	if err := h.DB.Where("sub_county_id = ?", subCountyID).Order("name ASC").Find(&areas).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusOK, areas)
}

// NewsletterHandler handles subscription signups.
type NewsletterHandler struct {
	DB *gorm.DB
}

func (h *NewsletterHandler) Subscribe(c echo.Context) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid body")
	}
	if req.Email == "" {
		return errorResponse(c, http.StatusBadRequest, "email is required")
	}

	var existing models.NewsletterSubscriber
	if err := h.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return errorResponse(c, http.StatusBadRequest, "Email already subscribed")
	}

	subscriber := models.NewsletterSubscriber{Email: req.Email}
	if err := h.DB.Create(&subscriber).Error; err != nil {
		return errorResponse(c, http.StatusBadRequest, "Email already subscribed")
	}
	return c.JSON(http.StatusCreated, subscriber)
}

// EmailChangeHandler implements the admin-reviewed email change flow.
type EmailChangeHandler struct {
	DB *gorm.DB
}

func (h *EmailChangeHandler) CreateRequest(c echo.Context) error {
	user := auth.CurrentUser(c)

	var req struct {
		NewEmail string `json:"newEmail"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid body")
	}
	if req.NewEmail == "" {
		return errorResponse(c, http.StatusBadRequest, "newEmail is required")
	}

	request := models.EmailChangeRequest{
		UserID:   user.ID,
		NewEmail: req.NewEmail,
		Status:   "pending",
	}
	if err := h.DB.Create(&request).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusCreated, request)
}

func (h *EmailChangeHandler) ListRequests(c echo.Context) error {
	var items []models.EmailChangeRequest
	if err := h.DB.Order("created_at DESC").Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusOK, items)
}

// ReviewRequest approves or rejects a pending request; approval applies the
// new email to the account.
func (h *EmailChangeHandler) ReviewRequest(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid body")
	}
	if req.Status != "approved" && req.Status != "rejected" {
		return errorResponse(c, http.StatusBadRequest, "status must be approved or rejected")
	}

	var request models.EmailChangeRequest
	if err := h.DB.First(&request, id).Error; err != nil {
		return errorResponse(c, http.StatusNotFound, "Request not found")
	}

	request.Status = req.Status
	if err := h.DB.Save(&request).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	if req.Status == "approved" {
		if err := h.DB.Model(&models.User{}).Where("id = ?", request.UserID).
			Update("email", request.NewEmail).Error; err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
		}
	}

	return c.JSON(http.StatusOK, request)
}
