package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/sumafit/medstore/internal/hash"
	"github.com/sumafit/medstore/internal/ident"
	"github.com/sumafit/medstore/internal/logging"
	"github.com/sumafit/medstore/internal/middleware/auth"
	"github.com/sumafit/medstore/internal/models"
	"github.com/sumafit/medstore/internal/mykafka"
	"github.com/sumafit/medstore/internal/token"
)

type AuthHandler struct {
	DB       *gorm.DB
	Tokens   *auth.TokenService
	Producer *mykafka.Producer
	TokenTTL time.Duration
}

func (h *AuthHandler) tokenTTL() time.Duration {
	if h.TokenTTL == 0 {
		return 30 * 24 * time.Hour
	}
	return h.TokenTTL
}

type credentialsResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (h *AuthHandler) issueCredentials(c echo.Context, user *models.User) (*credentialsResponse, error) {
	session, err := h.Tokens.CreateSession(user.ID)
	if err != nil {
		return nil, err
	}
	c.SetCookie(auth.CreateCookie(auth.SessionCookie, session.Token, "/", session.ExpiresAt))

	signed, err := token.Sign(ident.FromUint(user.ID), user.Role, h.tokenTTL(), h.Tokens.JWTSecret)
	if err != nil {
		return nil, err
	}

	return &credentialsResponse{Token: signed, User: user}, nil
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")

	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Phone    string `json:"phone"`
		Location string `json:"location"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid body")
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return errorResponse(c, http.StatusBadRequest, "username, email and password are required")
	}

	var existing models.User
	if err := h.DB.Where("username = ? OR email = ?", req.Username, req.Email).First(&existing).Error; err == nil {
		return errorResponse(c, http.StatusBadRequest, "Username already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		l.Error("register_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: pwHash,
		Phone:        req.Phone,
		Location:     req.Location,
		Role:         models.RoleUser,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		return errorResponse(c, http.StatusBadRequest, "Username already exists")
	}

	creds, err := h.issueCredentials(c, &user)
	if err != nil {
		l.Error("register_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	publish(c, h.Producer, "user_events", fmt.Sprint(user.ID), map[string]any{
		"type":     "user_registered",
		"userID":   user.ID,
		"username": user.Username,
	})

	l.Info("register_successful", "userID", user.ID)
	return c.JSON(http.StatusCreated, creds)
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid body")
	}
	if req.Email == "" || req.Password == "" {
		return errorResponse(c, http.StatusBadRequest, "email and password are required")
	}

	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return errorResponse(c, http.StatusUnauthorized, "Invalid credentials")
	}
	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		return errorResponse(c, http.StatusUnauthorized, "Invalid credentials")
	}

	creds, err := h.issueCredentials(c, &user)
	if err != nil {
		l.Error("login_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	publish(c, h.Producer, "user_events", fmt.Sprint(user.ID), map[string]any{
		"type":     "user_logged_in",
		"userID":   user.ID,
		"username": user.Username,
	})

	l.Info("login_successful", "userID", user.ID)
	return c.JSON(http.StatusOK, creds)
}

func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_logout")

	if cookie, err := c.Cookie(auth.SessionCookie); err == nil {
		if err := h.Tokens.RevokeSession(cookie.Value); err != nil {
			l.Error("logout_failed", "status", 500, "error", err)
			c.SetCookie(auth.DeleteCookie(auth.SessionCookie, "/"))
			return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
		}
	}

	c.SetCookie(auth.DeleteCookie(auth.SessionCookie, "/"))
	l.Info("logout_successful")
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

func (h *AuthHandler) Profile(c echo.Context) error {
	user := auth.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile mutates the caller's own mutable fields. Role is stripped
// before applying: only a super admin may change it, through the users admin
// endpoint.
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	user := auth.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	var req struct {
		Username *string `json:"username"`
		Phone    *string `json:"phone"`
		Location *string `json:"location"`
		Role     *string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid body")
	}

	updates := map[string]any{}
	if req.Username != nil {
		updates["username"] = *req.Username
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}

	if len(updates) > 0 {
		if err := h.DB.Model(user).Updates(updates).Error; err != nil {
			return errorResponse(c, http.StatusBadRequest, "Failed to update profile")
		}
	}

	return c.JSON(http.StatusOK, user)
}
