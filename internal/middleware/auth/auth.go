package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/sumafit/medstore/internal/ident"
	"github.com/sumafit/medstore/internal/models"
	"github.com/sumafit/medstore/internal/token"
)

const (
	SessionCookie = "session"

	userKey = "user"
)

type TokenService struct {
	DB         *gorm.DB
	JWTSecret  []byte
	SessionTTL time.Duration
}

// Authenticate resolves the caller from either carrier and attaches the
// account record to the context. Session cookie is checked first; a bearer
// token only fires when no session identity is already attached. Invalid or
// expired credentials degrade to anonymous, they never fail the request.
func (t *TokenService) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if user := t.userFromSession(c); user != nil {
			c.Set(userKey, user)
			return next(c)
		}
		if user := t.userFromBearer(c); user != nil {
			c.Set(userKey, user)
			return next(c)
		}
		return next(c)
	}
}

func (t *TokenService) userFromSession(c echo.Context) *models.User {
	cookie, err := c.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}

	var session models.Session
	if err := t.DB.Where("token = ?", cookie.Value).First(&session).Error; err != nil {
		return nil
	}
	if session.Revoked || time.Now().After(session.ExpiresAt) {
		return nil
	}

	return t.loadUser(ident.FromUint(session.UserID))
}

func (t *TokenService) userFromBearer(c echo.Context) *models.User {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return nil
	}

	claims, err := token.Verify(strings.TrimPrefix(header, "Bearer "), t.JWTSecret)
	if err != nil {
		return nil
	}

	// The token carries a role claim but it is never trusted: the account
	// record is the single source of truth for authorization.
	return t.loadUser(claims.UserID)
}

func (t *TokenService) loadUser(id ident.ID) *models.User {
	key, ok := id.Uint()
	if !ok {
		return nil
	}

	var user models.User
	if err := t.DB.First(&user, key).Error; err != nil {
		return nil
	}
	return &user
}

// CurrentUser returns the authenticated account or nil for anonymous.
func CurrentUser(c echo.Context) *models.User {
	if user, ok := c.Get(userKey).(*models.User); ok {
		return user
	}
	return nil
}

func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if CurrentUser(c) == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
		}
		return next(c)
	}
}

func requireRole(next echo.HandlerFunc, roles ...string) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := CurrentUser(c)
		if user == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
		}
		for _, role := range roles {
			if user.Role == role {
				return next(c)
			}
		}
		return echo.NewHTTPError(http.StatusForbidden, "Forbidden")
	}
}

func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return requireRole(next, models.RoleAdmin, models.RoleSuperAdmin)
}

func RequireSuperAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return requireRole(next, models.RoleSuperAdmin)
}

// CreateSession persists a fresh opaque session token for the user.
func (t *TokenService) CreateSession(userID uint) (*models.Session, error) {
	ttl := t.SessionTTL
	if ttl == 0 {
		ttl = 30 * 24 * time.Hour
	}

	session := models.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := t.DB.Create(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// RevokeSession marks the session row revoked. Missing rows are not an
// error, logout is idempotent.
func (t *TokenService) RevokeSession(rawToken string) error {
	result := t.DB.Model(&models.Session{}).
		Where("token = ?", rawToken).
		Update("revoked", true)
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}
	return nil
}

func CreateCookie(name, value, path string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  expires,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

func DeleteCookie(name, path string) *http.Cookie {
	return CreateCookie(name, "", path, time.Now().Add(-1*time.Hour))
}
