package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sumafit/medstore/internal/ident"
	"github.com/sumafit/medstore/internal/models"
	"github.com/sumafit/medstore/internal/token"
)

var testSecret = []byte("test_secret")

func initTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Session{}))
	return db
}

func newService(t *testing.T) (*TokenService, *gorm.DB) {
	db := initTestDB(t)
	return &TokenService{DB: db, JWTSecret: testSecret, SessionTTL: time.Hour}, db
}

func createUser(t *testing.T, db *gorm.DB, username, role string) *models.User {
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

// resolve runs the middleware over a bare request and reports who it saw.
func resolve(t *testing.T, ts *TokenService, mutate func(*http.Request)) *models.User {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if mutate != nil {
		mutate(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *models.User
	h := ts.Authenticate(func(c echo.Context) error {
		seen = CurrentUser(c)
		return nil
	})
	require.NoError(t, h(c))
	return seen
}

func TestAnonymousWithoutCredentials(t *testing.T) {
	ts, _ := newService(t)
	require.Nil(t, resolve(t, ts, nil))
}

func TestSessionCookieResolvesUser(t *testing.T) {
	ts, db := newService(t)
	user := createUser(t, db, "alice", models.RoleUser)

	session, err := ts.CreateSession(user.ID)
	require.NoError(t, err)

	seen := resolve(t, ts, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: session.Token})
	})
	require.NotNil(t, seen)
	require.Equal(t, user.ID, seen.ID)
}

func TestBearerResolvesUser(t *testing.T) {
	ts, db := newService(t)
	user := createUser(t, db, "alice", models.RoleUser)

	raw, err := token.Sign(ident.FromUint(user.ID), user.Role, time.Hour, testSecret)
	require.NoError(t, err)

	seen := resolve(t, ts, func(req *http.Request) {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+raw)
	})
	require.NotNil(t, seen)
	require.Equal(t, user.ID, seen.ID)
}

// When both carriers are present the session decides; the bearer token is
// not consulted.
func TestSessionTakesPrecedenceOverBearer(t *testing.T) {
	ts, db := newService(t)
	alice := createUser(t, db, "alice", models.RoleUser)
	bob := createUser(t, db, "bob", models.RoleUser)

	session, err := ts.CreateSession(alice.ID)
	require.NoError(t, err)
	raw, err := token.Sign(ident.FromUint(bob.ID), bob.Role, time.Hour, testSecret)
	require.NoError(t, err)

	seen := resolve(t, ts, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: session.Token})
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+raw)
	})
	require.NotNil(t, seen)
	require.Equal(t, alice.ID, seen.ID)
}

// The role claim inside a bearer token is never trusted; authorization reads
// the current users row.
func TestRoleReReadFromAccountRecord(t *testing.T) {
	ts, db := newService(t)
	user := createUser(t, db, "alice", models.RoleUser)

	raw, err := token.Sign(ident.FromUint(user.ID), models.RoleSuperAdmin, time.Hour, testSecret)
	require.NoError(t, err)

	seen := resolve(t, ts, func(req *http.Request) {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+raw)
	})
	require.NotNil(t, seen)
	require.Equal(t, models.RoleUser, seen.Role)
}

func TestInvalidCredentialsDegradeToAnonymous(t *testing.T) {
	ts, db := newService(t)
	user := createUser(t, db, "alice", models.RoleUser)

	// Garbage bearer token.
	require.Nil(t, resolve(t, ts, func(req *http.Request) {
		req.Header.Set(echo.HeaderAuthorization, "Bearer not.a.token")
	}))

	// Unknown session token.
	require.Nil(t, resolve(t, ts, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "nope"})
	}))

	// Revoked session.
	session, err := ts.CreateSession(user.ID)
	require.NoError(t, err)
	require.NoError(t, ts.RevokeSession(session.Token))
	require.Nil(t, resolve(t, ts, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: session.Token})
	}))

	// Expired session.
	expired := models.Session{Token: "expired-token", UserID: user.ID, ExpiresAt: time.Now().Add(-time.Minute)}
	require.NoError(t, db.Create(&expired).Error)
	require.Nil(t, resolve(t, ts, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: expired.Token})
	}))

	// Token signed for an account that no longer exists.
	raw, err := token.Sign(ident.ID("999"), models.RoleUser, time.Hour, testSecret)
	require.NoError(t, err)
	require.Nil(t, resolve(t, ts, func(req *http.Request) {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+raw)
	}))
}

func TestRequireRoleGates(t *testing.T) {
	ts, db := newService(t)
	user := createUser(t, db, "plain", models.RoleUser)
	admin := createUser(t, db, "boss", models.RoleAdmin)
	super := createUser(t, db, "root", models.RoleSuperAdmin)

	run := func(u *models.User, gate func(echo.HandlerFunc) echo.HandlerFunc) error {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if u != nil {
			raw, err := token.Sign(ident.FromUint(u.ID), u.Role, time.Hour, testSecret)
			require.NoError(t, err)
			req.Header.Set(echo.HeaderAuthorization, "Bearer "+raw)
		}
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
		return ts.Authenticate(gate(ok))(c)
	}

	err := run(nil, RequireAdmin)
	he, isHTTP := err.(*echo.HTTPError)
	require.True(t, isHTTP)
	require.Equal(t, http.StatusUnauthorized, he.Code)

	err = run(user, RequireAdmin)
	he, isHTTP = err.(*echo.HTTPError)
	require.True(t, isHTTP)
	require.Equal(t, http.StatusForbidden, he.Code)

	require.NoError(t, run(admin, RequireAdmin))
	require.NoError(t, run(super, RequireAdmin))

	err = run(admin, RequireSuperAdmin)
	he, isHTTP = err.(*echo.HTTPError)
	require.True(t, isHTTP)
	require.Equal(t, http.StatusForbidden, he.Code)
	require.NoError(t, run(super, RequireSuperAdmin))
}
