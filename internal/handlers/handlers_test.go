package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sumafit/medstore/internal/config"
	"github.com/sumafit/medstore/internal/hash"
	"github.com/sumafit/medstore/internal/ident"
	"github.com/sumafit/medstore/internal/middleware/auth"
	"github.com/sumafit/medstore/internal/models"
	"github.com/sumafit/medstore/internal/token"
)

var testSecret = []byte("test_secret")

func InitTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	return db
}

type testEnv struct {
	T      *testing.T
	E      *echo.Echo
	DB     *gorm.DB
	Tokens *auth.TokenService
}

func newTestEnv(t *testing.T) *testEnv {
	db := InitTestDB(t)
	return &testEnv{
		T:  t,
		E:  echo.New(),
		DB: db,
		Tokens: &auth.TokenService{
			DB:         db,
			JWTSecret:  testSecret,
			SessionTTL: time.Hour,
		},
	}
}

func (env *testEnv) createUser(username, role string) *models.User {
	pwHash, err := hash.HashPassword("password")
	require.NoError(env.T, err)

	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: pwHash,
		Role:         role,
	}
	require.NoError(env.T, env.DB.Create(&user).Error)
	return &user
}

func (env *testEnv) bearerFor(user *models.User) string {
	raw, err := token.Sign(ident.FromUint(user.ID), user.Role, time.Hour, testSecret)
	require.NoError(env.T, err)
	return raw
}

// doJSONRequest runs the handler behind the real authentication middleware.
// A non-nil user is attached as a bearer token.
func (env *testEnv) doJSONRequest(h echo.HandlerFunc, method, path string, body any, user *models.User, params ...string) (*httptest.ResponseRecorder, error) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if user != nil {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+env.bearerFor(user))
	}

	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	if len(params) > 0 {
		var names, values []string
		for i := 0; i+1 < len(params); i += 2 {
			names = append(names, params[i])
			values = append(values, params[i+1])
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}

	return rec, env.Tokens.Authenticate(h)(c)
}

func httptestRequest(env *testEnv, method, path string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func newRecorderContext(env *testEnv, req *http.Request) (*httptest.ResponseRecorder, echo.Context) {
	rec := httptest.NewRecorder()
	return rec, env.E.NewContext(req, rec)
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func requireHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError, got %v", err)
	require.Equal(t, code, he.Code)
}
