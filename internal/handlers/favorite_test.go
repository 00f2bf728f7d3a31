package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sumafit/medstore/internal/middleware/auth"
	"github.com/sumafit/medstore/internal/models"
)

func TestAddFavoriteIdempotent(t *testing.T) {
	env := newTestEnv(t)
	h := &FavoriteHandler{DB: env.DB}
	user := env.createUser("test_user", models.RoleUser)

	rec, err := env.doJSONRequest(h.AddFavorite, http.MethodPost, "/api/favorites", map[string]any{
		"productId": 7,
	}, user)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Toggling on again returns the existing record, never a duplicate. The
	// id arriving as a string this time must hit the same record.
	rec, err = env.doJSONRequest(h.AddFavorite, http.MethodPost, "/api/favorites", map[string]any{
		"productId": "7",
	}, user)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)

	var count int64
	require.NoError(t, env.DB.Model(&models.Favorite{}).Where("user_id = ?", user.ID).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestAddFavoriteServiceTarget(t *testing.T) {
	env := newTestEnv(t)
	h := &FavoriteHandler{DB: env.DB}
	user := env.createUser("test_user", models.RoleUser)

	rec, err := env.doJSONRequest(h.AddFavorite, http.MethodPost, "/api/favorites", map[string]any{
		"serviceId": 3,
	}, user)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, rec.Code)

	fav := decodeBody[models.Favorite](t, rec)
	require.Nil(t, fav.ProductID)
	require.NotNil(t, fav.ServiceID)
	require.Equal(t, uint(3), *fav.ServiceID)
}

func TestAddFavoriteRequiresTarget(t *testing.T) {
	env := newTestEnv(t)
	h := &FavoriteHandler{DB: env.DB}
	user := env.createUser("test_user", models.RoleUser)

	rec, err := env.doJSONRequest(h.AddFavorite, http.MethodPost, "/api/favorites", map[string]any{}, user)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFavoritesRequireAuth(t *testing.T) {
	env := newTestEnv(t)
	h := &FavoriteHandler{DB: env.DB}

	_, err := env.doJSONRequest(auth.RequireAuth(h.GetFavorites), http.MethodGet, "/api/favorites", nil, nil)
	requireHTTPError(t, err, http.StatusUnauthorized)
}

func TestGetFavoritesScopedToUser(t *testing.T) {
	env := newTestEnv(t)
	h := &FavoriteHandler{DB: env.DB}
	alice := env.createUser("alice", models.RoleUser)
	bob := env.createUser("bob", models.RoleUser)

	for _, pid := range []int{1, 2} {
		rec, err := env.doJSONRequest(h.AddFavorite, http.MethodPost, "/api/favorites", map[string]any{
			"productId": pid,
		}, alice)
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec, err := env.doJSONRequest(h.GetFavorites, http.MethodGet, "/api/favorites", nil, bob)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decodeBody[[]models.Favorite](t, rec))

	rec, err = env.doJSONRequest(h.GetFavorites, http.MethodGet, "/api/favorites", nil, alice)
	require.NoError(t, err)
	require.Len(t, decodeBody[[]models.Favorite](t, rec), 2)
}

func TestRemoveFavorite(t *testing.T) {
	env := newTestEnv(t)
	h := &FavoriteHandler{DB: env.DB}
	user := env.createUser("test_user", models.RoleUser)

	rec, err := env.doJSONRequest(h.AddFavorite, http.MethodPost, "/api/favorites", map[string]any{
		"productId": 7,
	}, user)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Removal is addressed by the product id the client holds, not the
	// favorite record's own id.
	rec, err = env.doJSONRequest(h.RemoveFavorite, http.MethodDelete, "/api/favorites/7", nil, user, "id", "7")
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec, err = env.doJSONRequest(h.RemoveFavorite, http.MethodDelete, "/api/favorites/7", nil, user, "id", "7")
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Favorite not found", decodeBody[map[string]string](t, rec)["message"])
}
