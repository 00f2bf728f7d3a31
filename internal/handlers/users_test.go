package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sumafit/medstore/internal/middleware/auth"
	"github.com/sumafit/medstore/internal/models"
)

func TestChangeRole(t *testing.T) {
	env := newTestEnv(t)
	h := &UserAdminHandler{DB: env.DB}
	boss := env.createUser("boss", models.RoleSuperAdmin)
	target := env.createUser("target", models.RoleUser)

	path := fmt.Sprintf("/api/users/%d/role", target.ID)
	rec, err := env.doJSONRequest(h.ChangeRole, http.MethodPut, path, map[string]string{
		"role": models.RoleAdmin,
	}, boss, "id", fmt.Sprint(target.ID))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)

	var stored models.User
	require.NoError(t, env.DB.First(&stored, target.ID).Error)
	require.Equal(t, models.RoleAdmin, stored.Role)

	rec, err = env.doJSONRequest(h.ChangeRole, http.MethodPut, path, map[string]string{
		"role": "overlord",
	}, boss, "id", fmt.Sprint(target.ID))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec, err = env.doJSONRequest(h.ChangeRole, http.MethodPut, "/api/users/999/role", map[string]string{
		"role": models.RoleUser,
	}, boss, "id", "999")
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSuperAdminGateOnRoleChange(t *testing.T) {
	env := newTestEnv(t)
	h := &UserAdminHandler{DB: env.DB}
	admin := env.createUser("boss", models.RoleAdmin)
	target := env.createUser("target", models.RoleUser)

	// A plain admin cannot grant roles; that is reserved for super admins.
	_, err := env.doJSONRequest(auth.RequireSuperAdmin(h.ChangeRole), http.MethodPut, "/api/users/2/role", map[string]string{
		"role": models.RoleAdmin,
	}, admin, "id", fmt.Sprint(target.ID))
	requireHTTPError(t, err, http.StatusForbidden)
}

func TestDeleteUser(t *testing.T) {
	env := newTestEnv(t)
	h := &UserAdminHandler{DB: env.DB}
	boss := env.createUser("boss", models.RoleSuperAdmin)
	target := env.createUser("target", models.RoleUser)

	rec, err := env.doJSONRequest(h.DeleteUser, http.MethodDelete, "/api/users/2", nil, boss, "id", fmt.Sprint(target.ID))
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, rec.Code)

	// Self-deletion is refused.
	rec, err = env.doJSONRequest(h.DeleteUser, http.MethodDelete, "/api/users/1", nil, boss, "id", fmt.Sprint(boss.ID))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetUsers(t *testing.T) {
	env := newTestEnv(t)
	h := &UserAdminHandler{DB: env.DB}
	env.createUser("alice", models.RoleUser)
	env.createUser("bob", models.RoleUser)

	rec, err := env.doJSONRequest(h.GetUsers, http.MethodGet, "/api/users", nil, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decodeBody[[]models.User](t, rec), 2)
	// Hashes stay out of the listing.
	require.NotContains(t, rec.Body.String(), "$scrypt$")
}
