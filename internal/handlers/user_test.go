package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateUserRequiresAdmin(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createUser(t, "alice", "password", nil)
	token := env.tokenFor(t, user)

	w := env.request(t, http.MethodPost, "/api/users", token, map[string]interface{}{
		"username":  "bob",
		"password":  "password",
		"full_name": "Bob Martin",
		"phone":     "+0 000 000 000",
		"email":     "bob@example.com",
	})
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateUserRecordsAuthor(t *testing.T) {
	env := setupTestEnv(t)
	admin := env.createUser(t, "admin", "password", []string{"admin"})
	token := env.tokenFor(t, admin)

	w := env.request(t, http.MethodPost, "/api/users", token, map[string]interface{}{
		"username":  "jane.doe",
		"password":  "password",
		"full_name": "Jane Doe",
		"phone":     "0600000000",
		"email":     "jane@example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	require.Equal(t, "jane.doe", body["username"])
	require.Equal(t, float64(admin.ID), body["author_id"])
	require.Equal(t, true, body["is_active"])

	roles, ok := body["roles"].([]interface{})
	require.True(t, ok)
	require.Contains(t, roles, "user")
	require.NotContains(t, roles, "admin")
}

func TestCreateUserValidation(t *testing.T) {
	env := setupTestEnv(t)
	admin := env.createUser(t, "admin", "password", []string{"admin"})
	token := env.tokenFor(t, admin)

	base := func() map[string]interface{} {
		return map[string]interface{}{
			"username":  "bob",
			"password":  "password",
			"full_name": "Bob Martin",
			"phone":     "+0 000 000 000",
			"email":     "bob@example.com",
		}
	}

	t.Run("uppercase username", func(t *testing.T) {
		req := base()
		req["username"] = "Bob"
		w := env.request(t, http.MethodPost, "/api/users", token, req)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("username with digits", func(t *testing.T) {
		req := base()
		req["username"] = "bob123"
		w := env.request(t, http.MethodPost, "/api/users", token, req)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("short password", func(t *testing.T) {
		req := base()
		req["password"] = "ab"
		w := env.request(t, http.MethodPost, "/api/users", token, req)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bad phone", func(t *testing.T) {
		req := base()
		req["phone"] = "not-a-phone"
		w := env.request(t, http.MethodPost, "/api/users", token, req)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bad email", func(t *testing.T) {
		req := base()
		req["email"] = "not-an-email"
		w := env.request(t, http.MethodPost, "/api/users", token, req)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate username", func(t *testing.T) {
		w := env.request(t, http.MethodPost, "/api/users", token, base())
		require.Equal(t, http.StatusCreated, w.Code)
		w = env.request(t, http.MethodPost, "/api/users", token, base())
		require.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestUpdateUserSelfOnly(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.createUser(t, "alice", "password", nil)
	bob := env.createUser(t, "bob", "password", nil)
	aliceToken := env.tokenFor(t, alice)

	payload := map[string]interface{}{
		"full_name": "Alice Renamed",
		"phone":     "+0 000 000 000",
		"email":     "alice@example.com",
	}

	w := env.request(t, http.MethodPut, fmt.Sprintf("/api/users/%d", bob.ID), aliceToken, payload)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = env.request(t, http.MethodPut, fmt.Sprintf("/api/users/%d", alice.ID), aliceToken, payload)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Alice Renamed", decodeBody(t, w)["full_name"])
}

func TestPatchUserRolesRequiresAdmin(t *testing.T) {
	env := setupTestEnv(t)
	admin := env.createUser(t, "admin", "password", []string{"admin"})
	alice := env.createUser(t, "alice", "password", nil)
	adminToken := env.tokenFor(t, admin)
	aliceToken := env.tokenFor(t, alice)

	w := env.request(t, http.MethodPatch, fmt.Sprintf("/api/users/%d", alice.ID), aliceToken, map[string]interface{}{
		"roles": []string{"admin"},
	})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = env.request(t, http.MethodPatch, fmt.Sprintf("/api/users/%d", alice.ID), adminToken, map[string]interface{}{
		"roles": []string{"admin"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	roles := decodeBody(t, w)["roles"].([]interface{})
	require.Contains(t, roles, "admin")
}

func TestDeactivatedUserCannotLogIn(t *testing.T) {
	env := setupTestEnv(t)
	admin := env.createUser(t, "admin", "password", []string{"admin"})
	alice := env.createUser(t, "alice", "password", nil)
	adminToken := env.tokenFor(t, admin)

	w := env.request(t, http.MethodPatch, fmt.Sprintf("/api/users/%d", alice.ID), adminToken, map[string]interface{}{
		"is_active": false,
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, false, decodeBody(t, w)["is_active"])

	w = env.request(t, http.MethodPost, "/api/login", "", map[string]string{
		"username": "alice",
		"password": "password",
	})
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, "ACCESS_DENIED", decodeBody(t, w)["code"])
}

func TestListUsersFiltersByFullName(t *testing.T) {
	env := setupTestEnv(t)
	admin := env.createUser(t, "admin", "password", []string{"admin"})
	token := env.tokenFor(t, admin)

	for _, u := range []map[string]interface{}{
		{"username": "jane.doe", "full_name": "Jane Doe"},
		{"username": "john.doe", "full_name": "John Doe"},
		{"username": "alice", "full_name": "Alice Martin"},
	} {
		u["password"] = "password"
		u["phone"] = "0600000000"
		u["email"] = u["username"].(string) + "@example.com"
		w := env.request(t, http.MethodPost, "/api/users", token, u)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := env.request(t, http.MethodGet, "/api/users?name=doe", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	users := body["users"].([]interface{})
	require.Len(t, users, 2)

	pagination := body["pagination"].(map[string]interface{})
	require.Equal(t, float64(2), pagination["total"])
}
