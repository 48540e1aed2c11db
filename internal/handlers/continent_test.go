package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/georef/geo-reference-api/internal/models"
)

func TestCreateContinent(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createUser(t, "alice", "password", nil)
	token := env.tokenFor(t, user)

	w := env.request(t, http.MethodPost, "/api/continents", token, map[string]string{
		"name": "Europe",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	require.Equal(t, "Europe", body["name"])
	require.Equal(t, "europe", body["slug"])
	require.Equal(t, float64(user.ID), body["author_id"])
}

func TestCreateContinentDuplicateName(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createUser(t, "alice", "password", nil)
	token := env.tokenFor(t, user)

	w := env.request(t, http.MethodPost, "/api/continents", token, map[string]string{"name": "Asia"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.request(t, http.MethodPost, "/api/continents", token, map[string]string{"name": "Asia"})
	require.Equal(t, http.StatusConflict, w.Code)

	body := decodeBody(t, w)
	require.Equal(t, "CONFLICT", body["code"])
}

func TestCreateContinentRejectsBlankName(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createUser(t, "alice", "password", nil)
	token := env.tokenFor(t, user)

	w := env.request(t, http.MethodPost, "/api/continents", token, map[string]string{"name": "  "})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRenameContinentRecomputesSlug(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createUser(t, "alice", "password", nil)
	token := env.tokenFor(t, user)

	w := env.request(t, http.MethodPost, "/api/continents", token, map[string]string{"name": "Europe"})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeBody(t, w)["id"].(float64)

	w = env.request(t, http.MethodPut, fmt.Sprintf("/api/continents/%d", int(id)), token, map[string]string{
		"name": "South America",
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	require.Equal(t, "South America", body["name"])
	require.Equal(t, "south-america", body["slug"])
}

func TestPatchContinentWithoutNameReturnsCurrent(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createUser(t, "alice", "password", nil)
	token := env.tokenFor(t, user)

	w := env.request(t, http.MethodPost, "/api/continents", token, map[string]string{"name": "Africa"})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeBody(t, w)["id"].(float64)

	w = env.request(t, http.MethodPatch, fmt.Sprintf("/api/continents/%d", int(id)), token, map[string]string{})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	require.Equal(t, "Africa", body["name"])
	require.Equal(t, "africa", body["slug"])
}

func TestDeleteContinentBlockedWhileCountriesRemain(t *testing.T) {
	env := setupTestEnv(t)
	admin := env.createUser(t, "admin", "password", []string{"admin"})
	token := env.tokenFor(t, admin)

	w := env.request(t, http.MethodPost, "/api/continents", token, map[string]string{"name": "Europe"})
	require.Equal(t, http.StatusCreated, w.Code)
	continentID := decodeBody(t, w)["id"].(float64)

	w = env.request(t, http.MethodPost, "/api/countries", token, map[string]interface{}{
		"name":         "France",
		"continent_id": continentID,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	countryID := decodeBody(t, w)["id"].(float64)

	w = env.request(t, http.MethodDelete, fmt.Sprintf("/api/continents/%d", int(continentID)), token, nil)
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, "CONFLICT", decodeBody(t, w)["code"])

	// A soft-deleted country still blocks removal; only a purge clears it.
	w = env.request(t, http.MethodDelete, fmt.Sprintf("/api/countries/%d", int(countryID)), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = env.request(t, http.MethodDelete, fmt.Sprintf("/api/continents/%d", int(continentID)), token, nil)
	require.Equal(t, http.StatusConflict, w.Code)

	w = env.request(t, http.MethodDelete, fmt.Sprintf("/api/countries/%d?purge=true", int(countryID)), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodDelete, fmt.Sprintf("/api/continents/%d", int(continentID)), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.Continent{}).Count(&count).Error)
	require.Zero(t, count)
}
