package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/georef/geo-reference-api/internal/models"
)

func (e *testEnv) createContinent(t *testing.T, token, name string) uint64 {
	t.Helper()
	w := e.request(t, http.MethodPost, "/api/continents", token, map[string]string{"name": name})
	require.Equal(t, http.StatusCreated, w.Code)
	return uint64(decodeBody(t, w)["id"].(float64))
}

func (e *testEnv) createCountry(t *testing.T, token, name string, continentID uint64) uint64 {
	t.Helper()
	w := e.request(t, http.MethodPost, "/api/countries", token, map[string]interface{}{
		"name":         name,
		"continent_id": continentID,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	return uint64(decodeBody(t, w)["id"].(float64))
}

func (e *testEnv) createCity(t *testing.T, token, name string, countryID uint64) uint64 {
	t.Helper()
	w := e.request(t, http.MethodPost, "/api/cities", token, map[string]interface{}{
		"name":       name,
		"country_id": countryID,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	return uint64(decodeBody(t, w)["id"].(float64))
}

func TestCreateCountryRequiresContinent(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createUser(t, "alice", "password", nil)
	token := env.tokenFor(t, user)

	// No continent reference at all
	w := env.request(t, http.MethodPost, "/api/countries", token, map[string]interface{}{
		"name": "France",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "INVALID_INPUT", decodeBody(t, w)["code"])

	// A reference to a continent that does not exist
	w = env.request(t, http.MethodPost, "/api/countries", token, map[string]interface{}{
		"name":         "France",
		"continent_id": 999,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateCountryAppearsInContinent(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createUser(t, "alice", "password", nil)
	token := env.tokenFor(t, user)

	continentID := env.createContinent(t, token, "Europe")

	w := env.request(t, http.MethodPost, "/api/countries", token, map[string]interface{}{
		"name":         "France",
		"continent_id": continentID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	require.Equal(t, "france", body["slug"])
	require.Equal(t, float64(continentID), body["continent_id"])
	continent, ok := body["continent"].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, "Europe", continent["name"])

	w = env.request(t, http.MethodGet, fmt.Sprintf("/api/continents/%d", continentID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	countries, ok := decodeBody(t, w)["countries"].([]interface{})
	require.True(t, ok)
	require.Len(t, countries, 1)
	require.Equal(t, "France", countries[0].(map[string]interface{})["name"])
}

func TestCreateCountryDuplicateName(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createUser(t, "alice", "password", nil)
	token := env.tokenFor(t, user)

	continentID := env.createContinent(t, token, "Europe")
	env.createCountry(t, token, "France", continentID)

	w := env.request(t, http.MethodPost, "/api/countries", token, map[string]interface{}{
		"name":         "France",
		"continent_id": continentID,
	})
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestSoftDeleteCountryDoesNotTouchCities(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createUser(t, "alice", "password", nil)
	token := env.tokenFor(t, user)

	continentID := env.createContinent(t, token, "Europe")
	countryID := env.createCountry(t, token, "France", continentID)
	cityID := env.createCity(t, token, "Paris", countryID)

	w := env.request(t, http.MethodDelete, fmt.Sprintf("/api/countries/%d", countryID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var country models.Country
	require.NoError(t, env.db.First(&country, countryID).Error)
	require.True(t, country.IsDeleted)

	var city models.City
	require.NoError(t, env.db.First(&city, cityID).Error)
	require.False(t, city.IsDeleted)
}

func TestListCountriesExcludesSoftDeleted(t *testing.T) {
	env := setupTestEnv(t)
	admin := env.createUser(t, "admin", "password", []string{"admin"})
	user := env.createUser(t, "alice", "password", nil)
	adminToken := env.tokenFor(t, admin)
	userToken := env.tokenFor(t, user)

	continentID := env.createContinent(t, userToken, "Europe")
	env.createCountry(t, userToken, "France", continentID)
	spainID := env.createCountry(t, userToken, "Spain", continentID)

	w := env.request(t, http.MethodDelete, fmt.Sprintf("/api/countries/%d", spainID), userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/countries", userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	countries := decodeBody(t, w)["countries"].([]interface{})
	require.Len(t, countries, 1)
	require.Equal(t, "France", countries[0].(map[string]interface{})["name"])

	// include_deleted is ignored for a non-admin
	w = env.request(t, http.MethodGet, "/api/countries?include_deleted=true", userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, decodeBody(t, w)["countries"].([]interface{}), 1)

	w = env.request(t, http.MethodGet, "/api/countries?include_deleted=true", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, decodeBody(t, w)["countries"].([]interface{}), 2)
}

func TestPurgeCountryCascades(t *testing.T) {
	env := setupTestEnv(t)
	admin := env.createUser(t, "admin", "password", []string{"admin"})
	user := env.createUser(t, "alice", "password", nil)
	adminToken := env.tokenFor(t, admin)
	userToken := env.tokenFor(t, user)

	continentID := env.createContinent(t, adminToken, "Europe")
	countryID := env.createCountry(t, adminToken, "France", continentID)
	cityID := env.createCity(t, adminToken, "Le Havre", countryID)

	w := env.request(t, http.MethodPost, "/api/ports", adminToken, map[string]interface{}{
		"name":    "Port du Havre",
		"city_id": cityID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Only admins may purge
	w = env.request(t, http.MethodDelete, fmt.Sprintf("/api/countries/%d?purge=true", countryID), userToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = env.request(t, http.MethodDelete, fmt.Sprintf("/api/countries/%d?purge=true", countryID), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var countries, cities, ports int64
	require.NoError(t, env.db.Model(&models.Country{}).Count(&countries).Error)
	require.NoError(t, env.db.Model(&models.City{}).Count(&cities).Error)
	require.NoError(t, env.db.Model(&models.Port{}).Count(&ports).Error)
	require.Zero(t, countries)
	require.Zero(t, cities)
	require.Zero(t, ports)

	// The continent itself is untouched
	var continent models.Continent
	require.NoError(t, env.db.First(&continent, continentID).Error)
}
