package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/georef/geo-reference-api/internal/middleware"
	"github.com/georef/geo-reference-api/internal/models"
	"github.com/georef/geo-reference-api/internal/repository"
	"github.com/georef/geo-reference-api/internal/services"
)

var testJWTSecret = []byte("test-secret")

type testEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	authService *services.AuthService
	userService *services.UserService
}

// setupTestEnv builds the full router against an in-memory database,
// mirroring the wiring in cmd/server.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A pooled connection would get its own empty in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Continent{},
		&models.Country{},
		&models.City{},
		&models.Port{},
	))

	userRepo := repository.NewUserRepository(db)
	continentRepo := repository.NewContinentRepository(db)
	countryRepo := repository.NewCountryRepository(db)
	cityRepo := repository.NewCityRepository(db)
	portRepo := repository.NewPortRepository(db)

	authService := services.NewAuthService(userRepo, testJWTSecret, time.Hour)
	userService := services.NewUserService(userRepo)
	continentService := services.NewContinentService(continentRepo)
	countryService := services.NewCountryService(countryRepo, continentRepo)
	cityService := services.NewCityService(cityRepo, countryRepo)
	portService := services.NewPortService(portRepo, cityRepo)

	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(userService)
	continentHandler := NewContinentHandler(continentService)
	countryHandler := NewCountryHandler(countryService)
	cityHandler := NewCityHandler(cityService)
	portHandler := NewPortHandler(portService)

	r := gin.New()
	api := r.Group("/api")

	api.POST("/login", authHandler.Login)
	api.GET("/me", middleware.RequireAuth(testJWTSecret), authHandler.GetCurrentUser)

	users := api.Group("/users")
	users.Use(middleware.RequireAuth(testJWTSecret))
	users.GET("", userHandler.ListUsers)
	users.POST("", middleware.RequireAdmin(), userHandler.CreateUser)
	users.GET("/:id", userHandler.GetUser)
	users.PUT("/:id", userHandler.UpdateUser)
	users.PATCH("/:id", userHandler.PatchUser)

	continents := api.Group("/continents")
	continents.Use(middleware.RequireAuth(testJWTSecret))
	continents.GET("", continentHandler.ListContinents)
	continents.POST("", continentHandler.CreateContinent)
	continents.GET("/:id", continentHandler.GetContinent)
	continents.PUT("/:id", continentHandler.UpdateContinent)
	continents.PATCH("/:id", continentHandler.PatchContinent)
	continents.DELETE("/:id", continentHandler.DeleteContinent)

	countries := api.Group("/countries")
	countries.Use(middleware.RequireAuth(testJWTSecret))
	countries.GET("", countryHandler.ListCountries)
	countries.POST("", countryHandler.CreateCountry)
	countries.GET("/:id", countryHandler.GetCountry)
	countries.PUT("/:id", countryHandler.UpdateCountry)
	countries.PATCH("/:id", countryHandler.PatchCountry)
	countries.DELETE("/:id", countryHandler.DeleteCountry)

	cities := api.Group("/cities")
	cities.Use(middleware.RequireAuth(testJWTSecret))
	cities.GET("", cityHandler.ListCities)
	cities.POST("", cityHandler.CreateCity)
	cities.GET("/:id", cityHandler.GetCity)
	cities.PUT("/:id", cityHandler.UpdateCity)
	cities.PATCH("/:id", cityHandler.PatchCity)
	cities.DELETE("/:id", cityHandler.DeleteCity)

	ports := api.Group("/ports")
	ports.Use(middleware.RequireAuth(testJWTSecret))
	ports.GET("", portHandler.ListPorts)
	ports.POST("", portHandler.CreatePort)
	ports.GET("/:id", portHandler.GetPort)
	ports.PUT("/:id", portHandler.UpdatePort)
	ports.PATCH("/:id", portHandler.PatchPort)
	ports.DELETE("/:id", portHandler.DeletePort)

	return &testEnv{
		db:          db,
		router:      r,
		authService: authService,
		userService: userService,
	}
}

// createUser registers a user through the service layer so the password is
// properly hashed. Usernames are lowercase words per the validation rules.
func (e *testEnv) createUser(t *testing.T, username, password string, roles []string) *models.User {
	t.Helper()
	user, err := e.userService.CreateUser(services.CreateUserInput{
		Username: username,
		Password: password,
		FullName: "Test " + username,
		Phone:    "+0 000 000 000",
		Email:    username + "@example.com",
		Roles:    roles,
	})
	require.NoError(t, err)
	return user
}

func (e *testEnv) tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := e.authService.IssueToken(user)
	require.NoError(t, err)
	return token
}

// request performs an HTTP request against the test router. A non-empty
// token is sent as a Bearer credential.
func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
