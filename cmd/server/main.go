package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/georef/geo-reference-api/internal/config"
	"github.com/georef/geo-reference-api/internal/database"
	"github.com/georef/geo-reference-api/internal/handlers"
	"github.com/georef/geo-reference-api/internal/middleware"
	"github.com/georef/geo-reference-api/internal/repository"
	"github.com/georef/geo-reference-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed the bootstrap admin on an empty database
	if err := database.Seed(cfg); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	db := database.GetDB()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	continentRepo := repository.NewContinentRepository(db)
	countryRepo := repository.NewCountryRepository(db)
	cityRepo := repository.NewCityRepository(db)
	portRepo := repository.NewPortRepository(db)

	// Services
	jwtSecret := []byte(cfg.JWTSecret)
	tokenTTL := time.Duration(cfg.TokenTTLHours) * time.Hour
	authService := services.NewAuthService(userRepo, jwtSecret, tokenTTL)
	userService := services.NewUserService(userRepo)
	continentService := services.NewContinentService(continentRepo)
	countryService := services.NewCountryService(countryRepo, continentRepo)
	cityService := services.NewCityService(cityRepo, countryRepo)
	portService := services.NewPortService(portRepo, cityRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	continentHandler := handlers.NewContinentHandler(continentService)
	countryHandler := handlers.NewCountryHandler(countryService)
	cityHandler := handlers.NewCityHandler(cityService)
	portHandler := handlers.NewPortHandler(portService)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Geo Reference API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes
		api.POST("/login", authHandler.Login)
		api.GET("/me", middleware.RequireAuth(jwtSecret), authHandler.GetCurrentUser)

		// User routes (protected; creation is admin-only)
		users := api.Group("/users")
		users.Use(middleware.RequireAuth(jwtSecret))
		{
			users.GET("", userHandler.ListUsers)
			users.POST("", middleware.RequireAdmin(), userHandler.CreateUser)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.PATCH("/:id", userHandler.PatchUser)
		}

		// Continent routes (protected)
		continents := api.Group("/continents")
		continents.Use(middleware.RequireAuth(jwtSecret))
		{
			continents.GET("", continentHandler.ListContinents)
			continents.POST("", continentHandler.CreateContinent)
			continents.GET("/:id", continentHandler.GetContinent)
			continents.PUT("/:id", continentHandler.UpdateContinent)
			continents.PATCH("/:id", continentHandler.PatchContinent)
			continents.DELETE("/:id", continentHandler.DeleteContinent)
		}

		// Country routes (protected)
		countries := api.Group("/countries")
		countries.Use(middleware.RequireAuth(jwtSecret))
		{
			countries.GET("", countryHandler.ListCountries)
			countries.POST("", countryHandler.CreateCountry)
			countries.GET("/:id", countryHandler.GetCountry)
			countries.PUT("/:id", countryHandler.UpdateCountry)
			countries.PATCH("/:id", countryHandler.PatchCountry)
			countries.DELETE("/:id", countryHandler.DeleteCountry)
		}

		// City routes (protected)
		cities := api.Group("/cities")
		cities.Use(middleware.RequireAuth(jwtSecret))
		{
			cities.GET("", cityHandler.ListCities)
			cities.POST("", cityHandler.CreateCity)
			cities.GET("/:id", cityHandler.GetCity)
			cities.PUT("/:id", cityHandler.UpdateCity)
			cities.PATCH("/:id", cityHandler.PatchCity)
			cities.DELETE("/:id", cityHandler.DeleteCity)
		}

		// Port routes (protected)
		ports := api.Group("/ports")
		ports.Use(middleware.RequireAuth(jwtSecret))
		{
			ports.GET("", portHandler.ListPorts)
			ports.POST("", portHandler.CreatePort)
			ports.GET("/:id", portHandler.GetPort)
			ports.PUT("/:id", portHandler.UpdatePort)
			ports.PATCH("/:id", portHandler.PatchPort)
			ports.DELETE("/:id", portHandler.DeletePort)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
