package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	JWTSecret     string
	TokenTTLHours int
	GinMode       string
	AdminUsername string
	AdminPassword string
}

func Load() *Config {
	// Optional .env for local development; real environments set vars directly.
	_ = godotenv.Load()

	return &Config{
		DBDriver:      getEnv("DB_DRIVER", "mysql"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "3306"),
		DBUser:        getEnv("DB_USER", "geouser"),
		DBPassword:    getEnv("DB_PASSWORD", "geopassword"),
		DBName:        getEnv("DB_NAME", "geo_reference"),
		JWTSecret:     getEnv("JWT_SECRET", "default-secret-key-change-me"),
		TokenTTLHours: getEnvInt("TOKEN_TTL_HOURS", 24),
		GinMode:       getEnv("GIN_MODE", "debug"),
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin-password"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}
