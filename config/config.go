package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the roadwatch service
type Config struct {
	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Server configuration
	Port string

	// Application secret
	SecretKey string
}

// Load loads configuration from a .env file (if present) and the environment
func Load() *Config {
	godotenv.Load()

	return &Config{
		// Database defaults
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "server"),
		DBPassword: getEnv("DB_PASSWORD", "secret"),
		DBName:     getEnv("DB_NAME", "roadwatch"),

		// Server defaults
		Port: getEnv("PORT", "8080"),

		SecretKey: getEnv("SECRET_KEY", "dev-key-please-change"),
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
