package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// DefaultJWTSecret is the development fallback signing secret. It is
// deliberately weak; the server logs a warning whenever it is in use.
const DefaultJWTSecret = "meinKey"

type Config struct {
	ServerPort int
	Database   DatabaseConfig
	Auth       AuthConfig
	MQURL      string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	UseSSL   bool
}

// AuthConfig carries the token signing secret and the operator identity
// checked by the login route. When AdminPasswordHash is set it takes
// precedence over AdminPassword.
type AuthConfig struct {
	JWTSecret         string
	AdminUsername     string
	AdminPassword     string
	AdminPasswordHash string
}

// UsingDefaultSecret reports whether the weak development secret is active.
func (a AuthConfig) UsingDefaultSecret() bool {
	return a.JWTSecret == DefaultJWTSecret
}

func LoadConfig() Config {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}

	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnvInt("DB_PORT", 5432),
		User:     getEnv("DB_USER", "adressbuch"),
		Password: getEnv("DB_PASSWORD", "password"),
		DBName:   getEnv("DB_NAME", "adressbuch_db"),
		UseSSL:   getEnv("DB_SSL", "") == "true",
	}

	authConfig := AuthConfig{
		JWTSecret:         getEnv("JWT_SECRET", DefaultJWTSecret),
		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:     getEnv("ADMIN_PASSWORD", "password"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
	}

	return Config{
		ServerPort: getEnvInt("SERVER_PORT", 8080),
		Database:   dbConfig,
		Auth:       authConfig,
		MQURL:      getEnv("MQ_URL", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		var value int
		fmt.Sscanf(valueStr, "%d", &value)
		return value
	}
	return defaultValue
}
