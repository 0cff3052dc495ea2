package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// clearEnv unsets every config variable, restoring originals when the
// test ends. getEnv treats empty-but-set values as set, so the vars
// must be removed outright.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSL",
		"SERVER_PORT", "JWT_SECRET", "ADMIN_USERNAME", "ADMIN_PASSWORD",
		"ADMIN_PASSWORD_HASH", "MQ_URL", "ENV",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := LoadConfig()

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "adressbuch", cfg.Database.User)
	assert.Equal(t, "adressbuch_db", cfg.Database.DBName)
	assert.False(t, cfg.Database.UseSSL)
	assert.Equal(t, DefaultJWTSecret, cfg.Auth.JWTSecret)
	assert.True(t, cfg.Auth.UsingDefaultSecret())
	assert.Equal(t, "admin", cfg.Auth.AdminUsername)
	assert.Equal(t, "password", cfg.Auth.AdminPassword)
	assert.Empty(t, cfg.MQURL)
}

func TestLoadConfig_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6432")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("JWT_SECRET", "prod-secret")
	t.Setenv("ADMIN_USERNAME", "operator")
	t.Setenv("MQ_URL", "amqp://broker:5672")

	cfg := LoadConfig()

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 6432, cfg.Database.Port)
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "prod-secret", cfg.Auth.JWTSecret)
	assert.False(t, cfg.Auth.UsingDefaultSecret())
	assert.Equal(t, "operator", cfg.Auth.AdminUsername)
	assert.Equal(t, "amqp://broker:5672", cfg.MQURL)
}
