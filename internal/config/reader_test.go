package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setMinimalEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ENV", EnvLocal)
	t.Setenv("STORAGE_DRIVER", StorageDriverMemory)
	t.Setenv("JWT_SIGNING_KEY", "test-signing-key")
}

func TestEnvReader_Defaults(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := NewEnvReader().Read()
	require.NoError(t, err)

	assert.Equal(t, EnvLocal, cfg.Env)
	assert.Equal(t, StorageDriverMemory, cfg.StorageDriver)
	assert.Equal(t, "5000", cfg.HTTP.Port)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, "go-task-tracker", cfg.JWT.Issuer)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TokenTTL)
	assert.Equal(t, 10, cfg.Tasks.DefaultLimit)
	assert.Equal(t, 100, cfg.Tasks.MaxLimit)
}

func TestEnvReader_Overrides(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv("HTTP_CORS_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("JWT_TOKEN_TTL", "1h")
	t.Setenv("TASKS_MAX_LIMIT", "50")

	cfg, err := NewEnvReader().Read()
	require.NoError(t, err)

	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, time.Hour, cfg.JWT.TokenTTL)
	assert.Equal(t, 50, cfg.Tasks.MaxLimit)
}

func TestEnvReader_MissingSigningKey(t *testing.T) {
	t.Setenv("ENV", EnvLocal)
	t.Setenv("STORAGE_DRIVER", StorageDriverMemory)
	t.Setenv("JWT_SIGNING_KEY", "unset-below")
	require.NoError(t, os.Unsetenv("JWT_SIGNING_KEY"))

	_, err := NewEnvReader().Read()
	require.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Env:           EnvProd,
			StorageDriver: StorageDriverPostgres,
			Postgres: PostgresConfig{
				Host:     "localhost",
				Username: "postgres",
				Database: "tasks",
			},
			JWT:   JWTConfig{SigningKey: "k", TokenTTL: time.Hour},
			Tasks: TasksConfig{DefaultLimit: 10, MaxLimit: 100},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "unknown env", mutate: func(c *Config) { c.Env = "staging" }, wantErr: true},
		{name: "unknown driver", mutate: func(c *Config) { c.StorageDriver = "mongo" }, wantErr: true},
		{name: "postgres without host", mutate: func(c *Config) { c.Postgres.Host = "" }, wantErr: true},
		{name: "memory without postgres", mutate: func(c *Config) {
			c.StorageDriver = StorageDriverMemory
			c.Postgres = PostgresConfig{}
		}},
		{name: "sqlite with dsn", mutate: func(c *Config) {
			c.StorageDriver = StorageDriverSQLite
			c.SQLite.DSN = ":memory:"
		}},
		{name: "sqlite without dsn", mutate: func(c *Config) { c.StorageDriver = StorageDriverSQLite }, wantErr: true},
		{name: "empty signing key", mutate: func(c *Config) { c.JWT.SigningKey = "" }, wantErr: true},
		{name: "zero ttl", mutate: func(c *Config) { c.JWT.TokenTTL = 0 }, wantErr: true},
		{name: "zero max limit", mutate: func(c *Config) { c.Tasks.MaxLimit = 0 }, wantErr: true},
		{name: "default above max", mutate: func(c *Config) { c.Tasks.DefaultLimit = 200 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPostgresConfig_URL(t *testing.T) {
	cfg := PostgresConfig{
		Host:     "db",
		Port:     5432,
		Username: "u",
		Password: "p",
		Database: "tasks",
		SSLMode:  "disable",
	}
	assert.Equal(t, "postgres://u:p@db:5432/tasks?sslmode=disable", cfg.URL())
}
