package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverSQLite   = "sqlite"
	StorageDriverMemory   = "memory"
)

var globalConfig *Config

func Global() *Config {
	return globalConfig
}

func SetGlobal(cfg *Config) {
	globalConfig = cfg
}

type Config struct {
	Env           string `env:"ENV" env-required:"true"`
	StorageDriver string `env:"STORAGE_DRIVER" env-default:"postgres"`
	HTTP          HTTPConfig
	Postgres      PostgresConfig
	SQLite        SQLiteConfig
	JWT           JWTConfig
	Tasks         TasksConfig
}

type HTTPConfig struct {
	Host              string        `env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port              string        `env:"HTTP_PORT" env-default:"5000"`
	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"5s"`
	ShutdownTimeout   time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
	CORSOrigins       []string      `env:"HTTP_CORS_ORIGINS" env-separator:"," env-default:"http://localhost:3000"`
}

type PostgresConfig struct {
	Host           string        `env:"POSTGRES_HOST"`
	Port           int           `env:"POSTGRES_PORT" env-default:"5432"`
	Username       string        `env:"POSTGRES_USERNAME"`
	Password       string        `env:"POSTGRES_PASSWORD"`
	Database       string        `env:"POSTGRES_DATABASE"`
	SSLMode        string        `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	ConnectTimeout time.Duration `env:"POSTGRES_CONNECT_TIMEOUT" env-default:"10s"`
	PingTimeout    time.Duration `env:"POSTGRES_PING_TIMEOUT" env-default:"10s"`
	Migrate        bool          `env:"POSTGRES_MIGRATE" env-default:"true"`
}

// URL returns the connection string understood by pgxpool.ParseConfig.
func (c PostgresConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Username, c.Password, c.Host,
		c.Port, c.Database, c.SSLMode)
}

type SQLiteConfig struct {
	DSN string `env:"SQLITE_DSN" env-default:"file:go-task-tracker.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"`
}

type JWTConfig struct {
	Issuer     string        `env:"JWT_ISSUER" env-default:"go-task-tracker"`
	SigningKey string        `env:"JWT_SIGNING_KEY" env-required:"true"`
	TokenTTL   time.Duration `env:"JWT_TOKEN_TTL" env-default:"24h"`
}

type TasksConfig struct {
	DefaultLimit int `env:"TASKS_DEFAULT_LIMIT" env-default:"10"`
	MaxLimit     int `env:"TASKS_MAX_LIMIT" env-default:"100"`
}

// Validate checks the values cleanenv cannot express with struct tags.
func (c *Config) Validate() error {
	switch c.Env {
	case EnvDev, EnvProd, EnvLocal:
	default:
		return fmt.Errorf("unknown env: %s", c.Env)
	}

	switch c.StorageDriver {
	case StorageDriverPostgres:
		if c.Postgres.Host == "" || c.Postgres.Username == "" || c.Postgres.Database == "" {
			return errors.New("postgres host, username and database are required")
		}
	case StorageDriverSQLite:
		if c.SQLite.DSN == "" {
			return errors.New("sqlite dsn is required")
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("unknown storage driver: %s", c.StorageDriver)
	}

	if c.JWT.SigningKey == "" {
		return errors.New("jwt signing key is required")
	}
	if c.JWT.TokenTTL <= 0 {
		return errors.New("jwt token ttl must be positive")
	}
	if c.Tasks.DefaultLimit <= 0 || c.Tasks.MaxLimit <= 0 {
		return errors.New("task limits must be positive")
	}
	if c.Tasks.DefaultLimit > c.Tasks.MaxLimit {
		return errors.New("default task limit exceeds max limit")
	}
	return nil
}
