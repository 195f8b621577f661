package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// Config is the full runtime configuration, read from the environment.
type Config struct {
	Env             string
	Port            string
	SkipPortBind    bool
	FrontendURL     string
	ShutdownTimeout time.Duration

	Database DatabaseConfig
	Redis    RedisConfig
	Log      LogConfig
}

// DatabaseConfig describes how to reach the catalog backend.
type DatabaseConfig struct {
	Driver          string
	URL             string
	SSL             bool
	SSLVerify       bool
	ConnectTimeout  time.Duration
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig enables the list cache when Addr is set.
type RedisConfig struct {
	Addr     string
	Password string
	TTL      time.Duration
}

type LogConfig struct {
	Level string
	File  string
}

// IsProduction reports whether diagnostics must be hidden from clients.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	// .env is optional; real deployments inject the environment directly
	_ = godotenv.Load()
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", EnvDevelopment)
	v.SetDefault("PORT", "3000")
	v.SetDefault("SKIP_PORT_BIND", false)
	v.SetDefault("FRONTEND_URL", "*")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	v.SetDefault("DATABASE_DRIVER", "postgres")
	v.SetDefault("DATABASE_URL", "host=localhost port=5432 user=postgres dbname=games password=postgres")
	v.SetDefault("DATABASE_SSL_VERIFY", false)
	v.SetDefault("DATABASE_CONNECT_TIMEOUT", "10s")
	v.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	v.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	v.SetDefault("DATABASE_CONN_MAX_LIFETIME", "30m")

	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("CACHE_TTL", "5m")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "logs/app.log")
	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Env:             strings.ToLower(v.GetString("APP_ENV")),
		Port:            v.GetString("PORT"),
		SkipPortBind:    v.GetBool("SKIP_PORT_BIND"),
		FrontendURL:     v.GetString("FRONTEND_URL"),
		ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		Database: DatabaseConfig{
			Driver:          strings.ToLower(v.GetString("DATABASE_DRIVER")),
			URL:             v.GetString("DATABASE_URL"),
			SSLVerify:       v.GetBool("DATABASE_SSL_VERIFY"),
			ConnectTimeout:  v.GetDuration("DATABASE_CONNECT_TIMEOUT"),
			MaxOpenConns:    v.GetInt("DATABASE_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DATABASE_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DATABASE_CONN_MAX_LIFETIME"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_URL"),
			Password: v.GetString("REDIS_PASSWORD"),
			TTL:      v.GetDuration("CACHE_TTL"),
		},
		Log: LogConfig{
			Level: strings.ToLower(v.GetString("LOG_LEVEL")),
			File:  v.GetString("LOG_FILE"),
		},
	}

	// TLS to the backend is on by default only in production
	if v.IsSet("DATABASE_SSL") {
		cfg.Database.SSL = v.GetBool("DATABASE_SSL")
	} else {
		cfg.Database.SSL = cfg.IsProduction()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the server cannot start with.
func (c *Config) Validate() error {
	switch c.Env {
	case EnvDevelopment, EnvProduction, EnvTest:
	default:
		return fmt.Errorf("invalid APP_ENV %q", c.Env)
	}

	if !c.SkipPortBind && c.Port == "" {
		return fmt.Errorf("PORT is required unless SKIP_PORT_BIND is set")
	}

	if c.FrontendURL != "*" &&
		!strings.HasPrefix(c.FrontendURL, "http://") &&
		!strings.HasPrefix(c.FrontendURL, "https://") {
		return fmt.Errorf("FRONTEND_URL must be * or an http(s) origin, got %q", c.FrontendURL)
	}

	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.Database.Driver)
	}
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Database.ConnectTimeout <= 0 {
		return fmt.Errorf("DATABASE_CONNECT_TIMEOUT must be positive")
	}

	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}
