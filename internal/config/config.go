// Package config loads server configuration from the environment, an
// optional .env file and an optional config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds everything the server needs at startup
type Config struct {
	Environment      string
	Server           ServerConfig
	Database         DatabaseConfig
	Feed             FeedConfig
	Log              LogConfig
	JWT              JWTConfig
	RateLimit        RateLimitConfig
	Redis            RedisConfig
	Storage          StorageConfig
	Tracing          TracingConfig
	CORS             CORSConfig
	RequiredServices []string
}

type ServerConfig struct {
	Port int
}

type DatabaseConfig struct {
	Driver          string
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	LogSQL          bool
}

type FeedConfig struct {
	PageSize    int
	MaxPageSize int
}

type LogConfig struct {
	Level string
	File  string
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// RedisConfig is disabled when Host is empty
type RedisConfig struct {
	Host     string
	Port     int
	Password string
}

func (r RedisConfig) Enabled() bool { return r.Host != "" }

type StorageConfig struct {
	Bucket string
	Region string
	CDNURL string
}

func (s StorageConfig) Enabled() bool { return s.Bucket != "" && s.Region != "" }

type TracingConfig struct {
	Enabled      bool
	Endpoint     string
	SamplingRate float64
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads .env (if present), then the environment and config.yaml.
// Environment variables use the ONLYCODES_ prefix with dots replaced by
// underscores, e.g. ONLYCODES_DATABASE_DRIVER.
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("ONLYCODES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".onlycodes"))
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", EnvDevelopment)
	v.SetDefault("server.port", 8787)

	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.url", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "onlycodes")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)
	v.SetDefault("database.log_sql", false)

	v.SetDefault("feed.page_size", 10)
	v.SetDefault("feed.max_page_size", 50)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "logs/server.log")

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.ttl", 24*time.Hour)

	v.SetDefault("rate_limit.requests", 100)
	v.SetDefault("rate_limit.window", time.Minute)

	v.SetDefault("redis.host", "")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")

	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.region", "")
	v.SetDefault("storage.cdn_url", "")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.endpoint", "localhost:4318")
	v.SetDefault("tracing.sampling_rate", 0.1)

	v.SetDefault("cors.allowed_origins", []string{})
	v.SetDefault("required_services", []string{})
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{
		Environment: v.GetString("environment"),
		Server:      ServerConfig{Port: v.GetInt("server.port")},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(v.GetString("database.driver")),
			URL:             v.GetString("database.url"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("database.conn_max_lifetime"),
			LogSQL:          v.GetBool("database.log_sql"),
		},
		Feed: FeedConfig{
			PageSize:    v.GetInt("feed.page_size"),
			MaxPageSize: v.GetInt("feed.max_page_size"),
		},
		Log: LogConfig{
			Level: v.GetString("log.level"),
			File:  v.GetString("log.file"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("jwt.secret"),
			TTL:    v.GetDuration("jwt.ttl"),
		},
		RateLimit: RateLimitConfig{
			Requests: v.GetInt("rate_limit.requests"),
			Window:   v.GetDuration("rate_limit.window"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
		},
		Storage: StorageConfig{
			Bucket: v.GetString("storage.bucket"),
			Region: v.GetString("storage.region"),
			CDNURL: v.GetString("storage.cdn_url"),
		},
		Tracing: TracingConfig{
			Enabled:      v.GetBool("tracing.enabled"),
			Endpoint:     v.GetString("tracing.endpoint"),
			SamplingRate: v.GetFloat64("tracing.sampling_rate"),
		},
		CORS:             CORSConfig{AllowedOrigins: v.GetStringSlice("cors.allowed_origins")},
		RequiredServices: v.GetStringSlice("required_services"),
	}

	if cfg.Database.URL == "" && cfg.Database.Driver == DriverPostgres {
		cfg.Database.URL = fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			v.GetString("database.host"),
			v.GetInt("database.port"),
			v.GetString("database.user"),
			v.GetString("database.password"),
			v.GetString("database.name"),
			v.GetString("database.sslmode"),
		)
	}
	if cfg.Database.URL == "" && cfg.Database.Driver == DriverSQLite {
		cfg.Database.URL = "onlycodes.db"
	}

	return cfg
}

// IsProduction reports whether the server runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// Validate rejects configurations the server cannot start with
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}

	if c.IsProduction() && c.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret is required in production")
	}
	if c.JWT.TTL <= 0 {
		return fmt.Errorf("jwt.ttl must be positive")
	}

	if c.Feed.MaxPageSize < 1 {
		return fmt.Errorf("feed.max_page_size must be at least 1")
	}
	if c.Feed.PageSize < 1 || c.Feed.PageSize > c.Feed.MaxPageSize {
		return fmt.Errorf("feed.page_size must be between 1 and %d", c.Feed.MaxPageSize)
	}

	if c.RateLimit.Requests < 1 || c.RateLimit.Window <= 0 {
		return fmt.Errorf("rate_limit requires positive requests and window")
	}
	return nil
}

// Addr is the listen address for the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
