package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/lib/pq"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Env Environment `mapstructure:"-"`

	// Server configuration
	ServerHost   string        `mapstructure:"server_host"`
	ServerPort   string        `mapstructure:"server_port"`
	ReadTimeout  time.Duration `mapstructure:"server_read_timeout"`
	WriteTimeout time.Duration `mapstructure:"server_write_timeout"`

	// Database configuration
	DBDriver          string        `mapstructure:"db_driver"`
	DatabaseURL       string        `mapstructure:"database_url"`
	DBHost            string        `mapstructure:"db_host"`
	DBPort            string        `mapstructure:"db_port"`
	DBUser            string        `mapstructure:"db_user"`
	DBPassword        string        `mapstructure:"db_password"`
	DBName            string        `mapstructure:"db_name"`
	DBSSLMode         string        `mapstructure:"db_ssl_mode"`
	SQLitePath        string        `mapstructure:"sqlite_path"`
	DBMaxOpenConns    int           `mapstructure:"db_max_open_conns"`
	DBMaxIdleConns    int           `mapstructure:"db_max_idle_conns"`
	DBConnMaxLifetime time.Duration `mapstructure:"db_conn_max_lifetime"`
	MigrationsDir     string        `mapstructure:"migrations_dir"`

	// Redis configuration. An empty URL disables rate limiting.
	RedisURL      string `mapstructure:"redis_url"`
	RedisPassword string `mapstructure:"redis_password"`

	// Auth
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`

	// HTTP surface
	CORSOrigins       []string      `mapstructure:"cors_origins"`
	LogLevel          string        `mapstructure:"log_level"`
	DebugEndpoints    bool          `mapstructure:"debug_endpoints"`
	RateLimitRequests int           `mapstructure:"rate_limit_requests"`
	RateLimitWindow   time.Duration `mapstructure:"rate_limit_window"`

	// Third-party recipe API
	MealDBBaseURL string        `mapstructure:"mealdb_base_url"`
	MealDBTimeout time.Duration `mapstructure:"mealdb_timeout"`

	// Profile pictures: "inline" or "s3"
	PictureStorage string `mapstructure:"picture_storage"`
	S3Bucket       string `mapstructure:"s3_bucket_name"`
	AWSRegion      string `mapstructure:"aws_region"`
}

const defaultJWTSecret = "dev-secret-change-me"

func setDefaults(v *viper.Viper, env Environment) {
	v.SetDefault("server_host", "0.0.0.0")
	v.SetDefault("server_port", "8080")
	v.SetDefault("server_read_timeout", "15s")
	v.SetDefault("server_write_timeout", "15s")

	v.SetDefault("db_driver", "postgres")
	v.SetDefault("database_url", "")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "")
	v.SetDefault("db_name", "pantrychef")
	v.SetDefault("db_ssl_mode", "disable")
	v.SetDefault("sqlite_path", "pantrychef.db")
	v.SetDefault("db_max_open_conns", 25)
	v.SetDefault("db_max_idle_conns", 5)
	v.SetDefault("db_conn_max_lifetime", "5m")
	v.SetDefault("migrations_dir", "migrations")

	v.SetDefault("redis_url", "")
	v.SetDefault("redis_password", "")

	v.SetDefault("jwt_secret", "")
	v.SetDefault("token_ttl", "24h")

	v.SetDefault("cors_origins", "http://localhost:3000,http://localhost:5173")
	v.SetDefault("log_level", "info")
	v.SetDefault("debug_endpoints", env == Development)
	v.SetDefault("rate_limit_requests", 60)
	v.SetDefault("rate_limit_window", "1m")

	v.SetDefault("mealdb_base_url", "https://www.themealdb.com/api/json/v1/1")
	v.SetDefault("mealdb_timeout", "10s")

	v.SetDefault("picture_storage", "inline")
	v.SetDefault("s3_bucket_name", "pantrychef-profile-pictures")
	v.SetDefault("aws_region", "us-east-1")
}

// LoadConfig reads .env (if present), then environment variables, then
// falls back to Docker secrets for sensitive values.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	env := GetEnvironment()
	v := viper.New()
	setDefaults(v, env)
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Env = env
	cfg.CORSOrigins = splitList(cfg.CORSOrigins)

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = readSecret("jwt_secret")
	}
	if cfg.DBPassword == "" {
		cfg.DBPassword = readSecret("db_password")
	}
	if cfg.RedisPassword == "" {
		cfg.RedisPassword = readSecret("redis_password")
	}
	if cfg.JWTSecret == "" && (env == Development || env == Test) {
		cfg.JWTSecret = defaultJWTSecret
	}

	if cfg.DatabaseURL != "" {
		dsn, err := pq.ParseURL(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid DATABASE_URL: %w", err)
		}
		cfg.DatabaseURL = dsn
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// DSN returns the postgres connection string, preferring DATABASE_URL.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	parts := []string{
		"host=" + c.DBHost,
		"port=" + c.DBPort,
		"user=" + c.DBUser,
		"dbname=" + c.DBName,
		"sslmode=" + c.DBSSLMode,
	}
	if c.DBPassword != "" {
		parts = append(parts, "password="+c.DBPassword)
	}
	return strings.Join(parts, " ")
}

// Addr returns host:port for the HTTP listener.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// splitList handles both a single comma-joined value and a proper list.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, s := range strings.Split(item, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
