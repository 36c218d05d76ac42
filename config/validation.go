package config

import (
	"errors"
	"fmt"
	"strconv"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConfigRequirements defines what each environment insists on
type ConfigRequirements struct {
	RequireSecretJWT   bool
	RequireDBPassword  bool
	ForbidDebugRoutes  bool
	MinJWTSecretLength int
}

var requirements = map[Environment]ConfigRequirements{
	Development: {},
	Test:        {},
	CI: {
		RequireSecretJWT: true,
	},
	Production: {
		RequireSecretJWT:   true,
		RequireDBPassword:  true,
		ForbidDebugRoutes:  true,
		MinJWTSecretLength: 32,
	},
}

// ValidateConfig checks cfg against the requirements of its environment.
// All problems are reported together.
func ValidateConfig(cfg *Config) error {
	reqs := requirements[cfg.Env]
	var errs []error
	fail := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg})
	}

	if _, err := strconv.Atoi(cfg.ServerPort); err != nil {
		fail("SERVER_PORT", "must be a number")
	}

	switch cfg.DBDriver {
	case "postgres":
		if reqs.RequireDBPassword && cfg.DatabaseURL == "" && cfg.DBPassword == "" {
			fail("DB_PASSWORD", "db_password secret is required")
		}
	case "sqlite":
		if cfg.SQLitePath == "" {
			fail("SQLITE_PATH", "is required when DB_DRIVER=sqlite")
		}
	default:
		fail("DB_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.DBDriver))
	}

	if cfg.JWTSecret == "" {
		fail("JWT_SECRET", "is required")
	} else {
		if reqs.RequireSecretJWT && cfg.JWTSecret == defaultJWTSecret {
			fail("JWT_SECRET", "must not use the development default")
		}
		if len(cfg.JWTSecret) < reqs.MinJWTSecretLength {
			fail("JWT_SECRET", fmt.Sprintf("must be at least %d characters", reqs.MinJWTSecretLength))
		}
	}
	if cfg.TokenTTL <= 0 {
		fail("TOKEN_TTL", "must be positive")
	}

	if reqs.ForbidDebugRoutes && cfg.DebugEndpoints {
		fail("DEBUG_ENDPOINTS", "debug endpoints cannot be enabled in production")
	}

	if cfg.RedisURL != "" && (cfg.RateLimitRequests <= 0 || cfg.RateLimitWindow <= 0) {
		fail("RATE_LIMIT_REQUESTS", "rate limit requests and window must be positive")
	}

	switch cfg.PictureStorage {
	case "inline":
	case "s3":
		if cfg.S3Bucket == "" {
			fail("S3_BUCKET_NAME", "is required when PICTURE_STORAGE=s3")
		}
	default:
		fail("PICTURE_STORAGE", fmt.Sprintf("unsupported storage %q", cfg.PictureStorage))
	}

	return errors.Join(errs...)
}
