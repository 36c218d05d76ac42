package service

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"gorm.io/gorm"
)

// Errors returned by services. Handlers map them to HTTP statuses.
var (
	ErrValidation         = errors.New("validation failed")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token has expired")
)

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Column widths of the text fields users can set.
const (
	maxRecipeNameLen     = 255
	maxIngredientNameLen = 100
	maxMeasureLen        = 100
	maxCategoryLen       = 50
	maxPreferenceLen     = 50
	maxUsernameLen       = 50
	maxExternalIDLen     = 64
	maxURLLen            = 512
)

func checkLength(field, value string, limit int) error {
	if utf8.RuneCountInString(value) > limit {
		return validationError("%s must be at most %d characters", field, limit)
	}
	return nil
}

func notFound(what string) error {
	return fmt.Errorf("%s %w", what, ErrNotFound)
}

// translate maps store errors onto service errors, leaving others wrapped as-is.
func translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound(what)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s %w", what, ErrConflict)
	default:
		return fmt.Errorf("%s: %w", what, err)
	}
}
