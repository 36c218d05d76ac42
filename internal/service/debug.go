package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pageza/pantrychef/backend/internal/logger"
	"github.com/pageza/pantrychef/backend/internal/models"
	"github.com/pageza/pantrychef/backend/internal/types"
)

// DebugService is only wired when debug endpoints are enabled.
type DebugService struct {
	db   *gorm.DB
	cost int
}

var _ IDebugService = (*DebugService)(nil)

func NewDebugService(db *gorm.DB, cost int) *DebugService {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &DebugService{db: db, cost: cost}
}

// ResetPassword overwrites the password hash of the user with email.
func (s *DebugService) ResetPassword(ctx context.Context, email, password string) error {
	if len(password) < 8 {
		return validationError("password must be at least 8 characters")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", normalizeEmail(email)).
		Update("password_hash", string(hashed))
	if res.Error != nil {
		return translate(res.Error, "user")
	}
	if res.RowsAffected == 0 {
		return notFound("user")
	}
	logger.FromContext(ctx).Warn("password reset through debug endpoint", zap.String("email", normalizeEmail(email)))
	return nil
}

// CheckPassword reports whether password matches the stored hash.
func (s *DebugService) CheckPassword(ctx context.Context, email, password string) (bool, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		return false, translate(err, "user")
	}
	err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("compare password: %w", err)
	}
}

// ListUsers returns every user, oldest first.
func (s *DebugService) ListUsers(ctx context.Context) ([]types.DebugUser, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Preload("Profile").Order("created_at, email").Find(&users).Error; err != nil {
		return nil, translate(err, "users")
	}
	out := make([]types.DebugUser, len(users))
	for i, u := range users {
		out[i] = types.DebugUser{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
		if u.Profile != nil {
			out[i].Username = u.Profile.Username
		}
	}
	return out, nil
}
