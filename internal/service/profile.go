package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/pantrychef/backend/internal/dietary"
	"github.com/pageza/pantrychef/backend/internal/logger"
	"github.com/pageza/pantrychef/backend/internal/models"
	"github.com/pageza/pantrychef/backend/internal/types"
)

const defaultAllergySeverity = 3

// ProfileService handles user profile operations
type ProfileService struct {
	db       *gorm.DB
	pictures PictureStore
}

// Ensure ProfileService implements IProfileService
var _ IProfileService = (*ProfileService)(nil)

// NewProfileService creates a new ProfileService instance
func NewProfileService(db *gorm.DB, pictures PictureStore) *ProfileService {
	if pictures == nil {
		pictures = InlinePictureStore{}
	}
	return &ProfileService{db: db, pictures: pictures}
}

// UpdateProfile updates the name, username and bio fields that are set in req.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.User, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return validationError("name cannot be empty")
			}
			if err := tx.Model(&models.User{}).Where("id = ?", userID).Update("name", name).Error; err != nil {
				return err
			}
		}

		profile, err := profileFor(tx, userID)
		if err != nil {
			return err
		}
		if req.Username != nil {
			username := strings.TrimSpace(*req.Username)
			if username == "" {
				return validationError("username cannot be empty")
			}
			if err := checkLength("username", username, maxUsernameLen); err != nil {
				return err
			}
			profile.Username = username
		}
		if req.Bio != nil {
			profile.Bio = *req.Bio
		}
		return tx.Save(profile).Error
	})
	if err != nil {
		return nil, translate(err, "profile")
	}
	return s.loadUser(ctx, userID)
}

// UpdatePreferences replaces the user's dietary preferences and allergies in
// one transaction. Known diets are stored by name; anything else is stored as
// a custom preference.
func (s *ProfileService) UpdatePreferences(ctx context.Context, userID uuid.UUID, req *types.UpdatePreferencesRequest) (*models.User, error) {
	prefs := dietary.ParsePreferences(req.DietaryPreferences)
	allergies := dietary.ParseAllergies(req.Allergies)
	for _, p := range prefs {
		if err := checkLength("dietary preference", p.String(), maxPreferenceLen); err != nil {
			return nil, err
		}
	}
	for _, a := range allergies {
		if err := checkLength("allergy", a.String(), maxPreferenceLen); err != nil {
			return nil, err
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.DietaryPreference{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Allergen{}).Error; err != nil {
			return err
		}

		for _, p := range prefs {
			row := models.DietaryPreference{UserID: userID}
			if d, ok := p.Known(); ok {
				row.PreferenceType = string(d)
			} else {
				custom, _ := p.Custom()
				row.PreferenceType = dietary.CustomPreferenceType
				row.CustomName = custom
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		for _, a := range allergies {
			row := models.Allergen{UserID: userID, AllergenName: a.String(), SeverityLevel: defaultAllergySeverity}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, translate(err, "preferences")
	}

	logger.FromContext(ctx).Info("preferences updated",
		zap.Int("dietary_preferences", len(prefs)),
		zap.Int("allergies", len(allergies)))
	return s.loadUser(ctx, userID)
}

// GetPreferences returns the parsed preference and allergy sets of a user.
func (s *ProfileService) GetPreferences(ctx context.Context, userID uuid.UUID) ([]dietary.Preference, []dietary.Allergy, error) {
	var prefRows []models.DietaryPreference
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&prefRows).Error; err != nil {
		return nil, nil, translate(err, "preferences")
	}
	var allergyRows []models.Allergen
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&allergyRows).Error; err != nil {
		return nil, nil, translate(err, "allergies")
	}
	return dietary.ParsePreferences(preferenceStrings(prefRows)), dietary.ParseAllergies(allergenStrings(allergyRows)), nil
}

// SetProfilePicture validates the image, stores it and records its URL.
func (s *ProfileService) SetProfilePicture(ctx context.Context, userID uuid.UUID, data []byte) (string, error) {
	contentType, err := ValidatePicture(data)
	if err != nil {
		return "", err
	}

	profile, err := profileFor(s.db.WithContext(ctx), userID)
	if err != nil {
		return "", translate(err, "profile")
	}

	url, err := s.pictures.Save(ctx, userID, contentType, data)
	if err != nil {
		return "", err
	}
	previous := profile.ProfilePictureURL
	if err := s.db.WithContext(ctx).Model(profile).Update("profile_picture_url", url).Error; err != nil {
		return "", translate(err, "profile")
	}
	if previous != "" && previous != url {
		if err := s.pictures.Delete(ctx, previous); err != nil {
			logger.FromContext(ctx).Warn("failed to delete previous picture", zap.Error(err))
		}
	}
	return url, nil
}

// RemoveProfilePicture clears the picture. Removing a missing picture is a no-op.
func (s *ProfileService) RemoveProfilePicture(ctx context.Context, userID uuid.UUID) error {
	profile, err := profileFor(s.db.WithContext(ctx), userID)
	if err != nil {
		return translate(err, "profile")
	}
	if profile.ProfilePictureURL == "" {
		return nil
	}
	if err := s.pictures.Delete(ctx, profile.ProfilePictureURL); err != nil {
		return err
	}
	return translate(s.db.WithContext(ctx).Model(profile).Update("profile_picture_url", "").Error, "profile")
}

// profileFor loads the profile of userID, creating an empty one for users
// that predate profiles.
func profileFor(tx *gorm.DB, userID uuid.UUID) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := tx.Where("user_id = ?", userID).First(&profile).Error
	if err == nil {
		return &profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var user models.User
	if err := tx.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	profile = models.UserProfile{UserID: userID, Username: "user-" + userID.String()[:8]}
	if err := tx.Create(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *ProfileService) loadUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Preload("Profile").
		Preload("DietaryPreferences").
		Preload("Allergens").
		First(&user, "id = ?", userID).Error
	if err != nil {
		return nil, translate(err, "user")
	}
	return &user, nil
}
