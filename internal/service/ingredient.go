package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/pageza/pantrychef/backend/internal/models"
)

const defaultCategory = "other"

// IngredientService lists the ingredient nodes of the recipe graph.
type IngredientService struct {
	db *gorm.DB
}

var _ IIngredientService = (*IngredientService)(nil)

func NewIngredientService(db *gorm.DB) *IngredientService {
	return &IngredientService{db: db}
}

// List returns all known ingredients ordered by name, optionally by category.
func (s *IngredientService) List(ctx context.Context, category string) ([]models.Ingredient, error) {
	q := s.db.WithContext(ctx).Order("name")
	if c := strings.TrimSpace(category); c != "" {
		q = q.Where("LOWER(category) = ?", strings.ToLower(c))
	}
	var out []models.Ingredient
	if err := q.Find(&out).Error; err != nil {
		return nil, translate(err, "ingredients")
	}
	return out, nil
}

// findOrCreateIngredient looks an ingredient up case-insensitively and creates
// it with the given display name when missing. It runs on tx so callers can
// compose it into a transaction. A concurrent insert of the same name loses to
// the unique index on LOWER(name); the lookup is then repeated.
func findOrCreateIngredient(tx *gorm.DB, name, category string) (*models.Ingredient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationError("ingredient name is required")
	}
	if err := checkLength("ingredient name", name, maxIngredientNameLen); err != nil {
		return nil, err
	}
	category = strings.ToLower(strings.TrimSpace(category))
	if err := checkLength("ingredient category", category, maxCategoryLen); err != nil {
		return nil, err
	}

	ing, err := lookupIngredient(tx, name)
	if err == nil {
		return ing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if category == "" {
		category = defaultCategory
	}
	created := models.Ingredient{Name: name, Category: category}
	// savepoint: a duplicate must not abort tx
	err = tx.Transaction(func(sp *gorm.DB) error {
		return sp.Create(&created).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return lookupIngredient(tx, name)
	}
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func lookupIngredient(tx *gorm.DB, name string) (*models.Ingredient, error) {
	var ing models.Ingredient
	if err := tx.Where("LOWER(name) = ?", strings.ToLower(name)).First(&ing).Error; err != nil {
		return nil, err
	}
	return &ing, nil
}
