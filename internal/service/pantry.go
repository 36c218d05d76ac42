package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/pantrychef/backend/internal/models"
	"github.com/pageza/pantrychef/backend/internal/types"
)

// PantryService manages the HAS edges between a user and ingredients.
type PantryService struct {
	db *gorm.DB
}

var _ IPantryService = (*PantryService)(nil)

func NewPantryService(db *gorm.DB) *PantryService {
	return &PantryService{db: db}
}

// List returns the user's pantry ordered by ingredient name.
func (s *PantryService) List(ctx context.Context, userID uuid.UUID) ([]types.PantryItemResponse, error) {
	var items []models.PantryItem
	err := s.db.WithContext(ctx).
		Joins("Ingredient").
		Where("pantry_items.user_id = ?", userID).
		Order(clause.OrderByColumn{Column: clause.Column{Table: "Ingredient", Name: "name"}}).
		Find(&items).Error
	if err != nil {
		return nil, translate(err, "pantry")
	}

	out := make([]types.PantryItemResponse, len(items))
	for i, it := range items {
		out[i] = types.PantryItemResponse{
			Name:     it.Ingredient.Name,
			Category: it.Ingredient.Category,
			AddedAt:  it.CreatedAt,
		}
	}
	return out, nil
}

// Add puts an ingredient in the pantry, creating the ingredient if needed.
// Adding an item already present is a no-op.
func (s *PantryService) Add(ctx context.Context, userID uuid.UUID, req *types.AddPantryItemRequest) (*types.PantryItemResponse, error) {
	var resp *types.PantryItemResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ing, err := findOrCreateIngredient(tx, req.Name, req.Category)
		if err != nil {
			return err
		}
		item := models.PantryItem{UserID: userID, IngredientID: ing.ID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&item).Error; err != nil {
			return err
		}
		if err := tx.First(&item, "user_id = ? AND ingredient_id = ?", userID, ing.ID).Error; err != nil {
			return err
		}
		resp = &types.PantryItemResponse{Name: ing.Name, Category: ing.Category, AddedAt: item.CreatedAt}
		return nil
	})
	if err != nil {
		return nil, translate(err, "pantry item")
	}
	return resp, nil
}

// Remove deletes the pantry entry for the named ingredient (case-insensitive).
func (s *PantryService) Remove(ctx context.Context, userID uuid.UUID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return validationError("ingredient name is required")
	}

	sub := s.db.Model(&models.Ingredient{}).Select("id").Where("LOWER(name) = ?", strings.ToLower(name))
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND ingredient_id IN (?)", userID, sub).
		Delete(&models.PantryItem{})
	if res.Error != nil {
		return translate(res.Error, "pantry item")
	}
	if res.RowsAffected == 0 {
		return notFound("pantry item")
	}
	return nil
}
