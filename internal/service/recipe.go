package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/pantrychef/backend/internal/logger"
	"github.com/pageza/pantrychef/backend/internal/models"
	"github.com/pageza/pantrychef/backend/internal/types"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// RecipeService handles recipe operations
type RecipeService struct {
	db *gorm.DB
}

var _ IRecipeService = (*RecipeService)(nil)

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// withIngredients preloads the USES edges in recipe order.
func withIngredients(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Ingredients.Ingredient")
}

// CreateRecipe stores a recipe and links every ingredient in one transaction.
// Any failing link rolls the whole recipe back.
func (s *RecipeService) CreateRecipe(ctx context.Context, userID uuid.UUID, req *types.CreateRecipeRequest) (*models.Recipe, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, validationError("recipe name is required")
	}
	if err := checkLength("recipe name", name, maxRecipeNameLen); err != nil {
		return nil, err
	}
	if len(req.Ingredients) == 0 {
		return nil, validationError("at least one ingredient is required")
	}

	recipe := &models.Recipe{
		Name:        name,
		Description: req.Description,
		PrepTime:    req.PrepTime,
		CookTime:    req.CookTime,
		Servings:    req.Servings,
		Difficulty:  strings.ToLower(strings.TrimSpace(req.Difficulty)),
		DietaryTags: normalizeTags(req.DietaryTags),
		SourceURL:   req.SourceURL,
		ImageURL:    req.ImageURL,
		CreatedByID: &userID,
	}
	if recipe.Servings == 0 {
		recipe.Servings = 1
	}
	if recipe.Difficulty == "" {
		recipe.Difficulty = "medium"
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return createRecipeTx(tx, recipe, req.Ingredients)
	})
	if err != nil {
		return nil, translate(err, "recipe")
	}

	logger.FromContext(ctx).Info("recipe created",
		zap.String("recipe_id", recipe.ID.String()),
		zap.Int("ingredients", len(recipe.Ingredients)))
	return s.GetRecipe(ctx, recipe.ID)
}

// createRecipeTx inserts recipe and its ingredient links on tx. Repeated
// ingredient names (case-insensitive) keep their first position.
func createRecipeTx(tx *gorm.DB, recipe *models.Recipe, lines []types.RecipeIngredientInput) error {
	if err := tx.Create(recipe).Error; err != nil {
		return err
	}

	seen := make(map[uuid.UUID]bool, len(lines))
	links := make([]models.RecipeIngredient, 0, len(lines))
	for _, line := range lines {
		measure := strings.TrimSpace(line.Measure)
		if err := checkLength("measure", measure, maxMeasureLen); err != nil {
			return err
		}
		ing, err := findOrCreateIngredient(tx, line.Name, line.Category)
		if err != nil {
			return err
		}
		if seen[ing.ID] {
			continue
		}
		seen[ing.ID] = true
		links = append(links, models.RecipeIngredient{
			RecipeID:     recipe.ID,
			IngredientID: ing.ID,
			Position:     len(links),
			Measure:      measure,
		})
	}
	if err := tx.Create(&links).Error; err != nil {
		return err
	}
	recipe.Ingredients = links
	return nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := withIngredients(s.db.WithContext(ctx)).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, translate(err, "recipe")
	}
	return &recipe, nil
}

// ListRecipes returns the newest recipes first.
func (s *RecipeService) ListRecipes(ctx context.Context, limit int) ([]models.Recipe, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	var recipes []models.Recipe
	err := withIngredients(s.db.WithContext(ctx)).
		Order("created_at DESC").
		Limit(limit).
		Find(&recipes).Error
	if err != nil {
		return nil, translate(err, "recipes")
	}
	return recipes, nil
}

// LikeRecipe records a LIKES edge. Liking twice is a no-op.
func (s *RecipeService) LikeRecipe(ctx context.Context, userID, recipeID uuid.UUID) error {
	db := s.db.WithContext(ctx)
	if err := s.ensureRecipe(db, recipeID); err != nil {
		return err
	}
	like := models.RecipeLike{UserID: userID, RecipeID: recipeID}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
		return translate(err, "like")
	}
	return nil
}

// UnlikeRecipe removes a LIKES edge. Unliking a recipe that was not liked is a no-op.
func (s *RecipeService) UnlikeRecipe(ctx context.Context, userID, recipeID uuid.UUID) error {
	db := s.db.WithContext(ctx)
	if err := s.ensureRecipe(db, recipeID); err != nil {
		return err
	}
	if err := db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&models.RecipeLike{}).Error; err != nil {
		return translate(err, "like")
	}
	return nil
}

// GetLikedRecipes returns the recipes a user liked, most recent like first.
func (s *RecipeService) GetLikedRecipes(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := withIngredients(s.db.WithContext(ctx)).
		Joins("JOIN recipe_likes ON recipe_likes.recipe_id = recipes.id").
		Where("recipe_likes.user_id = ?", userID).
		Order("recipe_likes.created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, translate(err, "liked recipes")
	}
	return recipes, nil
}

// LikedIDs returns the set of recipe ids the user liked.
func (s *RecipeService) LikedIDs(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]bool, error) {
	var ids []uuid.UUID
	err := s.db.WithContext(ctx).Model(&models.RecipeLike{}).
		Where("user_id = ?", userID).
		Pluck("recipe_id", &ids).Error
	if err != nil {
		return nil, translate(err, "likes")
	}
	out := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

func (s *RecipeService) ensureRecipe(db *gorm.DB, id uuid.UUID) error {
	var count int64
	if err := db.Model(&models.Recipe{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return translate(err, "recipe")
	}
	if count == 0 {
		return notFound("recipe")
	}
	return nil
}

// normalizeTags lower-cases, trims and de-duplicates dietary tags.
func normalizeTags(tags []string) models.StringArray {
	seen := make(map[string]bool, len(tags))
	out := make(models.StringArray, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
