package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/pantrychef/backend/internal/logger"
	"github.com/pageza/pantrychef/backend/internal/mealdb"
	"github.com/pageza/pantrychef/backend/internal/metrics"
	"github.com/pageza/pantrychef/backend/internal/models"
	"github.com/pageza/pantrychef/backend/internal/types"
)

const (
	defaultImportLimit = 10
	maxImportLimit     = 50
	maxDescriptionLen  = 2000

	importedServings   = 4
	importedDifficulty = "medium"
	importedPrepTime   = 15
	importedCookTime   = 30
)

// categoryTags maps third-party categories onto dietary tags.
var categoryTags = map[string][]string{
	"vegetarian": {"vegetarian"},
	"vegan":      {"vegan", "vegetarian"},
	"seafood":    {"pescatarian"},
}

// MealSource is the subset of the third-party client the importer needs.
type MealSource interface {
	Categories(ctx context.Context) ([]mealdb.Category, error)
	FilterByCategory(ctx context.Context, category string) ([]mealdb.MealRef, error)
	Lookup(ctx context.Context, id string) (*mealdb.Meal, error)
	Search(ctx context.Context, query string) ([]mealdb.Meal, error)
}

// ImportService copies third-party recipes into the recipe graph.
type ImportService struct {
	db      *gorm.DB
	source  MealSource
	recipes *RecipeService
}

var _ IImportService = (*ImportService)(nil)

func NewImportService(db *gorm.DB, source MealSource, recipes *RecipeService) *ImportService {
	return &ImportService{db: db, source: source, recipes: recipes}
}

// Categories lists the third-party categories.
func (s *ImportService) Categories(ctx context.Context) ([]mealdb.Category, error) {
	cats, err := s.source.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

// Import fetches meals by search text or category and stores the ones not
// imported before. Each meal is written in its own transaction. A nil userID
// leaves the recipes without an owner.
func (s *ImportService) Import(ctx context.Context, userID uuid.UUID, req *types.ImportRequest) (*types.ImportResult, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultImportLimit
	}
	if limit > maxImportLimit {
		limit = maxImportLimit
	}

	meals, err := s.fetch(ctx, strings.TrimSpace(req.Search), strings.TrimSpace(req.Category), limit)
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	result := &types.ImportResult{Recipes: []types.RecipeResponse{}}
	for _, meal := range meals {
		if meal.ID == "" || meal.Name == "" || len(meal.Ingredients) == 0 {
			result.Skipped++
			continue
		}
		recipe, created, err := s.store(ctx, userID, meal)
		if errors.Is(err, ErrValidation) {
			log.Warn("skipping meal", zap.String("external_id", meal.ID), zap.Error(err))
			result.Skipped++
			continue
		}
		if err != nil {
			return nil, translate(err, "imported recipe")
		}
		if !created {
			result.Skipped++
			continue
		}
		result.Imported++
		result.Recipes = append(result.Recipes, ToRecipeResponse(recipe))
	}

	metrics.RecordImport("created", result.Imported)
	metrics.RecordImport("skipped", result.Skipped)
	log.Info("recipes imported", zap.Int("imported", result.Imported), zap.Int("skipped", result.Skipped))
	return result, nil
}

func (s *ImportService) fetch(ctx context.Context, search, category string, limit int) ([]mealdb.Meal, error) {
	switch {
	case search != "":
		meals, err := s.source.Search(ctx, search)
		if err != nil {
			return nil, fmt.Errorf("search meals: %w", err)
		}
		if len(meals) > limit {
			meals = meals[:limit]
		}
		return meals, nil
	case category != "":
		refs, err := s.source.FilterByCategory(ctx, category)
		if err != nil {
			return nil, fmt.Errorf("filter meals: %w", err)
		}
		if len(refs) > limit {
			refs = refs[:limit]
		}
		meals := make([]mealdb.Meal, 0, len(refs))
		for _, ref := range refs {
			meal, err := s.source.Lookup(ctx, ref.ID)
			if err != nil {
				return nil, fmt.Errorf("lookup meal %s: %w", ref.ID, err)
			}
			if meal == nil {
				continue
			}
			if meal.Category == "" {
				meal.Category = category
			}
			meals = append(meals, *meal)
		}
		return meals, nil
	default:
		return nil, validationError("category or search is required")
	}
}

// store writes one meal unless its external id is already present.
func (s *ImportService) store(ctx context.Context, userID uuid.UUID, meal mealdb.Meal) (*models.Recipe, bool, error) {
	externalID := meal.ID
	for _, f := range []struct {
		field, value string
		max          int
	}{
		{"external id", externalID, maxExternalIDLen},
		{"recipe name", meal.Name, maxRecipeNameLen},
		{"source url", meal.Source, maxURLLen},
		{"image url", meal.Thumb, maxURLLen},
	} {
		if err := checkLength(f.field, f.value, f.max); err != nil {
			return nil, false, err
		}
	}

	var recipe *models.Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Recipe
		err := tx.Select("id").Where("external_id = ?", externalID).First(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		recipe = &models.Recipe{
			Name:        meal.Name,
			Description: truncate(meal.Instructions, maxDescriptionLen),
			PrepTime:    importedPrepTime,
			CookTime:    importedCookTime,
			Servings:    importedServings,
			Difficulty:  importedDifficulty,
			DietaryTags: mealTags(meal),
			SourceURL:   meal.Source,
			ImageURL:    meal.Thumb,
			ExternalID:  &externalID,
		}
		if userID != uuid.Nil {
			recipe.CreatedByID = &userID
		}
		lines := make([]types.RecipeIngredientInput, len(meal.Ingredients))
		for i, ing := range meal.Ingredients {
			lines[i] = types.RecipeIngredientInput{Name: ing.Name, Measure: ing.Measure}
		}
		return createRecipeTx(tx, recipe, lines)
	})
	if err != nil || recipe == nil {
		return nil, false, err
	}

	full, err := s.recipes.GetRecipe(ctx, recipe.ID)
	if err != nil {
		return nil, false, err
	}
	return full, true, nil
}

func mealTags(meal mealdb.Meal) models.StringArray {
	tags := append([]string{}, categoryTags[strings.ToLower(meal.Category)]...)
	tags = append(tags, meal.Tags...)
	return normalizeTags(tags)
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
