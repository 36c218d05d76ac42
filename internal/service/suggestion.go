package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/pantrychef/backend/internal/dietary"
	"github.com/pageza/pantrychef/backend/internal/logger"
	"github.com/pageza/pantrychef/backend/internal/metrics"
	"github.com/pageza/pantrychef/backend/internal/models"
	"github.com/pageza/pantrychef/backend/internal/suggestion"
	"github.com/pageza/pantrychef/backend/internal/types"
)

// SuggestionService fetches candidate recipes and runs the ranking pipeline.
type SuggestionService struct {
	db       *gorm.DB
	rules    *dietary.Rules
	recipes  *RecipeService
	profiles *ProfileService
}

var _ ISuggestionService = (*SuggestionService)(nil)

func NewSuggestionService(db *gorm.DB, rules *dietary.Rules, recipes *RecipeService, profiles *ProfileService) *SuggestionService {
	if rules == nil {
		rules = dietary.DefaultRules()
	}
	return &SuggestionService{db: db, rules: rules, recipes: recipes, profiles: profiles}
}

// Suggest ranks recipes against pantry. A nil userID is an anonymous caller:
// no preferences, allergies or liked boost are applied.
func (s *SuggestionService) Suggest(ctx context.Context, pantry []string, userID *uuid.UUID) ([]types.SuggestionResult, error) {
	pantry = cleanPantry(pantry)
	if len(pantry) == 0 {
		return []types.SuggestionResult{}, nil
	}

	recipes, err := s.candidates(ctx, pantry)
	if err != nil {
		return nil, err
	}

	opts := suggestion.Options{Rules: s.rules}
	var liked map[uuid.UUID]bool
	if userID != nil {
		liked, err = s.recipes.LikedIDs(ctx, *userID)
		if err != nil {
			return nil, err
		}
		opts.Liked = make(map[string]bool, len(liked))
		for id := range liked {
			opts.Liked[id.String()] = true
		}
		opts.Preferences, opts.Allergies, err = s.profiles.GetPreferences(ctx, *userID)
		if err != nil {
			return nil, err
		}
	}

	byID := make(map[string]*models.Recipe, len(recipes))
	candidates := make([]suggestion.Candidate, len(recipes))
	for i := range recipes {
		r := &recipes[i]
		byID[r.ID.String()] = r
		candidates[i] = suggestion.Candidate{
			ID:          r.ID.String(),
			Ingredients: r.IngredientNames(),
			Tags:        r.DietaryTags,
		}
	}

	ranked, stats := suggestion.Suggest(pantry, candidates, opts)
	metrics.ObserveSuggestions(len(ranked), stats.DietaryExcluded, stats.AllergyExcluded)
	logger.FromContext(ctx).Debug("suggestions ranked",
		zap.Int("pantry", len(pantry)),
		zap.Int("candidates", len(candidates)),
		zap.Int("ranked", stats.Ranked),
		zap.Int("dietary_excluded", stats.DietaryExcluded),
		zap.Int("allergy_excluded", stats.AllergyExcluded),
		zap.Bool("authenticated", userID != nil))

	out := make([]types.SuggestionResult, len(ranked))
	for i, r := range ranked {
		rec := byID[r.ID]
		out[i] = types.SuggestionResult{
			Recipe:              ToRecipeResponse(rec),
			MatchingIngredients: r.Matching,
			TotalIngredients:    r.Total,
			MatchRatio:          r.Ratio,
			Liked:               liked[rec.ID],
		}
	}
	return out, nil
}

// candidates loads every recipe that uses at least one pantry ingredient.
// Names are compared exactly as stored.
func (s *SuggestionService) candidates(ctx context.Context, pantry []string) ([]models.Recipe, error) {
	db := s.db.WithContext(ctx)

	var ids []uuid.UUID
	err := db.Model(&models.RecipeIngredient{}).
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Where("ingredients.name IN ?", pantry).
		Distinct().
		Pluck("recipe_ingredients.recipe_id", &ids).Error
	if err != nil {
		return nil, translate(err, "candidates")
	}
	if len(ids) == 0 {
		return nil, nil
	}

	var recipes []models.Recipe
	if err := withIngredients(db).Where("id IN ?", ids).Find(&recipes).Error; err != nil {
		return nil, translate(err, "candidates")
	}
	return recipes, nil
}

// cleanPantry drops blank entries and duplicates, keeping the stored casing.
func cleanPantry(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" || seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
	}
	return out
}
