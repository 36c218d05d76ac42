package types

import (
	"time"

	"github.com/google/uuid"
)

// IngredientLine is one ingredient of a recipe, in recipe order
type IngredientLine struct {
	Name     string `json:"name"`
	Measure  string `json:"measure,omitempty"`
	Category string `json:"category,omitempty"`
}

// RecipeResponse is the public view of a recipe
type RecipeResponse struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	PrepTime    int              `json:"prep_time"`
	CookTime    int              `json:"cook_time"`
	Servings    int              `json:"servings"`
	Difficulty  string           `json:"difficulty"`
	DietaryTags []string         `json:"dietary_tags"`
	Ingredients []IngredientLine `json:"ingredients"`
	SourceURL   string           `json:"source_url,omitempty"`
	ImageURL    string           `json:"image_url,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

// SuggestionResult is one ranked suggestion. MatchRatio is never boosted by likes.
type SuggestionResult struct {
	Recipe              RecipeResponse `json:"recipe"`
	MatchingIngredients int            `json:"matching_ingredients"`
	TotalIngredients    int            `json:"total_ingredients"`
	MatchRatio          float64        `json:"match_ratio"`
	Liked               bool           `json:"liked"`
}

// ImportResult summarizes one third-party import run
type ImportResult struct {
	Imported int              `json:"imported"`
	Skipped  int              `json:"skipped"`
	Recipes  []RecipeResponse `json:"recipes"`
}

// PantryItemResponse is one pantry entry
type PantryItemResponse struct {
	Name     string    `json:"name"`
	Category string    `json:"category"`
	AddedAt  time.Time `json:"added_at"`
}
