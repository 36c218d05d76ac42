package service

import (
	"github.com/pageza/pantrychef/backend/internal/dietary"
	"github.com/pageza/pantrychef/backend/internal/models"
	"github.com/pageza/pantrychef/backend/internal/types"
)

// ToRecipeResponse flattens a recipe with preloaded ingredients.
func ToRecipeResponse(r *models.Recipe) types.RecipeResponse {
	lines := make([]types.IngredientLine, len(r.Ingredients))
	for i, ri := range r.Ingredients {
		lines[i] = types.IngredientLine{
			Name:     ri.Ingredient.Name,
			Measure:  ri.Measure,
			Category: ri.Ingredient.Category,
		}
	}
	tags := []string(r.DietaryTags)
	if tags == nil {
		tags = []string{}
	}
	return types.RecipeResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		PrepTime:    r.PrepTime,
		CookTime:    r.CookTime,
		Servings:    r.Servings,
		Difficulty:  r.Difficulty,
		DietaryTags: tags,
		Ingredients: lines,
		SourceURL:   r.SourceURL,
		ImageURL:    r.ImageURL,
		CreatedAt:   r.CreatedAt,
	}
}

// ToRecipeResponses converts a slice, keeping order.
func ToRecipeResponses(rs []models.Recipe) []types.RecipeResponse {
	out := make([]types.RecipeResponse, len(rs))
	for i := range rs {
		out[i] = ToRecipeResponse(&rs[i])
	}
	return out
}

// ToUserResponse builds the public user view. Profile, preferences and
// allergens must be preloaded.
func ToUserResponse(u *models.User) *types.UserResponse {
	resp := &types.UserResponse{
		ID:                 u.ID,
		Name:               u.Name,
		Email:              u.Email,
		DietaryPreferences: preferenceStrings(u.DietaryPreferences),
		Allergies:          allergenStrings(u.Allergens),
		CreatedAt:          u.CreatedAt,
	}
	if u.Profile != nil {
		resp.Username = u.Profile.Username
		resp.Bio = u.Profile.Bio
		resp.ProfilePictureURL = u.Profile.ProfilePictureURL
	}
	return resp
}

func preferenceStrings(rows []models.DietaryPreference) []string {
	out := make([]string, 0, len(rows))
	for _, p := range rows {
		if p.PreferenceType == dietary.CustomPreferenceType {
			out = append(out, p.CustomName)
			continue
		}
		out = append(out, p.PreferenceType)
	}
	return out
}

func allergenStrings(rows []models.Allergen) []string {
	out := make([]string, 0, len(rows))
	for _, a := range rows {
		out = append(out, a.AllergenName)
	}
	return out
}
