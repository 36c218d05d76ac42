package types

// RegisterRequest represents the sign-up body
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Username string `json:"username"`
}

// LoginRequest represents the login body
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AddPantryItemRequest adds an ingredient to the caller's pantry
type AddPantryItemRequest struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category"`
}

// SuggestionRequest carries the pantry to match. An empty list yields no suggestions.
type SuggestionRequest struct {
	PantryItems []string `json:"pantry_items"`
}

// RecipeIngredientInput is one ingredient line of a new recipe
type RecipeIngredientInput struct {
	Name     string `json:"name" binding:"required"`
	Measure  string `json:"measure"`
	Category string `json:"category"`
}

// CreateRecipeRequest represents the request body for creating a recipe
type CreateRecipeRequest struct {
	Name        string                  `json:"name" binding:"required"`
	Description string                  `json:"description"`
	PrepTime    int                     `json:"prep_time" binding:"gte=0"`
	CookTime    int                     `json:"cook_time" binding:"gte=0"`
	Servings    int                     `json:"servings" binding:"gte=0"`
	Difficulty  string                  `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	DietaryTags []string                `json:"dietary_tags"`
	Ingredients []RecipeIngredientInput `json:"ingredients" binding:"required,min=1,dive"`
	SourceURL   string                  `json:"source_url" binding:"omitempty,url"`
	ImageURL    string                  `json:"image_url" binding:"omitempty,url"`
}

// ImportRequest selects third-party recipes by category or free-text search
type ImportRequest struct {
	Category string `json:"category"`
	Search   string `json:"search"`
	Limit    int    `json:"limit" binding:"gte=0,lte=50"`
}

// UpdateProfileRequest represents a request to update a user's profile.
// Nil fields are left unchanged.
type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty"`
	Username *string `json:"username,omitempty"`
	Bio      *string `json:"bio,omitempty"`
}

// UpdatePreferencesRequest replaces both preference sets
type UpdatePreferencesRequest struct {
	DietaryPreferences []string `json:"dietary_preferences"`
	Allergies          []string `json:"allergies"`
}

// DebugPasswordRequest is used by the development-only password endpoints
type DebugPasswordRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
