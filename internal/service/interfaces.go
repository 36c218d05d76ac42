package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/pantrychef/backend/internal/dietary"
	"github.com/pageza/pantrychef/backend/internal/mealdb"
	"github.com/pageza/pantrychef/backend/internal/models"
	"github.com/pageza/pantrychef/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	GenerateToken(user *models.User) (string, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// IProfileService defines the interface for user profile operations
type IProfileService interface {
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.User, error)
	UpdatePreferences(ctx context.Context, userID uuid.UUID, req *types.UpdatePreferencesRequest) (*models.User, error)
	GetPreferences(ctx context.Context, userID uuid.UUID) ([]dietary.Preference, []dietary.Allergy, error)
	SetProfilePicture(ctx context.Context, userID uuid.UUID, data []byte) (string, error)
	RemoveProfilePicture(ctx context.Context, userID uuid.UUID) error
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	CreateRecipe(ctx context.Context, userID uuid.UUID, req *types.CreateRecipeRequest) (*models.Recipe, error)
	GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	ListRecipes(ctx context.Context, limit int) ([]models.Recipe, error)
	LikeRecipe(ctx context.Context, userID, recipeID uuid.UUID) error
	UnlikeRecipe(ctx context.Context, userID, recipeID uuid.UUID) error
	GetLikedRecipes(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error)
	LikedIDs(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]bool, error)
}

// IPantryService defines the interface for pantry operations
type IPantryService interface {
	List(ctx context.Context, userID uuid.UUID) ([]types.PantryItemResponse, error)
	Add(ctx context.Context, userID uuid.UUID, req *types.AddPantryItemRequest) (*types.PantryItemResponse, error)
	Remove(ctx context.Context, userID uuid.UUID, name string) error
}

// ISuggestionService ranks recipes for a pantry. A nil userID is anonymous.
type ISuggestionService interface {
	Suggest(ctx context.Context, pantry []string, userID *uuid.UUID) ([]types.SuggestionResult, error)
}

// IImportService copies third-party recipes into the store
type IImportService interface {
	Categories(ctx context.Context) ([]mealdb.Category, error)
	Import(ctx context.Context, userID uuid.UUID, req *types.ImportRequest) (*types.ImportResult, error)
}

// IDebugService backs the development-only password endpoints
type IDebugService interface {
	ResetPassword(ctx context.Context, email, password string) error
	CheckPassword(ctx context.Context, email, password string) (bool, error)
	ListUsers(ctx context.Context) ([]types.DebugUser, error)
}

// IIngredientService lists ingredient nodes
type IIngredientService interface {
	List(ctx context.Context, category string) ([]models.Ingredient, error)
}
