package testhelpers

import (
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pageza/pantrychef/backend/internal/models"
)

// CreateUser inserts a user with a profile. The password is hashed at MinCost.
func CreateUser(t *testing.T, db *gorm.DB, email, password string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: string(hash),
		Profile:      &models.UserProfile{Username: "u" + uuid.NewString()[:8]},
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

// CreateRecipe inserts a recipe using the named ingredients, creating any that are missing.
func CreateRecipe(t *testing.T, db *gorm.DB, name string, ingredients []string, tags ...string) *models.Recipe {
	t.Helper()

	recipe := &models.Recipe{
		Name:        name,
		Servings:    2,
		Difficulty:  "easy",
		DietaryTags: models.StringArray(tags),
	}
	var linked []models.Ingredient
	for i, n := range ingredients {
		ing := models.Ingredient{Name: n}
		if err := db.Where(models.Ingredient{Name: n}).FirstOrCreate(&ing).Error; err != nil {
			t.Fatalf("failed to create ingredient %s: %v", n, err)
		}
		linked = append(linked, ing)
		recipe.Ingredients = append(recipe.Ingredients, models.RecipeIngredient{
			IngredientID: ing.ID,
			Position:     i,
		})
	}
	if err := db.Create(recipe).Error; err != nil {
		t.Fatalf("failed to create recipe: %v", err)
	}
	for i := range recipe.Ingredients {
		recipe.Ingredients[i].Ingredient = linked[i]
	}
	return recipe
}
