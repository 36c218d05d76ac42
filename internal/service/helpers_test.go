package service_test

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pageza/pantrychef/backend/internal/service"
	"github.com/pageza/pantrychef/backend/internal/testhelpers"
)

const testSecret = "test-secret"

type services struct {
	db          *gorm.DB
	auth        *service.AuthService
	pantry      *service.PantryService
	ingredients *service.IngredientService
	recipes     *service.RecipeService
	profiles    *service.ProfileService
	suggestions *service.SuggestionService
}

func setupServices(t *testing.T) *services {
	t.Helper()
	db := testhelpers.SetupSQLite(t)
	recipes := service.NewRecipeService(db)
	profiles := service.NewProfileService(db, nil)
	return &services{
		db:          db,
		auth:        service.NewAuthService(db, testSecret, time.Hour).WithBcryptCost(bcrypt.MinCost),
		pantry:      service.NewPantryService(db),
		ingredients: service.NewIngredientService(db),
		recipes:     recipes,
		profiles:    profiles,
		suggestions: service.NewSuggestionService(db, nil, recipes, profiles),
	}
}
