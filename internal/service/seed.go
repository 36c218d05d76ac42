package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/pantrychef/backend/internal/logger"
	"github.com/pageza/pantrychef/backend/internal/models"
	"github.com/pageza/pantrychef/backend/internal/types"
)

type seedRecipe struct {
	recipe models.Recipe
	lines  []types.RecipeIngredientInput
}

func line(name, measure, category string) types.RecipeIngredientInput {
	return types.RecipeIngredientInput{Name: name, Measure: measure, Category: category}
}

func sampleRecipes() []seedRecipe {
	return []seedRecipe{
		{
			recipe: models.Recipe{
				Name:        "Simple Tomato Pasta",
				Description: "Pasta tossed in a quick garlic and tomato sauce.",
				PrepTime:    10, CookTime: 20, Servings: 2, Difficulty: "easy",
				DietaryTags: models.StringArray{"vegan", "vegetarian"},
			},
			lines: []types.RecipeIngredientInput{
				line("Pasta", "200g", "grain"),
				line("Tomato", "4", "vegetable"),
				line("Garlic", "2 cloves", "vegetable"),
				line("Olive Oil", "2 tbsp", "oil"),
				line("Salt", "to taste", "spice"),
				line("Pepper", "to taste", "spice"),
			},
		},
		{
			recipe: models.Recipe{
				Name:        "Chicken Stir Fry",
				Description: "Chicken and rice with garlic and soy sauce.",
				PrepTime:    15, CookTime: 15, Servings: 2, Difficulty: "medium",
				DietaryTags: models.StringArray{"dairy-free"},
			},
			lines: []types.RecipeIngredientInput{
				line("Chicken Breast", "300g", "protein"),
				line("Garlic", "3 cloves", "vegetable"),
				line("Soy Sauce", "3 tbsp", "condiment"),
				line("Rice", "1 cup", "grain"),
			},
		},
		{
			recipe: models.Recipe{
				Name:        "Cheese Omelette",
				Description: "A folded omelette with melted cheese and tomato.",
				PrepTime:    5, CookTime: 5, Servings: 1, Difficulty: "easy",
				DietaryTags: models.StringArray{"vegetarian", "gluten-free"},
			},
			lines: []types.RecipeIngredientInput{
				line("Eggs", "3", "protein"),
				line("Cheese", "50g", "dairy"),
				line("Tomato", "1", "vegetable"),
			},
		},
		{
			recipe: models.Recipe{
				Name:        "Vegan Buddha Bowl",
				Description: "Rice, chickpeas and roasted vegetables with tahini.",
				PrepTime:    15, CookTime: 25, Servings: 2, Difficulty: "easy",
				DietaryTags: models.StringArray{"vegan", "vegetarian", "dairy-free"},
			},
			lines: []types.RecipeIngredientInput{
				line("Rice", "1 cup", "grain"),
				line("Chickpeas", "1 can", "protein"),
				line("Sweet Potato", "1", "vegetable"),
				line("Spinach", "2 cups", "vegetable"),
				line("Tahini", "2 tbsp", "condiment"),
			},
		},
		{
			recipe: models.Recipe{
				Name:        "Peanut Noodles",
				Description: "Noodles in a peanut and soy dressing.",
				PrepTime:    10, CookTime: 10, Servings: 2, Difficulty: "easy",
				DietaryTags: models.StringArray{"vegetarian"},
			},
			lines: []types.RecipeIngredientInput{
				line("Pasta", "200g", "grain"),
				line("Peanut Butter", "3 tbsp", "condiment"),
				line("Soy Sauce", "2 tbsp", "condiment"),
				line("Garlic", "1 clove", "vegetable"),
			},
		},
	}
}

// Seed inserts the sample recipes that are not already present by name and
// returns how many were created.
func Seed(ctx context.Context, db *gorm.DB) (int, error) {
	log := logger.FromContext(ctx)
	created := 0
	for _, s := range sampleRecipes() {
		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var existing models.Recipe
			err := tx.Select("id").Where("name = ?", s.recipe.Name).First(&existing).Error
			if err == nil {
				return nil
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if err := createRecipeTx(tx, &s.recipe, s.lines); err != nil {
				return err
			}
			created++
			return nil
		})
		if err != nil {
			return created, translate(err, "seed recipe "+s.recipe.Name)
		}
	}
	log.Info("seed complete", zap.Int("created", created))
	return created, nil
}
