package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/pantrychef/backend/internal/models"
	"github.com/pageza/pantrychef/backend/internal/service"
	"github.com/pageza/pantrychef/backend/internal/testhelpers"
	"github.com/pageza/pantrychef/backend/internal/types"
)

func tomatoPastaRequest() *types.CreateRecipeRequest {
	return &types.CreateRecipeRequest{
		Name:        "Simple Tomato Pasta",
		Description: "Weeknight pasta",
		PrepTime:    10,
		CookTime:    20,
		Servings:    2,
		DietaryTags: []string{"Vegan", " vegetarian ", "vegan"},
		Ingredients: []types.RecipeIngredientInput{
			{Name: "Pasta", Measure: "200g"},
			{Name: "Tomato", Measure: "4"},
			{Name: "Garlic"},
			{Name: "tomato"},
		},
	}
}

func TestCreateRecipe(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	user := testhelpers.CreateUser(t, s.db, "cook@example.com", "password123")

	recipe, err := s.recipes.CreateRecipe(ctx, user.ID, tomatoPastaRequest())
	require.NoError(t, err)

	assert.Equal(t, "Simple Tomato Pasta", recipe.Name)
	assert.Equal(t, "medium", recipe.Difficulty)
	assert.Equal(t, models.StringArray{"vegan", "vegetarian"}, recipe.DietaryTags)
	assert.Equal(t, []string{"Pasta", "Tomato", "Garlic"}, recipe.IngredientNames(), "duplicates keep their first position")
	assert.Equal(t, "200g", recipe.Ingredients[0].Measure)
	require.NotNil(t, recipe.CreatedByID)
	assert.Equal(t, user.ID, *recipe.CreatedByID)

	got, err := s.recipes.GetRecipe(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, recipe.IngredientNames(), got.IngredientNames())
}

func TestCreateRecipeRollsBackOnFailedLink(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	user := testhelpers.CreateUser(t, s.db, "cook@example.com", "password123")

	req := tomatoPastaRequest()
	req.Ingredients = append(req.Ingredients, types.RecipeIngredientInput{Name: "   "})

	_, err := s.recipes.CreateRecipe(ctx, user.ID, req)
	require.ErrorIs(t, err, service.ErrValidation)

	var recipes, links, ingredients int64
	s.db.Model(&models.Recipe{}).Count(&recipes)
	s.db.Model(&models.RecipeIngredient{}).Count(&links)
	s.db.Model(&models.Ingredient{}).Count(&ingredients)
	assert.Zero(t, recipes)
	assert.Zero(t, links)
	assert.Zero(t, ingredients, "ingredients created before the failure are rolled back too")
}

func TestCreateRecipeValidation(t *testing.T) {
	s := setupServices(t)
	user := testhelpers.CreateUser(t, s.db, "cook@example.com", "password123")

	_, err := s.recipes.CreateRecipe(context.Background(), user.ID, &types.CreateRecipeRequest{Name: "Empty"})
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = s.recipes.CreateRecipe(context.Background(), user.ID, &types.CreateRecipeRequest{
		Ingredients: []types.RecipeIngredientInput{{Name: "Salt"}},
	})
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestCreateRecipeRejectsLongFields(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	user := testhelpers.CreateUser(t, s.db, "cook@example.com", "password123")

	req := tomatoPastaRequest()
	req.Name = strings.Repeat("r", 256)
	_, err := s.recipes.CreateRecipe(ctx, user.ID, req)
	assert.ErrorIs(t, err, service.ErrValidation)

	req = tomatoPastaRequest()
	req.Ingredients[0].Measure = strings.Repeat("m", 101)
	_, err = s.recipes.CreateRecipe(ctx, user.ID, req)
	assert.ErrorIs(t, err, service.ErrValidation)

	var recipes int64
	s.db.Model(&models.Recipe{}).Count(&recipes)
	assert.Zero(t, recipes)
}

func TestGetRecipeNotFound(t *testing.T) {
	s := setupServices(t)

	_, err := s.recipes.GetRecipe(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestListRecipesLimit(t *testing.T) {
	s := setupServices(t)
	for _, name := range []string{"A", "B", "C"} {
		testhelpers.CreateRecipe(t, s.db, name, []string{"Salt"})
	}

	all, err := s.recipes.ListRecipes(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	two, err := s.recipes.ListRecipes(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, two, 2)
	assert.Equal(t, []string{"Salt"}, two[0].IngredientNames())
}

func TestLikeRecipeIsIdempotent(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	user := testhelpers.CreateUser(t, s.db, "cook@example.com", "password123")
	recipe := testhelpers.CreateRecipe(t, s.db, "Simple Tomato Pasta", []string{"Pasta", "Tomato"})

	require.NoError(t, s.recipes.LikeRecipe(ctx, user.ID, recipe.ID))
	require.NoError(t, s.recipes.LikeRecipe(ctx, user.ID, recipe.ID))

	var count int64
	s.db.Model(&models.RecipeLike{}).Count(&count)
	assert.Equal(t, int64(1), count)

	liked, err := s.recipes.GetLikedRecipes(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, liked, 1)
	assert.Equal(t, recipe.ID, liked[0].ID)

	ids, err := s.recipes.LikedIDs(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, ids[recipe.ID])

	require.NoError(t, s.recipes.UnlikeRecipe(ctx, user.ID, recipe.ID))
	require.NoError(t, s.recipes.UnlikeRecipe(ctx, user.ID, recipe.ID))
	liked, err = s.recipes.GetLikedRecipes(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, liked)
}

func TestLikeUnknownRecipe(t *testing.T) {
	s := setupServices(t)
	user := testhelpers.CreateUser(t, s.db, "cook@example.com", "password123")

	err := s.recipes.LikeRecipe(context.Background(), user.ID, uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)

	err = s.recipes.UnlikeRecipe(context.Background(), user.ID, uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)
}
