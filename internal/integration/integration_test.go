package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/pageza/pantrychef/backend/config"
	"github.com/pageza/pantrychef/backend/internal/mealdb"
	"github.com/pageza/pantrychef/backend/internal/server"
	"github.com/pageza/pantrychef/backend/internal/service"
	"github.com/pageza/pantrychef/backend/internal/testhelpers"
	"github.com/pageza/pantrychef/backend/internal/types"
)

type offlineMeals struct{}

func (offlineMeals) Categories(context.Context) ([]mealdb.Category, error)             { return nil, nil }
func (offlineMeals) FilterByCategory(context.Context, string) ([]mealdb.MealRef, error) { return nil, nil }
func (offlineMeals) Lookup(context.Context, string) (*mealdb.Meal, error)              { return nil, nil }
func (offlineMeals) Search(context.Context, string) ([]mealdb.Meal, error)             { return nil, nil }

type client struct {
	t       *testing.T
	handler http.Handler
	token   string
}

func (c *client) call(method, path string, body interface{}, out interface{}) int {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	if out != nil && w.Code < 300 {
		require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w.Code
}

func TestPantryToSuggestionsOnPostgres(t *testing.T) {
	db := testhelpers.SetupPostgres(t)
	gin.SetMode(gin.TestMode)

	_, err := service.Seed(context.Background(), db)
	require.NoError(t, err)

	srv := server.New(&config.Config{
		Env:        config.Test,
		ServerPort: "0",
		JWTSecret:  "integration-secret",
		TokenTTL:   time.Hour,
	}, server.Deps{DB: db, Logger: zaptest.NewLogger(t), Meals: offlineMeals{}})
	c := &client{t: t, handler: srv.Handler()}

	var auth types.AuthResponse
	require.Equal(t, http.StatusCreated, c.call(http.MethodPost, "/api/v1/auth/register", types.RegisterRequest{
		Name: "Pat", Email: "pat@example.com", Password: "password123",
	}, &auth))
	c.token = auth.Token

	for _, item := range []string{"Tomato", "Pasta", "Garlic"} {
		require.Equal(t, http.StatusCreated, c.call(http.MethodPost, "/api/v1/pantry", types.AddPantryItemRequest{Name: item}, nil))
	}
	var pantry struct {
		Items []types.PantryItemResponse `json:"items"`
	}
	require.Equal(t, http.StatusOK, c.call(http.MethodGet, "/api/v1/pantry", nil, &pantry))
	require.Len(t, pantry.Items, 3)
	assert.Equal(t, "vegetable", pantry.Items[0].Category, "seeded ingredients keep their category")

	var results []types.SuggestionResult
	require.Equal(t, http.StatusOK, c.call(http.MethodPost, "/api/v1/suggestions",
		types.SuggestionRequest{PantryItems: []string{"Tomato", "Pasta", "Garlic"}}, &results))
	require.NotEmpty(t, results)
	assert.Equal(t, "Simple Tomato Pasta", results[0].Recipe.Name)
	assert.Equal(t, 0.5, results[0].MatchRatio)

	require.Equal(t, http.StatusOK, c.call(http.MethodPut, "/api/v1/profile/preferences",
		types.UpdatePreferencesRequest{Allergies: []string{"peanuts"}}, nil))
	results = nil
	require.Equal(t, http.StatusOK, c.call(http.MethodPost, "/api/v1/suggestions",
		types.SuggestionRequest{PantryItems: []string{"Pasta", "Garlic"}}, &results))
	for _, r := range results {
		assert.NotEqual(t, "Peanut Noodles", r.Recipe.Name)
	}

	stirFry := findRecipe(t, c, "Chicken Stir Fry")
	require.Equal(t, http.StatusOK, c.call(http.MethodPost, "/api/v1/recipes/"+stirFry+"/like", nil, nil))
	require.Equal(t, http.StatusOK, c.call(http.MethodPost, "/api/v1/recipes/"+stirFry+"/like", nil, nil))
	results = nil
	require.Equal(t, http.StatusOK, c.call(http.MethodPost, "/api/v1/suggestions",
		types.SuggestionRequest{PantryItems: []string{"Tomato", "Pasta", "Garlic"}}, &results))
	assert.Equal(t, "Chicken Stir Fry", results[0].Recipe.Name)
	assert.True(t, results[0].Liked)
}

func findRecipe(t *testing.T, c *client, name string) string {
	t.Helper()
	var list struct {
		Recipes []types.RecipeResponse `json:"recipes"`
	}
	require.Equal(t, http.StatusOK, c.call(http.MethodGet, "/api/v1/recipes", nil, &list))
	for _, r := range list.Recipes {
		if r.Name == name {
			return r.ID.String()
		}
	}
	t.Fatalf("recipe %q not found", name)
	return ""
}
