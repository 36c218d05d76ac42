package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pageza/pantrychef/backend/internal/service"
	"github.com/pageza/pantrychef/backend/internal/testhelpers"
	"github.com/pageza/pantrychef/backend/internal/types"
)

type testAPI struct {
	t      *testing.T
	router *gin.Engine
	db     *gorm.DB
	auth   *service.AuthService
}

func setupAPI(t *testing.T, opts Options, source service.MealSource) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testhelpers.SetupSQLite(t)

	auth := service.NewAuthService(db, "test-secret", time.Hour).WithBcryptCost(bcrypt.MinCost)
	recipes := service.NewRecipeService(db)
	profiles := service.NewProfileService(db, nil)
	svc := Services{
		Auth:        auth,
		Profiles:    profiles,
		Recipes:     recipes,
		Pantry:      service.NewPantryService(db),
		Ingredients: service.NewIngredientService(db),
		Suggestions: service.NewSuggestionService(db, nil, recipes, profiles),
		Debug:       service.NewDebugService(db, bcrypt.MinCost),
	}
	if source != nil {
		svc.Import = service.NewImportService(db, source, recipes)
	}
	opts.DB = db

	router := gin.New()
	RegisterRoutes(router, svc, opts)
	return &testAPI{t: t, router: router, db: db, auth: auth}
}

func (a *testAPI) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// register signs a user up through the API and returns the token.
func (a *testAPI) register(email string) (string, *types.UserResponse) {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/v1/auth/register", "", types.RegisterRequest{
		Name: "Test Cook", Email: email, Password: "password123",
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	var resp types.AuthResponse
	decode(a.t, w, &resp)
	return resp.Token, resp.User
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}
