package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/pantrychef/backend/internal/logger"
	"github.com/pageza/pantrychef/backend/internal/middleware"
	"github.com/pageza/pantrychef/backend/internal/service"
)

const errorDetailKey = "api.error_detail"

// Services bundles the domain services the handlers call.
type Services struct {
	Auth        service.IAuthService
	Profiles    service.IProfileService
	Recipes     service.IRecipeService
	Pantry      service.IPantryService
	Ingredients service.IIngredientService
	Suggestions service.ISuggestionService
	Import      service.IImportService
	Debug       service.IDebugService
}

// Options controls route registration.
type Options struct {
	// ShowErrorDetail adds the underlying error to 500 responses.
	ShowErrorDetail bool
	// DebugEndpoints exposes /api/v1/debug.
	DebugEndpoints bool
	// DB is pinged by /health.
	DB *gorm.DB

	SuggestionLimiter *middleware.RateLimiter
	ImportLimiter     *middleware.RateLimiter
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, svc Services, opts Options) {
	router.Use(func(c *gin.Context) {
		c.Set(errorDetailKey, opts.ShowErrorDetail)
		c.Next()
	})

	router.GET("/health", NewHealthHandler(opts.DB).Health)

	requireAuth := middleware.AuthMiddleware(svc.Auth)
	optionalAuth := middleware.OptionalAuth(svc.Auth)
	suggestionLimit := limiterOrNoop(opts.SuggestionLimiter)
	importLimit := limiterOrNoop(opts.ImportLimiter)

	v1 := router.Group("/api/v1")
	NewAuthHandler(svc.Auth).RegisterRoutes(v1, requireAuth)
	NewPantryHandler(svc.Pantry, svc.Ingredients).RegisterRoutes(v1, requireAuth)
	NewSuggestionHandler(svc.Suggestions).RegisterRoutes(v1, optionalAuth, suggestionLimit)
	NewRecipeHandler(svc.Recipes).RegisterRoutes(v1, requireAuth)
	NewImportHandler(svc.Import).RegisterRoutes(v1, requireAuth, importLimit)
	NewProfileHandler(svc.Profiles, svc.Auth).RegisterRoutes(v1, requireAuth)
	if svc.Debug != nil {
		NewDebugHandler(svc.Debug).RegisterRoutes(v1, middleware.DevOnly(opts.DebugEndpoints))
	}
}

func limiterOrNoop(rl *middleware.RateLimiter) gin.HandlerFunc {
	if rl == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return rl.RateLimitMiddleware()
}

// respondError maps service errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrTokenExpired):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
	}

	if status != http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	_ = c.Error(err)
	logger.FromContext(c.Request.Context()).Error("request failed", zap.Error(err))
	body := gin.H{"error": "internal server error"}
	if c.GetBool(errorDetailKey) {
		body["detail"] = err.Error()
	}
	c.JSON(status, body)
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// currentUser returns the authenticated user. Routes behind AuthMiddleware
// always have one.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
	return id, ok
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid recipe id")
		return uuid.Nil, false
	}
	return id, true
}
