package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/pantrychef/backend/config"
	"github.com/pageza/pantrychef/backend/internal/api"
	"github.com/pageza/pantrychef/backend/internal/dietary"
	"github.com/pageza/pantrychef/backend/internal/mealdb"
	"github.com/pageza/pantrychef/backend/internal/metrics"
	"github.com/pageza/pantrychef/backend/internal/middleware"
	"github.com/pageza/pantrychef/backend/internal/service"
)

// Deps are the long-lived handles the server is built from.
type Deps struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Logger *zap.Logger
	// Pictures defaults to inline data URIs.
	Pictures service.PictureStore
	// Meals defaults to a client for cfg.MealDBBaseURL.
	Meals service.MealSource
}

// Server represents the HTTP server
type Server struct {
	cfg    *config.Config
	router *gin.Engine
	http   *http.Server
	log    *zap.Logger
}

// New wires services, middleware and routes.
func New(cfg *config.Config, deps Deps) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	meals := deps.Meals
	if meals == nil {
		meals = mealdb.New(cfg.MealDBBaseURL, cfg.MealDBTimeout)
	}

	router := gin.New()
	router.Use(
		requestid.New(),
		middleware.RequestLogger(log),
		middleware.Recovery(log),
		metrics.Middleware(),
		middleware.CORS(cfg.CORSOrigins),
	)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	db := deps.DB
	auth := service.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL)
	recipes := service.NewRecipeService(db)
	profiles := service.NewProfileService(db, deps.Pictures)
	svc := api.Services{
		Auth:        auth,
		Profiles:    profiles,
		Recipes:     recipes,
		Pantry:      service.NewPantryService(db),
		Ingredients: service.NewIngredientService(db),
		Suggestions: service.NewSuggestionService(db, dietary.DefaultRules(), recipes, profiles),
		Import:      service.NewImportService(db, meals, recipes),
	}
	if cfg.DebugEndpoints {
		svc.Debug = service.NewDebugService(db, 0)
	}

	opts := api.Options{
		ShowErrorDetail: cfg.IsDevelopment(),
		DebugEndpoints:  cfg.DebugEndpoints,
		DB:              db,
	}
	if deps.Redis != nil {
		opts.SuggestionLimiter = middleware.NewSuggestionRateLimiter(deps.Redis, cfg.RateLimitRequests, cfg.RateLimitWindow)
		opts.ImportLimiter = middleware.NewImportRateLimiter(deps.Redis, cfg.RateLimitRequests, cfg.RateLimitWindow)
	}
	api.RegisterRoutes(router, svc, opts)

	return &Server{
		cfg:    cfg,
		router: router,
		log:    log,
		http: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}
}

// Handler exposes the router, for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	s.log.Info("server listening", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
