package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/pantrychef/backend/internal/middleware"
	"github.com/pageza/pantrychef/backend/internal/service"
	"github.com/pageza/pantrychef/backend/internal/types"
)

type SuggestionHandler struct {
	suggestions service.ISuggestionService
}

func NewSuggestionHandler(suggestions service.ISuggestionService) *SuggestionHandler {
	return &SuggestionHandler{suggestions: suggestions}
}

func (h *SuggestionHandler) RegisterRoutes(router *gin.RouterGroup, optionalAuth, limit gin.HandlerFunc) {
	router.POST("/suggestions", optionalAuth, limit, h.Suggest)
}

// Suggest ranks recipes for the posted pantry. Authentication is optional:
// anonymous callers get overlap ranking only.
func (h *SuggestionHandler) Suggest(c *gin.Context) {
	var req types.SuggestionRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
	}

	var caller *uuid.UUID
	if id, ok := middleware.UserID(c); ok {
		caller = &id
	}
	results, err := h.suggestions.Suggest(c.Request.Context(), req.PantryItems, caller)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}
