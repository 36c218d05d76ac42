package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/pantrychef/backend/internal/service"
	"github.com/pageza/pantrychef/backend/internal/types"
)

type PantryHandler struct {
	pantry      service.IPantryService
	ingredients service.IIngredientService
}

func NewPantryHandler(pantry service.IPantryService, ingredients service.IIngredientService) *PantryHandler {
	return &PantryHandler{pantry: pantry, ingredients: ingredients}
}

func (h *PantryHandler) RegisterRoutes(router *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	pantry := router.Group("/pantry", requireAuth)
	{
		pantry.GET("", h.List)
		pantry.POST("", h.Add)
		pantry.DELETE("/:name", h.Remove)
	}
	router.GET("/ingredients", h.ListIngredients)
}

func (h *PantryHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	items, err := h.pantry.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *PantryHandler) Add(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req types.AddPantryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	item, err := h.pantry.Add(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *PantryHandler) Remove(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.pantry.Remove(c.Request.Context(), userID, c.Param("name")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PantryHandler) ListIngredients(c *gin.Context) {
	ingredients, err := h.ingredients.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": ingredients})
}
