package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/pantrychef/backend/internal/service"
	"github.com/pageza/pantrychef/backend/internal/types"
)

// DebugHandler serves password helpers for local development.
type DebugHandler struct {
	debug service.IDebugService
}

func NewDebugHandler(debug service.IDebugService) *DebugHandler {
	return &DebugHandler{debug: debug}
}

func (h *DebugHandler) RegisterRoutes(router *gin.RouterGroup, devOnly gin.HandlerFunc) {
	debug := router.Group("/debug", devOnly)
	{
		debug.POST("/reset-password", h.ResetPassword)
		debug.POST("/check-password", h.CheckPassword)
		debug.GET("/users", h.ListUsers)
	}
}

func (h *DebugHandler) ResetPassword(c *gin.Context) {
	var req types.DebugPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := h.debug.ResetPassword(c.Request.Context(), req.Email, req.Password); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password reset"})
}

func (h *DebugHandler) CheckPassword(c *gin.Context) {
	var req types.DebugPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	match, err := h.debug.CheckPassword(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"match": match})
}

func (h *DebugHandler) ListUsers(c *gin.Context) {
	users, err := h.debug.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}
