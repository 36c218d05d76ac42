package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/pantrychef/backend/internal/service"
	"github.com/pageza/pantrychef/backend/internal/types"
)

type ImportHandler struct {
	importer service.IImportService
}

func NewImportHandler(importer service.IImportService) *ImportHandler {
	return &ImportHandler{importer: importer}
}

func (h *ImportHandler) RegisterRoutes(router *gin.RouterGroup, requireAuth, limit gin.HandlerFunc) {
	if h.importer == nil {
		return
	}
	imp := router.Group("/import")
	{
		imp.GET("/categories", limit, h.Categories)
		imp.POST("/recipes", requireAuth, limit, h.ImportRecipes)
	}
}

func (h *ImportHandler) Categories(c *gin.Context) {
	cats, err := h.importer.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": cats})
}

func (h *ImportHandler) ImportRecipes(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req types.ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	result, err := h.importer.Import(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
