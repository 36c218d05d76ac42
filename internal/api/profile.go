package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/pantrychef/backend/internal/service"
	"github.com/pageza/pantrychef/backend/internal/types"
)

const pictureField = "picture"

type ProfileHandler struct {
	profiles service.IProfileService
	auth     service.IAuthService
}

func NewProfileHandler(profiles service.IProfileService, auth service.IAuthService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, auth: auth}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	profile := router.Group("/profile", requireAuth)
	{
		profile.GET("", h.GetProfile)
		profile.PUT("", h.UpdateProfile)
		profile.PUT("/preferences", h.UpdatePreferences)
		profile.POST("/picture", h.UploadPicture)
		profile.DELETE("/picture", h.DeletePicture)
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	user, err := h.auth.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, service.ToUserResponse(user))
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req types.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	user, err := h.profiles.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, service.ToUserResponse(user))
}

func (h *ProfileHandler) UpdatePreferences(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req types.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	user, err := h.profiles.UpdatePreferences(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, service.ToUserResponse(user))
}

// UploadPicture accepts a multipart form with a "picture" file field.
func (h *ProfileHandler) UploadPicture(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	file, err := c.FormFile(pictureField)
	if err != nil {
		badRequest(c, "picture file is required")
		return
	}
	if file.Size > service.MaxPictureBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "picture is too large"})
		return
	}
	f, err := file.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, service.MaxPictureBytes+1))
	if err != nil {
		respondError(c, err)
		return
	}

	url, err := h.profiles.SetProfilePicture(c.Request.Context(), userID, data)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile_picture_url": url})
}

func (h *ProfileHandler) DeletePicture(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.profiles.RemoveProfilePicture(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
