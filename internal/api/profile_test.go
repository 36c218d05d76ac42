package api

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/pantrychef/backend/internal/types"
)

func uploadPicture(t *testing.T, a *testAPI, token string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("picture", "me.png")
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/profile/picture", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func TestUpdateProfileEndpoint(t *testing.T) {
	a := setupAPI(t, Options{}, nil)
	token, _ := a.register("cook@example.com")
	bio := "Home cook"

	w := a.do(http.MethodPut, "/api/v1/profile", token, types.UpdateProfileRequest{Bio: &bio})
	require.Equal(t, http.StatusOK, w.Code)
	var user types.UserResponse
	decode(t, w, &user)
	assert.Equal(t, "Home cook", user.Bio)
	assert.Equal(t, "Test Cook", user.Name)
}

func TestUpdatePreferencesEndpoint(t *testing.T) {
	a := setupAPI(t, Options{}, nil)
	token, _ := a.register("cook@example.com")

	w := a.do(http.MethodPut, "/api/v1/profile/preferences", token, types.UpdatePreferencesRequest{
		DietaryPreferences: []string{"Vegetarian", "low-fodmap"},
		Allergies:          []string{"Peanuts"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	var user types.UserResponse
	decode(t, w, &user)
	assert.ElementsMatch(t, []string{"vegetarian", "low-fodmap"}, user.DietaryPreferences)
	assert.Equal(t, []string{"peanuts"}, user.Allergies)
}

func TestOverlongInputIsBadRequest(t *testing.T) {
	a := setupAPI(t, Options{}, nil)
	token, _ := a.register("cook@example.com")

	w := a.do(http.MethodPut, "/api/v1/profile/preferences", token, types.UpdatePreferencesRequest{
		Allergies: []string{strings.Repeat("a", 60)},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	w = a.do(http.MethodPost, "/api/v1/pantry", token, types.AddPantryItemRequest{Name: strings.Repeat("n", 120)})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

func TestProfilePictureEndpoints(t *testing.T) {
	a := setupAPI(t, Options{}, nil)
	token, _ := a.register("cook@example.com")
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	w := uploadPicture(t, a, token, png)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "data:image/png;base64,")

	w = uploadPicture(t, a, token, []byte("plain text is not an image"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(http.MethodDelete, "/api/v1/profile/picture", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = a.do(http.MethodGet, "/api/v1/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var user types.UserResponse
	decode(t, w, &user)
	assert.Empty(t, user.ProfilePictureURL)
}

func TestProfilePictureRequiresFile(t *testing.T) {
	a := setupAPI(t, Options{}, nil)
	token, _ := a.register("cook@example.com")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/profile/picture", strings.NewReader(""))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
