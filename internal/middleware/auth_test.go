package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/pantrychef/backend/internal/types"
)

type mockValidator struct {
	mock.Mock
}

func (m *mockValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	args := m.Called(token)
	claims, _ := args.Get(0).(*types.TokenClaims)
	return claims, args.Error(1)
}

const goodToken = "aaa.bbb.ccc"

func newAuthRouter(handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", handler, func(c *gin.Context) {
		id, ok := UserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id, "authenticated": ok})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()
	v := new(mockValidator)
	v.On("ValidateToken", goodToken).Return(&types.TokenClaims{UserID: userID}, nil)
	v.On("ValidateToken", "xxx.yyy.zzz").Return(nil, errors.New("invalid token"))
	r := newAuthRouter(AuthMiddleware(v))

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"valid", "Bearer " + goodToken, http.StatusOK, userID.String()},
		{"missing", "", http.StatusUnauthorized, "missing authorization header"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "invalid authorization header format"},
		{"two segments", "Bearer aaa.bbb", http.StatusUnauthorized, "malformed token"},
		{"invalid", "Bearer xxx.yyy.zzz", http.StatusUnauthorized, "invalid token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
		})
	}
	v.AssertNotCalled(t, "ValidateToken", "aaa.bbb")
}

func TestOptionalAuth(t *testing.T) {
	userID := uuid.New()
	v := new(mockValidator)
	v.On("ValidateToken", goodToken).Return(&types.TokenClaims{UserID: userID}, nil)
	v.On("ValidateToken", "old.expired.token").Return(nil, errors.New("token has expired"))
	r := newAuthRouter(OptionalAuth(v))

	for header, authenticated := range map[string]bool{
		"":                         false,
		"Bearer " + goodToken:      true,
		"Bearer old.expired.token": false,
		"Bearer nonsense":          false,
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, header)
		if authenticated {
			assert.Contains(t, w.Body.String(), `"authenticated":true`, header)
		} else {
			assert.Contains(t, w.Body.String(), `"authenticated":false`, header)
		}
	}
}
