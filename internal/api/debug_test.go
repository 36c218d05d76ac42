package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/pantrychef/backend/internal/types"
)

func TestDebugEndpointsDisabled(t *testing.T) {
	a := setupAPI(t, Options{DebugEndpoints: false}, nil)

	assert.Equal(t, http.StatusNotFound, a.do(http.MethodGet, "/api/v1/debug/users", "", nil).Code)
}

func TestDebugEndpoints(t *testing.T) {
	a := setupAPI(t, Options{DebugEndpoints: true}, nil)
	a.register("cook@example.com")

	w := a.do(http.MethodGet, "/api/v1/debug/users", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cook@example.com")

	w = a.do(http.MethodPost, "/api/v1/debug/reset-password", "", types.DebugPasswordRequest{Email: "cook@example.com", Password: "brand-new-pass"})
	require.Equal(t, http.StatusOK, w.Code)

	w = a.do(http.MethodPost, "/api/v1/debug/check-password", "", types.DebugPasswordRequest{Email: "cook@example.com", Password: "brand-new-pass"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"match":true}`, w.Body.String())

	w = a.do(http.MethodPost, "/api/v1/debug/check-password", "", types.DebugPasswordRequest{Email: "ghost@example.com", Password: "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
