package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestMiddlewareRecordsRoutePattern(t *testing.T) {
	r := gin.New()
	r.Use(Middleware())
	r.GET("/api/v1/recipes/:id", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/recipes/abc", http.NoBody))
	assert.Equal(t, http.StatusOK, rr.Code)

	got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/v1/recipes/:id", "200"))
	assert.GreaterOrEqual(t, got, 1.0)
	assert.Positive(t, testutil.CollectAndCount(httpRequestDuration))
}

func TestMiddlewareUnknownRoute(t *testing.T) {
	r := gin.New()
	r.Use(Middleware())

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", http.NoBody))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "unknown", "404"))
	assert.GreaterOrEqual(t, got, 1.0)
}

func TestObserveSuggestions(t *testing.T) {
	before := testutil.ToFloat64(suggestionsExcluded.WithLabelValues("dietary"))
	ObserveSuggestions(3, 2, 1)
	assert.Equal(t, before+2, testutil.ToFloat64(suggestionsExcluded.WithLabelValues("dietary")))

	RecordImport("created", 4)
	assert.GreaterOrEqual(t, testutil.ToFloat64(recipesImported.WithLabelValues("created")), 4.0)
}
