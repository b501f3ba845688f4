package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveCheckout(t *testing.T) {
	m := NewServerMetrics(prometheus.NewRegistry(), "test")

	m.ObserveCheckout("success", 2, 1)
	m.ObserveCheckout("success", 1, 0)
	m.ObserveCheckout("insufficient_stock", 0, 0)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.Checkouts.WithLabelValues("success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Checkouts.WithLabelValues("insufficient_stock")))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.Lines.WithLabelValues("committed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Lines.WithLabelValues("skipped")))
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	m := NewServerMetrics(reg, "test")

	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	router.GET("/metrics", gin.WrapH(Handler(reg)))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Requests.WithLabelValues("/ping", "200")))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "sales_test_http_requests_total"))
}
