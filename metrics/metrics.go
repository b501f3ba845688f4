package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type ServerMetrics struct {
	Requests  *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec
	Checkouts *prometheus.CounterVec
	Lines     *prometheus.CounterVec
}

func NewServerMetrics(reg prometheus.Registerer, service string) *ServerMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sales",
		Subsystem: service,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"handler", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "sales",
		Subsystem: service,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"handler"})
	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sales",
		Subsystem: service,
		Name:      "checkouts_total",
		Help:      "Checkout calls by outcome.",
	}, []string{"outcome"})
	lines := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sales",
		Subsystem: service,
		Name:      "checkout_lines_total",
		Help:      "Cart lines committed or skipped by checkout.",
	}, []string{"result"})

	reg.MustRegister(requests, latency, checkouts, lines)
	return &ServerMetrics{Requests: requests, LatencyMS: latency, Checkouts: checkouts, Lines: lines}
}

// ObserveCheckout implements checkout.Observer.
func (m *ServerMetrics) ObserveCheckout(outcome string, committed, skipped int) {
	m.Checkouts.WithLabelValues(outcome).Inc()
	m.Lines.WithLabelValues("committed").Add(float64(committed))
	m.Lines.WithLabelValues("skipped").Add(float64(skipped))
}

// Middleware records request count and latency per route.
func (m *ServerMetrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		handler := c.FullPath()
		if handler == "" {
			handler = "unmatched"
		}
		m.Requests.WithLabelValues(handler, strconv.Itoa(c.Writer.Status())).Inc()
		m.LatencyMS.WithLabelValues(handler).Observe(float64(time.Since(start).Milliseconds()))
	}
}

func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
