package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/verticx-api/internal/service"
)

const checkTimeout = 2 * time.Second

// HealthCheck checks one backend dependency.
type HealthCheck func(ctx context.Context) error

// MetricsHandler serves the scrape, health and stats endpoints.
type MetricsHandler struct {
	metrics  *service.MetricsService
	database HealthCheck
	cache    HealthCheck
}

// NewMetricsHandler builds the handler. A nil database check reports the
// process as live without checking Postgres.
func NewMetricsHandler(metrics *service.MetricsService, database HealthCheck) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, database: database}
}

// WithCacheCheck attaches the Redis check. A failing cache only degrades the
// report since every cached read falls back to Postgres.
func (h *MetricsHandler) WithCacheCheck(p HealthCheck) *MetricsHandler {
	h.cache = p
	return h
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.AbortWithStatus(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Health reports per-dependency status. Postgres down is 503; Redis down is
// reported as degraded with 200.
func (h *MetricsHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
	defer cancel()

	status := "ok"
	code := http.StatusOK
	checks := gin.H{"database": checkStatus(ctx, h.database), "cache": checkStatus(ctx, h.cache)}
	if checks["database"] == "down" {
		status, code = "unavailable", http.StatusServiceUnavailable
	} else if checks["cache"] == "down" {
		status = "degraded"
	}
	c.JSON(code, gin.H{"status": status, "checks": checks})
}

func checkStatus(ctx context.Context, p HealthCheck) string {
	if p == nil {
		return "skipped"
	}
	if err := p(ctx); err != nil {
		return "down"
	}
	return "up"
}

// Stats returns a JSON snapshot of the application counters.
func (h *MetricsHandler) Stats(c *gin.Context) {
	if h.metrics == nil {
		c.AbortWithStatus(http.StatusServiceUnavailable)
		return
	}
	c.JSON(http.StatusOK, h.metrics.Snapshot())
}
