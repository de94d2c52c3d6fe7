package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// BuildInfo identifies the running binary
type BuildInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

// BreakerReporter exposes the analytics circuit state
type BreakerReporter interface {
	BreakerState() string
}

// Pinger is a dependency that can be health-checked
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves /health and /version
type HealthHandler struct {
	build   BuildInfo
	breaker BreakerReporter
	db      Pinger
}

// NewHealthHandler creates a health handler; breaker and db may be nil
func NewHealthHandler(build BuildInfo, breaker BreakerReporter, db Pinger) *HealthHandler {
	return &HealthHandler{
		build:   build,
		breaker: breaker,
		db:      db,
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	status := "healthy"
	checks := gin.H{}

	if h.breaker != nil {
		state := h.breaker.BreakerState()
		checks["analytics_backend"] = state
		if state == "open" {
			status = "degraded"
		}
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			checks["turn_log"] = "unreachable"
			status = "degraded"
		} else {
			checks["turn_log"] = "ok"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     status,
		"service":    "estatechat",
		"checks":     checks,
		"version":    h.build.Version,
		"build_time": h.build.BuildTime,
		"git_commit": h.build.GitCommit,
	})
}

// Version handles GET /version
func (h *HealthHandler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":    h.build.Version,
		"build_time": h.build.BuildTime,
		"git_commit": h.build.GitCommit,
	})
}
