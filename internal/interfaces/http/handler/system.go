package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/proptraka/backend/internal/infrastructure/persistence"
	"github.com/proptraka/backend/internal/infrastructure/scheduler"
	"github.com/proptraka/backend/internal/interfaces/http/dto"
)

// SystemHandler exposes health probes and the manual sweep trigger
type SystemHandler struct {
	BaseHandler
	db        *persistence.Database
	scheduler *scheduler.OverdueSweepScheduler
	startedAt time.Time
}

// NewSystemHandler creates a system handler. The scheduler may be nil when
// the sweep loop is disabled.
func NewSystemHandler(db *persistence.Database, sweepScheduler *scheduler.OverdueSweepScheduler) *SystemHandler {
	return &SystemHandler{
		db:        db,
		scheduler: sweepScheduler,
		startedAt: time.Now(),
	}
}

// RegisterRoutes registers system routes. Health probes sit outside the
// versioned group; the sweep trigger is registered on it.
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	system := rg.Group("/system")
	{
		system.POST("/sweep", h.TriggerSweep)
		system.GET("/sweep", h.SweepStatus)
	}
}

// RegisterProbes registers the unauthenticated liveness and readiness
// probes on the engine root.
func (h *SystemHandler) RegisterProbes(engine *gin.Engine) {
	engine.GET("/health", h.Health)
	engine.GET("/ready", h.Ready)
}

// Health is the liveness probe
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(h.startedAt).String(),
	})
}

// Ready is the readiness probe: the server is ready once the database
// answers pings
func (h *SystemHandler) Ready(c *gin.Context) {
	if err := h.db.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"reason": "database unreachable",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// TriggerSweep runs the overdue sweep immediately instead of waiting for
// the next scheduled tick
func (h *SystemHandler) TriggerSweep(c *gin.Context) {
	if h.scheduler == nil {
		h.Error(c, http.StatusServiceUnavailable, dto.ErrCodeInternal, "sweep scheduler is disabled")
		return
	}

	if err := h.scheduler.TriggerImmediateSweep(c.Request.Context()); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, dto.NewSuccessResponse(gin.H{"triggered": true}))
}

// SweepStatus reports whether the background sweep loop is running
func (h *SystemHandler) SweepStatus(c *gin.Context) {
	running := h.scheduler != nil && h.scheduler.IsRunning()
	h.Success(c, gin.H{"running": running})
}
