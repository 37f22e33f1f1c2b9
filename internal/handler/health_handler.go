package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

const serviceName = "rollstock"

// Version is stamped at build time:
// go build -ldflags "-X rollstock/internal/handler.Version=v1.2.3".
var Version = "dev"

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	db *sqlx.DB
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *sqlx.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Liveness handles GET /healthz. It reports the service identity and
// build version without touching any dependency.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": serviceName,
		"version": Version,
	})
}

// Readiness handles GET /readyz. Ready means the database answers a ping.
func (h *HealthHandler) Readiness(c *gin.Context) {
	if err := h.db.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unavailable",
			"service": serviceName,
			"error":   "database not reachable",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": serviceName})
}
