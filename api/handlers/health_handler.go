// api/handlers/health_handler.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DitoluT/malackathon2025/internal/domain"
	"github.com/DitoluT/malackathon2025/internal/logger"
	"github.com/DitoluT/malackathon2025/internal/storage"
)

var (
	customLog = logger.NewLogger()
)

// HealthHandler reports database liveness.
type HealthHandler struct {
	schema  *storage.SchemaRepo
	pool    *storage.Pool
	version string
}

func NewHealthHandler(schema *storage.SchemaRepo, pool *storage.Pool, version string) *HealthHandler {
	return &HealthHandler{schema: schema, pool: pool, version: version}
}

// Health always answers 200; the outcome is in the body.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()
	status := domain.HealthStatus{
		Status:    "healthy",
		Database:  "connected",
		Timestamp: time.Now().UTC(),
		Version:   h.version,
	}

	err := h.schema.Ping(ctx)
	if err == nil {
		var total int64
		if total, err = h.schema.CountRows(ctx); err == nil {
			status.TotalRecords = &total
		}
	}
	if err != nil {
		customLog.Warnf("Handler: Health check failed: %v", err)
		status.Status = "unhealthy"
		status.Database = "disconnected"
		status.Error = err.Error()
	}

	stats := h.pool.Stats()
	status.Pool = &stats
	c.JSON(http.StatusOK, status)
}
