package handler

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/jacketscrape/exporter"
	"github.com/use-agent/jacketscrape/models"
)

// Version is reported by the health endpoint.
const Version = "0.1.0"

// Health returns a handler for GET /api/v1/health.
//
// Reports "degraded" when the export directory is missing, since every
// scrape would then fail at the export stage.
func Health(exp *exporter.Exporter, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "healthy"
		if info, err := os.Stat(exp.Dir()); err != nil || !info.IsDir() {
			status = "degraded"
		}

		c.JSON(http.StatusOK, models.HealthResponse{
			Status:    status,
			Uptime:    time.Since(startTime).Round(time.Second).String(),
			ExportDir: exp.Dir(),
			Version:   Version,
		})
	}
}
