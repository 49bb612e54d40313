package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/use-agent/jacketscrape/api/handler"
	"github.com/use-agent/jacketscrape/api/middleware"
	"github.com/use-agent/jacketscrape/config"
	"github.com/use-agent/jacketscrape/exporter"
	"github.com/use-agent/jacketscrape/scraper"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger → Metrics
//	Form:    RateLimit on POST /scrape, refusals rendered on the result page
//	API:     Auth (if keys configured) → RateLimit on POST /api/v1/scrape,
//	         refusals as JSON with 401/429
//
// Both scrape routes draw on the same per-client budget. The form pages,
// /download and health checks are not rate limited.
func NewRouter(sc *scraper.Scraper, exp *exporter.Exporter, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics())
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
	r.SetHTMLTemplate(loadTemplates())

	limiter := middleware.NewLimiter(cfg.RateLimit)

	// Form flow.
	r.GET("/", handler.Index())
	r.POST("/scrape", limiter.Middleware(handler.RenderRejection), handler.ScrapePage(sc))
	r.GET("/download", handler.Download(exp, cfg.Site.DownloadName, cfg.Export.ConfineDownloads))

	// JSON API.
	v1 := r.Group("/api/v1")
	v1.GET("/health", handler.Health(exp, startTime))
	v1.POST("/scrape",
		middleware.Auth(cfg.Auth.APIKeys, middleware.RejectJSON),
		limiter.Middleware(middleware.RejectJSON),
		handler.Scrape(sc),
	)

	return r
}
