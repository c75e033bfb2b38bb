// api/router.go
package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/DitoluT/malackathon2025/api/handlers"
	"github.com/DitoluT/malackathon2025/api/middleware"
	"github.com/DitoluT/malackathon2025/config"
	"github.com/DitoluT/malackathon2025/internal/analysis"
	"github.com/DitoluT/malackathon2025/internal/core"
	"github.com/DitoluT/malackathon2025/internal/dataset"
	"github.com/DitoluT/malackathon2025/internal/gateway"
	"github.com/DitoluT/malackathon2025/internal/insight"
	"github.com/DitoluT/malackathon2025/internal/storage"
)

// SetupRouter wires handlers over pool. A nil completer disables AI insights.
func SetupRouter(pool *storage.Pool, mapping dataset.Mapping, completer insight.Completer, cfg *config.Config) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(corsConfig(cfg.CORSOrigins)))
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics())

	if cfg.RateLimitRPS > 0 {
		router.Use(middleware.RateLimitMiddleware(middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)))
	}
	router.Use(middleware.ErrorHandler())

	d := pool.Dialect()
	policy := core.QueryPolicy{MinLength: cfg.QueryMinLength, MaxLength: cfg.QueryMaxLength}
	gw := gateway.New(policy, storage.NewQueryRepo(pool), d, cfg.QueryMaxLimit)
	schemaRepo := storage.NewSchemaRepo(pool, mapping)
	generator := insight.NewGenerator(completer)

	healthHandler := handlers.NewHealthHandler(schemaRepo, pool, cfg.Version)
	statsHandler := handlers.NewStatisticsHandler(storage.NewStatsRepo(pool, mapping))
	dataHandler := handlers.NewDataHandler(storage.NewListingRepo(pool, mapping))
	queryHandler := handlers.NewQueryHandler(gw, schemaRepo, mapping, d)
	aiHandler := handlers.NewAIHandler(analysis.NewService(gw, generator), generator, cfg.GeminiModel)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":       "Mental Health Admissions API",
			"version":    cfg.Version,
			"api_prefix": cfg.APIPrefix,
			"dialect":    d.Name(),
			"ai_enabled": generator.Enabled(),
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiRoutes := router.Group(cfg.APIPrefix)
	{
		apiRoutes.GET("/health", healthHandler.Health)

		apiRoutes.GET("/statistics/:metric", statsHandler.GetMetric)

		apiRoutes.GET("/data/:entity", dataHandler.List)

		apiRoutes.POST("/query/execute", queryHandler.Execute)
		apiRoutes.GET("/query/examples", queryHandler.Examples)
		apiRoutes.GET("/query/schema", queryHandler.Schema)

		apiRoutes.POST("/ai/analyze", aiHandler.Analyze)
		apiRoutes.GET("/ai/health", aiHandler.Health)
	}

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
