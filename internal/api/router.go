package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"battery-arbitrage/internal/api/handlers"
	"battery-arbitrage/internal/api/middleware"
	"battery-arbitrage/internal/api/models"
	"battery-arbitrage/internal/config"
	"battery-arbitrage/internal/recorder"
)

// Deps are the collaborators the HTTP surface is built from.
type Deps struct {
	Simulator handlers.Simulator
	Files     handlers.FileLister
	Runs      recorder.Recorder
	Limiter   *middleware.RateLimiter

	Battery     config.BatteryConfig // defaults for POST /api/v1/arbitrage
	BatteryDir  string
	StaticDir   string // optional SPA bundle
	CORSOrigins []string

	Logger zerolog.Logger
}

// NewRouter wires middleware and routes.
func NewRouter(d Deps) *gin.Engine {
	if d.Runs == nil {
		d.Runs = recorder.NewNoopRecorder()
	}

	router := gin.New()
	router.Use(middleware.ErrorHandler(d.Logger))
	router.Use(middleware.Logger(d.Logger))
	router.Use(middleware.CORS(d.CORSOrigins))
	router.Use(d.Limiter.Middleware())

	presets := handlers.NewBatteryHandler(d.BatteryDir, d.Logger)
	arbitrage := handlers.NewArbitrageHandler(d.Simulator, d.Battery, presets, d.Logger)
	runs := handlers.NewRunsHandler(d.Runs)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		v1.POST("/arbitrage", arbitrage.RunArbitrage)
		v1.GET("/batteries", presets.ListBatteries)
		v1.GET("/datasets", handlers.ListDatasets(d.Files))
		v1.GET("/runs", runs.ListRuns)
		v1.GET("/runs/:id", runs.GetRun)
	}

	registerStatic(router, d.StaticDir, d.Logger)
	return router
}

// registerStatic serves a built SPA from dir, falling back to index.html for
// every non-API path. API paths that match nothing get a JSON 404.
func registerStatic(router *gin.Engine, dir string, logger zerolog.Logger) {
	serveSPA := false
	if dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			serveSPA = true
		}
	}

	if serveSPA {
		router.Static("/assets", filepath.Join(dir, "assets"))
		router.StaticFile("/favicon.ico", filepath.Join(dir, "favicon.ico"))
		logger.Info().Str("dir", dir).Msg("serving static files")
	} else if dir != "" {
		logger.Debug().Str("dir", dir).Msg("static directory not found, skipping static file serving")
	}

	router.NoRoute(func(c *gin.Context) {
		if !serveSPA || strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, models.NewError("NOT_FOUND", "Not found"))
			return
		}
		c.File(filepath.Join(dir, "index.html"))
	})
}
