// Package v1 provides HTTP API version 1.
package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agroledger/internal/domain/activity"
	"agroledger/internal/domain/ledger"
	"agroledger/internal/domain/reports"
	"agroledger/internal/infrastructure/http/v1/handlers"
	"agroledger/internal/infrastructure/http/v1/middleware"
	"agroledger/internal/infrastructure/metrics"
	"agroledger/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Logger for request logging
	Logger *logger.Logger

	// Services behind the API
	Ledger   *ledger.Service
	Reports  *reports.Service
	Activity *activity.Service

	// Store is pinged by the readiness probe; StoreKind names it.
	Store     handlers.Pinger
	StoreKind string

	// HTTPMetrics records per-route metrics; MetricsHandler serves /metrics.
	// Both are optional.
	HTTPMetrics    *metrics.HTTPMetrics
	MetricsHandler http.Handler

	// Debug enables gin debug mode.
	Debug bool
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	if cfg.HTTPMetrics != nil {
		router.Use(middleware.Metrics(cfg.HTTPMetrics))
	}
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	healthHandler := handlers.NewHealthHandler(cfg.Store, cfg.StoreKind)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	if cfg.MetricsHandler != nil {
		router.GET("/metrics", gin.WrapH(cfg.MetricsHandler))
	}

	api := router.Group("/api")
	base := handlers.NewBaseHandler()
	registerLedgerRoutes(api, handlers.NewLedgerHandler(base, cfg.Ledger))
	registerReportRoutes(api.Group("/warehouse"), handlers.NewReportsHandler(base, cfg.Reports))
	registerBotRoutes(api.Group("/bot-user"), handlers.NewBotHandler(base, cfg.Activity))

	return router
}
