// Package main is the entry point for the agroledger API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"agroledger/internal/config"
	"agroledger/internal/core/tx"
	"agroledger/internal/domain/activity"
	"agroledger/internal/domain/ledger"
	"agroledger/internal/domain/reports"
	v1 "agroledger/internal/infrastructure/http/v1"
	"agroledger/internal/infrastructure/http/v1/handlers"
	"agroledger/internal/infrastructure/metrics"
	"agroledger/internal/infrastructure/storage/memory"
	"agroledger/internal/infrastructure/storage/postgres"
	"agroledger/internal/infrastructure/storage/postgres/bot_repo"
	"agroledger/internal/infrastructure/storage/postgres/ledger_repo"
	"agroledger/internal/infrastructure/storage/postgres/report_repo"
	"agroledger/pkg/logger"
)

// poolStatsInterval is how often pool statistics are written to the log.
const poolStatsInterval = 5 * time.Minute

// backend is the storage the services run on.
type backend struct {
	ledger   ledger.Repository
	reports  reports.Repository
	activity activity.Repository
	tx       tx.Manager
	pinger   handlers.Pinger
	kind     string
	close    func()
}

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.App.LogLevel,
		Development: cfg.App.IsDev(),
		Service:     postgres.ApplicationName,
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithLogger(ctx, log)

	log.Infow("starting agroledger server", "env", cfg.App.Env, "store", cfg.App.Store)

	var reg *prometheus.Registry
	if cfg.Metrics.Enabled {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	store, err := openBackend(ctx, cfg, reg)
	if err != nil {
		log.Fatalw("failed to open store", "store", cfg.App.Store, "error", err)
	}
	defer store.close()

	loc, err := cfg.Analytics.Location()
	if err != nil {
		log.Fatalw("invalid analytics timezone", "error", err)
	}

	routerCfg := v1.RouterConfig{
		Logger:   log,
		Ledger:   ledger.NewService(store.ledger),
		Reports:  reports.NewService(store.reports),
		Activity: activity.NewService(store.activity, store.tx, activity.Config{
			TimelineLimit: cfg.Analytics.TimelineLimit,
			Location:      loc,
		}),
		Store:     store.pinger,
		StoreKind: store.kind,
		Debug:     cfg.App.IsDev(),
	}
	if reg != nil {
		routerCfg.HTTPMetrics = metrics.NewHTTPMetrics(reg)
		routerCfg.MetricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	}

	var handler http.Handler = v1.NewRouter(routerCfg)
	if cfg.HTTP.Gzip {
		handler = gzhttp.GzipHandler(handler)
	}

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Infow("server starting", "port", cfg.App.Port, "store", store.kind, "gzip", cfg.HTTP.Gzip)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

// openBackend connects the configured store. PostgreSQL pool gauges are
// registered on reg when it is non-nil.
func openBackend(ctx context.Context, cfg *config.Config, reg prometheus.Registerer) (*backend, error) {
	if cfg.App.UsesMemoryStore() {
		store := memory.New(memory.DemoSnapshot())
		logger.Warn(ctx, "serving the in-memory demo snapshot; writes are lost on restart")
		return &backend{
			ledger:   store,
			reports:  store,
			activity: store,
			tx:       memory.NewTxManager(),
			pinger:   store,
			kind:     config.StoreMemory,
			close:    func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, postgres.PoolConfigFrom(cfg.DB))
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "database connection established")

	if reg != nil {
		metrics.RegisterPool(reg, func() metrics.PoolStats {
			s := pool.Stats()
			return metrics.PoolStats{Total: s.TotalConns, Acquired: s.AcquiredConns, Idle: s.IdleConns}
		})
	}

	statsCtx, cancel := context.WithCancel(ctx)
	go logPoolStats(statsCtx, pool)

	txm := postgres.NewTxManager(pool)
	return &backend{
		ledger:   ledger_repo.NewLedgerRepo(txm),
		reports:  report_repo.NewReportRepo(txm),
		activity: bot_repo.NewBotRepo(txm),
		tx:       txm,
		pinger:   txm,
		kind:     config.StorePostgres,
		close: func() {
			cancel()
			pool.Close()
		},
	}, nil
}

func logPoolStats(ctx context.Context, pool *postgres.Pool) {
	ticker := time.NewTicker(poolStatsInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pool.LogStats(ctx)
		}
	}
}
