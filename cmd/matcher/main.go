package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"leasematch/internal/common/config"
	"leasematch/internal/common/database"
	"leasematch/internal/common/logger"
	"leasematch/internal/common/observability"
	"leasematch/internal/engine/matcher"
	"leasematch/internal/models"
	"leasematch/internal/store"
)

// retryWithBackoff attempts to execute a function with exponential backoff.
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	once := flag.Bool("once", false, "run a single matching batch and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("starting matcher",
		zap.String("environment", cfg.App.Environment),
		zap.Bool("once", *once),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected")

	// --- Init Redis (profile cache; non-fatal if unreachable) ---
	rdb := database.NewRedis(cfg.Database.Redis)
	defer rdb.Close()
	if err := rdb.Ping(ctx); err != nil {
		zapLog.Warn("redis unreachable, profile cache disabled", zap.Error(err))
		rdb = nil
	}

	// --- Metrics / pprof endpoint ---
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
	mux.Handle("/debug/pprof/", http.DefaultServeMux)
	go func() {
		zapLog.Info("metrics listening", zap.String("address", cfg.Server.MetricsAddress))
		if err := http.ListenAndServe(cfg.Server.MetricsAddress, mux); err != nil && err != http.ErrServerClosed {
			zapLog.Error("metrics server failed", zap.Error(err))
		}
	}()

	var profiles matcher.ProfileStore
	if rdb != nil {
		profiles = store.NewProfileStore(pg.DB, rdb.Client, cfg.Matching.ProfileCacheTTL, log)
	} else {
		profiles = store.NewProfileStore(pg.DB, nil, cfg.Matching.ProfileCacheTTL, log)
	}

	engine := matcher.New(
		store.NewListingStore(pg.DB, log),
		store.NewSolicitationStore(pg.DB, log),
		store.NewMatchStore(pg.DB, log),
		profiles,
		log,
		matcher.Options{
			MinScore:            cfg.Matching.MinScore,
			ChunkSize:           cfg.Matching.ChunkSize,
			Workers:             cfg.Matching.Workers,
			SpaceTooSmallFactor: cfg.Matching.SpaceTooSmallFactor,
			DefaultProfile: models.ExperienceProfile{
				GovernmentLeases:    cfg.Matching.DefaultProfile.GovernmentLeases,
				GovernmentCertified: cfg.Matching.DefaultProfile.GovernmentCertified,
				References:          cfg.Matching.DefaultProfile.References,
				BuildToSuit:         cfg.Matching.DefaultProfile.BuildToSuit,
				TenantImprovements:  cfg.Matching.DefaultProfile.TenantImprovements,
			},
		},
	)

	runOnce := func() {
		start := time.Now()
		stats, err := engine.RunMatching(ctx)
		status := "success"
		if err != nil {
			status = "error"
			zapLog.Error("matching run failed", zap.Error(err))
		}
		obs.RecordRun(ctx, status)
		obs.RecordRunDuration(ctx, time.Since(start), status)
		if stats != nil {
			obs.RecordPairsScored(ctx, int64(stats.Processed-stats.EarlyTerminated))
			zapLog.Info("run summary",
				zap.String("runId", stats.RunID),
				zap.Int("processed", stats.Processed),
				zap.Int("matched", stats.Matched),
				zap.Int("earlyTerminated", stats.EarlyTerminated),
				zap.Duration("duration", stats.Duration),
			)
		}
	}

	runOnce()
	if *once {
		return
	}

	ticker := time.NewTicker(cfg.Matching.RunInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			zapLog.Info("shutdown signal received")
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
