package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"feedback-portal/internal/config"
	"feedback-portal/internal/database"
	"feedback-portal/internal/handlers"
	"feedback-portal/internal/logging"
	"feedback-portal/internal/metrics"
	"feedback-portal/internal/notify"
	"feedback-portal/internal/repository"
	"feedback-portal/internal/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	feedbackMetrics := metrics.NewFeedbackMetrics(reg)

	feedbackService := service.NewFeedbackService(store, feedbackMetrics,
		service.WithQueryLimit(cfg.QueryLimit),
		service.WithNotifier(newNotifier(cfg)),
	)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService, handlers.NewErrorWriter(feedbackMetrics))

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: handlers.NewRouter(feedbackHandler, handlers.RouterConfig{
			CORSOrigins: cfg.CORSOrigins,
			HTTPMetrics: metrics.NewHTTPMetrics(reg),
			Gatherer:    reg,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Feedback portal starting", "port", cfg.Port, "store", cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// openStore opens the configured backend and returns a func releasing it.
func openStore(ctx context.Context, cfg *config.Config) (repository.FeedbackStore, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendSQLite:
		repo, err := repository.OpenSQLite(cfg.SQLitePath, cfg.DBTimeout)
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		return repo, func() {
			if err := repo.Close(); err != nil {
				slog.Warn("Closing sqlite store", "error", err)
			}
		}, nil

	case config.BackendMemory:
		slog.Warn("Using in-memory store, feedback is lost on exit")
		return repository.NewMemoryFeedbackRepo(), func() {}, nil

	default:
		db, err := database.Connect(ctx, cfg.MongoURL, cfg.DBName, cfg.DBTimeout)
		if err != nil {
			return nil, nil, err
		}
		repo := repository.NewFeedbackRepo(db)

		indexCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := repo.EnsureIndexes(indexCtx); err != nil {
			slog.Warn("Failed to create feedback indexes", "error", err)
		}

		return repo, func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := db.Close(closeCtx); err != nil {
				slog.Warn("Closing MongoDB connection", "error", err)
			}
		}, nil
	}
}

func newNotifier(cfg *config.Config) notify.Notifier {
	if cfg.EmailNotificationsEnabled() {
		slog.Info("E-mail notifications enabled", "to", cfg.NotifyEmail)
		return notify.NewEmailNotifier(cfg.ResendAPIKey, cfg.FromEmail, cfg.NotifyEmail)
	}
	return notify.NewLogNotifier(slog.Default())
}
