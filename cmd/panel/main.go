package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lonelyhost/panel/internal/auth"
	"github.com/lonelyhost/panel/internal/dispatch"
	"github.com/lonelyhost/panel/internal/handler"
	"github.com/lonelyhost/panel/internal/infra"
	"github.com/lonelyhost/panel/internal/ledger"
	"github.com/lonelyhost/panel/internal/provider"
	"github.com/lonelyhost/panel/internal/repl"
	"github.com/lonelyhost/panel/internal/shell"
	"github.com/lonelyhost/panel/internal/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("panel failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := infra.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	// Optional audit sink: entity state stays in memory either way.
	var auditSink ledger.Sink
	if cfg.DatabaseURL != "" {
		if err := infra.RunMigrations(cfg.DatabaseURL, logger); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		pool, err := infra.NewPostgresPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer pool.Close()
		auditSink = ledger.NewPgSink(pool)
		logger.Info("audit sink connected", "backend", "postgres")
	}

	// Seed the store with the fixed sample data.
	operatorHash, err := auth.HashPassword(cfg.OperatorPassword)
	if err != nil {
		return fmt.Errorf("hash operator password: %w", err)
	}
	st := store.New()
	st.SetPanelName(cfg.PanelName)
	store.Seed(st, operatorHash)

	// Chat presence announcements (no-op unless Kafka is enabled).
	producer := infra.NewKafkaProducer(cfg.KafkaBrokers, cfg.KafkaEnabled, logger)
	defer producer.Close()
	var announcer dispatch.Announcer = dispatch.NopAnnouncer{}
	if cfg.KafkaEnabled {
		announcer = dispatch.NewChatAnnouncer(producer, cfg.KafkaTopic, logger)
	}

	audit := ledger.NewLog(auditSink, logger)
	runner := shell.NewExecRunner(cfg.ShellTimeout, logger)
	dispatcher := dispatch.New(st, runner, audit, announcer, logger)

	// External collaborators
	suggestions := provider.NewSuggestionClient(cfg.OpenAIAPIKey, logger)
	worldEdit := provider.NewWorldEditTrigger(logger)
	monitor := provider.NewProcessMonitor()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry)

	actions := handler.NewActionHandler(dispatcher, suggestions, worldEdit, cfg.DefaultOperator)
	dashboard := handler.NewDashboardHandler(st, audit, monitor, logger)
	authn := handler.NewAuthHandler(st, jwtManager, logger)
	router := handler.NewRouter(actions, dashboard, authn, logger, cfg.CORSAllowedOrigins)

	// Console for advanced users, sharing the same store instance.
	console := repl.New(dispatcher, cfg.DefaultOperator, os.Stdout)
	go console.Run(ctx, os.Stdin)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("panel starting", "addr", addr, "name", st.PanelName())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("panel stopped gracefully")
	return nil
}
