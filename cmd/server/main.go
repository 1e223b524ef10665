package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iudanet/sheetkeeper/internal/config"
	"github.com/iudanet/sheetkeeper/internal/server"
	"github.com/iudanet/sheetkeeper/internal/server/handlers"
	"github.com/iudanet/sheetkeeper/internal/server/storage/sqlite"
	"github.com/iudanet/sheetkeeper/internal/sheets"
	"github.com/iudanet/sheetkeeper/internal/telemetry"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// minSecretLen минимальная длина секрета подписи сессий
const minSecretLen = 32

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	configPath := flag.String("config", "sheetkeeper-server.yaml", "Path to the gateway config file")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "sheetkeeper-server: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	logger, closer, err := telemetry.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	if closer != nil {
		defer closer.Close()
	}
	slog.SetDefault(logger)

	if len(cfg.Server.SessionSecret) < minSecretLen {
		return fmt.Errorf("session secret must be at least %d bytes, set server.session_secret or %s", minSecretLen, config.EnvSessionSecret)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, shutdownTracing, err := telemetry.InitTracerProvider(ctx, cfg.Tracing, "sheetkeeper-server", logger)
	if err != nil {
		return fmt.Errorf("failed to init tracing: %w", err)
	}
	defer shutdownTracing()

	store, err := sqlite.New(ctx, cfg.Server.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}()

	upstream := sheets.NewClient(sheets.Config{
		SheetsBaseURL: cfg.Server.SheetsBaseURL,
		DriveBaseURL:  cfg.Server.DriveBaseURL,
		Timeout:       config.ParseDuration(cfg.Server.UpstreamTimeout, 30*time.Second, logger),
	}, logger)

	rateLimit := 0
	if cfg.Server.RateLimit.Enabled {
		rateLimit = cfg.Server.RateLimit.RequestsPerMinute
	}

	srv, err := server.New(server.Options{
		Upstream:      upstream,
		Subscriptions: store,
		DB:            store,
		Logger:        logger,
		Version:       Version,
		ListenAddress: cfg.Server.ListenAddress,
		Session: handlers.SessionConfig{
			Secret: []byte(cfg.Server.SessionSecret),
			TTL:    config.ParseDuration(cfg.Server.SessionTTL, time.Hour, logger),
		},
		RateLimit:       rateLimit,
		ShutdownTimeout: config.ParseDuration(cfg.Server.ShutdownTimeout, 10*time.Second, logger),
	})
	if err != nil {
		return err
	}

	return srv.Run(ctx)
}

func printVersion() {
	fmt.Printf("SheetKeeper Gateway\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
