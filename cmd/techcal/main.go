package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/rickgao/tech-calendar/internal/config"
	"github.com/rickgao/tech-calendar/internal/finnhub"
	"github.com/rickgao/tech-calendar/internal/research"
	"github.com/rickgao/tech-calendar/internal/runner"
	"github.com/rickgao/tech-calendar/internal/store"
	"github.com/rickgao/tech-calendar/internal/version"
)

const finnhubKeyEnv = "TC_FINNHUB_API_KEY"

func main() {
	configPath := flag.String("config", "configs/techcal.yaml", "path to config file")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Println("techcal", version.String())
		return
	}

	command := flag.Arg(0)
	if command != "earnings" && command != "events" {
		usage()
		os.Exit(2)
	}

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(*logLevel),
	}))
	slog.SetDefault(logger)

	logger.Info("starting techcal",
		"version", version.Version,
		"commit", version.Commit,
		"command", command,
		"config", *configPath,
	)

	// Best-effort .env load so ${VAR} config references resolve locally
	if err := godotenv.Load(); err == nil {
		logger.Debug("loaded .env file")
	}

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(2)
	}

	// Create context with cancellation on shutdown signals
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	st, err := store.Open(cfg.Storage.DBPath)
	if err != nil {
		logger.Error("failed to open store", "db_path", cfg.Storage.DBPath, "error", err)
		os.Exit(1)
	}
	defer st.Close()

	if err := st.Ping(ctx); err != nil {
		logger.Error("store ping failed", "db_path", cfg.Storage.DBPath, "error", err)
		os.Exit(1)
	}

	switch command {
	case "earnings":
		err = runEarnings(ctx, cfg, st, logger)
	case "events":
		err = runEvents(ctx, cfg, st, logger)
	}
	if err != nil {
		logger.Error("run failed", "command", command, "error", err)
		os.Exit(1)
	}
}

func runEarnings(ctx context.Context, cfg *config.Config, st *store.Store, logger *slog.Logger) error {
	apiKey := cfg.Earnings.APIKey
	if apiKey == "" {
		apiKey = os.Getenv(finnhubKeyEnv)
	}
	if apiKey == "" {
		return fmt.Errorf("no Finnhub API key: set earnings.api_key or %s", finnhubKeyEnv)
	}

	client := finnhub.NewClient(
		cfg.Earnings.BaseURL,
		apiKey,
		finnhub.WithLogger(logger),
		finnhub.WithTimeout(cfg.Earnings.Timeout),
		finnhub.WithRetries(cfg.Earnings.MaxRetries, time.Second),
	)

	return runner.NewEarnings(cfg.Earnings, client, st, logger).Run(ctx)
}

func runEvents(ctx context.Context, cfg *config.Config, st *store.Store, logger *slog.Logger) error {
	client, err := research.NewClient(
		cfg.Research.Model,
		cfg.Research.Host,
		cfg.Research.Timeout,
		research.WithLogger(logger),
		research.WithRetries(cfg.Research.MaxRetries, time.Second),
	)
	if err != nil {
		return fmt.Errorf("create research client: %w", err)
	}

	return runner.NewEvents(cfg.Events, cfg.Research.YearsAhead, client, st, logger).Run(ctx)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: techcal [flags] <command>

Commands:
  earnings    fetch earnings dates and rewrite the earnings feed
  events      research annual tech events and rewrite the events feed

Flags:
`)
	flag.PrintDefaults()
}
