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

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ericfisherdev/hwnotify/internal/adapter/driven/practicum"
	sqliteadapter "github.com/ericfisherdev/hwnotify/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/hwnotify/internal/adapter/driven/telegram"
	httphandler "github.com/ericfisherdev/hwnotify/internal/adapter/driving/http"
	"github.com/ericfisherdev/hwnotify/internal/application"
)

const shutdownTimeout = 10 * time.Second

// runCmd starts the poll loop together with the status API.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Poll for status changes and notify until interrupted",
	Long: `Poll the homework status API every ten minutes and send a Telegram
message whenever the newest homework changes status.

Only homework updated after startup is reported; use --since to look back.
Delivered notifications and distinct failures are recorded in the journal
database and exposed, with the live loop state, on the status API:

  GET /api/v1/health
  GET /api/v1/status
  GET /api/v1/journal?limit=N

The process runs until interrupted (Ctrl+C) or receives SIGTERM.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Duration("since", 0, "report status changes newer than this long before startup")
}

func runRun(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := bootstrap(cmd, os.Stdout)
	if err != nil {
		return err
	}
	since, _ := cmd.Flags().GetDuration("since")

	logger.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"poll_interval", cfg.PollInterval,
		"log_level", cfg.LogLevel,
	)

	// Set up context with signal handling, canceled on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open journal database (dual reader/writer with WAL mode).
	db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open journal database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("error closing database", "error", closeErr)
		}
	}()

	schemaVersion, err := sqliteadapter.RunMigrations(db.Writer)
	if err != nil {
		return err
	}
	logger.Info("journal ready", "path", db.Path(), "schema_version", schemaVersion)

	// Wire adapters.
	journal := sqliteadapter.NewJournalRepo(db)
	fetcher := practicum.NewClient(cfg.Credentials.PracticumToken, logger)
	notifier := telegram.NewClient(cfg.Credentials.TelegramToken, cfg.Credentials.TelegramChatID, logger)

	pollSvc := application.NewPollService(
		fetcher,
		notifier,
		journal,
		initialCursor(time.Now(), since),
		cfg.PollInterval,
		logger,
	)

	apiHandler := httphandler.NewHandler(pollSvc, journal, logger)
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           httphandler.NewServeMux(apiHandler, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		pollSvc.Start(gctx)
		return nil
	})

	g.Go(func() error {
		logger.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("http server shutdown error", "error", err)
		}
		return nil
	})

	logger.Info("hwnotify started", "version", version, "cursor", pollSvc.Snapshot().Cursor)

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("shutdown complete", slog.Int("iterations", pollSvc.Snapshot().Iterations))
	return nil
}
