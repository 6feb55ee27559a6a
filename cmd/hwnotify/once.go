package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/hwnotify/internal/adapter/driven/practicum"
	"github.com/ericfisherdev/hwnotify/internal/adapter/driven/telegram"
	"github.com/ericfisherdev/hwnotify/internal/application"
)

// onceCmd runs a single poll iteration and exits.
var onceCmd = &cobra.Command{
	Use:   "once",
	Short: "Run a single poll iteration",
	Long: `Fetch the homework statuses once, notify if the newest homework has a
status, and exit. Nothing is written to the journal.

Exit codes:
  0 - Iteration succeeded (including "no new homework status")
  1 - Credentials missing or the iteration failed

Example:
  hwnotify once --since 720h`,
	RunE: runOnce,
}

func init() {
	rootCmd.AddCommand(onceCmd)

	onceCmd.Flags().Duration("since", 24*time.Hour, "look back this far for status changes")
}

func runOnce(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := bootstrap(cmd, os.Stdout)
	if err != nil {
		return err
	}
	since, _ := cmd.Flags().GetDuration("since")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pollSvc := application.NewPollService(
		practicum.NewClient(cfg.Credentials.PracticumToken, logger),
		telegram.NewClient(cfg.Credentials.TelegramToken, cfg.Credentials.TelegramChatID, logger),
		nil,
		initialCursor(time.Now(), since),
		cfg.PollInterval,
		logger,
	)

	if err := pollSvc.RunOnce(ctx); err != nil {
		// Already logged by the poll service.
		return fmt.Errorf("%w: %w", errReported, err)
	}
	return nil
}
