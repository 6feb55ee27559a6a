package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/hwnotify/internal/config"
	"github.com/ericfisherdev/hwnotify/internal/domain/model"
	"github.com/ericfisherdev/hwnotify/internal/logging"
)

// bootstrap loads configuration, builds the logger and refuses to continue
// when a credential is missing. The missing names are logged at critical
// level before the error is returned.
func bootstrap(cmd *cobra.Command, out io.Writer) (*config.Config, *slog.Logger, error) {
	envFile, _ := cmd.Flags().GetString("env-file")

	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(out, cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	slog.SetDefault(logger)

	if err := cfg.Credentials.Validate(); err != nil {
		logging.Critical(context.Background(), logger, "required credentials are missing, refusing to start",
			"missing", cfg.Credentials.Missing(),
			"error", err,
		)
		return nil, nil, fmt.Errorf("%w: %w", errReported, err)
	}

	return cfg, logger, nil
}

// initialCursor is the Unix time in seconds at now minus since. The status
// API only returns homework updated after the cursor.
func initialCursor(now time.Time, since time.Duration) model.Cursor {
	return model.Cursor(strconv.FormatInt(now.Add(-since).Unix(), 10))
}
