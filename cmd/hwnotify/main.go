// Package main is the entry point for the hwnotify CLI.
//
// hwnotify polls the Practicum homework status API and forwards every status
// change of the most recent homework to a Telegram chat.
//
// Usage:
//
//	hwnotify run                 # Poll forever and serve the status API
//	hwnotify once --since 720h   # Run a single poll iteration
//	hwnotify check               # Validate configuration
//	hwnotify version             # Show version info
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container
)

// Version information, set at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// errReported marks errors that were already logged; Execute only sets the
// exit status for them.
var errReported = errors.New("reported")

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "hwnotify",
	Short: "Homework review status notifier",
	Long: `hwnotify polls the Yandex Practicum homework status API every ten
minutes and sends a Telegram message whenever the status of the most recent
homework changes.

Required environment variables (may also be placed in a .env file):
  PRACTICUM_TOKEN    OAuth token for the Practicum API
  TELEGRAM_TOKEN     Telegram bot token
  TELEGRAM_CHAT_ID   chat that receives the notifications

Optional:
  HWNOTIFY_LISTEN_ADDR  status API address (default 127.0.0.1:8080)
  HWNOTIFY_DB_PATH      journal database (default hwnotify.db)
  HWNOTIFY_LOG_LEVEL    debug, info, warn, error (default info)
  HWNOTIFY_LOG_FORMAT   text or json (default text)`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("env-file", "", "path to an env file (default .env if present)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func main() {
	Execute()
}
