package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/hwnotify/internal/adapter/driven/practicum"
	"github.com/ericfisherdev/hwnotify/internal/config"
)

// checkCmd validates the configuration without polling.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate configuration",
	Long: `Load the environment (and env file) exactly as "run" does and report
whether every required credential is present. Secrets are never printed.

Exit codes:
  0 - Configuration is valid
  1 - Configuration is invalid (details printed to stderr)`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.Load(envFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.Credentials.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Config is valid!\n")
	_, _ = fmt.Fprintf(out, "  Status API:    %s\n", practicum.Endpoint)
	_, _ = fmt.Fprintf(out, "  Chat ID:       %s\n", cfg.Credentials.TelegramChatID)
	_, _ = fmt.Fprintf(out, "  Poll interval: %s\n", cfg.PollInterval)
	_, _ = fmt.Fprintf(out, "  Listen addr:   %s\n", cfg.ListenAddr)
	_, _ = fmt.Fprintf(out, "  Journal:       %s\n", cfg.DBPath)
	_, _ = fmt.Fprintf(out, "  Log:           %s, level %s\n", cfg.LogFormat, cfg.LogLevel)
	return nil
}
