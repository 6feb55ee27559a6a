// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ericfisherdev/hwnotify/internal/domain/model"
	"github.com/ericfisherdev/hwnotify/internal/logging"
)

// PollInterval is the fixed pause between poll iterations.
const PollInterval = 600 * time.Second

// DefaultEnvFile is read when no env file is given explicitly. Its absence
// is not an error.
const DefaultEnvFile = ".env"

// Environment variable names.
const (
	EnvPracticumToken = "PRACTICUM_TOKEN"
	EnvTelegramToken  = "TELEGRAM_TOKEN"
	EnvTelegramChatID = "TELEGRAM_CHAT_ID"
	EnvListenAddr     = "HWNOTIFY_LISTEN_ADDR"
	EnvDBPath         = "HWNOTIFY_DB_PATH"
	EnvLogLevel       = "HWNOTIFY_LOG_LEVEL"
	EnvLogFormat      = "HWNOTIFY_LOG_FORMAT"
)

// Credentials are the secrets the poller cannot run without.
type Credentials struct {
	PracticumToken string
	TelegramToken  string
	TelegramChatID string
}

// Missing returns the environment variable names of every empty credential,
// in declaration order.
func (c Credentials) Missing() []string {
	var missing []string
	if c.PracticumToken == "" {
		missing = append(missing, EnvPracticumToken)
	}
	if c.TelegramToken == "" {
		missing = append(missing, EnvTelegramToken)
	}
	if c.TelegramChatID == "" {
		missing = append(missing, EnvTelegramChatID)
	}
	return missing
}

// Validate returns a *model.CredentialError naming every missing credential,
// or nil when all are present.
func (c Credentials) Validate() error {
	if missing := c.Missing(); len(missing) > 0 {
		return &model.CredentialError{Missing: missing}
	}
	return nil
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	Credentials  Credentials
	PollInterval time.Duration
	ListenAddr   string
	DBPath       string
	LogLevel     slog.Level
	LogFormat    string
}

// Load reads an optional env file and then the process environment. Values
// already set in the environment win over the file. An empty envFile means
// DefaultEnvFile, which may be absent; an explicitly named file must exist.
//
// Credentials are not validated here so that callers can report them with
// their own severity; see Credentials.Validate.
// Optional variables with defaults: HWNOTIFY_LISTEN_ADDR (127.0.0.1:8080),
// HWNOTIFY_DB_PATH (hwnotify.db), HWNOTIFY_LOG_LEVEL (info),
// HWNOTIFY_LOG_FORMAT (text).
func Load(envFile string) (*Config, error) {
	if err := loadEnvFile(envFile); err != nil {
		return nil, err
	}

	listenAddr := "127.0.0.1:8080"
	if v, ok := os.LookupEnv(EnvListenAddr); ok {
		listenAddr = v
	}

	dbPath := "hwnotify.db"
	if v, ok := os.LookupEnv(EnvDBPath); ok && v != "" {
		dbPath = v
	}

	logLevel := slog.LevelInfo
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		parsed, err := logging.ParseLevel(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		logLevel = parsed
	}

	logFormat := logging.FormatText
	if v, ok := os.LookupEnv(EnvLogFormat); ok && v != "" {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != logging.FormatText && v != logging.FormatJSON {
			return nil, fmt.Errorf("%s has invalid value %q (want %s or %s)",
				EnvLogFormat, v, logging.FormatText, logging.FormatJSON)
		}
		logFormat = v
	}

	return &Config{
		Credentials: Credentials{
			PracticumToken: strings.TrimSpace(os.Getenv(EnvPracticumToken)),
			TelegramToken:  strings.TrimSpace(os.Getenv(EnvTelegramToken)),
			TelegramChatID: strings.TrimSpace(os.Getenv(EnvTelegramChatID)),
		},
		PollInterval: PollInterval,
		ListenAddr:   listenAddr,
		DBPath:       dbPath,
		LogLevel:     logLevel,
		LogFormat:    logFormat,
	}, nil
}

func loadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = DefaultEnvFile
	}

	err := godotenv.Load(path)
	switch {
	case err == nil:
		return nil
	case !explicit && errors.Is(err, fs.ErrNotExist):
		return nil
	default:
		return fmt.Errorf("load env file %s: %w", path, err)
	}
}
