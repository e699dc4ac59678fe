package cmd

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kamusis/wuwa-assets/internal/config"
)

// newLogger builds a leveled logger on w. An empty level means info.
func newLogger(w io.Writer, level string, jsonOut bool) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.Nop(), errors.WithHint(errors.Wrapf(err, "log level %q", level),
			"use trace, debug, info, warn or error")
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	out := w
	if !jsonOut {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

// logLevel picks --log-level, then WUWA_ASSETS_LOG_LEVEL, then the config file.
func logLevel(cmd *cobra.Command) string {
	if cmd.Flags().Changed("log-level") {
		return flagLogLevel
	}
	if v, err := config.GetConfigValue(config.EnvLogLevel); err == nil && v != "" {
		return v
	}
	if cfg, err := config.Load(flagConfig); err == nil {
		return cfg.LogLevel
	}
	return ""
}

func setupLogging(cmd *cobra.Command) error {
	l, err := newLogger(os.Stderr, logLevel(cmd), flagLogJSON)
	if err != nil {
		return err
	}
	log.Logger = l
	return nil
}
