package cmd

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/kamusis/wuwa-assets/internal/config"
)

var (
	flagConfig   string
	flagLogLevel string
	flagLogJSON  bool
)

var rootCmd = &cobra.Command{
	Use:           "wuwa-assets",
	Short:         "Wuthering Waves asset lookup and image-map categorizer",
	SilenceUsage:  true, // don't print usage on operational errors
	SilenceErrors: true, // Execute prints the error and its hints
	Long: `wuwa-assets resolves character and item identifiers to image URLs from a
generated asset table, and partitions that table into per-entity buckets
(characters, echoes, weapons, other) for the site build.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setupLogging(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default ~/.wuwa-assets/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&flagLogJSON, "log-json", false, "Emit logs as JSON instead of console text")
}

// loadConfig reads the config file and overlays WUWA_ASSETS_* values.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, errors.WithHint(err, "run 'wuwa-assets init' to write a default config")
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Execute is called by main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printErr("", err.Error())
		if hint := errors.FlattenHints(err); hint != "" {
			fmt.Fprintf(os.Stderr, "     hint: %s\n", hint)
		}
		os.Exit(1)
	}
}
