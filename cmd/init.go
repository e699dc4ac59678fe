package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/kamusis/wuwa-assets/internal/config"
)

var flagInitForce bool

var initCmd = &cobra.Command{
	Use:   "init [site-dir]",
	Short: "Write the default config and dotenv template",
	Long: `Create ~/.wuwa-assets/ with a config.yaml pointing at the site repository
layout (src/utils/image_map.json, src/data/*.json) under site-dir, and an empty
.env template for WUWA_ASSETS_* overrides.

site-dir defaults to the current directory. An existing config is kept unless
--force is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&flagInitForce, "force", false, "Overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, args []string) error {
	// ── 1. Resolve the site directory ─────────────────────────────────────────
	site := "."
	if len(args) == 1 {
		site = args[0]
	}
	site, err := config.ExpandPath(site)
	if err != nil {
		return err
	}
	if site, err = filepath.Abs(site); err != nil {
		return errors.Wrapf(err, "cannot resolve %s", site)
	}
	if fi, err := os.Stat(site); err != nil || !fi.IsDir() {
		return errors.WithHint(errors.Newf("%s is not a directory", site),
			"pass the root of the site repository")
	}

	// ── 2. Create ~/.wuwa-assets/ ─────────────────────────────────────────────
	dir, err := config.Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "cannot create %s", dir)
	}
	printOK("", fmt.Sprintf("directory ready: %s", dir))

	// ── 3. Write config.yaml ──────────────────────────────────────────────────
	cfgPath := flagConfig
	if cfgPath == "" {
		if cfgPath, err = config.ConfigPath(); err != nil {
			return err
		}
	}
	if _, err := os.Stat(cfgPath); err == nil && !flagInitForce {
		printSkip("", fmt.Sprintf("config already exists: %s (use --force to replace)", cfgPath))
	} else {
		if err := config.Save(cfgPath, siteConfig(site)); err != nil {
			return err
		}
		printOK("", fmt.Sprintf("config written: %s", cfgPath))
	}

	// ── 4. Write the dotenv template ──────────────────────────────────────────
	created, err := config.EnsureDotEnvTemplate()
	if err != nil {
		return err
	}
	envPath, _ := config.DotEnvPath()
	if created {
		printOK("", fmt.Sprintf("dotenv template written: %s", envPath))
	} else {
		printSkip("", fmt.Sprintf("dotenv already exists: %s", envPath))
	}

	fmt.Fprintln(stdout, "\n✓  init complete. Run 'wuwa-assets doctor' to check the inputs.")
	return nil
}

// siteConfig is DefaultConfig with every path made absolute under site.
func siteConfig(site string) *config.Config {
	cfg := config.DefaultConfig()
	for _, p := range []*string{&cfg.AssetTable, &cfg.Characters, &cfg.Echoes, &cfg.Weapons, &cfg.Output} {
		*p = filepath.Join(site, *p)
	}
	return cfg
}
