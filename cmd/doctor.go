package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kamusis/wuwa-assets/internal/assets"
	"github.com/kamusis/wuwa-assets/internal/categorize"
	"github.com/kamusis/wuwa-assets/internal/config"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration and input files",
	Long: `Check that the config loads, that the asset table and every name set parse,
and that the output location is usable. Run this when categorize fails or its
output looks wrong.`,
	RunE: runDoctor,
}

var doctorFixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Remove leftovers of interrupted categorize runs",
	Long: `Delete temp files left next to the output and report by interrupted runs.

Run 'wuwa-assets doctor' first to see what will be removed.`,
	RunE: runDoctorFix,
}

func init() {
	doctorCmd.AddCommand(doctorFixCmd)
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(_ *cobra.Command, _ []string) error {
	allOK := true
	failD := func(format string, args ...any) {
		printErr("", fmt.Sprintf(format, args...))
		allOK = false
	}

	printSection("wuwa-assets doctor")
	fmt.Fprintln(stdout)

	// ── Check 1: config ──────────────────────────────────────────────────────
	fmt.Fprintln(stdout, "[ config ]")
	cfgPath := flagConfig
	if cfgPath == "" {
		cfgPath, _ = config.ConfigPath()
	}
	cfg, err := loadConfig()
	if err != nil {
		failD("cannot load config: %v", err)
		fmt.Fprintln(stdout)
		return finishDoctor(false)
	}
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		printSkip("", fmt.Sprintf("%s not found, using defaults", cfgPath))
	} else {
		printOK("", fmt.Sprintf("loaded %s", cfgPath))
	}
	if _, err := categorize.ParseFormat(cfg.Format); err != nil {
		failD("format: %v", err)
	}
	printInfo("", fmt.Sprintf("%d card override(s)", len(cfg.Overrides())))
	fmt.Fprintln(stdout)

	// ── Check 2: asset table ──────────────────────────────────────────────────
	fmt.Fprintln(stdout, "[ asset table ]")
	table, err := assets.Load(cfg.AssetTable)
	if err != nil {
		failD("%v", err)
	} else {
		printOK("", fmt.Sprintf("%d entries in %s", table.Len(), cfg.AssetTable))
	}
	fmt.Fprintln(stdout)

	// ── Check 3: name sets ────────────────────────────────────────────────────
	fmt.Fprintln(stdout, "[ name sets ]")
	loaders := []struct {
		label string
		path  string
		load  func(string) ([]string, categorize.LoadStats, error)
	}{
		{"characters", cfg.Characters, categorize.LoadCharacters},
		{"echoes", cfg.Echoes, categorize.LoadEchoes},
		{"weapons", cfg.Weapons, categorize.LoadWeapons},
	}
	var names categorize.NameSet
	namesOK := true
	for _, l := range loaders {
		list, st, err := l.load(l.path)
		if err != nil {
			failD("[%s] %v", l.label, err)
			namesOK = false
			continue
		}
		if st.Skipped > 0 {
			printWarn(l.label, fmt.Sprintf("%d names, %d record(s) without a name skipped", st.Names, st.Skipped))
		} else {
			printOK(l.label, fmt.Sprintf("%d names", st.Names))
		}
		switch l.label {
		case "characters":
			names.Characters = list
		case "echoes":
			names.Echoes = list
		case "weapons":
			names.Weapons = list
		}
	}
	fmt.Fprintln(stdout)

	// ── Check 4: dry run ──────────────────────────────────────────────────────
	fmt.Fprintln(stdout, "[ categorize dry run ]")
	if table != nil && namesOK {
		res := categorize.Categorize(table, names, categorize.Options{Diagnose: true, Logger: &log.Logger})
		printOK("", fmt.Sprintf("%d of %d entries placed, %d in other", res.Total()-res.Other.Len(), res.Total(), res.Other.Len()))
		if n := len(res.Ambiguities); n > 0 {
			printWarn("", fmt.Sprintf("%d key(s) contain more than one candidate (see categorize --report)", n))
		}
	} else {
		printSkip("", "skipped (inputs did not load)")
	}
	fmt.Fprintln(stdout)

	// ── Check 5: output location ──────────────────────────────────────────────
	fmt.Fprintln(stdout, "[ output ]")
	for _, p := range outputPaths(cfg) {
		if _, err := os.Stat(p); err == nil {
			printOK("", fmt.Sprintf("%s exists", p))
		} else {
			printMiss("", fmt.Sprintf("%s not written yet", p))
		}
		if lockHeld(p) {
			printWarn("", fmt.Sprintf("%s is being written by another run", p))
		}
		for _, left := range leftovers(p) {
			printWarn("", fmt.Sprintf("leftover %s (run 'wuwa-assets doctor fix')", left))
		}
	}
	fmt.Fprintln(stdout)

	return finishDoctor(allOK)
}

func finishDoctor(allOK bool) error {
	fmt.Fprintln(stdout, "===================")
	if !allOK {
		fmt.Fprintln(stderr, "✗  One or more checks failed. See details above.")
		return fmt.Errorf("doctor found issues")
	}
	fmt.Fprintln(stdout, "✓  All checks passed.")
	return nil
}

func runDoctorFix(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	printSection("wuwa-assets doctor fix")
	var found, failed int
	for _, p := range outputPaths(cfg) {
		if lockHeld(p) {
			printSkip("", fmt.Sprintf("%s is being written by another run", p))
			continue
		}
		for _, left := range leftovers(p) {
			found++
			if err := os.Remove(left); err != nil {
				printErr("", fmt.Sprintf("cannot delete %s: %v", left, err))
				failed++
				continue
			}
			printOK("", fmt.Sprintf("deleted %s", left))
		}
	}
	if found == 0 {
		printOK("", "nothing to fix")
		return nil
	}
	if failed > 0 {
		return fmt.Errorf("%d file(s) could not be deleted", failed)
	}
	return nil
}

func outputPaths(cfg *config.Config) []string {
	paths := []string{cfg.Output}
	if cfg.Report != "" {
		paths = append(paths, cfg.Report)
	}
	return paths
}

// leftovers lists the temp files an interrupted write of path left behind.
func leftovers(path string) []string {
	var out []string
	dir, base := filepath.Dir(path), filepath.Base(path)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), base+".tmp-") {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	return out
}

// lockHeld reports whether another process holds the output lock of path.
func lockHeld(path string) bool {
	lockPath := path + ".lock"
	if _, err := os.Stat(lockPath); err != nil {
		return false
	}
	l := flock.New(lockPath)
	ok, err := l.TryLock()
	if err != nil {
		return false
	}
	if ok {
		_ = l.Unlock()
	}
	return !ok
}
