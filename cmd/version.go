package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/kamusis/wuwa-assets/internal/config"
)

// Set with -ldflags "-X github.com/kamusis/wuwa-assets/cmd.version=..." at release.
// Unset values fall back to the module and VCS stamps of the binary.
var (
	version   = "dev"
	commit    = ""
	buildDate = ""
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version, build stamps and the config file in use",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(_ *cobra.Command, _ []string) error {
	v, rev, built := buildStamps()

	cfgPath := flagConfig
	if cfgPath == "" {
		p, err := config.ConfigPath()
		if err != nil {
			return err
		}
		cfgPath = p
	}

	fmt.Fprintf(stdout, "wuwa-assets %s\n", v)
	fmt.Fprintf(stdout, "Commit:     %s\n", emptyAsNA(rev))
	fmt.Fprintf(stdout, "Build Date: %s\n", emptyAsNA(built))
	fmt.Fprintf(stdout, "Go Version: %s\n", runtime.Version())
	fmt.Fprintf(stdout, "OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(stdout, "Config:     %s\n", cfgPath)
	return nil
}

// buildStamps returns version, commit and build date, filling the ones not
// set by -ldflags from debug.ReadBuildInfo.
func buildStamps() (v, rev, built string) {
	v, rev, built = version, commit, buildDate
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return v, rev, built
	}
	if v == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		v = info.Main.Version
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if rev == "" {
				rev = s.Value
			}
		case "vcs.time":
			if built == "" {
				built = s.Value
			}
		}
	}
	return v, rev, built
}

func emptyAsNA(s string) string {
	if s == "" {
		return "n/a"
	}
	return s
}
