package cmd

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kamusis/wuwa-assets/internal/assets"
	"github.com/kamusis/wuwa-assets/internal/resolver"
)

var (
	flagResolveTable       string
	flagResolvePlaceholder string
	flagResolveExplain     bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <icon|portrait|card|fuzzy> <id...>",
	Short: "Resolve identifiers to image URLs",
	Long: `Resolve each identifier through one lookup chain and print its URL.

Chains:
  icon      <id>_icon, then keys containing the id and "icon", then any match
  portrait  <id>_splash_art, <id>_splash, then keys containing "splash"
  card      card overrides, <id>_card, keys containing "card", then the icon chain
  fuzzy     the exact key, <q>_icon, keys containing "icon", then any match

A miss prints a "-" line, or the --placeholder value when one is given.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().StringVar(&flagResolveTable, "table", "", "Asset table to read (default from config)")
	resolveCmd.Flags().StringVar(&flagResolvePlaceholder, "placeholder", "", "Print this instead of a miss line")
	resolveCmd.Flags().BoolVar(&flagResolveExplain, "explain", false, "Show the rule and key that produced each URL")
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(_ *cobra.Command, args []string) error {
	kind, err := resolver.ParseKind(strings.ToLower(args[0]))
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	table, err := loadTable(firstNonEmpty(flagResolveTable, cfg.AssetTable))
	if err != nil {
		return err
	}

	r := resolver.New(table, cfg.Overrides())
	var misses int
	for _, id := range args[1:] {
		res, ok := r.Resolve(kind, id)
		if !ok {
			misses++
			if flagResolvePlaceholder != "" {
				fmt.Fprintln(stdout, flagResolvePlaceholder)
			} else {
				printMiss(id, "no "+string(kind)+" found")
			}
			continue
		}
		if flagResolveExplain {
			printOK(id, fmt.Sprintf("%s  (%s: %s)", res.URL, res.Rule, res.Key))
			continue
		}
		fmt.Fprintln(stdout, res.URL)
	}
	log.Debug().Str("kind", string(kind)).Int("ids", len(args)-1).Int("misses", misses).Msg("resolve finished")
	return nil
}

// loadTable reads the asset table at path and logs its size.
func loadTable(path string) (*assets.Table, error) {
	table, err := assets.Load(path)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("path", path).Int("entries", table.Len()).Msg("asset table loaded")
	return table, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
