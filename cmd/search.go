package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kamusis/wuwa-assets/internal/assets"
)

var (
	flagSearchTable string
	flagSearchLimit int
)

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "List asset keys containing a query",
	Long: `Normalize the query the same way lookups do and list every asset key that
contains it, in table order.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&flagSearchTable, "table", "", "Asset table to read (default from config)")
	searchCmd.Flags().IntVar(&flagSearchLimit, "limit", 20, "Maximum number of results to show (0 for all)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(_ *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	q := assets.NormalizeKey(query)
	if assets.IsBlankKey(q) {
		printMiss("", fmt.Sprintf("%q has no searchable characters", query))
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	table, err := loadTable(firstNonEmpty(flagSearchTable, cfg.AssetTable))
	if err != nil {
		return err
	}

	matches := table.Search(q)
	printSearchResults(q, matches, flagSearchLimit)
	return nil
}

func printSearchResults(q string, matches []assets.Match, limit int) {
	fmt.Fprintf(stdout, "\nwuwa-assets search %q\n\n", q)
	fmt.Fprintf(stdout, "Results (%d found):\n", len(matches))
	if len(matches) == 0 {
		return
	}

	shown := matches
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	for i, m := range shown {
		fmt.Fprintf(w, "  %d.\t%s\t%s\n", i+1, m.Key, m.URL)
	}
	_ = w.Flush()
	if rest := len(matches) - len(shown); rest > 0 {
		printInfo("", fmt.Sprintf("%d more not shown; raise --limit", rest))
	}
}
