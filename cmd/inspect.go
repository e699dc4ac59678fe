package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kamusis/wuwa-assets/internal/categorize"
)

var flagInspectFile string

var inspectCmd = &cobra.Command{
	Use:   "inspect [bucket] [name]",
	Short: "Show the contents of a categorized document",
	Long: `Read the categorized document written by 'wuwa-assets categorize'.

  wuwa-assets inspect                  bucket summary
  wuwa-assets inspect characters       groups of one bucket with entry counts
  wuwa-assets inspect characters Jiyan entries of one group
  wuwa-assets inspect other            entries of the other bucket`,
	Args: cobra.MaximumNArgs(2),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVarP(&flagInspectFile, "file", "f", "", "Categorized document to read (default: output from config)")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(_ *cobra.Command, args []string) error {
	path := flagInspectFile
	if path == "" {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		path = cfg.Output
	}
	res, err := categorize.ReadFile(path)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		printSection("inspect " + path)
		w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  bucket\tgroups\tentries\n")
		for _, s := range res.Summary() {
			fmt.Fprintf(w, "  %s\t%d\t%d\n", s.Category, s.Groups, s.Entries)
		}
		_ = w.Flush()
		return nil
	}

	c, err := categorize.ParseCategory(args[0])
	if err != nil {
		return err
	}
	if c == categorize.Other {
		if len(args) == 2 {
			return inspectOtherKey(res, args[1])
		}
		printSection(fmt.Sprintf("%s (%d)", c, res.Other.Len()))
		printEntries(res.Other)
		return nil
	}

	b := res.Bucket(c)
	if len(args) == 1 {
		printSection(fmt.Sprintf("%s (%d)", c, b.Len()))
		w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
		for i, name := range b.Names() {
			g, _ := b.Group(name)
			fmt.Fprintf(w, "  %d.\t%s\t%d\n", i+1, name, g.Len())
		}
		_ = w.Flush()
		return nil
	}

	g, ok := b.Group(args[1])
	if !ok {
		printMiss(args[1], fmt.Sprintf("no group in %s", c))
		return nil
	}
	printSection(fmt.Sprintf("%s / %s (%d)", c, args[1], g.Len()))
	printEntries(g)
	return nil
}

func inspectOtherKey(res *categorize.Result, key string) error {
	u, ok := res.Other.Lookup(key)
	if !ok {
		if p, filed := res.Placement(key); filed {
			printInfo(key, fmt.Sprintf("filed under %s / %s", p.Category, p.Name))
			return nil
		}
		printMiss(key, "not in document")
		return nil
	}
	printOK(key, u)
	return nil
}

func printEntries(g *categorize.Group) {
	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	for k, u := range g.All() {
		fmt.Fprintf(w, "  %s\t%s\n", k, u)
	}
	_ = w.Flush()
}
