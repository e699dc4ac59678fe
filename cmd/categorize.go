package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kamusis/wuwa-assets/internal/assets"
	"github.com/kamusis/wuwa-assets/internal/categorize"
	"github.com/kamusis/wuwa-assets/internal/config"
	"github.com/kamusis/wuwa-assets/internal/watch"
)

var (
	flagCatTable      string
	flagCatCharacters string
	flagCatEchoes     string
	flagCatWeapons    string
	flagCatOutput     string
	flagCatFormat     string
	flagCatReport     string
	flagCatWatch      bool
)

var categorizeCmd = &cobra.Command{
	Use:   "categorize",
	Short: "Partition the asset table into characters, echoes, weapons and other",
	Long: `Read the asset table and the character, echo and weapon name sets, file
every table entry under the first entity whose name it contains, and write the
categorized document.

Candidates are tried in priority order: characters, echoes, weapons, then the
generic weapon types (broadblade, sword, pistols, gauntlets, rectifier).
Entries matching nothing are kept under "other".

With --report, keys containing candidates from more than one entity are listed
in a separate JSON report. With --watch, the job reruns whenever an input file
changes.`,
	Args: cobra.NoArgs,
	RunE: runCategorize,
}

func init() {
	f := categorizeCmd.Flags()
	f.StringVar(&flagCatTable, "table", "", "Asset table to read (default from config)")
	f.StringVar(&flagCatCharacters, "characters", "", "Characters name set (default from config)")
	f.StringVar(&flagCatEchoes, "echoes", "", "Echoes name set (default from config)")
	f.StringVar(&flagCatWeapons, "weapons", "", "Weapons name set (default from config)")
	f.StringVarP(&flagCatOutput, "output", "o", "", "Categorized document to write (default from config)")
	f.StringVar(&flagCatFormat, "format", "", "Output format: json or yaml (default from config)")
	f.StringVar(&flagCatReport, "report", "", "Also write an ambiguity report to this path")
	f.BoolVar(&flagCatWatch, "watch", false, "Rerun whenever an input file changes")
	rootCmd.AddCommand(categorizeCmd)
}

// categorizeJob is one fully resolved categorize run.
type categorizeJob struct {
	Table  string
	Names  categorize.NamePaths
	Output string
	Report string
	Format categorize.Format
}

func newCategorizeJob(cfg *config.Config) (categorizeJob, error) {
	format, err := categorize.ParseFormat(firstNonEmpty(flagCatFormat, cfg.Format))
	if err != nil {
		return categorizeJob{}, err
	}
	return categorizeJob{
		Table: firstNonEmpty(flagCatTable, cfg.AssetTable),
		Names: categorize.NamePaths{
			Characters: firstNonEmpty(flagCatCharacters, cfg.Characters),
			Echoes:     firstNonEmpty(flagCatEchoes, cfg.Echoes),
			Weapons:    firstNonEmpty(flagCatWeapons, cfg.Weapons),
		},
		Output: firstNonEmpty(flagCatOutput, cfg.Output),
		Report: firstNonEmpty(flagCatReport, cfg.Report),
		Format: format,
	}, nil
}

// inputs are the files whose change triggers a rerun.
func (j categorizeJob) inputs() []string {
	return []string{j.Table, j.Names.Characters, j.Names.Echoes, j.Names.Weapons}
}

// run loads every input, categorizes, and writes the output and report. Any
// load failure aborts before anything is written.
func (j categorizeJob) run(logger zerolog.Logger) (*categorize.Result, error) {
	table, err := assets.Load(j.Table)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("path", j.Table).Int("entries", table.Len()).Msg("asset table loaded")

	names, stats, err := categorize.LoadNameSet(j.Names)
	if err != nil {
		return nil, err
	}
	for _, st := range stats {
		ev := logger.Info()
		if st.Skipped > 0 {
			ev = logger.Warn()
		}
		ev.Str("path", st.Path).Int("names", st.Names).Int("skipped", st.Skipped).Msg("name set loaded")
	}

	res := categorize.Categorize(table, names, categorize.Options{
		Diagnose: j.Report != "",
		Logger:   &logger,
	})

	data, err := categorize.Encode(res, j.Format)
	if err != nil {
		return nil, err
	}
	if err := categorize.WriteFile(j.Output, data); err != nil {
		return nil, err
	}
	logger.Info().Str("path", j.Output).Str("format", string(j.Format)).Msg("categorized document written")

	if j.Report != "" {
		rep, err := categorize.EncodeReport(res.Ambiguities)
		if err != nil {
			return nil, err
		}
		if err := categorize.WriteFile(j.Report, rep); err != nil {
			return nil, err
		}
		logger.Info().Str("path", j.Report).Int("ambiguities", len(res.Ambiguities)).Msg("ambiguity report written")
	}
	return res, nil
}

func runCategorize(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	job, err := newCategorizeJob(cfg)
	if err != nil {
		return err
	}

	res, err := job.run(log.Logger)
	if err != nil {
		return err
	}
	printCategorizeSummary(job, res)

	if !flagCatWatch {
		return nil
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watchCategorize(ctx, job, log.Logger)
}

// watchCategorize reruns job after each burst of input changes until ctx is
// done. A failed rerun is reported and the previous output is left in place.
func watchCategorize(ctx context.Context, job categorizeJob, logger zerolog.Logger) error {
	w, err := watch.New(job.inputs(), watch.DefaultDebounce, logger)
	if err != nil {
		return err
	}
	defer w.Close()

	printInfo("", "watching inputs; press Ctrl-C to stop")
	return w.Run(ctx, func(changed []string) {
		logger.Info().Strs("changed", changed).Msg("inputs changed, rerunning")
		res, err := job.run(logger)
		if err != nil {
			printErr("", err.Error())
			return
		}
		printCategorizeSummary(job, res)
	})
}

func printCategorizeSummary(job categorizeJob, res *categorize.Result) {
	printSection("Categorize")
	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  bucket\tgroups\tentries\n")
	for _, s := range res.Summary() {
		fmt.Fprintf(w, "  %s\t%d\t%d\n", s.Category, s.Groups, s.Entries)
	}
	_ = w.Flush()
	printOK("", fmt.Sprintf("%d entries written to %s", res.Total(), job.Output))
	if job.Report != "" {
		if n := len(res.Ambiguities); n > 0 {
			printWarn("", fmt.Sprintf("%d ambiguous keys listed in %s", n, job.Report))
		} else {
			printOK("", fmt.Sprintf("no ambiguous keys (%s)", job.Report))
		}
	}
}
