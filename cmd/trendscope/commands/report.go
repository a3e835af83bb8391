package commands

import (
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/trendscope/pkg/config"
	"github.com/Sumatoshi-tech/trendscope/pkg/report"
)

// ReportCommand holds the flags of the report command.
type ReportCommand struct {
	common commonFlags
	deps   Deps

	keywords    []string
	countries   []string
	kinds       []string
	output      string
	format      string
	workers     int
	perPage     int
	noVisualize bool
}

// NewReportCommand creates the full batch report command.
func NewReportCommand(deps Deps) *cobra.Command {
	rc := &ReportCommand{deps: deps.withDefaults()}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Run the full trend report",
		Long: `Fetch trending searches per country, then regional interest, related
queries and interest over time per keyword, render paginated charts, and
finish with platform and category breakdowns. Every table is previewed on
the console and saved under the output directory.`,
		Args: cobra.NoArgs,
		RunE: rc.run,
	}

	rc.common.register(cmd)
	cmd.Flags().StringSliceVarP(&rc.keywords, "keywords", "k", nil, "Keywords to report on (overrides report.keywords)")
	cmd.Flags().StringSliceVarP(&rc.countries, "countries", "c", nil, "Countries for trending searches (overrides report.countries)")
	cmd.Flags().StringSliceVar(&rc.kinds, "kinds", nil, "Report kinds to run (overrides report.kinds)")
	cmd.Flags().StringVarP(&rc.output, "output", "o", "", "Output directory (overrides output.dir)")
	cmd.Flags().StringVar(&rc.format, "format", "", "Artifact format: auto, csv, xlsx (overrides output.format)")
	cmd.Flags().IntVar(&rc.workers, "workers", 0, "Parallel fetch workers (overrides report.workers)")
	cmd.Flags().IntVar(&rc.perPage, "per-page", 0, "Charts per page (overrides visualize.per_page)")
	cmd.Flags().BoolVar(&rc.noVisualize, "no-visualize", false, "Skip the chart pages")

	return cmd
}

func (rc *ReportCommand) override(cmd *cobra.Command) func(*config.Config) {
	flags := cmd.Flags()

	return func(cfg *config.Config) {
		if flags.Changed("keywords") {
			cfg.Report.Keywords = rc.keywords
		}

		if flags.Changed("countries") {
			cfg.Report.Countries = rc.countries
		}

		if flags.Changed("kinds") {
			cfg.Report.Kinds = rc.kinds
		}

		if flags.Changed("output") {
			cfg.Output.Dir = rc.output
		}

		if flags.Changed("format") {
			cfg.Output.Format = rc.format
		}

		if flags.Changed("workers") {
			cfg.Report.Workers = rc.workers
		}

		if flags.Changed("per-page") {
			cfg.Visualize.PerPage = rc.perPage
		}

		if rc.noVisualize {
			cfg.Visualize.Enabled = false
		}
	}
}

func (rc *ReportCommand) run(cmd *cobra.Command, _ []string) error {
	sess, err := openSession(cmd, &rc.common, rc.deps, rc.override(cmd))
	if err != nil {
		return err
	}
	defer sess.close()

	plan, err := report.PlanFromConfig(sess.cfg)
	if err != nil {
		return err
	}

	assembler, err := sess.assembler(rc.deps, plan.Visualize)
	if err != nil {
		return err
	}

	sess.console.Header(sess.runID)

	summary, runErr := assembler.Run(cmd.Context(), plan)

	return sess.finish(summary, runErr)
}
