package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/trendscope/pkg/config"
	"github.com/Sumatoshi-tech/trendscope/pkg/report"
)

// NewPlotCommand creates the command that renders only the chart pages.
func NewPlotCommand(deps Deps) *cobra.Command {
	deps = deps.withDefaults()

	var (
		common    commonFlags
		perPage   int
		timeframe string
		theme     string
	)

	cmd := &cobra.Command{
		Use:   "plot [keyword...]",
		Short: "Render interest-over-time charts, a fixed number per page",
		Long: `Fetch interest over time for each keyword and write one HTML page per
group of keywords plus an index. Keywords default to report.keywords.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()

			sess, err := openSession(cmd, &common, deps, func(cfg *config.Config) {
				if len(args) > 0 {
					cfg.Report.Keywords = args
				}

				if flags.Changed("per-page") {
					cfg.Visualize.PerPage = perPage
				}

				if flags.Changed("timeframe") {
					cfg.Visualize.Timeframe = timeframe
				}

				if flags.Changed("theme") {
					cfg.Visualize.Theme = theme
				}
			})
			if err != nil {
				return err
			}
			defer sess.close()

			plan, err := report.PlanFromConfig(sess.cfg)
			if err != nil {
				return err
			}

			assembler, err := sess.assembler(deps, true)
			if err != nil {
				return err
			}

			pages, err := assembler.Visualize(cmd.Context(), plan)

			for _, p := range pages {
				if p.Err != nil {
					fmt.Fprintf(sess.out, "Page %d failed: %v\n", p.Index+1, p.Err)

					continue
				}

				fmt.Fprintf(sess.out, "Page %d: %s\n", p.Index+1, p.Location)
			}

			if err != nil {
				return fmt.Errorf("run %s: %w", sess.runID, err)
			}

			return nil
		},
	}

	common.register(cmd)
	cmd.Flags().IntVar(&perPage, "per-page", 0, "Charts per page (overrides visualize.per_page)")
	cmd.Flags().StringVar(&timeframe, "timeframe", "", "Timeframe, e.g. 'today 5-y' (overrides visualize.timeframe)")
	cmd.Flags().StringVar(&theme, "theme", "", "Page theme: dark or light (overrides visualize.theme)")

	return cmd
}
