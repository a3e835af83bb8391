package commands

import (
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/trendscope/pkg/config"
	"github.com/Sumatoshi-tech/trendscope/pkg/report"
	"github.com/Sumatoshi-tech/trendscope/pkg/trends"
)

// NewTrendingCommand creates the command that lists trending searches.
func NewTrendingCommand(deps Deps) *cobra.Command {
	deps = deps.withDefaults()

	var common commonFlags

	cmd := &cobra.Command{
		Use:   "trending [country...]",
		Short: "List today's trending searches per country",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd, &common, deps, func(cfg *config.Config) {
				if len(args) > 0 {
					cfg.Report.Countries = args
				}

				cfg.Report.Kinds = []string{trends.KindTrendingTopics.String()}
				cfg.Visualize.Enabled = false
			})
			if err != nil {
				return err
			}
			defer sess.close()

			plan, err := report.PlanFromConfig(sess.cfg)
			if err != nil {
				return err
			}

			assembler, err := sess.assembler(deps, false)
			if err != nil {
				return err
			}

			summary, runErr := assembler.Run(cmd.Context(), plan)

			return sess.finish(summary, runErr)
		},
	}

	common.register(cmd)

	return cmd
}
