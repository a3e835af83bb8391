// Package main provides the entry point for the trendscope CLI tool.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/trendscope/cmd/trendscope/commands"
	"github.com/Sumatoshi-tech/trendscope/pkg/version"
)

func main() {
	version.InitBinaryVersion()

	rootCmd := &cobra.Command{
		Use:   "trendscope",
		Short: "trendscope - batch search-trend reports",
		Long: `trendscope queries a search-trend provider for a fixed set of countries and
keywords, previews every table on the console, saves it as CSV or a
spreadsheet, and renders paginated interest-over-time charts.

Commands:
  report    Full batch report
  plot      Chart pages only
  trending  Trending searches per country
  config    Print the effective configuration`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	deps := commands.DefaultDeps()

	rootCmd.AddCommand(commands.NewReportCommand(deps))
	rootCmd.AddCommand(commands.NewPlotCommand(deps))
	rootCmd.AddCommand(commands.NewTrendingCommand(deps))
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(versionCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
