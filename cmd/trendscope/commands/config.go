package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/trendscope/pkg/config"
)

// NewConfigCommand creates the command that prints the effective
// configuration as YAML.
func NewConfigCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}

			out, err := cfg.YAML()
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(out)
			if err != nil {
				return fmt.Errorf("write config: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Config file (default: .trendscope.yaml in CWD or $HOME)")

	return cmd
}
