package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-quest/internal/config"
)

var flagResolved bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default tuning file",
	Long: `Print the built-in tuning YAML. Redirect it to a file, edit the
values you want to change and pass it with --config. Keys left out keep
their default value.

With --resolved, print the configuration that would actually be used
after the search order is applied.

Examples:
  quest config > ~/.quest/configs/quest.yaml
  quest config --resolved --config ./my-quest.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagResolved, "resolved", false, "Print the effective configuration")
}

func runConfig(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if !flagResolved {
		_, err := out.Write(config.DefaultYAML())
		return err
	}

	cfg, err := config.LoadQuest(flagConfig)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot encode configuration: %w", err)
	}
	_, err = out.Write(data)
	return err
}
