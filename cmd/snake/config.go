package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective game configuration",
	Long: `Print the settings a new game would start with, as YAML.

Settings come from --config when given, then ~/.snake/configs/snake.yaml,
then ./configs/snake.yaml, then the built-in defaults. Use --defaults to
print the built-in file, a good starting point for a custom one.

Examples:
  snake config
  snake config --defaults > ~/.snake/configs/snake.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in defaults")
}

func runConfig(cmd *cobra.Command, args []string) error {
	if flagDefaults {
		_, err := os.Stdout.Write(config.GetDefaultYAML())
		return err
	}

	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		return err
	}
	data, err := config.MarshalSnake(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = os.Stdout.Write(data)
	return err
}
