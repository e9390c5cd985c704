// quest is a top-down action adventure played in the terminal.
//
// Usage:
//
//	quest play              - Start a run
//	quest world             - Print the procedural map around a grid cell
//	quest config            - Print the default tuning file
//
// Global flags:
//
//	--config <path>     - Tuning YAML (default: ~/.quest/configs/quest.yaml, ./configs/quest.yaml, built-in)
//	--log <path>        - Write logs to a file (the terminal belongs to the game)
//	--log-level <level> - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagLogPath  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "quest",
	Short: "TUI Quest - explore, loot and survive in your terminal",
	Long: `TUI Quest is a top-down action adventure. Wander an endless
procedurally generated overworld, find the chest hidden in a house to
unlock the fireball, and hold out against the horde for as long as you can.

Available commands:
  play     - Start a run
  world    - Print the map around a grid cell
  config   - Print the default tuning file

Examples:
  quest play
  quest play --seed 42 --mute
  quest world --radius 6
  quest config > my-quest.yaml`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(worldCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the process logger. Without --log everything is
// discarded. The returned closer releases the log file.
func newLogger() (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	if flagLogPath == "" {
		return log.New(io.Discard), io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "quest",
		Level:           level,
	})
	return logger, f, nil
}
