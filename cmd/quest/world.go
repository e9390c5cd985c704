package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-quest/internal/config"
	"github.com/vovakirdan/tui-quest/internal/games/quest/world"
)

var (
	flagWorldX      int
	flagWorldY      int
	flagWorldRadius int
)

var worldCmd = &cobra.Command{
	Use:   "world",
	Short: "Print the procedural map around a grid cell",
	Long: `Print the overworld around a grid cell as text.
H marks a house, T a tree and . open ground. The center cell is bracketed.
The world is fixed by the hash constants in the tuning file, so the same
configuration always prints the same map.

Examples:
  quest world
  quest world --x 10 --y -3 --radius 8`,
	Args: cobra.NoArgs,
	RunE: runWorld,
}

func init() {
	worldCmd.Flags().IntVar(&flagWorldX, "x", 0, "Grid column of the center cell")
	worldCmd.Flags().IntVar(&flagWorldY, "y", 0, "Grid row of the center cell")
	worldCmd.Flags().IntVar(&flagWorldRadius, "radius", -1, "Cells shown around the center (default: view radius from config)")
}

func runWorld(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadQuest(flagConfig)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	radius := flagWorldRadius
	if radius < 0 {
		radius = cfg.World.ViewRadius
	}

	g := world.NewGenerator(cfg.World)
	fmt.Fprint(cmd.OutOrStdout(), world.RenderASCII(g, world.C(flagWorldX, flagWorldY), radius))
	return nil
}
