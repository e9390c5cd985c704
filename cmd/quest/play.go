package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-quest/internal/config"
	"github.com/vovakirdan/tui-quest/internal/core"
	"github.com/vovakirdan/tui-quest/internal/games/quest"
	"github.com/vovakirdan/tui-quest/internal/platform/audio"
	"github.com/vovakirdan/tui-quest/internal/platform/tui"
	"github.com/vovakirdan/tui-quest/internal/storage"
)

var (
	flagFPS    int
	flagSeed   int64
	flagMute   bool
	flagVolume float64
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a run",
	Long: `Start a run on the title screen.

Controls:
  W/A/S/D, arrows  - Move
  Space, click     - Swing the sword or cast a fireball
  Mouse            - Aim
  E                - Open the chest (inside a house)
  R                - Switch weapon
  Enter            - Start / try again
  Ctrl+S           - Save a text screenshot
  Q/Ctrl+C         - Quit

Examples:
  quest play
  quest play --fps 30
  quest play --seed 42 --volume 0.5
  quest play --config ./my-quest.yaml --log quest.log --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagFPS, "fps", 60, "Frame rate (frames per second)")
	playCmd.Flags().Int64Var(&flagSeed, "seed", 0, "Seed for death-burst particles (0 = random based on time)")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable audio")
	playCmd.Flags().Float64Var(&flagVolume, "volume", 0.8, "Master volume between 0 and 1")
}

func runPlay(cmd *cobra.Command, args []string) error {
	logger, closer, err := newLogger()
	if err != nil {
		return err
	}
	defer closer.Close()

	cfg, err := config.LoadQuest(flagConfig)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	rt := core.DefaultConfig()
	rt.TickRate = flagFPS
	rt.Seed = flagSeed
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}

	// Audio failure degrades to silence
	opts := []quest.Option{quest.WithLogger(logger)}
	if !flagMute {
		player := audio.NewPlayer(flagVolume)
		if err := player.Init(); err != nil {
			logger.Warn("audio disabled", "error", err)
		} else {
			defer player.Close()
			opts = append(opts, quest.WithAudio(player))
		}
	}

	loop, err := quest.NewLoop(cfg, rt, opts...)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Session ledger; the game still works without it
	store, err := storage.OpenMemory()
	if err != nil {
		logger.Warn("run ledger disabled", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	logger.Info("starting", "fps", rt.TickRate, "seed", rt.Seed, "size", fmt.Sprintf("%dx%d", width, height))
	if err := tui.Run(loop, store, logger, rt, width, height); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
