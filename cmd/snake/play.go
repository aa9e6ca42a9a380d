package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the given variant, or open the menu when none is given.

Controls:
  Arrows/WASD  - Steer
  P            - Pause
  R            - Restart with a new seed
  Esc/B        - Back to the menu
  Q/Ctrl+C     - Quit

Every run is recorded and saved to the replay database when it ends.

Examples:
  snake play
  snake play snake_grid
  snake play --seed 42 --config ./my-snake.yaml
  snake play --spectate :8090`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	variant := ""
	if len(args) > 0 {
		variant = args[0]
		if !registry.Exists(variant) {
			return fmt.Errorf("unknown variant %q (run 'snake list' to see them)", variant)
		}
	}

	// Fail before taking over the terminal if a custom config is broken.
	if flagConfig != "" {
		if _, err := config.LoadSnake(flagConfig); err != nil {
			return err
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open replay database, replays will not be saved", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	sessionLog, closeLog := sessionLogger()
	defer closeLog()

	hub, stopSpectating := startSpectating(sessionLog)
	defer stopSpectating()

	saved, err := tui.Run(tui.Options{
		Store:  store,
		Hub:    hub,
		Logger: sessionLog,
	}, runtimeConfig(), variant)
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}

	for _, id := range saved {
		fmt.Printf("Saved replay #%d (snake replay %d)\n", id, id)
	}
	return nil
}
