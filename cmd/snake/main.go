// snake is the classic turn-ledger Snake game for the terminal.
//
// Usage:
//
//	snake                    - Start the menu
//	snake play [variant]     - Play a variant (menu if omitted)
//	snake list               - List variants
//	snake serve              - Start SSH server for remote play
//	snake replays            - List saved replays
//	snake replay <id>        - Re-simulate a replay and print the result
//	snake config             - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>       - Platform frame rate (default: 60)
//	--seed <value>     - RNG seed for reproducible gameplay
//	--db <path>        - Replay database (default: ~/.snake/snake.db)
//	--config <path>    - Game config YAML
//	--spectate <addr>  - Serve a WebSocket spectator feed at <addr>/ws
package main

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/spectate"
)

var (
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagSpectate string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "snake",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - the turn-ledger snake game for your terminal",
	Long: `Snake moves a head around a grid. Every turn the head makes is written
down at the cell where it happened, and each body segment turns when it
reaches that cell, so the body traces the head's path.

Available commands:
  play     - Play a variant (starts at the menu without one)
  list     - Show all variants
  serve    - Start SSH server for remote play
  replays  - List saved replays
  replay   - Re-simulate a saved replay
  config   - Print the effective configuration

Examples:
  snake
  snake play snake_grid
  snake play --spectate :8090
  snake serve --ssh :2222
  snake replay 3`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd, nil)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Platform frame rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snake/snake.db", "Path to replay database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagSpectate, "spectate", "", "Serve a WebSocket spectator feed on this address (e.g. :8090)")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		snake.SetConfigPath(flagConfig)
	}

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

// runtimeConfig builds the runtime config from flags and the terminal size.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// sessionLogger returns a logger for use while the terminal is taken over
// by the UI. It appends to ~/.snake/snake.log, or discards when that file
// cannot be opened. The returned func closes the file.
func sessionLogger() (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	dir := filepath.Join(home, ".snake")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "snake.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	l := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "snake",
	})
	return l, func() { f.Close() }
}

// startSpectating serves the spectator feed when --spectate is set. The
// returned func stops it.
func startSpectating(l *log.Logger) (*spectate.Hub, func()) {
	if flagSpectate == "" {
		return nil, func() {}
	}

	hub := spectate.NewHub()
	hub.SetLogger(l.WithPrefix("snake-spectate"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := hub.ListenAndServe(ctx, flagSpectate); err != nil {
			l.Error("spectator feed stopped", "address", flagSpectate, "error", err)
		}
	}()

	return hub, func() {
		cancel()
		<-done
	}
}
