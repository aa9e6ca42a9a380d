package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/replay"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagLimit int
	flagWatch bool
)

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "List saved replays",
	Long: `Display the most recent replays, newest first.

Examples:
  snake replays
  snake replays --limit 5`,
	Args: cobra.NoArgs,
	RunE: runReplays,
}

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-simulate a saved replay",
	Long: `Rebuild the board from the replay's seed and settings, feed it the
recorded inputs without rendering, and print the final state. The command
fails if the simulated score differs from the recorded one.

With --watch the replay is played back in the terminal instead.

Examples:
  snake replay 3
  snake replay 3 --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replaysCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of replays to show")
	replayCmd.Flags().BoolVar(&flagWatch, "watch", false, "Play the replay back in the terminal")
}

func runReplays(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	replays, err := store.RecentReplays(flagLimit)
	if err != nil {
		return err
	}

	if len(replays) == 0 {
		fmt.Println("No replays recorded yet.")
		fmt.Println()
		fmt.Println("Play 'snake play' to record one!")
		return nil
	}

	fmt.Printf("  %-6s  %-12s  %-6s  %-8s  %s\n", "ID", "Variant", "Score", "Ticks", "Recorded")
	fmt.Printf("  %-6s  %-12s  %-6s  %-8s  %s\n", "--", "-------", "-----", "-----", "--------")
	for _, r := range replays {
		fmt.Printf("  %-6d  %-12s  %-6d  %-8d  %s\n",
			r.ID, r.GameID, r.FinalScore, r.Ticks, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runReplay(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid replay id %q", args[0])
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	r, err := store.ReplayByID(id)
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("replay %d not found (run 'snake replays' to list them)", id)
	}

	if flagWatch {
		return tui.RunReplay(tui.Options{Store: store}, runtimeConfig(), *r)
	}

	snap, err := replay.Verify(*r)
	if err != nil && !errors.Is(err, replay.ErrScoreMismatch) {
		return err
	}

	fmt.Printf("Replay #%d - %s (seed %d)\n", r.ID, r.GameID, r.Seed)
	fmt.Println()
	fmt.Printf("  Ticks:        %d\n", snap.Tick)
	fmt.Printf("  Score:        %d (recorded %d)\n", snap.Score, r.FinalScore)
	fmt.Printf("  Body length:  %d\n", snap.BodyLen)
	fmt.Printf("  Head:         (%d, %d) facing %s\n", snap.HeadX, snap.HeadY, snap.Dir)
	fmt.Printf("  Item:         (%d, %d)\n", snap.ItemX, snap.ItemY)
	fmt.Printf("  Turns:        %d\n", snap.Turns)
	fmt.Printf("  Inputs:       %d\n", len(r.Inputs))

	if err != nil {
		logger.Warn("replay does not reproduce", "id", r.ID, "err", err)
	}
	return err
}

