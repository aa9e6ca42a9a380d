package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndLoadReplay(t *testing.T) {
	store := openTestStore(t)

	in := Replay{
		GameID:     "snake",
		Seed:       42,
		TickRate:   30,
		ConfigYAML: "grid:\n  width: 20\n",
		Ticks:      300,
		FinalScore: 7,
		Inputs: []ReplayInput{
			{Tick: 12, Direction: "left"},
			{Tick: 3, Direction: "right"},
			{Tick: 40, Direction: "up"},
		},
	}

	id, err := store.SaveReplay(in)
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}

	got, err := store.ReplayByID(id)
	if err != nil {
		t.Fatalf("ReplayByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("ReplayByID() returned nil for a saved replay")
	}

	if got.GameID != in.GameID || got.Seed != in.Seed || got.TickRate != in.TickRate || got.ConfigYAML != in.ConfigYAML {
		t.Errorf("header mismatch: %+v", got)
	}
	if got.Ticks != 300 || got.FinalScore != 7 {
		t.Errorf("Ticks=%d FinalScore=%d, expected 300 and 7", got.Ticks, got.FinalScore)
	}

	// Inputs come back ordered by tick
	expected := []ReplayInput{{3, "right"}, {12, "left"}, {40, "up"}}
	if len(got.Inputs) != len(expected) {
		t.Fatalf("got %d inputs, expected %d", len(got.Inputs), len(expected))
	}
	for i, e := range expected {
		if got.Inputs[i] != e {
			t.Errorf("input %d = %+v, expected %+v", i, got.Inputs[i], e)
		}
	}
}

func TestStoreReplayByIDMissing(t *testing.T) {
	store := openTestStore(t)

	got, err := store.ReplayByID(99)
	if err != nil {
		t.Fatalf("ReplayByID() failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for a missing replay, got %+v", got)
	}
}

func TestStoreSaveReplayRejectsDuplicateTicks(t *testing.T) {
	store := openTestStore(t)

	_, err := store.SaveReplay(Replay{
		GameID: "snake",
		Inputs: []ReplayInput{{Tick: 1, Direction: "up"}, {Tick: 1, Direction: "left"}},
	})
	if err == nil {
		t.Fatal("SaveReplay() should fail on duplicate ticks")
	}

	// The transaction rolled back, so nothing is listed.
	replays, err := store.RecentReplays(10)
	if err != nil {
		t.Fatalf("RecentReplays() failed: %v", err)
	}
	if len(replays) != 0 {
		t.Errorf("expected no replays after a failed save, got %d", len(replays))
	}
}

func TestStoreRecentReplays(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		if _, err := store.SaveReplay(Replay{GameID: "snake", Seed: int64(i), FinalScore: i}); err != nil {
			t.Fatalf("SaveReplay() failed: %v", err)
		}
	}

	replays, err := store.RecentReplays(3)
	if err != nil {
		t.Fatalf("RecentReplays() failed: %v", err)
	}
	if len(replays) != 3 {
		t.Fatalf("expected 3 replays with limit, got %d", len(replays))
	}

	// Newest first
	if replays[0].Seed != 4 || replays[1].Seed != 3 || replays[2].Seed != 2 {
		t.Errorf("replays not newest first: %+v", replays)
	}
	if replays[0].Inputs != nil {
		t.Error("RecentReplays() should not load inputs")
	}
}

func TestStoreDeleteReplay(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveReplay(Replay{GameID: "snake", Inputs: []ReplayInput{{Tick: 1, Direction: "up"}}})
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}

	if err := store.DeleteReplay(id); err != nil {
		t.Fatalf("DeleteReplay() failed: %v", err)
	}

	got, err := store.ReplayByID(id)
	if err != nil {
		t.Fatalf("ReplayByID() failed: %v", err)
	}
	if got != nil {
		t.Error("replay still present after delete")
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
