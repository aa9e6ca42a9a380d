package snake

import (
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func TestLedgers(t *testing.T) {
	bounds := core.NewBounds(10, 8)
	ledgers := map[string]Ledger{
		"sparse": NewSparseLedger(),
		"grid":   NewGridLedger(bounds),
	}

	for name, l := range ledgers {
		t.Run(name, func(t *testing.T) {
			if _, ok := l.Lookup(core.Cell{X: 3, Y: 3}); ok {
				t.Fatal("empty ledger should miss")
			}

			l.Record(core.Cell{X: 3, Y: 3}, DirLeft)
			d, ok := l.Lookup(core.Cell{X: 3, Y: 3})
			if !ok || d != DirLeft {
				t.Errorf("Lookup(3,3) = %v, %v; expected left, true", d, ok)
			}

			// Exact cell only
			if _, ok := l.Lookup(core.Cell{X: 3, Y: 4}); ok {
				t.Error("Lookup of a neighbouring cell should miss")
			}

			// Latest record at a cell wins
			l.Record(core.Cell{X: 3, Y: 3}, DirUp)
			if d, _ := l.Lookup(core.Cell{X: 3, Y: 3}); d != DirUp {
				t.Errorf("Lookup after overwrite = %v, expected up", d)
			}
			if l.Len() != 1 {
				t.Errorf("Len() = %d, expected 1 after overwrite", l.Len())
			}

			l.Record(core.Cell{X: 9, Y: 7}, DirRight)
			if l.Len() != 2 {
				t.Errorf("Len() = %d, expected 2", l.Len())
			}
		})
	}
}

func TestGridLedgerIgnoresOutOfBounds(t *testing.T) {
	l := NewGridLedger(core.NewBounds(4, 4))

	l.Record(core.Cell{X: -1, Y: 0}, DirLeft)
	l.Record(core.Cell{X: 4, Y: 0}, DirLeft)
	l.Record(core.Cell{X: 0, Y: 4}, DirLeft)

	if l.Len() != 0 {
		t.Errorf("Len() = %d, expected out-of-grid records to be dropped", l.Len())
	}
	if _, ok := l.Lookup(core.Cell{X: 4, Y: 0}); ok {
		t.Error("out-of-grid lookup should miss")
	}
}

func TestSparseLedgerKeepsOutOfBounds(t *testing.T) {
	l := NewSparseLedger()
	l.Record(core.Cell{X: -1, Y: 0}, DirDown)

	if d, ok := l.Lookup(core.Cell{X: -1, Y: 0}); !ok || d != DirDown {
		t.Errorf("Lookup(-1,0) = %v, %v; expected down, true", d, ok)
	}
	if got := l.Records(); len(got) != 1 || got[0].Position() != (core.Cell{X: -1, Y: 0}) {
		t.Errorf("Records() = %v", got)
	}
}

func TestGridLedgerRecords(t *testing.T) {
	l := NewGridLedger(core.NewBounds(4, 4))
	l.Record(core.Cell{X: 2, Y: 1}, DirUp)
	l.Record(core.Cell{X: 0, Y: 3}, DirLeft)
	l.Record(core.Cell{X: 2, Y: 1}, DirRight)
	l.Record(core.Cell{X: 9, Y: 9}, DirDown)

	want := []TurnRecord{
		{Cell: core.Cell{X: 0, Y: 3}, Direction: DirLeft},
		{Cell: core.Cell{X: 2, Y: 1}, Direction: DirRight},
	}
	got := l.Records()
	if len(got) != len(want) {
		t.Fatalf("Records() = %v, expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Records()[%d] = %v, expected %v", i, got[i], want[i])
		}
	}
}

func TestNewLedger(t *testing.T) {
	bounds := core.NewBounds(5, 5)

	if l, err := NewLedger(LedgerSparse, bounds); err != nil {
		t.Errorf("sparse: %v", err)
	} else if _, ok := l.(*SparseLedger); !ok {
		t.Errorf("sparse kind built %T", l)
	}

	if l, err := NewLedger(LedgerGrid, bounds); err != nil {
		t.Errorf("grid: %v", err)
	} else if _, ok := l.(*GridLedger); !ok {
		t.Errorf("grid kind built %T", l)
	}

	if _, err := NewLedger("history", bounds); err == nil {
		t.Error("unknown kind should fail")
	}
}
