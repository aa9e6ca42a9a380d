package core

import "testing"

func TestBoundsContains(t *testing.T) {
	b := NewBounds(80, 50)

	tests := []struct {
		name     string
		cell     Cell
		expected bool
	}{
		{"origin", Cell{0, 0}, true},
		{"inside", Cell{40, 25}, true},
		{"last cell", Cell{79, 49}, true},
		{"right edge (exclusive)", Cell{80, 10}, false},
		{"bottom edge (exclusive)", Cell{10, 50}, false},
		{"negative x", Cell{-1, 10}, false},
		{"negative y", Cell{10, -1}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := b.Contains(tc.cell); got != tc.expected {
				t.Errorf("Contains(%v) = %v, expected %v", tc.cell, got, tc.expected)
			}
		})
	}
}

func TestCellAdd(t *testing.T) {
	c := Cell{X: 3, Y: 3}
	if got := c.Add(-1, 0); got != (Cell{X: 2, Y: 3}) {
		t.Errorf("Add(-1, 0) = %v, expected (2, 3)", got)
	}
	if c != (Cell{X: 3, Y: 3}) {
		t.Error("Add should not mutate the receiver")
	}
	if c.String() != "(3, 3)" {
		t.Errorf("String() = %q", c.String())
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestMinMax(t *testing.T) {
	if Min(5, 10) != 5 || Min(10, 5) != 5 {
		t.Error("Min should return the smaller value")
	}
	if Max(5, 10) != 10 || Max(10, 5) != 10 {
		t.Error("Max should return the larger value")
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    RGB
		wantErr bool
	}{
		{"#ff0000", ColorRed, false},
		{"00ff00", ColorGreen, false},
		{" #FFFFFF ", ColorWhite, false},
		{"#fff", RGB{}, true},
		{"#gg0000", RGB{}, true},
	}

	for _, tc := range tests {
		got, err := ParseHex(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseHex(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseHex(%q) = %v, expected %v", tc.in, got, tc.want)
		}
	}

	if ColorRed.Hex() != "#ff0000" {
		t.Errorf("Hex() = %q, expected #ff0000", ColorRed.Hex())
	}
}

func TestInputFrameSteerKeepsLatest(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionUp)
	f.Set(ActionPause)
	f.Set(ActionLeft)

	if f.Steer != ActionLeft {
		t.Errorf("Steer = %v, expected Left", f.Steer)
	}
	if !f.Has(ActionPause) {
		t.Error("Pause should be set")
	}

	f.Clear()
	if f.Steer != ActionNone || f.Has(ActionUp) {
		t.Error("Clear should reset all actions and steering")
	}
}

func TestFrameMillis(t *testing.T) {
	cfg := RuntimeConfig{TickRate: 50}
	if got := cfg.FrameMillis(); got != 20 {
		t.Errorf("FrameMillis() = %v, expected 20", got)
	}
	cfg.TickRate = 0
	if got := cfg.FrameMillis(); got <= 16 || got >= 17 {
		t.Errorf("FrameMillis() with zero rate = %v, expected 60fps fallback", got)
	}
}
