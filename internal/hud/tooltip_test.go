package hud

import "testing"

func TestTooltipLeaveBeforeDelayNeverShows(t *testing.T) {
	var tip Tooltip
	gen := tip.Enter("Bullish, defined risk", 10, 4)
	tip.Leave()

	if tip.Fire(gen) {
		t.Error("Fire succeeded after Leave")
	}
	if tip.Visible() {
		t.Error("tooltip visible after Leave")
	}
}

func TestTooltipShowsAfterFullDelay(t *testing.T) {
	var tip Tooltip
	gen := tip.Enter("Range-bound, IV watch", 10, 4)

	if tip.Visible() {
		t.Fatal("tooltip visible before the delay elapsed")
	}
	if !tip.Fire(gen) {
		t.Fatal("Fire rejected the live pending show")
	}
	if !tip.Visible() {
		t.Error("tooltip not visible after Fire")
	}
	if tip.Text() != "Range-bound, IV watch" {
		t.Errorf("Text = %q", tip.Text())
	}
}

func TestTooltipNewTargetCancelsPending(t *testing.T) {
	var tip Tooltip
	g1 := tip.Enter("first", 5, 2)
	g2 := tip.Enter("second", 8, 2)

	if tip.Fire(g1) {
		t.Error("stale pending show fired")
	}
	if tip.Visible() {
		t.Error("tooltip visible from stale timer")
	}
	if !tip.Fire(g2) {
		t.Error("live pending show rejected")
	}
	if tip.Text() != "second" {
		t.Errorf("Text = %q, want content of the newest target", tip.Text())
	}
}

func TestTooltipMoveTracksPointer(t *testing.T) {
	var tip Tooltip
	gen := tip.Enter("ref", 3, 1)
	tip.Fire(gen)
	tip.Move(12, 6)

	x, y := tip.Pointer()
	if x != 12 || y != 6 {
		t.Errorf("Pointer = (%d, %d), want (12, 6)", x, y)
	}
}

func TestTooltipLeaveIdempotent(t *testing.T) {
	var tip Tooltip
	gen := tip.Enter("x", 0, 0)
	tip.Fire(gen)
	tip.Leave()
	tip.Leave() // no-op

	if tip.Visible() {
		t.Error("tooltip visible after Leave")
	}
}

func TestClampX(t *testing.T) {
	const containerW = 80

	tests := []struct {
		name     string
		pointerX int
		tipW     int
	}{
		{"left edge", 0, 20},
		{"middle", 40, 20},
		{"near right edge", 75, 20},
		{"past right edge", 90, 20},
		{"wide tip", 40, 70},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := ClampX(tt.pointerX, tt.tipW, containerW)
			if x < tooltipMinInset {
				t.Errorf("x = %d, left edge below inset %d", x, tooltipMinInset)
			}
			if tt.tipW <= containerW-tooltipMinInset && x+tt.tipW > containerW {
				t.Errorf("x = %d: right edge %d exceeds container %d", x, x+tt.tipW, containerW)
			}
		})
	}
}

func TestTaskSeqCancelIdempotent(t *testing.T) {
	var s TaskSeq
	g := s.Next()
	if !s.Live(g) {
		t.Fatal("fresh generation not live")
	}
	s.Cancel()
	s.Cancel() // cancelling an already-cancelled task is a no-op
	if s.Live(g) {
		t.Error("generation live after Cancel")
	}
	if s.Live(0) {
		t.Error("zero generation must never be live")
	}
}
