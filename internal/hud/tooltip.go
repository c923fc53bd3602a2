package hud

import "time"

// Tooltip layout constants, in cells.
const (
	// HoverDelay is the continuous hover duration required before the
	// tooltip is shown.
	HoverDelay = 2 * time.Second

	// tooltipOffsetX shifts the tooltip right of the pointer so it does not
	// sit under the cursor cell.
	tooltipOffsetX = 2

	// tooltipMinInset keeps the tooltip's left edge off the container edge.
	tooltipMinInset = 1
)

// Tooltip is the hover-intent scheduler for the single shared tooltip
// surface. Content is swapped per hovered target; entering a new target
// before the delay elapses cancels the pending show.
type Tooltip struct {
	seq     TaskSeq
	visible bool
	text    string
	x, y    int
}

// Enter schedules a show for the given target text and returns the
// generation the caller must stamp on its delay timer. Any pending show is
// cancelled first. A currently visible tooltip is hidden: the new target
// earns its own hover-intent delay.
func (t *Tooltip) Enter(text string, x, y int) Generation {
	t.visible = false
	t.text = text
	t.x, t.y = x, y
	return t.seq.Next()
}

// Move tracks pointer movement over the current target.
func (t *Tooltip) Move(x, y int) {
	t.x, t.y = x, y
}

// Fire makes the tooltip visible if the delay timer stamped g is still the
// live pending show. It reports whether anything changed.
func (t *Tooltip) Fire(g Generation) bool {
	if !t.seq.Live(g) {
		return false
	}
	t.visible = true
	return true
}

// Leave cancels any pending show and hides the tooltip immediately.
// Leaving with nothing pending or shown is a no-op.
func (t *Tooltip) Leave() {
	t.seq.Cancel()
	t.visible = false
	t.text = ""
}

// Visible reports whether the tooltip is currently shown.
func (t *Tooltip) Visible() bool { return t.visible }

// Text returns the content for the shared tooltip surface.
func (t *Tooltip) Text() string { return t.text }

// Pointer returns the last pointer position over the target.
func (t *Tooltip) Pointer() (x, y int) { return t.x, t.y }

// ClampX computes the tooltip's horizontal position: pointer plus offset,
// clamped so the right edge never exceeds the container's right edge and the
// left edge never goes below the minimum inset.
func ClampX(pointerX, tipWidth, containerWidth int) int {
	x := pointerX + tooltipOffsetX
	if x+tipWidth > containerWidth {
		x = containerWidth - tipWidth
	}
	if x < tooltipMinInset {
		x = tooltipMinInset
	}
	return x
}
