package hud

import "strings"

// Ellipsis marks a truncated narrative.
const Ellipsis = "…"

// MeasureFunc returns the rendered cell width of a candidate string under
// the current style context. Injecting it keeps the fitting algorithm
// independent of any rendering surface; production callers pass
// lipgloss.Width.
type MeasureFunc func(string) int

// Fit fits full into maxWidth display cells without breaking words.
//
// It binary-searches over rune prefix lengths; each candidate is cut back to
// the last space inside the prefix (dropping the trailing partial word) and
// suffixed with an ellipsis. The longest candidate that measures within
// maxWidth wins. When even the ellipsis alone does not fit, the ellipsis is
// returned anyway: the caller asked for a pathologically narrow slot.
//
// Callers must always re-fit from the untruncated source string, never from
// a previous Fit result, so repeated fitting cannot compound truncation.
func Fit(full string, maxWidth int, measure MeasureFunc) string {
	if maxWidth <= 0 {
		return ""
	}
	if measure(full) <= maxWidth {
		return full
	}

	runes := []rune(full)
	best := Ellipsis
	lo, hi := 0, len(runes)
	for lo <= hi {
		mid := (lo + hi) / 2
		cand := candidateAt(runes, mid)
		if measure(cand) <= maxWidth {
			best = cand
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return best
}

// candidateAt builds the ellipsized candidate for a prefix of n runes.
func candidateAt(runes []rune, n int) string {
	prefix := string(runes[:n])
	if cut := strings.LastIndex(prefix, " "); cut >= 0 {
		prefix = prefix[:cut]
	}
	return strings.TrimRight(prefix, " ") + Ellipsis
}
