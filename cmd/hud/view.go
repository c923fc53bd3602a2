package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"midas/internal/hud"
)

// Styles.
var (
	titleStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("15")).Background(lipgloss.Color("4"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	gainStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	lossStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	stratStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	barStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	refStyle     = lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("14"))
	tooltipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11"))
	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).Background(lipgloss.Color("8"))
)

const confidenceBarWidth = 10

// region is a clickable/hoverable span of the rendered panel, addressed in
// cells. x1 is exclusive.
type region struct {
	y, x0, x1 int
	key       string
	tooltip   string
	url       string
}

func hitTest(regions []region, x, y int) *region {
	for i := range regions {
		r := &regions[i]
		if y == r.y && x >= r.x0 && x < r.x1 {
			return r
		}
	}
	return nil
}

// rowBuilder assembles one styled row while tracking the plain cell cursor,
// so hit regions line up with what the terminal shows.
type rowBuilder struct {
	b strings.Builder
	x int
}

func (rb *rowBuilder) add(style lipgloss.Style, text string) (x0, x1 int) {
	x0 = rb.x
	rb.b.WriteString(style.Render(text))
	rb.x += lipgloss.Width(text)
	return x0, rb.x
}

func (rb *rowBuilder) String() string { return rb.b.String() }

// signStyle maps a sign class to its style.
func signStyle(s hud.SignClass) lipgloss.Style {
	switch s {
	case hud.SignPositive:
		return gainStyle
	case hud.SignNegative:
		return lossStyle
	default:
		return dimStyle
	}
}

func (m model) View() string {
	if !m.ready {
		return "Loading..."
	}
	content, _ := m.buildPanel()
	return content
}

// buildPanel renders the panel rows and the hit regions for the current
// state. It is a pure function of the model: Update calls it for regions on
// mouse events, View calls it for the rows.
func (m model) buildPanel() (string, []region) {
	var rows []string
	var regions []region
	f := m.fields

	// Title bar.
	title := " MIDAS HUD "
	if sym := m.engine.CurrentSymbol(); sym != "" {
		title += "— " + sym + " "
	}
	rows = append(rows, titleStyle.Width(m.width).Render(title))
	rows = append(rows, "")

	// Input row.
	{
		var rb rowBuilder
		rb.add(labelStyle, " Ticker ")
		rows = append(rows, rb.String()+m.input.View())
	}

	// Status row: validation/transport message, or recent symbols as a hint.
	switch {
	case m.status != "":
		rows = append(rows, statusStyle.Render(" "+m.status))
	case len(m.recent) > 0:
		rows = append(rows, dimStyle.Render(" recent: "+strings.Join(m.recent, " ")))
	default:
		rows = append(rows, "")
	}
	rows = append(rows, "")

	// Quote row.
	{
		var rb rowBuilder
		rb.add(labelStyle, " Last ")
		rb.add(valueStyle, f.Last)
		rb.add(labelStyle, "    Bid/Ask ")
		rb.add(valueStyle, f.BidAsk)
		rows = append(rows, rb.String())
	}

	// Returns and trend row.
	{
		var rb rowBuilder
		rb.add(labelStyle, " 1m ")
		rb.add(signStyle(f.R1mSign), f.R1m)
		rb.add(labelStyle, "   5m ")
		rb.add(signStyle(f.R5mSign), f.R5m)
		rb.add(labelStyle, "   Trend ")
		rb.add(signStyle(f.TrendSign), f.Trend)
		rows = append(rows, rb.String())
	}

	// Sentiment row.
	{
		var rb rowBuilder
		rb.add(labelStyle, " Sent ")
		rb.add(valueStyle, f.SentMean)
		rb.add(labelStyle, "   σ ")
		rb.add(valueStyle, f.SentStd)
		rows = append(rows, rb.String())
	}

	// Strategy row: label is a hover target carrying the category
	// description; the bar width is proportional to confidence.
	{
		y := len(rows)
		var rb rowBuilder
		rb.add(labelStyle, " Strategy ")
		x0, x1 := rb.add(stratStyle, f.Strategy)
		rb.add(labelStyle, "  ")
		rb.add(barStyle, confidenceBar(f.ConfidencePct))
		rb.add(labelStyle, " ")
		rb.add(valueStyle, f.Confidence)
		rows = append(rows, rb.String())
		regions = append(regions, region{
			y: y, x0: x0, x1: x1,
			key:     "strategy",
			tooltip: f.StrategyClass.Description(),
		})
	}

	// Narrative row: the cleaned full text is re-fitted from scratch on
	// every build, so resizing never compounds truncation. Reference
	// markers live outside the fitted text and are never truncated away.
	{
		y := len(rows)
		var rb rowBuilder
		rb.add(labelStyle, " ")

		refsWidth := 0
		for _, ref := range f.Refs {
			refsWidth += lipgloss.Width(marker(ref.N))
		}
		maxW := m.width - 2 - refsWidth
		if refsWidth > 0 {
			maxW-- // separating space
		}
		fitted := hud.Fit(f.Narrative, maxW, lipgloss.Width)
		rb.add(valueStyle, fitted)

		if len(f.Refs) > 0 {
			rb.add(labelStyle, " ")
			for _, ref := range f.Refs {
				x0, x1 := rb.add(refStyle, marker(ref.N))
				regions = append(regions, region{
					y: y, x0: x0, x1: x1,
					key:     fmt.Sprintf("ref-%d", ref.N),
					tooltip: refTooltip(ref.URL),
					url:     ref.URL,
				})
			}
		}
		rows = append(rows, rb.String())
	}

	// Staleness row.
	{
		var rb rowBuilder
		rb.add(labelStyle, " Updated ")
		rb.add(dimStyle, m.age)
		rows = append(rows, rb.String())
	}

	// Shared tooltip surface: one dedicated row, so showing or hiding the
	// tooltip never shifts the panel. Horizontal position follows the
	// pointer, clamped inside the panel.
	rows = append(rows, m.tooltipRow())

	// Footer.
	footer := " esc quit   enter fetch   hover a marker for its source"
	rows = append(rows, footerStyle.Width(m.width).Render(footer))

	return strings.Join(rows, "\n"), regions
}

func (m model) tooltipRow() string {
	if !m.tooltip.Visible() || m.tooltip.Text() == "" {
		return ""
	}
	box := tooltipStyle.Render(" " + m.tooltip.Text() + " ")
	px, _ := m.tooltip.Pointer()
	x := hud.ClampX(px, lipgloss.Width(box), m.width)
	return strings.Repeat(" ", x) + box
}

// confidenceBar renders a fixed-width bar filled proportionally to pct.
// An absent confidence renders as an empty track.
func confidenceBar(pct int) string {
	if pct < 0 {
		pct = 0
	}
	filled := pct * confidenceBarWidth / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", confidenceBarWidth-filled)
}

func marker(n int) string {
	return fmt.Sprintf("[%d]", n)
}

func refTooltip(url string) string {
	if url == "" {
		return "no source link"
	}
	return url
}

func formatAge(seconds int) string {
	if seconds >= 60 {
		return fmt.Sprintf("%dm %ds ago", seconds/60, seconds%60)
	}
	return fmt.Sprintf("%ds ago", seconds)
}
