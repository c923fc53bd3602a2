package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"midas/internal/browser"
	"midas/internal/config"
	"midas/internal/gateway"
	"midas/internal/hud"
	"midas/internal/recorder"
	"midas/internal/snapshot"
)

// Messages.
type snapshotMsg struct {
	epoch  hud.Generation
	symbol string
	snap   *snapshot.Snapshot
	err    error
}

type ageTickMsg struct{ gen hud.Generation }

type tooltipShowMsg struct{ gen hud.Generation }

type recordedMsg struct{ err error }

type recentSymbolsMsg struct {
	symbols []string
	err     error
}

// model is the single-panel HUD. All state transitions happen on the
// bubbletea update loop; the only suspension point is the gateway fetch,
// which runs as a tea.Cmd and reports back with its epoch stamp.
type model struct {
	cfg *config.Config
	log *slog.Logger
	gw  *gateway.Client
	rec *recorder.Recorder // nil when the local history store is unavailable

	engine     *hud.Engine
	tooltip    hud.Tooltip
	hoverDelay time.Duration

	input  textinput.Model
	fields hud.Fields
	status string
	age    string
	recent []string

	// hoverKey identifies the region currently under the pointer, "" when
	// the pointer is over dead space.
	hoverKey string

	width, height int
	ready         bool
}

func initialModel(cfg *config.Config, log *slog.Logger, gw *gateway.Client, rec *recorder.Recorder) model {
	ti := textinput.New()
	ti.Placeholder = "AAPL"
	ti.Prompt = "❯ "
	ti.CharLimit = 8
	ti.Width = 10
	ti.Focus()

	hoverDelay := hud.HoverDelay
	if cfg.HUD.HoverDelayMS > 0 {
		hoverDelay = time.Duration(cfg.HUD.HoverDelayMS) * time.Millisecond
	}

	return model{
		cfg:        cfg,
		log:        log,
		gw:         gw,
		rec:        rec,
		engine:     hud.NewEngine(log),
		hoverDelay: hoverDelay,
		input:      ti,
		fields:     hud.MapFields(nil),
		age:        hud.Placeholder,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadRecentCmd())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			return m.submit()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case snapshotMsg:
		return m.applySnapshot(msg)

	case ageTickMsg:
		if !m.engine.Clock().Live(msg.gen) {
			return m, nil
		}
		m.age = ageLabel(m.engine.Clock(), time.Now())
		return m, ageTickCmd(msg.gen)

	case tooltipShowMsg:
		m.tooltip.Fire(msg.gen)
		return m, nil

	case recordedMsg:
		if msg.err != nil {
			m.log.Warn("recording snapshot", "error", msg.err)
		}
		return m, nil

	case recentSymbolsMsg:
		if msg.err != nil {
			m.log.Warn("loading recent symbols", "error", msg.err)
		} else {
			m.recent = msg.symbols
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit runs the committed input line through the engine.
func (m model) submit() (tea.Model, tea.Cmd) {
	sub := m.engine.Submit(m.input.Value())

	if sub.Clear {
		m.clearPanel()
	}
	if sub.Message != "" {
		m.status = sub.Message
		return m, nil
	}
	if !sub.StartFetch {
		return m, nil
	}

	m.status = "fetching " + sub.Symbol + "…"
	return m, m.fetchCmd(sub.Symbol, sub.Epoch)
}

// applySnapshot feeds a completed fetch back through the engine.
func (m model) applySnapshot(msg snapshotMsg) (tea.Model, tea.Cmd) {
	out := m.engine.Complete(msg.epoch, msg.snap, msg.err, time.Now())
	if out.Stale {
		return m, nil
	}

	if out.Clear {
		m.clearPanel()
		m.status = out.Message
		return m, nil
	}

	m.fields = *out.Fields
	m.status = ""
	m.recent = pushRecent(m.recent, msg.symbol)

	var cmds []tea.Cmd
	if out.ClockGen != 0 {
		m.age = ageLabel(m.engine.Clock(), time.Now())
		cmds = append(cmds, ageTickCmd(out.ClockGen))
	} else {
		m.age = hud.Placeholder
	}
	if m.rec != nil {
		cmds = append(cmds, m.recordCmd(msg.symbol, msg.snap))
	}
	return m, tea.Batch(cmds...)
}

// handleMouse drives the tooltip scheduler and reference-link clicks from
// pointer events over the shared panel surface.
func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	_, regions := m.buildPanel()
	hit := hitTest(regions, msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionMotion:
		if hit == nil {
			if m.hoverKey != "" {
				m.hoverKey = ""
				m.tooltip.Leave()
			}
			return m, nil
		}
		if hit.key != m.hoverKey {
			m.hoverKey = hit.key
			m.tooltip.Leave()
			gen := m.tooltip.Enter(hit.tooltip, msg.X, msg.Y)
			return m, tooltipShowCmd(gen, m.hoverDelay)
		}
		m.tooltip.Move(msg.X, msg.Y)
		return m, nil

	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft && hit != nil && hit.url != "" {
			m.log.Info("opening reference", "url", hit.url)
			if err := browser.Open(hit.url); err != nil {
				m.log.Warn("opening reference", "url", hit.url, "error", err)
			}
		}
	}
	return m, nil
}

// clearPanel resets every slot to placeholders.
func (m *model) clearPanel() {
	m.fields = hud.MapFields(nil)
	m.age = hud.Placeholder
	m.status = ""
	m.hoverKey = ""
	m.tooltip.Leave()
}

// Commands.

func (m model) fetchCmd(symbol string, epoch hud.Generation) tea.Cmd {
	gw := m.gw
	return func() tea.Msg {
		snap, err := gw.Run(context.Background(), symbol)
		return snapshotMsg{epoch: epoch, symbol: symbol, snap: snap, err: err}
	}
}

func (m model) recordCmd(symbol string, snap *snapshot.Snapshot) tea.Cmd {
	rec := m.rec
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return recordedMsg{err: rec.Record(ctx, symbol, snap, time.Now())}
	}
}

func (m model) loadRecentCmd() tea.Cmd {
	rec := m.rec
	if rec == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		symbols, err := rec.RecentSymbols(ctx, 5)
		return recentSymbolsMsg{symbols: symbols, err: err}
	}
}

func ageTickCmd(gen hud.Generation) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return ageTickMsg{gen: gen}
	})
}

func tooltipShowCmd(gen hud.Generation, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return tooltipShowMsg{gen: gen}
	})
}

// Helpers.

func ageLabel(c *hud.Clock, now time.Time) string {
	age, ok := c.Age(now)
	if !ok {
		return hud.Placeholder
	}
	return formatAge(age)
}

func pushRecent(recent []string, symbol string) []string {
	out := []string{symbol}
	for _, s := range recent {
		if s != symbol && len(out) < 5 {
			out = append(out, s)
		}
	}
	return out
}
