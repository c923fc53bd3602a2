package hud

import (
	"log/slog"
	"time"

	"midas/internal/snapshot"
)

// TransportMessage is the single user-visible message for any fetch failure,
// network or non-2xx alike.
const TransportMessage = "Gateway unreachable — check connection and retry"

// Engine owns the HUD session state and the interaction state machine:
// Idle → Validating → Fetching → {Rendered | Error} → Idle. All methods must
// be called from the single UI loop; there is no internal locking.
type Engine struct {
	log *slog.Logger

	symbol   string
	fetching bool
	rendered bool

	// epoch stamps each fetch so a late-arriving response for a superseded
	// request is discarded instead of overwriting a newer display.
	epoch TaskSeq
	clock Clock
}

// NewEngine creates an engine for one HUD instance.
func NewEngine(log *slog.Logger) *Engine {
	return &Engine{log: log}
}

// Submission is the engine's decision for one committed input line.
type Submission struct {
	// StartFetch is true when the caller must issue the gateway request for
	// Symbol, stamped with Epoch.
	StartFetch bool
	Symbol     string
	Epoch      Generation

	// Message is the inline validation message, empty when the input was
	// accepted or silently ignored.
	Message string

	// Clear is true when the HUD must reset every slot to placeholders.
	Clear bool
}

// Submit runs validation and the duplicate/concurrent-request guards.
// An in-flight fetch refuses new submissions outright: no queuing and no
// cancellation of the in-flight request. Resubmitting the symbol already on
// screen is ignored.
func (e *Engine) Submit(raw string) Submission {
	sym, err := ValidateTicker(raw)
	if err != nil {
		e.symbol = ""
		e.rendered = false
		e.clock.Stop()
		e.log.Debug("ticker rejected", "raw", raw, "reason", err)
		return Submission{Message: err.Error(), Clear: true}
	}

	if e.fetching {
		e.log.Debug("submission ignored, fetch in flight", "symbol", sym)
		return Submission{}
	}
	if sym == e.symbol && e.rendered {
		e.log.Debug("submission ignored, already rendered", "symbol", sym)
		return Submission{}
	}

	e.symbol = sym
	e.fetching = true
	ep := e.epoch.Next()
	e.log.Info("fetch started", "symbol", sym, "epoch", uint64(ep))
	return Submission{StartFetch: true, Symbol: sym, Epoch: ep}
}

// Outcome is the engine's reaction to a completed fetch.
type Outcome struct {
	// Fields is non-nil on success and carries every slot value.
	Fields *Fields

	// ClockGen is the staleness tick generation when the snapshot carried a
	// valid age; zero means the age label shows the unknown placeholder.
	ClockGen Generation

	// Message is the transport error message, empty on success.
	Message string

	// Clear is true when the HUD must reset to placeholders.
	Clear bool

	// Stale is true when the response belonged to a superseded request and
	// was discarded without touching any state.
	Stale bool
}

// Complete applies a fetch result. A result stamped with a dead epoch is
// discarded. On error the current symbol is cleared so the same input can be
// retried immediately.
func (e *Engine) Complete(ep Generation, snap *snapshot.Snapshot, fetchErr error, now time.Time) Outcome {
	if !e.epoch.Live(ep) {
		e.log.Warn("stale fetch result discarded", "epoch", uint64(ep))
		return Outcome{Stale: true}
	}
	e.fetching = false

	if fetchErr != nil {
		e.symbol = ""
		e.rendered = false
		e.clock.Stop()
		e.log.Warn("fetch failed", "error", fetchErr)
		return Outcome{Message: TransportMessage, Clear: true}
	}

	e.rendered = true
	fields := MapFields(snap)
	out := Outcome{Fields: &fields}
	if snap != nil && snap.CacheAge != nil {
		out.ClockGen = e.clock.Restart(int(*snap.CacheAge), now)
	} else {
		e.clock.Stop()
	}
	e.log.Info("snapshot rendered", "symbol", e.symbol,
		"class", fields.Strategy, "confidence", fields.Confidence)
	return out
}

// Clock exposes the staleness clock for age reads and tick liveness checks.
func (e *Engine) Clock() *Clock { return &e.clock }

// Fetching reports whether a request is in flight.
func (e *Engine) Fetching() bool { return e.fetching }

// CurrentSymbol returns the symbol on screen, or "" after a reset.
func (e *Engine) CurrentSymbol() string { return e.symbol }
