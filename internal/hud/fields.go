package hud

import (
	"fmt"
	"math"

	"midas/internal/snapshot"
)

// Placeholder is the glyph every field independently degrades to when its
// value is absent or malformed.
const Placeholder = "—"

// SignClass is the categorical styling derived from a numeric sign.
// Zero counts as neutral.
type SignClass int

const (
	SignNeutral SignClass = iota
	SignPositive
	SignNegative
)

// Fields is the deterministic slot-by-slot projection of a Snapshot. No
// field's derivation depends on another field being present.
type Fields struct {
	Last   string
	BidAsk string

	R1m     string
	R1mSign SignClass
	R5m     string
	R5mSign SignClass

	Trend     string
	TrendSign SignClass

	SentMean string
	SentStd  string

	Strategy      string
	StrategyClass Strategy

	// ConfidencePct is integer-rounded and clamped to [0,100] for the
	// width-proportional bar; -1 when confidence is absent.
	ConfidencePct int
	Confidence    string

	// Narrative is the cleaned full text, source of truth for fitting.
	// Refs render as separate clickable markers after the fitted text.
	Narrative string
	Refs      []snapshot.Ref
}

// MapFields turns a snapshot into display strings. Each mapping absorbs its
// own malformed input; nothing here can fail.
func MapFields(s *snapshot.Snapshot) Fields {
	f := Fields{
		Last:          Placeholder,
		BidAsk:        Placeholder,
		R1m:           Placeholder,
		R5m:           Placeholder,
		Trend:         Placeholder,
		SentMean:      Placeholder,
		SentStd:       Placeholder,
		Strategy:      Placeholder,
		Confidence:    Placeholder,
		ConfidencePct: -1,
		Narrative:     Placeholder,
	}
	if s == nil {
		return f
	}

	if last := s.Quote.Last; last != nil && *last > 0 {
		f.Last = fmt.Sprintf("%.2f", *last)
	}
	if bid, ask := s.Quote.Bid, s.Quote.Ask; bid != nil && ask != nil && *ask > *bid {
		f.BidAsk = fmt.Sprintf("%.2f/%.2f", *bid, *ask)
	}

	f.R1m, f.R1mSign = formatReturn(s.Features.R1m)
	f.R5m, f.R5mSign = formatReturn(s.Features.R5m)

	if up := s.Features.AboveSMA20; up != nil {
		if *up {
			f.Trend, f.TrendSign = "▲", SignPositive
		} else {
			f.Trend, f.TrendSign = "▼", SignNegative
		}
	}

	if mean := s.Features.SentMean; mean != nil {
		f.SentMean = fmt.Sprintf("%+.2f", *mean)
	}
	if std := s.Features.SentStd; std != nil {
		f.SentStd = fmt.Sprintf("±%.2f", *std)
	}

	f.StrategyClass = StrategyFromClass(s.Recommendation.Class)
	if s.Recommendation.Class != "" {
		f.Strategy = s.Recommendation.Class
	}
	if conf := s.Recommendation.Confidence; conf != nil {
		pct := int(math.Round(*conf * 100))
		if pct < 0 {
			pct = 0
		}
		if pct > 100 {
			pct = 100
		}
		f.ConfidencePct = pct
		f.Confidence = fmt.Sprintf("%d%%", pct)
	}

	if cleaned := CleanOneLiner(s.OneLiner.Text, s.Recommendation.Class); cleaned != "" {
		f.Narrative = cleaned
	}
	f.Refs = s.OneLiner.Refs

	return f
}

// formatReturn renders a fractional return as a signed percentage with an
// explicit plus for non-negative values.
func formatReturn(r *float64) (string, SignClass) {
	if r == nil {
		return Placeholder, SignNeutral
	}
	return fmt.Sprintf("%+.2f%%", *r*100), signOf(*r)
}

func signOf(v float64) SignClass {
	switch {
	case v > 0:
		return SignPositive
	case v < 0:
		return SignNegative
	default:
		return SignNeutral
	}
}
