package hud

import (
	"testing"

	"midas/internal/snapshot"
)

func fptr(v float64) *float64 { return &v }
func bptr(v bool) *bool       { return &v }

func TestMapFieldsFullSnapshot(t *testing.T) {
	snap := &snapshot.Snapshot{
		Quote: snapshot.Quote{Last: fptr(101.23), Bid: fptr(101.00), Ask: fptr(101.50)},
		Features: snapshot.Features{
			R1m:        fptr(0.004),
			R5m:        fptr(-0.0012),
			AboveSMA20: bptr(true),
			SentMean:   fptr(0.12),
			SentStd:    fptr(0.05),
		},
		Recommendation: snapshot.Recommendation{Class: "DEBIT_CALL", Confidence: fptr(0.7)},
		OneLiner: snapshot.OneLiner{
			Text: "DEBIT_CALL: breakout forming. Conf 70%. ([1][2])",
			Refs: []snapshot.Ref{{N: 1, URL: "https://a.example"}, {N: 2, URL: "https://b.example"}},
		},
	}

	f := MapFields(snap)

	if f.Last != "101.23" {
		t.Errorf("Last = %q, want 101.23", f.Last)
	}
	if f.BidAsk != "101.00/101.50" {
		t.Errorf("BidAsk = %q, want 101.00/101.50", f.BidAsk)
	}
	if f.R1m != "+0.40%" || f.R1mSign != SignPositive {
		t.Errorf("R1m = %q sign %d, want +0.40%% positive", f.R1m, f.R1mSign)
	}
	if f.R5m != "-0.12%" || f.R5mSign != SignNegative {
		t.Errorf("R5m = %q sign %d, want -0.12%% negative", f.R5m, f.R5mSign)
	}
	if f.Trend != "▲" || f.TrendSign != SignPositive {
		t.Errorf("Trend = %q sign %d, want ▲ positive", f.Trend, f.TrendSign)
	}
	if f.SentMean != "+0.12" {
		t.Errorf("SentMean = %q, want +0.12", f.SentMean)
	}
	if f.SentStd != "±0.05" {
		t.Errorf("SentStd = %q, want ±0.05", f.SentStd)
	}
	if f.Strategy != "DEBIT_CALL" {
		t.Errorf("Strategy = %q, want DEBIT_CALL", f.Strategy)
	}
	if f.Confidence != "70%" || f.ConfidencePct != 70 {
		t.Errorf("Confidence = %q (%d), want 70%% (70)", f.Confidence, f.ConfidencePct)
	}
	if f.Narrative != "Breakout forming." {
		t.Errorf("Narrative = %q, want %q", f.Narrative, "Breakout forming.")
	}
	if len(f.Refs) != 2 || f.Refs[0].URL != "https://a.example" {
		t.Errorf("Refs = %+v", f.Refs)
	}
}

func TestMapFieldsEmptySnapshot(t *testing.T) {
	f := MapFields(&snapshot.Snapshot{})

	for name, got := range map[string]string{
		"Last":       f.Last,
		"BidAsk":     f.BidAsk,
		"R1m":        f.R1m,
		"R5m":        f.R5m,
		"Trend":      f.Trend,
		"SentMean":   f.SentMean,
		"SentStd":    f.SentStd,
		"Strategy":   f.Strategy,
		"Confidence": f.Confidence,
		"Narrative":  f.Narrative,
	} {
		if got != Placeholder {
			t.Errorf("%s = %q, want placeholder", name, got)
		}
	}
	if f.ConfidencePct != -1 {
		t.Errorf("ConfidencePct = %d, want -1", f.ConfidencePct)
	}
}

func TestMapFieldsNilSnapshot(t *testing.T) {
	f := MapFields(nil)
	if f.Last != Placeholder || f.Narrative != Placeholder {
		t.Error("nil snapshot must map to all placeholders")
	}
}

func TestMapFieldsPerFieldIndependence(t *testing.T) {
	// A malformed quote must not take down the rest of the panel.
	snap := &snapshot.Snapshot{
		Quote:          snapshot.Quote{Last: fptr(-3)},               // non-positive
		Features:       snapshot.Features{R5m: fptr(0)},              // zero is neutral
		Recommendation: snapshot.Recommendation{Class: "MYSTERY_BOX"}, // unknown category
	}

	f := MapFields(snap)
	if f.Last != Placeholder {
		t.Errorf("Last = %q, want placeholder for non-positive price", f.Last)
	}
	if f.R5m != "+0.00%" || f.R5mSign != SignNeutral {
		t.Errorf("R5m = %q sign %d, want +0.00%% neutral", f.R5m, f.R5mSign)
	}
	if f.Strategy != "MYSTERY_BOX" {
		t.Errorf("Strategy = %q, want raw class shown", f.Strategy)
	}
	if f.StrategyClass != StrategyUnknown {
		t.Error("unknown class must map to StrategyUnknown")
	}
	if f.StrategyClass.Description() != "Review setup" {
		t.Errorf("unknown class description = %q", f.StrategyClass.Description())
	}
}

func TestMapFieldsBidAskRequiresSpread(t *testing.T) {
	tests := []struct {
		name     string
		bid, ask *float64
		want     string
	}{
		{"valid spread", fptr(100), fptr(100.5), "100.00/100.50"},
		{"inverted", fptr(101), fptr(100), Placeholder},
		{"equal", fptr(100), fptr(100), Placeholder},
		{"missing bid", nil, fptr(100), Placeholder},
		{"missing ask", fptr(100), nil, Placeholder},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := MapFields(&snapshot.Snapshot{Quote: snapshot.Quote{Bid: tt.bid, Ask: tt.ask}})
			if f.BidAsk != tt.want {
				t.Errorf("BidAsk = %q, want %q", f.BidAsk, tt.want)
			}
		})
	}
}

func TestMapFieldsConfidenceClamped(t *testing.T) {
	tests := []struct {
		conf    float64
		wantPct int
	}{
		{0.7, 70},
		{1.7, 100},
		{-0.2, 0},
		{0, 0},
		{1, 100},
	}
	for _, tt := range tests {
		f := MapFields(&snapshot.Snapshot{
			Recommendation: snapshot.Recommendation{Class: "NO_ACTION", Confidence: fptr(tt.conf)},
		})
		if f.ConfidencePct != tt.wantPct {
			t.Errorf("conf %v: pct = %d, want %d", tt.conf, f.ConfidencePct, tt.wantPct)
		}
	}
}

func TestMapFieldsTrendDown(t *testing.T) {
	f := MapFields(&snapshot.Snapshot{Features: snapshot.Features{AboveSMA20: bptr(false)}})
	if f.Trend != "▼" || f.TrendSign != SignNegative {
		t.Errorf("Trend = %q sign %d, want ▼ negative", f.Trend, f.TrendSign)
	}
}
