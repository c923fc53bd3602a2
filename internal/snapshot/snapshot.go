// Package snapshot models the gateway payload for one ticker. Every field
// is independently optional: a missing, wrong-typed, or non-finite value
// decodes to an absent field instead of failing the whole payload.
package snapshot

import (
	"encoding/json"
	"fmt"
	"math"
)

// Snapshot is one fetched payload describing quote, features, recommendation,
// and narrative for a ticker at a point in time.
type Snapshot struct {
	Ticker         string
	Quote          Quote
	Features       Features
	Recommendation Recommendation
	OneLiner       OneLiner

	// CacheAge is the age of the snapshot in seconds when it left the
	// gateway, or nil when the gateway could not compute it.
	CacheAge *float64
}

// Quote holds the latest prices. Fields are nil when absent or malformed.
type Quote struct {
	Last *float64
	Bid  *float64
	Ask  *float64
}

// Features holds the short-horizon market features.
type Features struct {
	R1m        *float64
	R5m        *float64
	AboveSMA20 *bool
	SentMean   *float64
	SentStd    *float64
}

// Recommendation holds the strategy classification and its confidence.
type Recommendation struct {
	Class      string
	Confidence *float64
}

// OneLiner is the generated narrative sentence with its numbered source
// references.
type OneLiner struct {
	Text string
	Refs []Ref
}

// Ref maps a reference marker number to its source URL.
type Ref struct {
	N   int
	URL string
}

// Parse decodes a gateway response body. It returns an error only when the
// body is not valid JSON at all; individual fields degrade to absent.
func Parse(data []byte) (*Snapshot, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	return FromMap(raw), nil
}

// FromMap builds a Snapshot from an untyped payload map.
func FromMap(raw map[string]any) *Snapshot {
	s := &Snapshot{}
	s.Ticker, _ = asString(raw["ticker"])

	if q := asMap(raw["quote"]); q != nil {
		s.Quote.Last = numField(q, "last")
		s.Quote.Bid = numField(q, "bid")
		s.Quote.Ask = numField(q, "ask")
	}

	if f := asMap(raw["features"]); f != nil {
		s.Features.R1m = numField(f, "r_1m")
		s.Features.R5m = numField(f, "r_5m")
		s.Features.SentMean = numField(f, "sent_mean")
		s.Features.SentStd = numField(f, "sent_std")
		if b, ok := f["above_sma20"].(bool); ok {
			s.Features.AboveSMA20 = &b
		}
	}

	if r := asMap(raw["recommendation"]); r != nil {
		s.Recommendation.Class, _ = asString(r["class"])
		s.Recommendation.Confidence = numField(r, "confidence")
	}

	if o := asMap(raw["one_liner"]); o != nil {
		s.OneLiner.Text, _ = asString(o["text"])
		s.OneLiner.Refs = parseRefs(o["refs_numbers"])
	}

	if age := numField(raw, "cache_age_seconds"); age != nil && *age >= 0 {
		s.CacheAge = age
	}

	return s
}

// parseRefs extracts the ordered reference list. Entries without a valid
// marker number are dropped; a missing URL leaves the marker non-clickable.
func parseRefs(v any) []Ref {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	var refs []Ref
	for _, item := range list {
		m := asMap(item)
		if m == nil {
			continue
		}
		n, ok := asNum(m["n"])
		if !ok || n != math.Trunc(n) || n < 1 {
			continue
		}
		url, _ := asString(m["url"])
		refs = append(refs, Ref{N: int(n), URL: url})
	}
	return refs
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// asNum accepts only finite JSON numbers.
func asNum(v any) (float64, bool) {
	f, ok := v.(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func numField(m map[string]any, key string) *float64 {
	f, ok := asNum(m[key])
	if !ok {
		return nil
	}
	return &f
}
