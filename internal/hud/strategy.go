package hud

import "strings"

// Strategy is the closed set of recommendation categories the upstream
// recommender emits. Anything else maps to StrategyUnknown, which still
// renders with a generic description.
type Strategy int

const (
	StrategyUnknown Strategy = iota
	StrategyIronCondor
	StrategyDebitCall
	StrategyDebitPut
	StrategyCoveredCall
	StrategyNoAction
)

// StrategyFromClass maps a payload class string to a Strategy.
func StrategyFromClass(class string) Strategy {
	switch strings.ToUpper(strings.TrimSpace(class)) {
	case "IRON_CONDOR":
		return StrategyIronCondor
	case "DEBIT_CALL":
		return StrategyDebitCall
	case "DEBIT_PUT":
		return StrategyDebitPut
	case "COVERED_CALL":
		return StrategyCoveredCall
	case "NO_ACTION":
		return StrategyNoAction
	default:
		return StrategyUnknown
	}
}

// Description returns the fixed hover description for the category.
func (s Strategy) Description() string {
	switch s {
	case StrategyIronCondor:
		return "Range-bound, IV watch"
	case StrategyDebitCall:
		return "Bullish, defined risk"
	case StrategyDebitPut:
		return "Bearish, defined risk"
	case StrategyCoveredCall:
		return "Income; upside capped"
	case StrategyNoAction:
		return "Signal unclear"
	default:
		return "Review setup"
	}
}
