package hud

import (
	"errors"
	"regexp"
	"strings"
)

// Validation messages shown inline next to the ticker input.
var (
	ErrEmptyTicker  = errors.New("Please enter a ticker")
	ErrTickerFormat = errors.New("Ticker must be 1-5 letters, e.g. AAPL")
)

var tickerRE = regexp.MustCompile(`^[A-Z]{1,5}$`)

// ValidateTicker normalizes raw user input into a canonical symbol:
// trimmed and uppercased, exactly 1-5 Latin letters. It is a pure function
// with no side effects.
func ValidateTicker(raw string) (string, error) {
	sym := strings.ToUpper(strings.TrimSpace(raw))
	if sym == "" {
		return "", ErrEmptyTicker
	}
	if !tickerRE.MatchString(sym) {
		return "", ErrTickerFormat
	}
	return sym, nil
}
