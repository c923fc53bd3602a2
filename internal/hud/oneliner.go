package hud

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// Trailing reference cluster of the literal form " ([1][2][3])".
	refClusterRE = regexp.MustCompile(`\s*\((?:\[\d+\])+\)\s*$`)

	// Embedded confidence mention, e.g. "Conf 62%." or "conf 62%".
	confMentionRE = regexp.MustCompile(`(?i)\bconf\s+\d+%\.?`)

	multiSpaceRE = regexp.MustCompile(`\s+`)

	spaceBeforePunctRE = regexp.MustCompile(`\s+([.,;:!?])`)
)

// CleanOneLiner normalizes the raw narrative text for display:
// the trailing reference cluster, a leading "CLASS:" prefix matching the
// current recommendation category, and any embedded confidence mention are
// stripped; whitespace is collapsed; the first alphabetic character is
// capitalized. Returns "" when nothing readable remains; the caller
// substitutes the placeholder.
//
// Reference markers are not part of the cleaned text; they render as
// separate clickable elements so truncation can never hide a link.
func CleanOneLiner(raw, class string) string {
	text := refClusterRE.ReplaceAllString(raw, "")

	if class = strings.TrimSpace(class); class != "" {
		prefix := class + ":"
		if len(text) >= len(prefix) && strings.EqualFold(text[:len(prefix)], prefix) {
			text = text[len(prefix):]
		}
	}

	text = confMentionRE.ReplaceAllString(text, "")
	text = multiSpaceRE.ReplaceAllString(text, " ")
	text = spaceBeforePunctRE.ReplaceAllString(text, "$1")
	text = strings.TrimSpace(text)

	return capitalizeFirst(text)
}

// capitalizeFirst uppercases the first letter rune, leaving any leading
// non-letter characters (quotes, digits) untouched.
func capitalizeFirst(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsLetter(r) {
			runes[i] = unicode.ToUpper(r)
			break
		}
	}
	return string(runes)
}
