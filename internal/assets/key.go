package assets

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeKey canonicalizes a display name or query into the asset key
// alphabet: lower-case, every rune outside [a-z0-9] becomes '_', and runs of
// '_' collapse into one.
//
// Every component that derives keys must go through this function; a local
// variant silently breaks matching against the table.
func NormalizeKey(text string) string {
	if text == "" {
		return ""
	}
	// A Caser carries state, so one is built per call.
	low := cases.Lower(language.Und).String(text)

	var b strings.Builder
	b.Grow(len(low))
	prevUnderscore := false
	for _, r := range low {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			prevUnderscore = false
			continue
		}
		if !prevUnderscore {
			b.WriteByte('_')
			prevUnderscore = true
		}
	}
	return b.String()
}

// IsBlankKey reports whether key carries no [a-z0-9] character at all.
// Such keys are substrings of nearly every table key.
func IsBlankKey(key string) bool {
	return strings.Trim(key, "_") == ""
}
