// Package textx provides small text utilities used across the project.
package textx

import (
	"strings"
)

// SanitizeText removes control characters except tab/newline/CR and trims spaces.
func SanitizeText(s string) string {
	// strip control chars outside tab/newline/carriage return
	var b strings.Builder
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' || (r >= 32 && r != 127) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// Truncate cuts s to at most n bytes, appending an ellipsis when it cuts.
func Truncate(s string, n int) string {
	if n <= 3 || len(s) <= n {
		if len(s) <= n {
			return s
		}
		return s[:n]
	}
	return s[:n-3] + "..."
}
