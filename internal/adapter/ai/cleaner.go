package ai

import (
	"strings"
)

// CleanJSONResponse strips markdown fences and surrounding prose from an LLM
// response and returns the first balanced JSON object it contains. The input
// is returned unchanged when no object boundary is found; the caller's JSON
// decode produces the real error.
func CleanJSONResponse(response string) string {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	response = strings.TrimSpace(response)
	return extractJSONObject(response)
}

// extractJSONObject returns the substring from the first '{' to its matching
// closing brace, brace-counting with string-literal awareness.
func extractJSONObject(s string) string {
	start := strings.Index(s, "{")
	if start == -1 {
		return s
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return s
}
