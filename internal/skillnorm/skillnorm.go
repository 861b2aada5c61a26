// Package skillnorm canonicalizes free-text skill names and computes
// set-overlap match scores between skill lists. "Node", "NodeJS", "node.js"
// and "node js" all normalize to the same canonical key.
package skillnorm

import (
	_ "embed"
	"fmt"
	"math"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed aliases.yaml
var aliasesYAML []byte

// aliasTable maps every cleaned variant (including the canonical key itself)
// to its canonical key. Built once at init, read-only afterwards.
var aliasTable map[string]string

type aliasFile struct {
	Aliases map[string][]string `yaml:"aliases"`
}

func init() {
	var f aliasFile
	if err := yaml.Unmarshal(aliasesYAML, &f); err != nil {
		panic(fmt.Sprintf("skillnorm: embedded alias table invalid: %v", err))
	}
	aliasTable = make(map[string]string, len(f.Aliases)*3)
	for canonical, variants := range f.Aliases {
		key := clean(canonical)
		aliasTable[key] = key
		for _, v := range variants {
			aliasTable[clean(v)] = key
		}
	}
}

// clean lower-cases, strips punctuation except '.', '+' and '#', and
// collapses runs of whitespace to single spaces.
func clean(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '+' || r == '#':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Normalize returns the canonical key for a skill token. Unknown skills
// normalize to their cleaned form; normalization never fails.
func Normalize(skill string) string {
	cleaned := clean(skill)
	if cleaned == "" {
		return ""
	}
	if canonical, ok := aliasTable[cleaned]; ok {
		return canonical
	}
	// Retry without a trailing .js/js suffix ("vue.js" -> "vue").
	for _, suffix := range []string{".js", "js"} {
		if trimmed, ok := strings.CutSuffix(cleaned, suffix); ok && trimmed != "" {
			trimmed = strings.TrimSpace(trimmed)
			if canonical, ok := aliasTable[trimmed]; ok {
				return canonical
			}
		}
	}
	return cleaned
}

// Match reports whether two skill tokens refer to the same skill: equal after
// normalization, one normalized form contains the other, or both map to the
// same canonical alias key.
func Match(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return true
	}
	ca, okA := aliasTable[clean(a)]
	cb, okB := aliasTable[clean(b)]
	return okA && okB && ca == cb
}

// MatchResult is the outcome of matching a required skill list against a
// candidate skill list.
type MatchResult struct {
	Score   int      `json:"score"`
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
}

// MatchSet scores how many required skills the candidate list covers.
// An empty required list scores 100; an empty candidate list against a
// non-empty required list scores 0 with every required skill missing.
func MatchSet(required, candidate []string) MatchResult {
	res := MatchResult{Matched: []string{}, Missing: []string{}}
	if len(required) == 0 {
		res.Score = 100
		return res
	}
	for _, req := range required {
		found := false
		for _, cand := range candidate {
			if Match(req, cand) {
				found = true
				break
			}
		}
		if found {
			res.Matched = append(res.Matched, req)
		} else {
			res.Missing = append(res.Missing, req)
		}
	}
	res.Score = int(math.Round(100 * float64(len(res.Matched)) / float64(len(required))))
	return res
}
