// Package normalize folds raw player-submitted answers into canonical form
// so duplicate and near-duplicate submissions compare equal.
package normalize

import (
	"encoding/json"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var lower = cases.Lower(language.Und)

// Answer trims, lowercases, and collapses internal whitespace.
// Returns "" for blank input; callers skip empty answers.
func Answer(s string) string {
	folded := lower.String(strings.TrimSpace(s))
	if folded == "" {
		return ""
	}
	return strings.Join(strings.Fields(folded), " ")
}

// AnswerList parses a JSON array of strings, normalizing each element and
// dropping blanks. Malformed input yields an empty slice rather than an
// error: a single bad event must never abort an aggregation run.
func AnswerList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var parsed []string
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil
	}

	out := make([]string, 0, len(parsed))
	for _, a := range parsed {
		if n := Answer(a); n != "" {
			out = append(out, n)
		}
	}
	return out
}
