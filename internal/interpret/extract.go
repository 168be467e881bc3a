// Package interpret turns normalized chat text into an Interpretation:
// a deterministic pattern extractor backed by a probabilistic intent
// classifier that is only consulted when the pattern misses.
package interpret

import (
	"regexp"
	"strings"

	"despesabot/internal/core"
)

// expensePattern matches "a run of letters, whitespace, a numeric literal"
// such as "mercado 50" or "uber 23,50". The letter class includes the
// accented characters common in Portuguese plus interior spaces, so
// "cafe da manha 12.5" yields the whole phrase as the category.
var expensePattern = regexp.MustCompile(`(?i)([a-zA-Zçãõáéíóú\s]+)\s+(\d+(?:[.,]\d{1,2})?)`)

// Extract runs the deterministic pattern over the text and, on a match,
// returns the trimmed letters run as the category and the literal as the
// amount. Only the first match counts. Pure function: same text, same
// result.
func Extract(text string) (core.Interpretation, bool) {
	m := expensePattern.FindStringSubmatch(text)
	if m == nil {
		return core.Interpretation{}, false
	}
	cents, err := core.ParseAmountToCents(m[2])
	if err != nil {
		return core.Interpretation{}, false
	}
	// The letter class admits whitespace, so "r$  50" matches with a
	// blank capture. A record needs a category; treat that as a miss.
	category := strings.TrimSpace(m[1])
	if category == "" {
		return core.Interpretation{}, false
	}
	return core.DetectedExpense(category, core.Money{Cents: cents}), true
}
