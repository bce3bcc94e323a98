package metrics

import (
	"strings"

	"github.com/agokrani/deepeval/pkg/core"
)

// threshold resolves a configured minimum score. Non-positive means
// unset and falls back to the engine default, same contract as
// core.MetricFunc.
func threshold(min float64) float64 {
	if min <= 0 {
		return core.DefaultThreshold
	}
	return min
}

func normalizeText(input string, caseSensitive bool, normalizeWhitespace bool) string {
	text := input
	if normalizeWhitespace {
		text = strings.Join(strings.Fields(text), " ")
	} else {
		text = strings.TrimSpace(text)
	}
	if !caseSensitive {
		text = strings.ToLower(text)
	}
	return text
}

// tokenize lowercases and splits on non-alphanumeric runes.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		isDigit := r >= '0' && r <= '9'
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		return !isDigit && !isLetter
	})
}

func tokenSet(texts ...string) map[string]bool {
	set := make(map[string]bool)
	for _, text := range texts {
		for _, token := range tokenize(text) {
			set[token] = true
		}
	}
	return set
}

// overlapRatio is the fraction of tokens in text covered by the
// reference set. An empty token list scores 0.
func overlapRatio(text string, reference map[string]bool) float64 {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return 0
	}
	covered := 0
	for _, token := range tokens {
		if reference[token] {
			covered++
		}
	}
	return float64(covered) / float64(len(tokens))
}
