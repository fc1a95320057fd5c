// Package matcher decides whether a target business is mentioned in a
// free-form AI answer, combining exact substring, all-significant-words,
// fuzzy sliding-window and domain-substring checks.
package matcher

import (
	"strings"

	"github.com/eurekai25/prospecting-engine/pkg/normalize"
)

// Threshold is the fixed Ratcliff/Obershelp similarity required for the
// sliding-window fuzzy match. It is a build-time constant: determinism
// across test runs matters more than per-sector tuning.
const Threshold = 0.82

// Mentioned returns true iff name is considered present in text, checking
// in order:
//  1. normalized name is a substring of normalized text;
//  2. every significant (length > 2) token of normalized name appears in
//     normalized text;
//  3. some sliding window of consecutive text tokens scores >= Threshold
//     against normalized name under the Ratcliff/Obershelp ratio;
//  4. website is set, its domain has length > 2, and that domain appears
//     as a substring of the lowercased raw text.
//
// An empty name always returns false.
func Mentioned(text, name, website string) bool {
	normName := normalize.Name(name)
	if normName == "" {
		return false
	}
	normText := normalize.Name(text)

	if strings.Contains(normText, normName) {
		return true
	}

	nameTokens := normalize.Tokens(normName)
	if len(nameTokens) > 0 && allTokensPresent(nameTokens, normText) {
		return true
	}

	if slidingWindowMatch(normText, normName, nameTokens) {
		return true
	}

	if website != "" {
		domain := normalize.Domain(website)
		if len(domain) > 2 && strings.Contains(strings.ToLower(text), domain) {
			return true
		}
	}

	return false
}

func allTokensPresent(tokens []string, text string) bool {
	for _, tok := range tokens {
		if !strings.Contains(text, tok) {
			return false
		}
	}
	return true
}

// slidingWindowMatch scores every window of windowSize consecutive tokens
// of text against name, windowSize = max(len(nameTokens)+3, 5).
func slidingWindowMatch(text, name string, nameTokens []string) bool {
	textTokens := strings.Fields(text)
	if len(textTokens) == 0 {
		return false
	}
	windowSize := len(nameTokens) + 3
	if windowSize < 5 {
		windowSize = 5
	}
	if windowSize > len(textTokens) {
		windowSize = len(textTokens)
	}
	for start := 0; start+windowSize <= len(textTokens); start++ {
		window := strings.Join(textTokens[start:start+windowSize], " ")
		if ratio(window, name) >= Threshold {
			return true
		}
	}
	return false
}
