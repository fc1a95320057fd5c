// Package entity extracts candidate company names and URLs from free-form
// AI answer text for competitor detection.
package entity

import (
	"regexp"
	"strings"

	"github.com/eurekai25/prospecting-engine/pkg/normalize"
)

// Kind distinguishes the two entity types the extractor recognizes.
type Kind string

const (
	KindURL     Kind = "url"
	KindCompany Kind = "company"
)

// Entity is a single extracted candidate, either a URL (with its domain)
// or a capitalized-phrase company-name candidate.
type Entity struct {
	Type   Kind   `json:"type"`
	Value  string `json:"value"`
	Domain string `json:"domain,omitempty"`
}

var urlRe = regexp.MustCompile(`https?://\S+`)

// capitalizedPhraseRe matches runs of 1-4 capitalized words, Unicode-aware
// so accented majuscules (É, À, ...) count as uppercase starts.
var capitalizedPhraseRe = regexp.MustCompile(`(?:\p{Lu}\p{Ll}+\s?){1,4}`)

// Extract scans text for URLs and capitalized-phrase company candidates,
// deduplicating case-insensitively on Value while preserving first-seen
// order. Trailing sentence punctuation is trimmed from each URL.
func Extract(text string) []Entity {
	seen := make(map[string]bool)
	var out []Entity

	for _, url := range urlRe.FindAllString(text, -1) {
		url = strings.TrimRight(url, ".,;:!?)")
		key := strings.ToLower(url)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, Entity{Type: KindURL, Value: url, Domain: normalize.Domain(url)})
	}

	for _, phrase := range capitalizedPhraseRe.FindAllString(text, -1) {
		trimmed := strings.TrimSpace(phrase)
		if len(trimmed) <= 3 {
			continue
		}
		key := strings.ToLower(trimmed)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, Entity{Type: KindCompany, Value: trimmed})
	}

	return out
}

// Competitors filters entities down to those that do not refer to the
// target prospect: a company entity is excluded when its normalized value
// contains the normalized target name, and any entity (company or url) is
// excluded when its lowercased value contains the target's domain.
func Competitors(entities []Entity, targetName, targetWebsite string) []Entity {
	normTarget := normalize.Name(targetName)
	targetDomain := strings.ToLower(normalize.Domain(targetWebsite))

	var out []Entity
	for _, e := range entities {
		normValue := normalize.Name(e.Value)
		if normTarget != "" && strings.Contains(normValue, normTarget) {
			continue
		}
		if targetDomain != "" && strings.Contains(strings.ToLower(e.Value), targetDomain) {
			continue
		}
		out = append(out, e)
	}
	return out
}
