// Package normalize provides accent-folding, legal-suffix stripping and
// domain extraction for business names and URLs, shared by the matcher
// and entity extractor.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// legalSuffixes are the corporate-form tokens stripped from business names
// before matching, mirroring the French/European legal forms the target
// market actually uses.
var legalSuffixes = regexp.MustCompile(`(?i)\b(sarl|sas|eurl|srl|snc|sa|spa|ltd|llc|gmbh|inc|cie|co|groupe|group|et fils|et associes|&)\b`)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
var whitespace = regexp.MustCompile(`\s+`)

var accentFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// StripAccents removes combining diacritical marks via Unicode NFD
// decomposition, e.g. "Électricité" -> "Electricite".
func StripAccents(s string) string {
	out, _, err := transform.String(accentFolder, s)
	if err != nil {
		return s
	}
	return out
}

// Name lowercases, strips accents, removes legal-form suffixes, collapses
// non-alphanumeric runs to a single space and squeezes whitespace. Empty
// or missing input yields the empty string.
func Name(name string) string {
	if name == "" {
		return ""
	}
	s := strings.ToLower(name)
	s = StripAccents(s)
	s = legalSuffixes.ReplaceAllString(s, " ")
	s = nonAlphanumeric.ReplaceAllString(s, " ")
	s = whitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Domain strips the scheme and a leading "www.", truncates at the first
// "/" or "?", and returns the second-level label of the remaining host
// (or the whole host when it has a single label). Empty or missing input
// yields the empty string.
func Domain(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	host := rawURL
	for _, scheme := range []string{"https://", "http://"} {
		if strings.HasPrefix(host, scheme) {
			host = host[len(scheme):]
			break
		}
	}
	host = strings.TrimPrefix(host, "www.")
	if idx := strings.IndexAny(host, "/?"); idx >= 0 {
		host = host[:idx]
	}
	labels := strings.Split(host, ".")
	if len(labels) < 2 {
		return host
	}
	return labels[len(labels)-2]
}

// Tokens splits a normalized name into its significant (length > 2) words.
func Tokens(normalized string) []string {
	if normalized == "" {
		return nil
	}
	fields := strings.Fields(normalized)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) > 2 {
			out = append(out, f)
		}
	}
	return out
}
