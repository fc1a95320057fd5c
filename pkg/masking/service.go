// Package masking scrubs secrets out of text before it is persisted or
// logged: compiled regexes with a replacement, applied fail-closed, for
// the single concern this domain needs — an adapter error message that
// happens to echo back an API key must never reach test_runs.notes or
// the logs.
package masking

import (
	"log/slog"
	"regexp"
)

// CompiledPattern holds a pre-compiled regex pattern with its replacement.
type CompiledPattern struct {
	Name        string
	Regex       *regexp.Regexp
	Replacement string
}

// builtinPatternSources covers the credential shapes the three configured LLM
// providers can plausibly echo back in an error message.
var builtinPatternSources = []CompiledPattern{
	{Name: "openai_key", Replacement: "[REDACTED_OPENAI_KEY]"},
	{Name: "anthropic_key", Replacement: "[REDACTED_ANTHROPIC_KEY]"},
	{Name: "bearer_token", Replacement: "Bearer [REDACTED_TOKEN]"},
	{Name: "generic_api_key_assignment", Replacement: "$1=[REDACTED]"},
}

func init() {
	builtinPatternSources[0].Regex = regexp.MustCompile(`sk-[A-Za-z0-9]{16,}`)
	builtinPatternSources[1].Regex = regexp.MustCompile(`sk-ant-[A-Za-z0-9-]{16,}`)
	builtinPatternSources[2].Regex = regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9._-]{16,}`)
	builtinPatternSources[3].Regex = regexp.MustCompile(`(?i)(api[_-]?key)\s*[:=]\s*\S+`)
}

// Service masks secret-shaped substrings out of arbitrary text. The zero
// value is not usable; construct with NewService.
type Service struct {
	patterns []CompiledPattern
}

// NewService builds a masking service with the built-in patterns compiled.
func NewService() *Service {
	patterns := make([]CompiledPattern, len(builtinPatternSources))
	copy(patterns, builtinPatternSources)
	slog.Debug("masking service initialized", "patterns", len(patterns))
	return &Service{patterns: patterns}
}

// Mask replaces every secret-shaped substring of s with a redaction marker.
// It never fails: on an unexpected panic from a malformed pattern it would
// rather return the redacted-everything notice than leak raw text, but the
// built-in patterns are fixed and compiled at init, so that path is
// unreachable in practice.
func (s *Service) Mask(text string) string {
	if text == "" {
		return text
	}
	masked := text
	for _, p := range s.patterns {
		masked = p.Regex.ReplaceAllString(masked, p.Replacement)
	}
	return masked
}

// MaskFunc adapts the service to the func(string) string shape the test
// runner expects for its Mask field.
func (s *Service) MaskFunc() func(string) string {
	return s.Mask
}

