// Package querybank maps a profession to its five canonical AI-assistant
// queries, loaded from an embedded YAML file following an "embed a
// built-in, allow override" pattern.
package querybank

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/eurekai25/prospecting-engine/pkg/config"
)

//go:embed templates.yaml
var builtinFS embed.FS

// QueriesPerProfession is the fixed count of canonical queries every
// profession must resolve to.
const QueriesPerProfession = 5

// Bank is a deterministic map of profession -> ordered query templates.
// The zero value is not usable; construct with Load or New.
type Bank struct {
	templates map[string][]string
}

// Load reads the embedded templates.yaml, merges in any overrides (e.g.
// from an operator-supplied YAML file), and validates that every bank has
// exactly QueriesPerProfession entries, including "default".
func Load(overrides map[string][]string) (*Bank, error) {
	data, err := builtinFS.ReadFile("templates.yaml")
	if err != nil {
		return nil, fmt.Errorf("querybank: reading embedded templates: %w", err)
	}
	var builtin map[string][]string
	if err := yaml.Unmarshal(data, &builtin); err != nil {
		return nil, fmt.Errorf("querybank: parsing embedded templates: %w", err)
	}
	return New(builtin, overrides)
}

// LoadOverridesFile reads an operator-supplied YAML overrides file, applying
// shell-style ${VAR} expansion before parsing so city or profession strings
// can be injected from the environment without an extra templating layer.
// An empty path is not an error; it returns a nil map, meaning "no overrides".
func LoadOverridesFile(path string) (map[string][]string, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("querybank: reading overrides file %s: %w", path, err)
	}
	expanded := config.ExpandEnv(raw)
	var overrides map[string][]string
	if err := yaml.Unmarshal(expanded, &overrides); err != nil {
		return nil, fmt.Errorf("querybank: parsing overrides file %s: %w", path, err)
	}
	return overrides, nil
}

// New builds a Bank from a builtin set merged with overrides (overrides
// win on a per-profession basis), validating every entry's shape.
func New(builtin, overrides map[string][]string) (*Bank, error) {
	merged := make(map[string][]string, len(builtin)+len(overrides))
	for profession, templates := range builtin {
		merged[profession] = templates
	}
	for profession, templates := range overrides {
		merged[profession] = templates
	}
	if _, ok := merged["default"]; !ok {
		return nil, fmt.Errorf("querybank: no \"default\" bank defined")
	}
	for profession, templates := range merged {
		if len(templates) != QueriesPerProfession {
			return nil, fmt.Errorf("querybank: profession %q has %d templates, want %d",
				profession, len(templates), QueriesPerProfession)
		}
	}
	return &Bank{templates: merged}, nil
}

// QueriesFor substitutes {profession} and {city} into the bank entry for
// profession (case-insensitive lookup), falling back to "default" for
// unknown professions. Always returns exactly QueriesPerProfession strings.
func (b *Bank) QueriesFor(profession, city string) []string {
	templates, ok := b.templates[strings.ToLower(profession)]
	if !ok {
		templates = b.templates["default"]
	}
	out := make([]string, len(templates))
	for i, t := range templates {
		t = strings.ReplaceAll(t, "{profession}", profession)
		t = strings.ReplaceAll(t, "{city}", city)
		out[i] = t
	}
	return out
}
