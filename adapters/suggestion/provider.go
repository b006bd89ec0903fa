// Package suggestion maps constitution categories to lifestyle guidance.
// The templates live in suggestions.yaml, embedded at build time.
package suggestion

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"sizhen/domain/core"
	"sizhen/domain/diagnosis"
)

//go:embed suggestions.yaml
var suggestionsYAML []byte

// Provider serves per-constitution guidance lines.
type Provider struct {
	byConstitution map[diagnosis.ConstitutionType][]string
}

// NewProvider parses the embedded templates.
func NewProvider() (*Provider, error) {
	return Load(suggestionsYAML)
}

// Load parses guidance templates from YAML.
func Load(data []byte) (*Provider, error) {
	var raw map[diagnosis.ConstitutionType][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse suggestion templates: %w", err)
	}
	for t := range raw {
		if !t.IsValid() {
			return nil, fmt.Errorf("suggestion templates: %w %q", core.ErrUnknownConstitution, t)
		}
	}
	return &Provider{byConstitution: raw}, nil
}

// Suggestions returns the guidance lines for a constitution, or nil when
// none are configured.
func (p *Provider) Suggestions(t diagnosis.ConstitutionType) []string {
	return p.byConstitution[t]
}
