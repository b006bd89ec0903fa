// Package tables holds the static clinical reference data the fusion engine
// runs on: per-modality diagnostic weights, element delta tables, the
// element-organ correspondence, the hot/cold lexicon, and constitution
// scoring parameters. The numbers live in rules.yaml (embedded at build
// time) so the clinical rule set can be audited and revised without touching
// the aggregation algorithm.
package tables

import (
	_ "embed"
	"fmt"
	"math"
	"sync"

	"gopkg.in/yaml.v3"

	"sizhen/domain/core"
	"sizhen/domain/diagnosis"
)

//go:embed rules.yaml
var rulesYAML []byte

// ElementDelta is one additive adjustment to the five-element profile,
// optionally tagged with an imbalance label.
type ElementDelta struct {
	Wood      float64 `yaml:"wood"`
	Fire      float64 `yaml:"fire"`
	Earth     float64 `yaml:"earth"`
	Metal     float64 `yaml:"metal"`
	Water     float64 `yaml:"water"`
	Imbalance string  `yaml:"imbalance"`
}

// Value returns the delta for one element.
func (d ElementDelta) Value(e diagnosis.Element) float64 {
	switch e {
	case diagnosis.ElementWood:
		return d.Wood
	case diagnosis.ElementFire:
		return d.Fire
	case diagnosis.ElementEarth:
		return d.Earth
	case diagnosis.ElementMetal:
		return d.Metal
	case diagnosis.ElementWater:
		return d.Water
	}
	return 0
}

// YinYangDelta is one additive adjustment to the yin/yang profile.
type YinYangDelta struct {
	Yin  float64 `yaml:"yin"`
	Yang float64 `yaml:"yang"`
}

// OrganOverride is a looking-modality override of the organ profile,
// optionally recording an anomaly label.
type OrganOverride struct {
	Deltas  map[diagnosis.Organ]float64 `yaml:"deltas"`
	Anomaly string                      `yaml:"anomaly"`
}

// ThermalLexicon holds the keyword sets for thermal-conflict detection.
type ThermalLexicon struct {
	Hot            []string `yaml:"hot"`
	Cold           []string `yaml:"cold"`
	DominanceRatio float64  `yaml:"dominance_ratio"`
}

// ElementRules holds the thresholds for the imbalance pass.
type ElementRules struct {
	ExcessThreshold    float64 `yaml:"excess_threshold"`
	DeficientThreshold float64 `yaml:"deficient_threshold"`
	AdjacencyRatio     float64 `yaml:"adjacency_ratio"`
}

// ConstitutionScoring holds the classifier's scoring parameters.
type ConstitutionScoring struct {
	BalancedBonus    float64            `yaml:"balanced_bonus"`
	ElementTolerance float64            `yaml:"element_tolerance"`
	DeficiencyTiers  map[string]float64 `yaml:"deficiency_tiers"`
}

// FieldDeltas maps categorical field name -> coded value -> delta.
type FieldDeltas[T any] map[string]map[string]T

// RuleSet is one versioned revision of the complete clinical rule data.
type RuleSet struct {
	Version           string                                           `yaml:"version"`
	DiagnosticWeights map[diagnosis.Modality]float64                   `yaml:"diagnostic_weights"`
	ElementOrgans     map[diagnosis.Element][]diagnosis.Organ          `yaml:"element_organs"`
	Thermal           ThermalLexicon                                   `yaml:"thermal_lexicon"`
	ElementDeltas     map[diagnosis.Modality]FieldDeltas[ElementDelta] `yaml:"element_deltas"`
	YinYangDeltas     map[diagnosis.Modality]FieldDeltas[YinYangDelta] `yaml:"yin_yang_deltas"`
	OrganOverrides    FieldDeltas[OrganOverride]                       `yaml:"organ_overrides"`
	Elements          ElementRules                                     `yaml:"element_rules"`
	Scoring           ConstitutionScoring                              `yaml:"constitution_scoring"`
}

var (
	defaultRules *RuleSet
	defaultOnce  sync.Once
)

// Default returns the embedded rule set, parsed once and safe for
// concurrent callers. The embedded tables are validated at build of the
// default set; a broken rules.yaml is a programming error, not a runtime
// condition.
func Default() *RuleSet {
	defaultOnce.Do(func() {
		rs, err := Load(rulesYAML)
		if err != nil {
			panic(fmt.Sprintf("load embedded rules.yaml: %v", err))
		}
		defaultRules = rs
	})
	return defaultRules
}

// Load parses and validates a rule set from YAML, for callers that supply an
// externally reviewed revision instead of the embedded default.
func Load(data []byte) (*RuleSet, error) {
	var rs RuleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("parse rule tables: %w", err)
	}
	if err := rs.Validate(); err != nil {
		return nil, err
	}
	return &rs, nil
}

// Weight returns the configured diagnostic weight for a modality.
func (rs *RuleSet) Weight(m diagnosis.Modality) float64 {
	return rs.DiagnosticWeights[m]
}

// Validate checks structural soundness of the rule set.
func (rs *RuleSet) Validate() error {
	if rs.Version == "" {
		return core.NewRuleTableError("version", "missing")
	}
	sum := 0.0
	for _, m := range diagnosis.Modalities() {
		w, ok := rs.DiagnosticWeights[m]
		if !ok {
			return core.NewRuleTableError("diagnostic_weights", fmt.Sprintf("missing modality %s", m))
		}
		if w < 0 || w > 1 {
			return core.NewRuleTableError("diagnostic_weights", fmt.Sprintf("weight for %s outside [0,1]", m))
		}
		sum += w
	}
	if math.Abs(sum-1.0) > 1e-9 {
		return core.NewRuleTableError("diagnostic_weights", fmt.Sprintf("weights sum to %g, want 1.0", sum))
	}
	for _, e := range diagnosis.ElementOrder() {
		organs, ok := rs.ElementOrgans[e]
		if !ok || len(organs) == 0 {
			return core.NewRuleTableError("element_organs", fmt.Sprintf("missing element %s", e))
		}
	}
	if len(rs.Thermal.Hot) == 0 || len(rs.Thermal.Cold) == 0 {
		return core.NewRuleTableError("thermal_lexicon", "hot and cold keyword sets must be non-empty")
	}
	if rs.Thermal.DominanceRatio <= 1.0 {
		return core.NewRuleTableError("thermal_lexicon", "dominance_ratio must exceed 1.0")
	}
	for m := range rs.ElementDeltas {
		if !m.IsValid() {
			return core.NewRuleTableError("element_deltas", fmt.Sprintf("unknown modality %s", m))
		}
	}
	for m := range rs.YinYangDeltas {
		if !m.IsValid() {
			return core.NewRuleTableError("yin_yang_deltas", fmt.Sprintf("unknown modality %s", m))
		}
	}
	if rs.Elements.AdjacencyRatio <= 1.0 {
		return core.NewRuleTableError("element_rules", "adjacency_ratio must exceed 1.0")
	}
	if rs.Elements.ExcessThreshold <= rs.Elements.DeficientThreshold {
		return core.NewRuleTableError("element_rules", "excess_threshold must exceed deficient_threshold")
	}
	for _, tier := range []string{"slight", "moderate", "severe"} {
		if _, ok := rs.Scoring.DeficiencyTiers[tier]; !ok {
			return core.NewRuleTableError("constitution_scoring", fmt.Sprintf("missing deficiency tier %s", tier))
		}
	}
	return nil
}
