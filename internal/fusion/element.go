// Package fusion implements the four-diagnosis fusion pipeline: per-profile
// aggregators fold the supplied modality observations into element, yin/yang
// and organ profiles, a conflict pass reconciles contradictory thermal
// signatures, and a classifier plus confidence scorer produce the final
// integrated assessment.
package fusion

import (
	"fmt"
	"sort"

	"sizhen/domain/diagnosis"
	"sizhen/domain/tables"
)

// ElementAggregator folds modality observations into the five-element
// profile. All deltas are summed on the unclamped baseline; missing-data
// damping and clamping each apply exactly once, at the end.
type ElementAggregator struct {
	rules *tables.RuleSet
}

func NewElementAggregator(rules *tables.RuleSet) *ElementAggregator {
	return &ElementAggregator{rules: rules}
}

// Aggregate builds the element profile from the observation set. Folding
// walks modalities in canonical order and field names in sorted order, so
// the imbalance label sequence is stable across runs.
func (a *ElementAggregator) Aggregate(obs diagnosis.ObservationSet) diagnosis.ElementProfile {
	profile := diagnosis.NewElementProfile()

	for _, m := range diagnosis.Modalities() {
		if !obs.Populated(m) {
			continue
		}
		fieldTables := a.rules.ElementDeltas[m]
		if fieldTables == nil {
			continue
		}
		rec := obs[m]
		for _, field := range sortedFieldNames(rec.Fields) {
			value := rec.Fields[field]
			delta, ok := fieldTables[field][value]
			if !ok {
				continue
			}
			for _, e := range diagnosis.ElementOrder() {
				profile.SetValue(e, profile.Value(e)+delta.Value(e))
			}
			if delta.Imbalance != "" {
				profile.AddImbalance(delta.Imbalance)
			}
		}
	}

	dampTowardNeutral(&profile, obs.PresentCount())

	for _, e := range diagnosis.ElementOrder() {
		profile.SetValue(e, diagnosis.Clamp(profile.Value(e)))
	}

	profile.DominantElement = extremeElement(&profile, func(best, cur float64) bool { return cur > best })
	profile.DeficientElement = extremeElement(&profile, func(best, cur float64) bool { return cur < best })

	a.markImbalances(&profile)
	return profile
}

// dampTowardNeutral pulls every value toward the neutral midpoint in
// proportion to how many modalities were absent. With all four streams
// present the profile is untouched; with none populated it collapses to
// the baseline.
func dampTowardNeutral(p *diagnosis.ElementProfile, presentCount int) {
	retained := float64(presentCount) / float64(len(diagnosis.Modalities()))
	for _, e := range diagnosis.ElementOrder() {
		v := p.Value(e)
		p.SetValue(e, diagnosis.NeutralValue+(v-diagnosis.NeutralValue)*retained)
	}
}

// extremeElement returns the first element (in generating-cycle order)
// winning under the given comparison. Ties resolve to the earlier element.
func extremeElement(p *diagnosis.ElementProfile, better func(best, cur float64) bool) diagnosis.Element {
	order := diagnosis.ElementOrder()
	winner := order[0]
	best := p.Value(winner)
	for _, e := range order[1:] {
		if v := p.Value(e); better(best, v) {
			winner, best = e, v
		}
	}
	return winner
}

// markImbalances runs the rule-based pass over the final profile: absolute
// excess and deficiency thresholds, then adjacency ratios along the
// generating cycle.
func (a *ElementAggregator) markImbalances(p *diagnosis.ElementProfile) {
	rules := a.rules.Elements
	for _, e := range diagnosis.ElementOrder() {
		v := p.Value(e)
		if v > rules.ExcessThreshold {
			p.AddImbalance(fmt.Sprintf("%s-excess", e))
		}
		if v < rules.DeficientThreshold {
			p.AddImbalance(fmt.Sprintf("%s-deficiency", e))
		}
	}

	order := diagnosis.ElementOrder()
	for i, mother := range order {
		child := order[(i+1)%len(order)]
		mv, cv := p.Value(mother), p.Value(child)
		lo, hi := mv, cv
		if lo > hi {
			lo, hi = hi, lo
		}
		if lo <= 0 {
			if hi > 0 {
				p.AddImbalance(fmt.Sprintf("%s-%s-imbalance", mother, child))
			}
			continue
		}
		if hi/lo > rules.AdjacencyRatio {
			p.AddImbalance(fmt.Sprintf("%s-%s-imbalance", mother, child))
		}
	}
}

// sortedFieldNames returns a map's keys in sorted order so table lookups
// fold deterministically.
func sortedFieldNames(fields map[string]string) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
