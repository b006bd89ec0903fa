package fusion

import (
	"fmt"
	"strings"

	"sizhen/domain/diagnosis"
	"sizhen/domain/tables"
)

// mixedThermalCaveat is appended to each conflicting assessment text when
// neither thermal side dominates the weighted vote.
const mixedThermalCaveat = " Note: conflicting thermal signs reported across examinations; findings reflect a mixed hot-cold presentation."

// ConflictDetector finds contradictory thermal signatures across the
// modality assessment texts and reconciles them with a weighted vote. It is
// the only pipeline stage that writes back into the observation set, and
// only ever onto the engine's working copy.
type ConflictDetector struct {
	rules *tables.RuleSet
}

func NewConflictDetector(rules *tables.RuleSet) *ConflictDetector {
	return &ConflictDetector{rules: rules}
}

// DetectAndResolve scans the present assessment texts for hot and cold
// lexicon matches. When both sides appear, it records one thermal conflict
// and resolves it: a side whose summed modality weights exceed the other's
// by the dominance ratio wins outright; otherwise the presentation is read
// as genuinely mixed and every conflicting text gets the caveat appended.
// Every recorded conflict leaves this stage resolved.
func (d *ConflictDetector) DetectAndResolve(obs diagnosis.ObservationSet) []diagnosis.ConflictRecord {
	var hotSide, coldSide []diagnosis.Modality
	hotWeight, coldWeight := 0.0, 0.0

	for _, m := range diagnosis.Modalities() {
		if !obs.Present(m) {
			continue
		}
		text := strings.ToLower(obs[m].OverallAssessment)
		if text == "" {
			continue
		}
		if matchesAny(text, d.rules.Thermal.Hot) {
			hotSide = append(hotSide, m)
			hotWeight += d.rules.Weight(m)
		}
		if matchesAny(text, d.rules.Thermal.Cold) {
			coldSide = append(coldSide, m)
			coldWeight += d.rules.Weight(m)
		}
	}

	if len(hotSide) == 0 || len(coldSide) == 0 {
		return nil
	}

	involved := mergeModalities(hotSide, coldSide)
	record := diagnosis.ConflictRecord{
		Type: diagnosis.ConflictThermal,
		Description: fmt.Sprintf("hot signs (%s) contradict cold signs (%s)",
			joinModalities(hotSide), joinModalities(coldSide)),
		Modalities: involved,
		Severity:   diagnosis.SeverityMedium,
		Resolved:   true,
	}

	// A side must strictly exceed the other's weight scaled by the
	// dominance ratio; an exact tie at the ratio reads as mixed.
	ratio := d.rules.Thermal.DominanceRatio
	switch {
	case hotWeight > ratio*coldWeight:
		record.Resolution = fmt.Sprintf("hot signs dominate the weighted vote (%.2f vs %.2f)", hotWeight, coldWeight)
	case coldWeight > ratio*hotWeight:
		record.Resolution = fmt.Sprintf("cold signs dominate the weighted vote (%.2f vs %.2f)", coldWeight, hotWeight)
	default:
		record.Resolution = "mixed hot-cold presentation; caveat appended to conflicting assessments"
		for _, m := range involved {
			obs[m].OverallAssessment += mixedThermalCaveat
		}
	}
	return []diagnosis.ConflictRecord{record}
}

func matchesAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// mergeModalities unions the two sides in canonical modality order.
func mergeModalities(a, b []diagnosis.Modality) []diagnosis.Modality {
	seen := make(map[diagnosis.Modality]bool, len(a)+len(b))
	for _, m := range a {
		seen[m] = true
	}
	for _, m := range b {
		seen[m] = true
	}
	var out []diagnosis.Modality
	for _, m := range diagnosis.Modalities() {
		if seen[m] {
			out = append(out, m)
		}
	}
	return out
}

func joinModalities(ms []diagnosis.Modality) string {
	names := make([]string, len(ms))
	for i, m := range ms {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}
