package fusion

import (
	"sizhen/domain/diagnosis"
	"sizhen/domain/tables"
)

// Shift applied to the organs of the dominant element (positive) and the
// deficient element (negative) before looking-modality overrides.
const organCorrespondenceShift = 10.0

// OrganAggregator derives the seven-organ profile from the element profile
// through the element-organ correspondence, then applies looking-modality
// overrides.
type OrganAggregator struct {
	rules *tables.RuleSet
}

func NewOrganAggregator(rules *tables.RuleSet) *OrganAggregator {
	return &OrganAggregator{rules: rules}
}

// Aggregate builds the organ profile. Every organ starts at the baseline;
// organs paired with the dominant element shift up, organs paired with the
// deficient element shift down, and looking observations apply their
// configured overrides last. Clamping happens once, at the end.
func (a *OrganAggregator) Aggregate(elements *diagnosis.ElementProfile, looking *diagnosis.Observation) diagnosis.OrganProfile {
	profile := diagnosis.NewOrganProfile()

	for _, o := range a.rules.ElementOrgans[elements.DominantElement] {
		profile.Add(o, organCorrespondenceShift)
	}
	for _, o := range a.rules.ElementOrgans[elements.DeficientElement] {
		profile.Add(o, -organCorrespondenceShift)
	}

	if looking.HasRawData() {
		for _, field := range sortedFieldNames(looking.Fields) {
			override, ok := a.rules.OrganOverrides[field][looking.Fields[field]]
			if !ok {
				continue
			}
			for _, o := range diagnosis.OrganOrder() {
				if delta, ok := override.Deltas[o]; ok {
					profile.Add(o, delta)
				}
			}
			if override.Anomaly != "" {
				profile.AddAnomaly(override.Anomaly)
			}
		}
	}

	for _, o := range diagnosis.OrganOrder() {
		profile.SetValue(o, diagnosis.Clamp(profile.Value(o)))
	}
	return profile
}
