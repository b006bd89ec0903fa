package fusion

import (
	"sizhen/domain/diagnosis"
	"sizhen/domain/tables"
)

// YinYangAggregator folds modality observations into the two-axis yin/yang
// profile and derives the seven-tier balance category.
type YinYangAggregator struct {
	rules *tables.RuleSet
}

func NewYinYangAggregator(rules *tables.RuleSet) *YinYangAggregator {
	return &YinYangAggregator{rules: rules}
}

// Aggregate builds the yin/yang profile from the observation set. Deltas sum
// on the yin=yang=50 baseline exactly as tabled; unlike the element profile
// the axes are not damped for missing streams, and the balance tier is
// derived from the raw axes.
func (a *YinYangAggregator) Aggregate(obs diagnosis.ObservationSet) diagnosis.YinYangProfile {
	profile := diagnosis.NewYinYangProfile()

	for _, m := range diagnosis.Modalities() {
		if !obs.Populated(m) {
			continue
		}
		fieldTables := a.rules.YinYangDeltas[m]
		if fieldTables == nil {
			continue
		}
		rec := obs[m]
		for _, field := range sortedFieldNames(rec.Fields) {
			delta, ok := fieldTables[field][rec.Fields[field]]
			if !ok {
				continue
			}
			profile.Yin += delta.Yin
			profile.Yang += delta.Yang
		}
	}

	profile.Categorize()
	return profile
}
