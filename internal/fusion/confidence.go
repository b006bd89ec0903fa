package fusion

import (
	"github.com/montanaflynn/stats"

	"sizhen/domain/diagnosis"
	"sizhen/domain/tables"
)

// ConfidenceScorer computes the 0-100 diagnostic reliability percentage.
// Coverage (how many streams were populated) and configured stream weights
// contribute equally.
type ConfidenceScorer struct {
	rules *tables.RuleSet
}

func NewConfidenceScorer(rules *tables.RuleSet) *ConfidenceScorer {
	return &ConfidenceScorer{rules: rules}
}

// Score returns round(((present/4 + weightSum) / 2) * 100), where weightSum
// sums the configured weights of the populated modalities. With all four
// streams populated both terms are 1.0 and the score is 100.
func (c *ConfidenceScorer) Score(obs diagnosis.ObservationSet) float64 {
	coverage := float64(obs.PresentCount()) / float64(len(diagnosis.Modalities()))
	weightSum := 0.0
	for _, m := range obs.PresentModalities() {
		weightSum += c.rules.Weight(m)
	}
	score, err := stats.Round(((coverage+weightSum)/2)*100, 0)
	if err != nil {
		return 0
	}
	return score
}
