package fusion

import (
	"math"

	"sizhen/domain/diagnosis"
	"sizhen/domain/tables"
)

// ConstitutionClassifier scores the nine constitution categories against the
// fused profiles and picks the highest scorer. Only the balanced case and
// the yin/yang deficiency categories currently carry scoring rules; the
// remaining six accumulate no evidence yet, so they can only win once rules
// are added for them.
type ConstitutionClassifier struct {
	rules *tables.RuleSet
}

func NewConstitutionClassifier(rules *tables.RuleSet) *ConstitutionClassifier {
	return &ConstitutionClassifier{rules: rules}
}

// Classify returns the winning category. Ties, including the all-zero case,
// resolve to the earliest category in scoring order, which puts balanced
// first.
func (c *ConstitutionClassifier) Classify(elements *diagnosis.ElementProfile, yinYang *diagnosis.YinYangProfile) diagnosis.ConstitutionType {
	scores := c.Scores(elements, yinYang)

	winner := diagnosis.ConstitutionOrder()[0]
	best := scores[winner]
	for _, t := range diagnosis.ConstitutionOrder()[1:] {
		if scores[t] > best {
			winner, best = t, scores[t]
		}
	}
	return winner
}

// Scores returns the per-category evidence accumulators.
func (c *ConstitutionClassifier) Scores(elements *diagnosis.ElementProfile, yinYang *diagnosis.YinYangProfile) map[diagnosis.ConstitutionType]float64 {
	scoring := c.rules.Scoring
	scores := make(map[diagnosis.ConstitutionType]float64, len(diagnosis.ConstitutionOrder()))
	for _, t := range diagnosis.ConstitutionOrder() {
		scores[t] = 0
	}

	// Element symmetry and yin/yang balance each contribute the bonus
	// independently; a fully balanced presentation earns both.
	if c.elementsNearNeutral(elements, scoring.ElementTolerance) {
		scores[diagnosis.ConstitutionBalanced] += scoring.BalancedBonus
	}
	if yinYang.Balance == diagnosis.BalanceBalanced {
		scores[diagnosis.ConstitutionBalanced] += scoring.BalancedBonus
	}

	if tier := deficiencyTier(yinYang.Balance); tier != "" {
		points := scoring.DeficiencyTiers[tier]
		if yinYang.Balance.YinSided() {
			// Yin excess is read as relative yang deficiency.
			scores[diagnosis.ConstitutionYangDeficiency] += points
		} else {
			scores[diagnosis.ConstitutionYinDeficiency] += points
		}
	}
	return scores
}

func (c *ConstitutionClassifier) elementsNearNeutral(p *diagnosis.ElementProfile, tolerance float64) bool {
	for _, e := range diagnosis.ElementOrder() {
		if math.Abs(p.Value(e)-diagnosis.NeutralValue) > tolerance {
			return false
		}
	}
	return true
}

func deficiencyTier(b diagnosis.YinYangBalance) string {
	switch b.Severity() {
	case 1:
		return "slight"
	case 2:
		return "moderate"
	case 3:
		return "severe"
	}
	return ""
}
