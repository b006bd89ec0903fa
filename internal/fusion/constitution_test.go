package fusion

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sizhen/domain/diagnosis"
	"sizhen/domain/tables"
)

func TestClassifyBalanced(t *testing.T) {
	cls := NewConstitutionClassifier(tables.Default())
	elements := diagnosis.NewElementProfile()
	elements.Fire = 53
	elements.Water = 47
	yy := diagnosis.NewYinYangProfile()

	assert.Equal(t, diagnosis.ConstitutionBalanced, cls.Classify(&elements, &yy))
}

func TestClassifyYangDeficiencyFromYinExcess(t *testing.T) {
	cls := NewConstitutionClassifier(tables.Default())
	elements := diagnosis.NewElementProfile()
	yy := diagnosis.YinYangProfile{Yin: 75, Yang: 50}
	yy.Categorize()

	assert.Equal(t, diagnosis.ConstitutionYangDeficiency, cls.Classify(&elements, &yy))
}

func TestClassifyYinDeficiencyFromYangExcess(t *testing.T) {
	cls := NewConstitutionClassifier(tables.Default())
	elements := diagnosis.NewElementProfile()
	yy := diagnosis.YinYangProfile{Yin: 40, Yang: 70}
	yy.Categorize()

	assert.Equal(t, diagnosis.ConstitutionYinDeficiency, cls.Classify(&elements, &yy))
}

func TestClassifyFullyBalancedScoresBothContributions(t *testing.T) {
	cls := NewConstitutionClassifier(tables.Default())
	elements := diagnosis.NewElementProfile()
	yy := diagnosis.NewYinYangProfile()

	scores := cls.Scores(&elements, &yy)

	// Element symmetry and yin/yang balance each add the bonus.
	assert.InDelta(t, 40.0, scores[diagnosis.ConstitutionBalanced], 1e-9)
	assert.Equal(t, diagnosis.ConstitutionBalanced, cls.Classify(&elements, &yy))
}

func TestClassifyTieResolvesToEarlierCategory(t *testing.T) {
	cls := NewConstitutionClassifier(tables.Default())
	// Neutral elements give balanced +20; a moderate yang excess gives
	// yin-deficiency +20. Balanced wins the tie by category order.
	elements := diagnosis.NewElementProfile()
	yy := diagnosis.YinYangProfile{Balance: diagnosis.BalanceModerateYangExcess}

	assert.Equal(t, diagnosis.ConstitutionBalanced, cls.Classify(&elements, &yy))
}

func TestScoresSeverityTiers(t *testing.T) {
	cls := NewConstitutionClassifier(tables.Default())
	elements := diagnosis.NewElementProfile()
	cases := []struct {
		name    string
		balance diagnosis.YinYangBalance
		target  diagnosis.ConstitutionType
		want    float64
	}{
		{"slight yin excess", diagnosis.BalanceSlightYinExcess, diagnosis.ConstitutionYangDeficiency, 10},
		{"moderate yin excess", diagnosis.BalanceModerateYinExcess, diagnosis.ConstitutionYangDeficiency, 20},
		{"severe yin excess", diagnosis.BalanceSevereYinExcess, diagnosis.ConstitutionYangDeficiency, 30},
		{"slight yang excess", diagnosis.BalanceSlightYangExcess, diagnosis.ConstitutionYinDeficiency, 10},
		{"severe yang excess", diagnosis.BalanceSevereYangExcess, diagnosis.ConstitutionYinDeficiency, 30},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			yy := diagnosis.YinYangProfile{Balance: tc.balance}
			scores := cls.Scores(&elements, &yy)
			assert.InDelta(t, tc.want, scores[tc.target], 1e-9)
			assert.Len(t, scores, len(diagnosis.ConstitutionOrder()), "every category gets an accumulator")
		})
	}
}
