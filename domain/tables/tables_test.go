package tables

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sizhen/domain/core"
	"sizhen/domain/diagnosis"
)

func TestDefaultRulesLoad(t *testing.T) {
	rs := Default()
	require.NotNil(t, rs)

	assert.NotEmpty(t, rs.Version)

	sum := 0.0
	for _, m := range diagnosis.Modalities() {
		w := rs.Weight(m)
		assert.Greater(t, w, 0.0, "weight for %s", m)
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-9)

	for _, e := range diagnosis.ElementOrder() {
		assert.NotEmpty(t, rs.ElementOrgans[e], "organs for element %s", e)
	}
	assert.Greater(t, rs.Thermal.DominanceRatio, 1.0)
}

func TestDefaultConcurrentCallersShareOneRuleSet(t *testing.T) {
	const callers = 16
	results := make(chan *RuleSet, callers)
	for i := 0; i < callers; i++ {
		go func() { results <- Default() }()
	}

	first := <-results
	require.NotNil(t, first)
	for i := 1; i < callers; i++ {
		assert.Same(t, first, <-results)
	}
}

func TestDefaultRulesKnownDeltas(t *testing.T) {
	rs := Default()

	pale, ok := rs.ElementDeltas[diagnosis.ModalityLooking]["tongueColor"]["pale"]
	require.True(t, ok)
	assert.InDelta(t, 20.0, pale.Value(diagnosis.ElementWater), 1e-9)
	assert.InDelta(t, 10.0, pale.Value(diagnosis.ElementMetal), 1e-9)
	assert.InDelta(t, -15.0, pale.Value(diagnosis.ElementFire), 1e-9)
	assert.Equal(t, "qi-blood-deficiency", pale.Imbalance)

	slow, ok := rs.ElementDeltas[diagnosis.ModalityTouch]["pulseType"]["slow"]
	require.True(t, ok)
	assert.InDelta(t, 15.0, slow.Value(diagnosis.ElementWater), 1e-9)
	assert.InDelta(t, -10.0, slow.Value(diagnosis.ElementFire), 1e-9)

	redTip, ok := rs.OrganOverrides["tongueColor"]["red-tip"]
	require.True(t, ok)
	assert.InDelta(t, 15.0, redTip.Deltas[diagnosis.OrganHeart], 1e-9)
	assert.Equal(t, "heart-fire-rising", redTip.Anomaly)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	_, err := Load([]byte("version: [unclosed"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidRules(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"missing version", `
diagnostic_weights: {looking: 0.3, smell: 0.2, inquiry: 0.3, touch: 0.2}
`},
		{"weights do not sum to one", `
version: "test"
diagnostic_weights: {looking: 0.5, smell: 0.5, inquiry: 0.5, touch: 0.5}
`},
		{"missing modality weight", `
version: "test"
diagnostic_weights: {looking: 0.5, smell: 0.5}
`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load([]byte(tc.yaml))
			require.Error(t, err)
			assert.ErrorIs(t, err, core.ErrRuleTableInvalid)
		})
	}
}

func TestValidateChecksThermalAndScoring(t *testing.T) {
	rs := *Default()

	broken := rs
	broken.Thermal.DominanceRatio = 1.0
	assert.ErrorIs(t, broken.Validate(), core.ErrRuleTableInvalid)

	broken = rs
	broken.Elements.ExcessThreshold = broken.Elements.DeficientThreshold
	assert.ErrorIs(t, broken.Validate(), core.ErrRuleTableInvalid)

	broken = rs
	broken.Scoring.DeficiencyTiers = map[string]float64{"slight": 10}
	assert.ErrorIs(t, broken.Validate(), core.ErrRuleTableInvalid)
}
