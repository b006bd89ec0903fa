package fusion

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sizhen/domain/diagnosis"
	"sizhen/internal/testkit"
)

// End-to-end fixtures over the full pipeline.

func TestScenarioMixedThermalTexts(t *testing.T) {
	engine := newTestEngine(t)
	set := testkit.NewObservationSet().
		WithObservation(diagnosis.ModalityLooking, &diagnosis.Observation{
			Fields:            map[string]string{"tongueColor": "red"},
			OverallAssessment: "tongue body shows heat",
		}).
		WithObservation(diagnosis.ModalityTouch, &diagnosis.Observation{
			Fields:            map[string]string{"skinTemperature": "cold"},
			OverallAssessment: "cold extremities on palpation",
		}).
		Build()

	result, err := engine.Analyze(context.Background(), set)
	require.NoError(t, err)

	// Hot 0.3 vs cold 0.2 does not clear the dominance ratio: mixed.
	require.Len(t, result.Conflicts, 1)
	c := result.Conflicts[0]
	assert.True(t, c.Resolved)
	assert.Contains(t, c.Resolution, "mixed")
	assert.Contains(t, result.Summary, "thermal-conflict")
}

func TestScenarioNeutralAllStreamsIsBalanced(t *testing.T) {
	engine := newTestEngine(t)

	result, err := engine.Analyze(context.Background(), testkit.AllNeutral())
	require.NoError(t, err)

	assert.Equal(t, diagnosis.ConstitutionBalanced, result.ConstitutionType)
	assert.Equal(t, diagnosis.BalanceBalanced, result.YinYang.Balance)
	for _, e := range diagnosis.ElementOrder() {
		assert.InDelta(t, diagnosis.NeutralValue, result.Elements.Value(e), 1e-9)
	}
	assert.InDelta(t, 100.0, result.DiagnosticConfidence, 1e-9)
	assert.InDelta(t, diagnosis.NeutralValue, result.EnergyLevel, 1e-9)
	assert.Len(t, result.ModalitiesUsed, 4)
}

func TestScenarioSingleModalityHeavilyDamped(t *testing.T) {
	engine := newTestEngine(t)
	set := testkit.NewObservationSet().
		With(diagnosis.ModalityTouch, map[string]string{"pulseType": "wiry"}).
		Build()

	result, err := engine.Analyze(context.Background(), set)
	require.NoError(t, err)

	// Wiry adds wood +20 raw; with one of four streams the deviation is
	// quartered.
	assert.InDelta(t, 55.0, result.Elements.Wood, 1e-9)
	assert.Equal(t, diagnosis.ElementWood, result.Elements.DominantElement)
	assert.Contains(t, result.Elements.Imbalances, "liver-qi-stagnation")
	assert.InDelta(t, 23.0, result.DiagnosticConfidence, 1e-9)
}
