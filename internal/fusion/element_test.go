package fusion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sizhen/domain/diagnosis"
	"sizhen/domain/tables"
)

func obsWithFields(fields map[string]string) *diagnosis.Observation {
	return &diagnosis.Observation{Fields: fields}
}

func TestElementAggregatorPaleTongueSlowPulse(t *testing.T) {
	agg := NewElementAggregator(tables.Default())
	set := diagnosis.ObservationSet{
		diagnosis.ModalityLooking: obsWithFields(map[string]string{"tongueColor": "pale"}),
		diagnosis.ModalityTouch:   obsWithFields(map[string]string{"pulseType": "slow"}),
	}

	profile := agg.Aggregate(set)

	// Raw sums are wood 50, fire 25, earth 50, metal 60, water 85; with two
	// of four streams present every deviation is halved.
	assert.InDelta(t, 50.0, profile.Wood, 1e-9)
	assert.InDelta(t, 37.5, profile.Fire, 1e-9)
	assert.InDelta(t, 50.0, profile.Earth, 1e-9)
	assert.InDelta(t, 55.0, profile.Metal, 1e-9)
	assert.InDelta(t, 67.5, profile.Water, 1e-9)

	assert.Equal(t, diagnosis.ElementWater, profile.DominantElement)
	assert.Equal(t, diagnosis.ElementFire, profile.DeficientElement)
	assert.Contains(t, profile.Imbalances, "qi-blood-deficiency")
}

func TestElementAggregatorAllStreamsClamped(t *testing.T) {
	agg := NewElementAggregator(tables.Default())
	set := diagnosis.ObservationSet{
		diagnosis.ModalityLooking: obsWithFields(map[string]string{
			"tongueColor":   "crimson",
			"faceColor":     "red",
			"tongueCoating": "yellow",
		}),
		diagnosis.ModalitySmell:   obsWithFields(map[string]string{"odor": "burnt", "voiceQuality": "loud"}),
		diagnosis.ModalityInquiry: obsWithFields(map[string]string{"emotionalState": "joy", "sleepQuality": "insomnia"}),
		diagnosis.ModalityTouch:   obsWithFields(map[string]string{"pulseType": "rapid", "skinTemperature": "hot"}),
	}

	profile := agg.Aggregate(set)

	for _, e := range diagnosis.ElementOrder() {
		v := profile.Value(e)
		assert.GreaterOrEqual(t, v, 0.0, "element %s below range", e)
		assert.LessOrEqual(t, v, 100.0, "element %s above range", e)
	}
	// Raw fire would reach 50+30+15+10+10+10+10+10+15+10 = 170.
	assert.InDelta(t, 100.0, profile.Fire, 1e-9)
	assert.Equal(t, diagnosis.ElementFire, profile.DominantElement)
	assert.Contains(t, profile.Imbalances, "fire-excess")
}

func TestElementAggregatorNoPopulatedStreamsStaysNeutral(t *testing.T) {
	agg := NewElementAggregator(tables.Default())
	set := diagnosis.ObservationSet{
		diagnosis.ModalityLooking: {OverallAssessment: "no structured findings"},
	}

	profile := agg.Aggregate(set)

	for _, e := range diagnosis.ElementOrder() {
		assert.InDelta(t, diagnosis.NeutralValue, profile.Value(e), 1e-9)
	}
	assert.Equal(t, diagnosis.ElementWood, profile.DominantElement, "all-equal ties resolve to the first element")
	assert.Equal(t, diagnosis.ElementWood, profile.DeficientElement)
	assert.Empty(t, profile.Imbalances)
}

func TestElementAggregatorUnknownValuesIgnored(t *testing.T) {
	agg := NewElementAggregator(tables.Default())
	set := diagnosis.ObservationSet{
		diagnosis.ModalityLooking: obsWithFields(map[string]string{
			"tongueColor": "polka-dot",
			"hairStyle":   "curly",
		}),
	}

	profile := agg.Aggregate(set)

	for _, e := range diagnosis.ElementOrder() {
		assert.InDelta(t, diagnosis.NeutralValue, profile.Value(e), 1e-9)
	}
}

func TestElementAggregatorDeterministicImbalanceOrder(t *testing.T) {
	agg := NewElementAggregator(tables.Default())
	set := diagnosis.ObservationSet{
		diagnosis.ModalityTouch: obsWithFields(map[string]string{
			"pulseType":       "slippery",
			"skinTemperature": "cold",
		}),
		diagnosis.ModalityInquiry: obsWithFields(map[string]string{
			"appetite":     "poor",
			"sleepQuality": "somnolence",
		}),
	}

	first := agg.Aggregate(set)
	for i := 0; i < 20; i++ {
		again := agg.Aggregate(set)
		require.Equal(t, first, again, "aggregation must be deterministic across runs")
	}
}

func TestDampTowardNeutralScalesWithCoverage(t *testing.T) {
	cases := []struct {
		name    string
		present int
		want    float64
	}{
		{"all streams", 4, 90},
		{"three streams", 3, 80},
		{"two streams", 2, 70},
		{"one stream", 1, 60},
		{"no populated stream", 0, 50},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := diagnosis.NewElementProfile()
			p.Wood = 90
			dampTowardNeutral(&p, tc.present)
			assert.InDelta(t, tc.want, p.Wood, 1e-9)
			assert.InDelta(t, diagnosis.NeutralValue, p.Fire, 1e-9)
		})
	}
}
