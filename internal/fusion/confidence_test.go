package fusion

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sizhen/domain/diagnosis"
	"sizhen/domain/tables"
)

func TestConfidenceScoreByCoverage(t *testing.T) {
	scorer := NewConfidenceScorer(tables.Default())
	looking := obsWithFields(map[string]string{"tongueColor": "pale"})
	smell := obsWithFields(map[string]string{"odor": "sour"})
	inquiry := obsWithFields(map[string]string{"appetite": "poor"})
	touch := obsWithFields(map[string]string{"pulseType": "slow"})

	cases := []struct {
		name string
		set  diagnosis.ObservationSet
		want float64
	}{
		{"all four", diagnosis.ObservationSet{
			diagnosis.ModalityLooking: looking,
			diagnosis.ModalitySmell:   smell,
			diagnosis.ModalityInquiry: inquiry,
			diagnosis.ModalityTouch:   touch,
		}, 100},
		{"looking and touch", diagnosis.ObservationSet{
			diagnosis.ModalityLooking: looking,
			diagnosis.ModalityTouch:   touch,
		}, 50},
		{"looking only", diagnosis.ObservationSet{
			diagnosis.ModalityLooking: looking,
		}, 28},
		{"smell only", diagnosis.ObservationSet{
			diagnosis.ModalitySmell: smell,
		}, 23},
		{"present but unpopulated counts as absent", diagnosis.ObservationSet{
			diagnosis.ModalityLooking: looking,
			diagnosis.ModalityTouch:   {OverallAssessment: "no structured findings"},
		}, 28},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, scorer.Score(tc.set), 1e-9)
		})
	}
}

func TestConfidenceMonotonicInCoverage(t *testing.T) {
	scorer := NewConfidenceScorer(tables.Default())
	set := diagnosis.ObservationSet{}
	prev := scorer.Score(set)
	additions := []struct {
		m   diagnosis.Modality
		obs *diagnosis.Observation
	}{
		{diagnosis.ModalitySmell, obsWithFields(map[string]string{"odor": "sweet"})},
		{diagnosis.ModalityTouch, obsWithFields(map[string]string{"pulseType": "deep"})},
		{diagnosis.ModalityLooking, obsWithFields(map[string]string{"faceColor": "dark"})},
		{diagnosis.ModalityInquiry, obsWithFields(map[string]string{"sleepQuality": "somnolence"})},
	}
	for _, add := range additions {
		set[add.m] = add.obs
		cur := scorer.Score(set)
		assert.Greater(t, cur, prev, "adding %s must raise confidence", add.m)
		prev = cur
	}
	assert.InDelta(t, 100.0, prev, 1e-9)
}
