// Package testkit builds observation fixtures for tests.
package testkit

import (
	"sizhen/domain/diagnosis"
)

// ObservationSetBuilder assembles observation sets fluently.
type ObservationSetBuilder struct {
	set diagnosis.ObservationSet
}

func NewObservationSet() *ObservationSetBuilder {
	return &ObservationSetBuilder{set: diagnosis.ObservationSet{}}
}

// With adds an observation with categorical fields for a modality.
func (b *ObservationSetBuilder) With(m diagnosis.Modality, fields map[string]string) *ObservationSetBuilder {
	b.set[m] = &diagnosis.Observation{Fields: fields}
	return b
}

// WithAssessment adds an observation carrying only free-text findings.
func (b *ObservationSetBuilder) WithAssessment(m diagnosis.Modality, text string) *ObservationSetBuilder {
	b.set[m] = &diagnosis.Observation{OverallAssessment: text}
	return b
}

// WithObservation adds a fully specified observation.
func (b *ObservationSetBuilder) WithObservation(m diagnosis.Modality, obs *diagnosis.Observation) *ObservationSetBuilder {
	b.set[m] = obs
	return b
}

// Build returns the assembled set.
func (b *ObservationSetBuilder) Build() diagnosis.ObservationSet {
	return b.set
}

// AllNeutral returns a set with all four modalities populated with values no
// rule table matches, so every profile stays at its baseline.
func AllNeutral() diagnosis.ObservationSet {
	return NewObservationSet().
		With(diagnosis.ModalityLooking, map[string]string{"tongueColor": "unremarkable"}).
		With(diagnosis.ModalitySmell, map[string]string{"odor": "unremarkable"}).
		With(diagnosis.ModalityInquiry, map[string]string{"appetite": "unremarkable"}).
		With(diagnosis.ModalityTouch, map[string]string{"pulseType": "unremarkable"}).
		Build()
}
