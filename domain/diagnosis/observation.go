package diagnosis

// Modality identifies one of the four independent diagnostic observation streams.
type Modality string

const (
	ModalityLooking Modality = "looking" // visual inspection (face, tongue, body)
	ModalitySmell   Modality = "smell"   // olfactory/auditory observation
	ModalityInquiry Modality = "inquiry" // structured interview
	ModalityTouch   Modality = "touch"   // pulse and palpation
)

// Modalities returns all modality identifiers in canonical fold order.
// Aggregation folds observations in exactly this order; changing it changes
// nothing numerically today (clamping happens once, at the end of each
// profile build) but the order is part of the engine contract.
func Modalities() []Modality {
	return []Modality{ModalityLooking, ModalitySmell, ModalityInquiry, ModalityTouch}
}

// IsValid reports whether m names a known modality.
func (m Modality) IsValid() bool {
	switch m {
	case ModalityLooking, ModalitySmell, ModalityInquiry, ModalityTouch:
		return true
	}
	return false
}

// Observation is the raw structured record one modality service produced.
// Fields maps categorical field names (e.g. "tongueColor", "pulseType") to
// string-coded values. It is an immutable input to the engine except that
// conflict resolution may append a caveat to OverallAssessment on the
// engine's working copy.
type Observation struct {
	Fields            map[string]string `json:"fields,omitempty"`
	OverallAssessment string            `json:"overall_assessment,omitempty"`
	Confidence        *float64          `json:"confidence,omitempty"`
}

// HasRawData reports whether the observation carries at least one populated
// categorical field. An observation without raw data is treated as a
// partially unavailable modality, not as a fatal error.
func (o *Observation) HasRawData() bool {
	return o != nil && len(o.Fields) > 0
}

// Field returns the value for a categorical field, and whether it was set.
func (o *Observation) Field(name string) (string, bool) {
	if o == nil || o.Fields == nil {
		return "", false
	}
	v, ok := o.Fields[name]
	return v, ok
}

// Clone returns a deep copy of the observation.
func (o *Observation) Clone() *Observation {
	if o == nil {
		return nil
	}
	dup := &Observation{OverallAssessment: o.OverallAssessment}
	if o.Fields != nil {
		dup.Fields = make(map[string]string, len(o.Fields))
		for k, v := range o.Fields {
			dup.Fields[k] = v
		}
	}
	if o.Confidence != nil {
		c := *o.Confidence
		dup.Confidence = &c
	}
	return dup
}

// ObservationSet holds the four optional modality records keyed by stream.
// A missing key and a nil value both mean the modality is absent.
type ObservationSet map[Modality]*Observation

// Present reports whether the modality was supplied at all.
func (s ObservationSet) Present(m Modality) bool {
	return s[m] != nil
}

// Populated reports whether the modality was supplied with raw data.
func (s ObservationSet) Populated(m Modality) bool {
	return s[m].HasRawData()
}

// PresentCount returns how many modalities were supplied with raw data.
func (s ObservationSet) PresentCount() int {
	n := 0
	for _, m := range Modalities() {
		if s.Populated(m) {
			n++
		}
	}
	return n
}

// PresentModalities returns the modalities supplied with raw data, in
// canonical order.
func (s ObservationSet) PresentModalities() []Modality {
	var out []Modality
	for _, m := range Modalities() {
		if s.Populated(m) {
			out = append(out, m)
		}
	}
	return out
}

// IsEmpty reports whether no modality was supplied at all.
func (s ObservationSet) IsEmpty() bool {
	for _, m := range Modalities() {
		if s.Present(m) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the set. The engine works on a clone so the
// caller's records stay untouched when conflict resolution annotates texts.
func (s ObservationSet) Clone() ObservationSet {
	dup := make(ObservationSet, len(s))
	for _, m := range Modalities() {
		if obs := s[m]; obs != nil {
			dup[m] = obs.Clone()
		}
	}
	return dup
}
