package diagnosis

import "sizhen/domain/core"

// ConstitutionType is the final closed-set classification of overall bodily
// pattern. The nine categories are mutually exclusive.
type ConstitutionType string

const (
	ConstitutionBalanced       ConstitutionType = "balanced"
	ConstitutionQiDeficiency   ConstitutionType = "qi-deficiency"
	ConstitutionYangDeficiency ConstitutionType = "yang-deficiency"
	ConstitutionYinDeficiency  ConstitutionType = "yin-deficiency"
	ConstitutionPhlegmDamp     ConstitutionType = "phlegm-dampness"
	ConstitutionDampHeat       ConstitutionType = "damp-heat"
	ConstitutionBloodStasis    ConstitutionType = "blood-stasis"
	ConstitutionQiStagnation   ConstitutionType = "qi-stagnation"
	ConstitutionSpecial        ConstitutionType = "special"
)

// ConstitutionOrder returns all nine categories in scoring iteration order.
// Ties and all-zero scores resolve to the first entry (balanced).
func ConstitutionOrder() []ConstitutionType {
	return []ConstitutionType{
		ConstitutionBalanced,
		ConstitutionQiDeficiency,
		ConstitutionYangDeficiency,
		ConstitutionYinDeficiency,
		ConstitutionPhlegmDamp,
		ConstitutionDampHeat,
		ConstitutionBloodStasis,
		ConstitutionQiStagnation,
		ConstitutionSpecial,
	}
}

// IsValid reports whether t names a known constitution category.
func (t ConstitutionType) IsValid() bool {
	for _, known := range ConstitutionOrder() {
		if t == known {
			return true
		}
	}
	return false
}

// ConflictSeverity tiers a detected cross-modality contradiction.
type ConflictSeverity string

const (
	SeverityLow    ConflictSeverity = "low"
	SeverityMedium ConflictSeverity = "medium"
	SeverityHigh   ConflictSeverity = "high"
)

// ConflictType names the kind of cross-modality contradiction detected.
type ConflictType string

// ConflictThermal marks contradictory hot/cold signatures across modalities.
const ConflictThermal ConflictType = "thermal-conflict"

// ConflictRecord describes one detected contradiction between modality
// assessments and how it was reconciled.
type ConflictRecord struct {
	Type        ConflictType     `json:"type"`
	Description string           `json:"description"`
	Modalities  []Modality       `json:"modalities"`
	Severity    ConflictSeverity `json:"severity"`
	Resolved    bool             `json:"resolved"`
	Resolution  string           `json:"resolution,omitempty"`
}

// IntegratedAssessment is the sole externally visible artifact of an
// analysis: one coherent fusion of the supplied modality streams. It is
// created once per analysis call and handed to external persistence by the
// caller; the engine itself stores nothing.
type IntegratedAssessment struct {
	ID        core.AssessmentID `json:"id"`
	Timestamp core.Timestamp    `json:"timestamp"`
	Summary   string            `json:"summary"`

	YinYang  YinYangProfile `json:"yin_yang"`
	Elements ElementProfile `json:"elements"`
	Organs   OrganProfile   `json:"organs"`

	EnergyLevel      float64          `json:"energy_level"`
	ConstitutionType ConstitutionType `json:"constitution_type"`

	// DiagnosticConfidence is a 0-100 reliability percentage derived from
	// which modalities were present and their configured weights.
	DiagnosticConfidence float64 `json:"diagnostic_confidence"`

	Conflicts      []ConflictRecord `json:"conflicts,omitempty"`
	ModalitiesUsed []Modality       `json:"modalities_used"`

	// TableVersion records which rule-table revision produced this
	// assessment, so stored results stay auditable as tables evolve.
	TableVersion string `json:"table_version"`
}
