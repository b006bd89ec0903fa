package ports

import (
	"sizhen/domain/diagnosis"
)

// SuggestionProvider maps a constitution category to lifestyle guidance
// lines included in patient-facing reports.
type SuggestionProvider interface {
	// Suggestions returns guidance for the constitution, or nil when none
	// is configured.
	Suggestions(t diagnosis.ConstitutionType) []string
}
