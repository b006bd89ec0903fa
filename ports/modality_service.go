// Package ports defines the interfaces the application layer depends on.
// Adapters implement them; the fusion pipeline never sees them.
package ports

import (
	"context"

	"sizhen/domain/core"
	"sizhen/domain/diagnosis"
)

// ModalityService fetches the latest observation one diagnostic stream holds
// for a patient. A service returning core.ErrModalityUnavailable (or any
// error) marks its stream absent for that analysis rather than failing the
// whole run.
type ModalityService interface {
	// Modality identifies which stream this service serves.
	Modality() diagnosis.Modality

	// Fetch returns the latest observation for the patient, or an error if
	// the stream has nothing usable.
	Fetch(ctx context.Context, patientID core.PatientID) (*diagnosis.Observation, error)
}
