package ports

import (
	"context"

	"sizhen/domain/core"
	"sizhen/domain/diagnosis"
)

// StoredAssessment pairs an assessment with the patient it was produced for.
type StoredAssessment struct {
	PatientID  core.PatientID                  `json:"patient_id"`
	Assessment *diagnosis.IntegratedAssessment `json:"assessment"`
}

// AssessmentRepository persists integrated assessments. The engine itself
// stores nothing; the application layer hands finished assessments here.
type AssessmentRepository interface {
	// Save stores an assessment for a patient.
	Save(ctx context.Context, patientID core.PatientID, assessment *diagnosis.IntegratedAssessment) error

	// Get retrieves an assessment by ID.
	Get(ctx context.Context, id core.AssessmentID) (*StoredAssessment, error)

	// ListByPatient returns a patient's assessments, newest first,
	// optionally limited.
	ListByPatient(ctx context.Context, patientID core.PatientID, limit int) ([]*StoredAssessment, error)
}
