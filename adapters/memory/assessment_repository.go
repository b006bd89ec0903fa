// Package memory provides an in-process AssessmentRepository used when no
// database is configured, and as the reference implementation for the
// repository contract tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"sizhen/domain/core"
	"sizhen/domain/diagnosis"
	"sizhen/ports"
)

// AssessmentRepository keeps stored assessments in memory. Safe for
// concurrent use. Per-patient insertion order is preserved so listing can
// sort by timestamp with a stable fallback.
type AssessmentRepository struct {
	mu        sync.RWMutex
	byID      map[core.AssessmentID]*ports.StoredAssessment
	byPatient map[core.PatientID][]core.AssessmentID
}

func NewAssessmentRepository() *AssessmentRepository {
	return &AssessmentRepository{
		byID:      make(map[core.AssessmentID]*ports.StoredAssessment),
		byPatient: make(map[core.PatientID][]core.AssessmentID),
	}
}

func (r *AssessmentRepository) Save(_ context.Context, patientID core.PatientID, assessment *diagnosis.IntegratedAssessment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[assessment.ID]; !exists {
		r.byPatient[patientID] = append(r.byPatient[patientID], assessment.ID)
	}
	r.byID[assessment.ID] = &ports.StoredAssessment{PatientID: patientID, Assessment: assessment}
	return nil
}

func (r *AssessmentRepository) Get(_ context.Context, id core.AssessmentID) (*ports.StoredAssessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.byID[id]
	if !ok {
		return nil, core.NewNotFoundError("assessment", id.String())
	}
	return stored, nil
}

func (r *AssessmentRepository) ListByPatient(_ context.Context, patientID core.PatientID, limit int) ([]*ports.StoredAssessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := r.byPatient[patientID]
	out := make([]*ports.StoredAssessment, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.byID[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Assessment.Timestamp.After(out[j].Assessment.Timestamp)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
