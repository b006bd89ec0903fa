// Package app wires the fusion engine to its collaborators: modality
// services feeding observations in, the repository persisting results, and
// the suggestion provider enriching reports.
package app

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"sizhen/domain/core"
	"sizhen/domain/diagnosis"
	"sizhen/internal/errors"
	"sizhen/internal/fusion"
	"sizhen/ports"
)

// AssessmentService coordinates one comprehensive analysis: fetch the four
// observation streams concurrently, fuse them, persist the result.
type AssessmentService struct {
	engine      *fusion.Engine
	repo        ports.AssessmentRepository
	modalities  []ports.ModalityService
	suggestions ports.SuggestionProvider
	logger      *zap.Logger
}

func NewAssessmentService(
	engine *fusion.Engine,
	repo ports.AssessmentRepository,
	modalities []ports.ModalityService,
	suggestions ports.SuggestionProvider,
	logger *zap.Logger,
) *AssessmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssessmentService{
		engine:      engine,
		repo:        repo,
		modalities:  modalities,
		suggestions: suggestions,
		logger:      logger,
	}
}

// AnalysisResult is the service-level outcome: the stored assessment plus
// per-constitution guidance.
type AnalysisResult struct {
	PatientID   core.PatientID                  `json:"patient_id"`
	Assessment  *diagnosis.IntegratedAssessment `json:"assessment"`
	Suggestions []string                        `json:"suggestions,omitempty"`
}

// AnalyzePatient fetches every configured modality stream for the patient,
// fuses whatever arrived, and persists the assessment. A failed fetch marks
// its stream absent; the run only fails when no stream delivers anything.
func (s *AssessmentService) AnalyzePatient(ctx context.Context, patientID core.PatientID) (*AnalysisResult, error) {
	set := diagnosis.ObservationSet{}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, svc := range s.modalities {
		g.Go(func() error {
			obs, err := svc.Fetch(gctx, patientID)
			if err != nil {
				s.logger.Warn("modality fetch failed, treating stream as absent",
					zap.String("modality", string(svc.Modality())),
					zap.String("patient_id", patientID.String()),
					zap.Error(err))
				return nil
			}
			mu.Lock()
			set[svc.Modality()] = obs
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "fetching modality observations")
	}

	return s.AnalyzeObservations(ctx, patientID, set)
}

// AnalyzeObservations runs the fusion pipeline over caller-supplied
// observations and persists the result. This is the direct path used by the
// HTTP API and the CLI, where the caller already holds the records.
func (s *AssessmentService) AnalyzeObservations(ctx context.Context, patientID core.PatientID, set diagnosis.ObservationSet) (*AnalysisResult, error) {
	assessment, err := s.engine.Analyze(ctx, set)
	if err != nil {
		if core.IsInsufficientDataError(err) {
			return nil, errors.WithCode(errors.CodeInsufficientData, err)
		}
		return nil, errors.Wrap(err, "running fusion analysis")
	}

	if s.repo != nil {
		if err := s.repo.Save(ctx, patientID, assessment); err != nil {
			return nil, errors.Wrapf(err, "persisting assessment %s", assessment.ID)
		}
	}

	result := &AnalysisResult{
		PatientID:  patientID,
		Assessment: assessment,
	}
	if s.suggestions != nil {
		result.Suggestions = s.suggestions.Suggestions(assessment.ConstitutionType)
	}
	return result, nil
}

// GetAssessment retrieves a stored assessment by ID.
func (s *AssessmentService) GetAssessment(ctx context.Context, id core.AssessmentID) (*ports.StoredAssessment, error) {
	stored, err := s.repo.Get(ctx, id)
	if err != nil {
		if core.IsNotFoundError(err) {
			return nil, err
		}
		return nil, errors.Wrapf(err, "loading assessment %s", id)
	}
	return stored, nil
}

// ListPatientAssessments returns a patient's stored assessments, newest
// first.
func (s *AssessmentService) ListPatientAssessments(ctx context.Context, patientID core.PatientID, limit int) ([]*ports.StoredAssessment, error) {
	stored, err := s.repo.ListByPatient(ctx, patientID, limit)
	if err != nil {
		return nil, errors.Wrapf(err, "listing assessments for patient %s", patientID)
	}
	return stored, nil
}
