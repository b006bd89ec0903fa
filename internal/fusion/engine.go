package fusion

import (
	"context"
	"fmt"
	"strings"

	"github.com/montanaflynn/stats"
	"go.uber.org/zap"

	"sizhen/domain/core"
	"sizhen/domain/diagnosis"
	"sizhen/domain/tables"
)

// stage names the phases of one analysis run, in execution order. Stages are
// surfaced through debug logging so a stalled or failing analysis can be
// placed in the pipeline.
type stage string

const (
	stageValidating        stage = "validating"
	stageAggregating       stage = "aggregating"
	stageConflictResolving stage = "conflict-resolving"
	stageClassifying       stage = "classifying"
	stageScoring           stage = "scoring"
	stageSummarizing       stage = "summarizing"
	stageDone              stage = "done"
)

// Engine fuses up to four modality observation streams into one integrated
// assessment. It is stateless between calls and safe for concurrent use;
// each Analyze call works on its own clone of the input set.
type Engine struct {
	rules  *tables.RuleSet
	logger *zap.Logger

	elements     *ElementAggregator
	yinYang      *YinYangAggregator
	organs       *OrganAggregator
	constitution *ConstitutionClassifier
	conflicts    *ConflictDetector
	confidence   *ConfidenceScorer
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger attaches a structured logger. Without it the engine is silent.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine builds an engine over one rule-table revision.
func NewEngine(rules *tables.RuleSet, opts ...Option) *Engine {
	e := &Engine{
		rules:        rules,
		logger:       zap.NewNop(),
		elements:     NewElementAggregator(rules),
		yinYang:      NewYinYangAggregator(rules),
		organs:       NewOrganAggregator(rules),
		constitution: NewConstitutionClassifier(rules),
		conflicts:    NewConflictDetector(rules),
		confidence:   NewConfidenceScorer(rules),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Analyze fuses the supplied observation set into an integrated assessment.
// Any subset of modalities may be present; an entirely empty set is the only
// fatal input. Malformed observations (present but without raw data) are
// logged and treated as partially unavailable. The caller's set is never
// mutated.
func (e *Engine) Analyze(ctx context.Context, set diagnosis.ObservationSet) (*diagnosis.IntegratedAssessment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.logStage(stageValidating)
	if set.IsEmpty() {
		return nil, core.ErrInsufficientData
	}
	work := set.Clone()
	for _, m := range diagnosis.Modalities() {
		if work.Present(m) && !work.Populated(m) {
			e.logger.Warn("treating modality as partially unavailable",
				zap.String("modality", string(m)),
				zap.Error(core.NewMalformedObservationError(string(m))))
		}
	}

	e.logStage(stageAggregating)
	elements := e.elements.Aggregate(work)
	yinYang := e.yinYang.Aggregate(work)
	organs := e.organs.Aggregate(&elements, work[diagnosis.ModalityLooking])

	e.logStage(stageConflictResolving)
	conflicts := e.conflicts.DetectAndResolve(work)

	e.logStage(stageClassifying)
	constitution := e.constitution.Classify(&elements, &yinYang)

	e.logStage(stageScoring)
	confidence := e.confidence.Score(work)
	energy := energyLevel(&elements)

	e.logStage(stageSummarizing)
	assessment := &diagnosis.IntegratedAssessment{
		ID:                   core.AssessmentID(core.NewID()),
		Timestamp:            core.Now(),
		YinYang:              yinYang,
		Elements:             elements,
		Organs:               organs,
		EnergyLevel:          energy,
		ConstitutionType:     constitution,
		DiagnosticConfidence: confidence,
		Conflicts:            conflicts,
		ModalitiesUsed:       work.PresentModalities(),
		TableVersion:         e.rules.Version,
	}
	assessment.Summary = buildSummary(assessment, work.PresentCount())

	e.logStage(stageDone)
	e.logger.Info("analysis complete",
		zap.String("assessment_id", assessment.ID.String()),
		zap.String("constitution", string(constitution)),
		zap.Float64("confidence", confidence),
		zap.Int("modalities", work.PresentCount()),
		zap.Int("conflicts", len(conflicts)))
	return assessment, nil
}

func (e *Engine) logStage(s stage) {
	e.logger.Debug("analysis stage", zap.String("stage", string(s)))
}

// energyLevel is the mean of the five element values, read as overall
// vitality on the same 0-100 scale.
func energyLevel(p *diagnosis.ElementProfile) float64 {
	values := make([]float64, 0, len(diagnosis.ElementOrder()))
	for _, e := range diagnosis.ElementOrder() {
		values = append(values, p.Value(e))
	}
	mean, err := stats.Mean(values)
	if err != nil {
		return diagnosis.NeutralValue
	}
	return mean
}

func buildSummary(a *diagnosis.IntegratedAssessment, presentCount int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Constitution: %s. Yin-yang balance: %s. Dominant element: %s; deficient element: %s.",
		a.ConstitutionType, a.YinYang.Balance, a.Elements.DominantElement, a.Elements.DeficientElement)
	if len(a.Elements.Imbalances) > 0 {
		fmt.Fprintf(&b, " Noted imbalances: %s.", strings.Join(a.Elements.Imbalances, ", "))
	}
	for _, c := range a.Conflicts {
		fmt.Fprintf(&b, " Conflict (%s): %s; %s.", c.Type, c.Description, c.Resolution)
	}
	fmt.Fprintf(&b, " Diagnostic confidence %.0f%% from %d of %d examinations.",
		a.DiagnosticConfidence, presentCount, len(diagnosis.Modalities()))
	return b.String()
}
