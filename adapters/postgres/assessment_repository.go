// Package postgres implements the repository ports over PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"

	"sizhen/domain/core"
	"sizhen/domain/diagnosis"
	"sizhen/internal/errors"
	"sizhen/ports"
)

// AssessmentRepositoryImpl implements AssessmentRepository for PostgreSQL
type AssessmentRepositoryImpl struct {
	db *sqlx.DB
}

// NewAssessmentRepository creates a new PostgreSQL assessment repository
func NewAssessmentRepository(db *sqlx.DB) ports.AssessmentRepository {
	return &AssessmentRepositoryImpl{db: db}
}

// EnsureSchema creates the assessments table if it does not exist.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS integrated_assessments (
			id TEXT PRIMARY KEY,
			patient_id TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			constitution_type TEXT NOT NULL,
			diagnostic_confidence DOUBLE PRECISION NOT NULL,
			energy_level DOUBLE PRECISION NOT NULL,
			table_version TEXT NOT NULL,
			summary TEXT NOT NULL,
			yin_yang JSONB NOT NULL,
			elements JSONB NOT NULL,
			organs JSONB NOT NULL,
			conflicts JSONB,
			modalities_used JSONB NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_integrated_assessments_patient
			ON integrated_assessments (patient_id, created_at DESC)`)
	if err != nil {
		return errors.Wrap(err, "ensuring assessment schema")
	}
	return nil
}

// Save stores an assessment for a patient
func (r *AssessmentRepositoryImpl) Save(ctx context.Context, patientID core.PatientID, a *diagnosis.IntegratedAssessment) error {
	yinYangJSON, _ := json.Marshal(a.YinYang)
	elementsJSON, _ := json.Marshal(a.Elements)
	organsJSON, _ := json.Marshal(a.Organs)
	modalitiesJSON, _ := json.Marshal(a.ModalitiesUsed)

	var conflictsJSON []byte
	if len(a.Conflicts) > 0 {
		conflictsJSON, _ = json.Marshal(a.Conflicts)
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO integrated_assessments (
			id, patient_id, created_at, constitution_type,
			diagnostic_confidence, energy_level, table_version, summary,
			yin_yang, elements, organs, conflicts, modalities_used
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			constitution_type = EXCLUDED.constitution_type,
			diagnostic_confidence = EXCLUDED.diagnostic_confidence,
			energy_level = EXCLUDED.energy_level,
			table_version = EXCLUDED.table_version,
			summary = EXCLUDED.summary,
			yin_yang = EXCLUDED.yin_yang,
			elements = EXCLUDED.elements,
			organs = EXCLUDED.organs,
			conflicts = EXCLUDED.conflicts,
			modalities_used = EXCLUDED.modalities_used`,
		a.ID.String(), patientID.String(), a.Timestamp.Time(), string(a.ConstitutionType),
		a.DiagnosticConfidence, a.EnergyLevel, a.TableVersion, a.Summary,
		yinYangJSON, elementsJSON, organsJSON, conflictsJSON, modalitiesJSON)
	if err != nil {
		return errors.WithCode(errors.CodeDatabaseError, err)
	}
	return nil
}

// Get retrieves an assessment by ID
func (r *AssessmentRepositoryImpl) Get(ctx context.Context, id core.AssessmentID) (*ports.StoredAssessment, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, patient_id, created_at, constitution_type,
			   diagnostic_confidence, energy_level, table_version, summary,
			   yin_yang, elements, organs, conflicts, modalities_used
		FROM integrated_assessments
		WHERE id = $1`, id.String())

	stored, err := scanStoredAssessment(row)
	if err == sql.ErrNoRows {
		return nil, core.NewNotFoundError("assessment", id.String())
	}
	if err != nil {
		return nil, errors.WithCode(errors.CodeDatabaseError, err)
	}
	return stored, nil
}

// ListByPatient returns a patient's assessments, newest first
func (r *AssessmentRepositoryImpl) ListByPatient(ctx context.Context, patientID core.PatientID, limit int) ([]*ports.StoredAssessment, error) {
	query := `
		SELECT id, patient_id, created_at, constitution_type,
			   diagnostic_confidence, energy_level, table_version, summary,
			   yin_yang, elements, organs, conflicts, modalities_used
		FROM integrated_assessments
		WHERE patient_id = $1
		ORDER BY created_at DESC`
	args := []interface{}{patientID.String()}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.WithCode(errors.CodeDatabaseError, err)
	}
	defer rows.Close()

	var out []*ports.StoredAssessment
	for rows.Next() {
		stored, err := scanStoredAssessment(rows)
		if err != nil {
			return nil, errors.WithCode(errors.CodeDatabaseError, err)
		}
		out = append(out, stored)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WithCode(errors.CodeDatabaseError, err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanStoredAssessment(row rowScanner) (*ports.StoredAssessment, error) {
	var (
		a              diagnosis.IntegratedAssessment
		idStr          string
		patientStr     string
		createdAt      sql.NullTime
		constitution   string
		yinYangJSON    []byte
		elementsJSON   []byte
		organsJSON     []byte
		conflictsJSON  []byte
		modalitiesJSON []byte
	)
	err := row.Scan(&idStr, &patientStr, &createdAt, &constitution,
		&a.DiagnosticConfidence, &a.EnergyLevel, &a.TableVersion, &a.Summary,
		&yinYangJSON, &elementsJSON, &organsJSON, &conflictsJSON, &modalitiesJSON)
	if err != nil {
		return nil, err
	}

	a.ID = core.AssessmentID(idStr)
	a.ConstitutionType = diagnosis.ConstitutionType(constitution)
	if createdAt.Valid {
		a.Timestamp = core.NewTimestamp(createdAt.Time)
	}
	if err := json.Unmarshal(yinYangJSON, &a.YinYang); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(elementsJSON, &a.Elements); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(organsJSON, &a.Organs); err != nil {
		return nil, err
	}
	if len(conflictsJSON) > 0 {
		if err := json.Unmarshal(conflictsJSON, &a.Conflicts); err != nil {
			return nil, err
		}
	}
	if err := json.Unmarshal(modalitiesJSON, &a.ModalitiesUsed); err != nil {
		return nil, err
	}

	return &ports.StoredAssessment{
		PatientID:  core.PatientID(patientStr),
		Assessment: &a,
	}, nil
}
