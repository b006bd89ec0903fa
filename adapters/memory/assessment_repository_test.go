package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sizhen/domain/core"
	"sizhen/domain/diagnosis"
)

func storedFixture(id string, at time.Time) *diagnosis.IntegratedAssessment {
	return &diagnosis.IntegratedAssessment{
		ID:               core.AssessmentID(id),
		Timestamp:        core.NewTimestamp(at),
		YinYang:          diagnosis.NewYinYangProfile(),
		Elements:         diagnosis.NewElementProfile(),
		Organs:           diagnosis.NewOrganProfile(),
		ConstitutionType: diagnosis.ConstitutionBalanced,
		TableVersion:     "1.0.0",
	}
}

func TestRepositorySaveAndGet(t *testing.T) {
	repo := NewAssessmentRepository()
	ctx := context.Background()
	a := storedFixture("a-1", time.Now())

	require.NoError(t, repo.Save(ctx, core.PatientID("p-1"), a))

	stored, err := repo.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, core.PatientID("p-1"), stored.PatientID)
	assert.Equal(t, a.ID, stored.Assessment.ID)
}

func TestRepositoryGetMissing(t *testing.T) {
	repo := NewAssessmentRepository()

	_, err := repo.Get(context.Background(), core.AssessmentID("missing"))

	assert.True(t, core.IsNotFoundError(err))
}

func TestRepositoryListNewestFirst(t *testing.T) {
	repo := NewAssessmentRepository()
	ctx := context.Background()
	base := time.Now()
	patient := core.PatientID("p-2")

	require.NoError(t, repo.Save(ctx, patient, storedFixture("a-old", base.Add(-2*time.Hour))))
	require.NoError(t, repo.Save(ctx, patient, storedFixture("a-new", base)))
	require.NoError(t, repo.Save(ctx, patient, storedFixture("a-mid", base.Add(-time.Hour))))
	require.NoError(t, repo.Save(ctx, core.PatientID("other"), storedFixture("a-x", base)))

	all, err := repo.ListByPatient(ctx, patient, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, core.AssessmentID("a-new"), all[0].Assessment.ID)
	assert.Equal(t, core.AssessmentID("a-mid"), all[1].Assessment.ID)
	assert.Equal(t, core.AssessmentID("a-old"), all[2].Assessment.ID)

	limited, err := repo.ListByPatient(ctx, patient, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestRepositorySaveIsUpsert(t *testing.T) {
	repo := NewAssessmentRepository()
	ctx := context.Background()
	patient := core.PatientID("p-3")
	a := storedFixture("a-1", time.Now())

	require.NoError(t, repo.Save(ctx, patient, a))
	a.ConstitutionType = diagnosis.ConstitutionYinDeficiency
	require.NoError(t, repo.Save(ctx, patient, a))

	all, err := repo.ListByPatient(ctx, patient, 0)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, diagnosis.ConstitutionYinDeficiency, all[0].Assessment.ConstitutionType)
}
