package document

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthkey/healthkey-api/internal/model"
	"github.com/healthkey/healthkey-api/internal/repository"
	"github.com/healthkey/healthkey-api/internal/store/memory"
	"github.com/healthkey/healthkey-api/pkg/apperror"
)

func newDoctorRepo(t *testing.T) repository.DoctorRepository {
	t.Helper()
	repo := NewDoctorRepository(memory.New())
	require.NoError(t, repo.Create(context.Background(), &model.Doctor{
		Base: model.Base{ID: "DOC1"},
		Name: "Dr. Rao",
	}))
	return repo
}

// Two callers each read the doctor, then each push a patient onto the
// queue. Both pushes must survive; a mutation written from either
// caller's snapshot would drop the other's patient.
func TestMutateInterleavedWritesBothSurvive(t *testing.T) {
	ctx := context.Background()
	repo := newDoctorRepo(t)

	firstView, err := repo.Get(ctx, "DOC1")
	require.NoError(t, err)
	secondView, err := repo.Get(ctx, "DOC1")
	require.NoError(t, err)
	require.Empty(t, firstView.PatientQueue)
	require.Empty(t, secondView.PatientQueue)

	require.NoError(t, repo.Mutate(ctx, "DOC1", func(d *model.Doctor) error {
		d.PatientQueue = append(d.PatientQueue, "PAT1")
		return nil
	}))
	require.NoError(t, repo.Mutate(ctx, "DOC1", func(d *model.Doctor) error {
		d.PatientQueue = append(d.PatientQueue, "PAT2")
		return nil
	}))

	doctor, err := repo.Get(ctx, "DOC1")
	require.NoError(t, err)
	assert.Equal(t, []string{"PAT1", "PAT2"}, doctor.PatientQueue)
}

func TestMutateUnknownDoctor(t *testing.T) {
	repo := newDoctorRepo(t)

	err := repo.Mutate(context.Background(), "DOC404", func(d *model.Doctor) error {
		d.PatientQueue = append(d.PatientQueue, "PAT1")
		return nil
	})
	assert.True(t, apperror.IsNotFound(err))
}

func TestMutateErrorDiscardsChanges(t *testing.T) {
	ctx := context.Background()
	repo := newDoctorRepo(t)
	boom := errors.New("boom")

	err := repo.Mutate(ctx, "DOC1", func(d *model.Doctor) error {
		d.PatientQueue = append(d.PatientQueue, "PAT1")
		return boom
	})
	require.ErrorIs(t, err, boom)

	doctor, err := repo.Get(ctx, "DOC1")
	require.NoError(t, err)
	assert.Empty(t, doctor.PatientQueue)
}
