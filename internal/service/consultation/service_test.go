package consultation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthkey/healthkey-api/internal/model"
	"github.com/healthkey/healthkey-api/internal/repository"
	"github.com/healthkey/healthkey-api/internal/repository/document"
	"github.com/healthkey/healthkey-api/internal/store/memory"
	"github.com/healthkey/healthkey-api/pkg/apperror"
)

type fixture struct {
	svc           *Service
	patients      repository.PatientRepository
	doctors       repository.DoctorRepository
	consultations repository.ConsultationRepository
	accessLog     repository.AccessLogRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memory.New()
	f := &fixture{
		patients:      document.NewPatientRepository(s),
		doctors:       document.NewDoctorRepository(s),
		consultations: document.NewConsultationRepository(s),
		accessLog:     document.NewAccessLogRepository(s),
	}
	f.svc = NewService(f.consultations, f.patients, f.doctors, f.accessLog)

	ctx := context.Background()
	require.NoError(t, f.patients.Create(ctx, &model.Patient{Base: model.Base{ID: "PAT1"}, Name: "Asha"}))
	require.NoError(t, f.doctors.Create(ctx, &model.Doctor{
		Base:             model.Base{ID: "DOC1"},
		PatientQueue:     []string{"PAT1"},
		AssignedPatients: []string{"PAT1"},
	}))
	require.NoError(t, f.consultations.Create(ctx, &model.Consultation{
		Base:       model.Base{ID: "CON1"},
		PatientID:  "PAT1",
		DoctorID:   "DOC1",
		HospitalID: "HSP1",
		Status:     model.ConsultationWaiting,
		Priority:   model.PriorityNormal,
	}))
	return f
}

func TestCompleteConsultation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	completed, err := f.svc.Complete(ctx, "CON1", &model.CompleteConsultationRequest{
		Diagnosis:    "viral fever",
		Prescription: "paracetamol 500mg",
		Notes:        "review in 3 days",
	})
	require.NoError(t, err)
	assert.Equal(t, model.ConsultationCompleted, completed.Status)
	require.NotNil(t, completed.CompletedAt)
	assert.Equal(t, "viral fever", completed.Diagnosis)

	// History entry lands at the head of the patient record.
	patient, err := f.patients.Get(ctx, "PAT1")
	require.NoError(t, err)
	require.Len(t, patient.MedicalHistory, 1)
	assert.Equal(t, "viral fever", patient.MedicalHistory[0].Diagnosis)
	assert.Equal(t, "DOC1", patient.MedicalHistory[0].DoctorID)
	assert.Equal(t, "HSP1", patient.MedicalHistory[0].HospitalID)

	// Off the queue, still on the panel.
	doctor, err := f.doctors.Get(ctx, "DOC1")
	require.NoError(t, err)
	assert.Empty(t, doctor.PatientQueue)
	assert.Equal(t, []string{"PAT1"}, doctor.AssignedPatients)
}

func TestCompleteUnknownConsultation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Complete(ctx, "CON404", &model.CompleteConsultationRequest{
		Diagnosis:    "x",
		Prescription: "y",
	})
	assert.True(t, apperror.IsNotFound(err))

	// Nothing moved.
	doctor, err := f.doctors.Get(ctx, "DOC1")
	require.NoError(t, err)
	assert.Equal(t, []string{"PAT1"}, doctor.PatientQueue)
	patient, err := f.patients.Get(ctx, "PAT1")
	require.NoError(t, err)
	assert.Empty(t, patient.MedicalHistory)
}

func TestCompleteIsTerminal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := &model.CompleteConsultationRequest{Diagnosis: "viral fever", Prescription: "rest"}
	_, err := f.svc.Complete(ctx, "CON1", req)
	require.NoError(t, err)

	_, err = f.svc.Complete(ctx, "CON1", req)
	var ae *apperror.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperror.CodeConflict, ae.Code)

	// The second attempt must not add a duplicate history entry.
	patient, err := f.patients.Get(ctx, "PAT1")
	require.NoError(t, err)
	assert.Len(t, patient.MedicalHistory, 1)
}

func TestHistoryIsMostRecentFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Complete(ctx, "CON1", &model.CompleteConsultationRequest{
		Diagnosis:    "first visit",
		Prescription: "a",
	})
	require.NoError(t, err)

	require.NoError(t, f.consultations.Create(ctx, &model.Consultation{
		Base:      model.Base{ID: "CON2"},
		PatientID: "PAT1",
		DoctorID:  "DOC1",
		Status:    model.ConsultationWaiting,
	}))
	_, err = f.svc.Complete(ctx, "CON2", &model.CompleteConsultationRequest{
		Diagnosis:    "second visit",
		Prescription: "b",
	})
	require.NoError(t, err)

	patient, err := f.patients.Get(ctx, "PAT1")
	require.NoError(t, err)
	require.Len(t, patient.MedicalHistory, 2)
	assert.Equal(t, "second visit", patient.MedicalHistory[0].Diagnosis)
	assert.Equal(t, "first visit", patient.MedicalHistory[1].Diagnosis)
}
