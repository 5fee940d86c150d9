package queue

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
	svc     *Service
	doctors repository.DoctorRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memory.New()
	patients := document.NewPatientRepository(s)
	doctors := document.NewDoctorRepository(s)
	hospitals := document.NewHospitalRepository(s)
	consultations := document.NewConsultationRepository(s)

	ctx := context.Background()
	require.NoError(t, hospitals.Create(ctx, &model.Hospital{Base: model.Base{ID: "HSP1"}, Name: "City Care"}))
	require.NoError(t, doctors.Create(ctx, &model.Doctor{
		Base:            model.Base{ID: "DOC1"},
		Name:            "Dr. Rao",
		HospitalID:      "HSP1",
		ConsultationFee: 500,
	}))
	for _, id := range []string{"PAT1", "PAT2", "PAT3"} {
		require.NoError(t, patients.Create(ctx, &model.Patient{Base: model.Base{ID: id}}))
	}

	return &fixture{
		svc:     NewService(patients, doctors, hospitals, consultations, NewLinearEstimator(15)),
		doctors: doctors,
	}
}

func (f *fixture) assign(t *testing.T, patientID, priority string) *model.Assignment {
	t.Helper()
	assignment, err := f.svc.AssignPatient(context.Background(), &model.AssignPatientRequest{
		PatientID:  patientID,
		DoctorID:   "DOC1",
		HospitalID: "HSP1",
		Priority:   priority,
	})
	require.NoError(t, err)
	return assignment
}

func TestAssignPatientAppendsToQueue(t *testing.T) {
	f := newFixture(t)

	first := f.assign(t, "PAT1", "")
	assert.Equal(t, 1, first.Consultation.TokenNumber)
	assert.Equal(t, 1, first.QueuePosition)
	assert.Equal(t, 15, first.EstimatedWaitMins)
	assert.Equal(t, model.ConsultationWaiting, first.Consultation.Status)
	assert.Equal(t, model.PriorityNormal, first.Consultation.Priority)

	second := f.assign(t, "PAT2", "")
	assert.Equal(t, 2, second.Consultation.TokenNumber)
	assert.Equal(t, 2, second.QueuePosition)
	assert.Equal(t, 30, second.EstimatedWaitMins)

	doctor, err := f.doctors.Get(context.Background(), "DOC1")
	require.NoError(t, err)
	assert.Equal(t, []string{"PAT1", "PAT2"}, doctor.PatientQueue)
	assert.Equal(t, []string{"PAT1", "PAT2"}, doctor.AssignedPatients)
}

func TestAssignPatientEmergencyJumpsQueue(t *testing.T) {
	f := newFixture(t)

	f.assign(t, "PAT1", "")
	f.assign(t, "PAT2", "")

	emergency := f.assign(t, "PAT3", model.PriorityEmergency)
	assert.Equal(t, 1, emergency.QueuePosition)
	assert.Equal(t, 3, emergency.Consultation.TokenNumber)
	assert.Equal(t, model.PriorityEmergency, emergency.Consultation.Priority)

	doctor, err := f.doctors.Get(context.Background(), "DOC1")
	require.NoError(t, err)
	assert.Equal(t, []string{"PAT3", "PAT1", "PAT2"}, doctor.PatientQueue)
}

func TestAssignPatientAlreadyQueuedNotDuplicated(t *testing.T) {
	f := newFixture(t)

	f.assign(t, "PAT1", "")
	again := f.assign(t, "PAT1", "")

	doctor, err := f.doctors.Get(context.Background(), "DOC1")
	require.NoError(t, err)
	assert.Equal(t, []string{"PAT1"}, doctor.PatientQueue)
	assert.Equal(t, []string{"PAT1"}, doctor.AssignedPatients)

	// A fresh consultation is still opened for the repeat visit.
	assert.Equal(t, 1, again.Consultation.TokenNumber)
	assert.Equal(t, 1, again.QueuePosition)
}

func TestAssignPatientUnknownDoctor(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.AssignPatient(context.Background(), &model.AssignPatientRequest{
		PatientID:  "PAT1",
		DoctorID:   "DOC404",
		HospitalID: "HSP1",
	})
	assert.True(t, apperror.IsNotFound(err))
}

func TestAssignPatientUnknownPatient(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.AssignPatient(context.Background(), &model.AssignPatientRequest{
		PatientID:  "PAT404",
		DoctorID:   "DOC1",
		HospitalID: "HSP1",
	})
	assert.True(t, apperror.IsNotFound(err))

	doctor, err := f.doctors.Get(context.Background(), "DOC1")
	require.NoError(t, err)
	assert.Empty(t, doctor.PatientQueue)
}

func TestDoctorQueueOrder(t *testing.T) {
	f := newFixture(t)

	f.assign(t, "PAT1", "")
	f.assign(t, "PAT2", "")
	f.assign(t, "PAT3", model.PriorityEmergency)

	patients, err := f.svc.DoctorQueue(context.Background(), "DOC1")
	require.NoError(t, err)
	require.Len(t, patients, 3)
	assert.Equal(t, "PAT3", patients[0].ID)
	assert.Equal(t, "PAT1", patients[1].ID)
	assert.Equal(t, "PAT2", patients[2].ID)
}

func TestLinearEstimatorDefaults(t *testing.T) {
	assert.Equal(t, 15, NewLinearEstimator(0).MinutesPerPatient)
	assert.Equal(t, 45, NewLinearEstimator(15).Estimate(3))
	assert.Equal(t, 0, NewLinearEstimator(15).Estimate(0))
}
