package consultation

import (
	"context"
	"fmt"
	"time"

	"github.com/healthkey/healthkey-api/internal/model"
	"github.com/healthkey/healthkey-api/internal/repository"
	"github.com/healthkey/healthkey-api/pkg/apperror"
)

type Service struct {
	consultations repository.ConsultationRepository
	patients      repository.PatientRepository
	doctors       repository.DoctorRepository
	accessLog     repository.AccessLogRepository
}

func NewService(
	consultations repository.ConsultationRepository,
	patients repository.PatientRepository,
	doctors repository.DoctorRepository,
	accessLog repository.AccessLogRepository,
) *Service {
	return &Service{
		consultations: consultations,
		patients:      patients,
		doctors:       doctors,
		accessLog:     accessLog,
	}
}

// Complete transitions a waiting consultation to completed, prepends the
// derived history entry to the patient record, and takes the patient off
// the doctor's queue. The patient stays on the doctor's panel
// (AssignedPatients). Waiting is the only state this accepts; completed
// is terminal.
func (s *Service) Complete(ctx context.Context, consultationID string, req *model.CompleteConsultationRequest) (*model.Consultation, error) {
	now := time.Now()

	// The terminal-state check lives inside the mutation so two racing
	// completions cannot both pass a check made on a stale snapshot.
	var consultation *model.Consultation
	err := s.consultations.Mutate(ctx, consultationID, func(c *model.Consultation) error {
		if c.Status == model.ConsultationCompleted {
			return apperror.Conflict("consultation already completed", nil)
		}
		c.Status = model.ConsultationCompleted
		c.CompletedAt = &now
		c.Diagnosis = req.Diagnosis
		c.Prescription = req.Prescription
		c.Notes = req.Notes
		consultation = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	entry := model.MedicalHistoryEntry{
		Date:         now,
		DoctorID:     consultation.DoctorID,
		HospitalID:   consultation.HospitalID,
		Diagnosis:    req.Diagnosis,
		Prescription: req.Prescription,
		Notes:        req.Notes,
	}
	err = s.patients.Mutate(ctx, consultation.PatientID, func(patient *model.Patient) error {
		patient.MedicalHistory = append([]model.MedicalHistoryEntry{entry}, patient.MedicalHistory...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update patient history: %w", err)
	}

	err = s.doctors.Mutate(ctx, consultation.DoctorID, func(doctor *model.Doctor) error {
		doctor.PatientQueue = remove(doctor.PatientQueue, consultation.PatientID)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update doctor queue: %w", err)
	}

	// The consultation is already completed; an unlogged entry is not
	// worth failing the request over.
	_ = s.accessLog.Append(ctx, model.AccessLogEntry{
		Timestamp: now,
		ActorID:   consultation.DoctorID,
		Action:    fmt.Sprintf("completed consultation for patient %s", consultation.PatientID),
	})

	return consultation, nil
}

// Get returns a single consultation.
func (s *Service) Get(ctx context.Context, id string) (*model.Consultation, error) {
	return s.consultations.Get(ctx, id)
}

// ListForDoctor returns the doctor's consultations, oldest first.
func (s *Service) ListForDoctor(ctx context.Context, doctorID string) ([]*model.Consultation, error) {
	return s.consultations.ListByDoctor(ctx, doctorID)
}

func remove(ids []string, id string) []string {
	out := ids[:0]
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}
