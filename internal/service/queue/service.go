package queue

import (
	"context"
	"fmt"

	"github.com/healthkey/healthkey-api/internal/model"
	"github.com/healthkey/healthkey-api/internal/repository"
	"github.com/healthkey/healthkey-api/pkg/apperror"
	"github.com/healthkey/healthkey-api/pkg/idgen"
)

type Service struct {
	patients      repository.PatientRepository
	doctors       repository.DoctorRepository
	hospitals     repository.HospitalRepository
	consultations repository.ConsultationRepository
	estimator     WaitEstimator
}

func NewService(
	patients repository.PatientRepository,
	doctors repository.DoctorRepository,
	hospitals repository.HospitalRepository,
	consultations repository.ConsultationRepository,
	estimator WaitEstimator,
) *Service {
	return &Service{
		patients:      patients,
		doctors:       doctors,
		hospitals:     hospitals,
		consultations: consultations,
		estimator:     estimator,
	}
}

// AssignPatient puts the patient on the doctor's waiting queue and opens
// a consultation. Emergency priority jumps the queue head; everything
// else appends. A patient already waiting is not queued twice, but a new
// consultation is still opened, matching the original booking behavior.
// The token number is the queue length right after insertion and is
// never renumbered.
func (s *Service) AssignPatient(ctx context.Context, req *model.AssignPatientRequest) (*model.Assignment, error) {
	if _, err := s.doctors.Get(ctx, req.DoctorID); err != nil {
		return nil, err
	}
	if _, err := s.patients.Get(ctx, req.PatientID); err != nil {
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = model.PriorityNormal
	}

	err := s.patients.Mutate(ctx, req.PatientID, func(patient *model.Patient) error {
		patient.AssignedDoctor = req.DoctorID
		patient.CurrentHospital = req.HospitalID
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}

	// Queue state is read off the doctor inside the mutation so a retry
	// after a version conflict recomputes it against the winning write.
	var queueLength, position int
	err = s.doctors.Mutate(ctx, req.DoctorID, func(doctor *model.Doctor) error {
		if !doctor.InQueue(req.PatientID) {
			if priority == model.PriorityEmergency {
				doctor.PatientQueue = append([]string{req.PatientID}, doctor.PatientQueue...)
			} else {
				doctor.PatientQueue = append(doctor.PatientQueue, req.PatientID)
			}
		}
		doctor.AssignedPatients = appendUnique(doctor.AssignedPatients, req.PatientID)
		queueLength = len(doctor.PatientQueue)
		position = doctor.QueuePosition(req.PatientID)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update doctor queue: %w", err)
	}

	// The hospital roster is best effort; assignment only requires the
	// doctor and patient to exist.
	err = s.hospitals.Mutate(ctx, req.HospitalID, func(hospital *model.Hospital) error {
		hospital.CurrentPatients = appendUnique(hospital.CurrentPatients, req.PatientID)
		return nil
	})
	if err != nil && !apperror.IsNotFound(err) {
		return nil, fmt.Errorf("failed to update hospital roster: %w", err)
	}

	wait := s.estimator.Estimate(queueLength)

	consultation := &model.Consultation{
		Base:              model.Base{ID: idgen.New("CON")},
		PatientID:         req.PatientID,
		DoctorID:          req.DoctorID,
		HospitalID:        req.HospitalID,
		Status:            model.ConsultationWaiting,
		Priority:          priority,
		TokenNumber:       queueLength,
		EstimatedWaitMins: wait,
	}
	if err := s.consultations.Create(ctx, consultation); err != nil {
		return nil, fmt.Errorf("failed to create consultation: %w", err)
	}

	return &model.Assignment{
		Consultation:      consultation,
		QueuePosition:     position,
		EstimatedWaitMins: wait,
	}, nil
}

// DoctorQueue returns the waiting patients in queue order.
func (s *Service) DoctorQueue(ctx context.Context, doctorID string) ([]*model.Patient, error) {
	doctor, err := s.doctors.Get(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	queue := make([]*model.Patient, 0, len(doctor.PatientQueue))
	for _, patientID := range doctor.PatientQueue {
		patient, err := s.patients.Get(ctx, patientID)
		if err != nil {
			if apperror.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		queue = append(queue, patient)
	}
	return queue, nil
}

func appendUnique(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}
