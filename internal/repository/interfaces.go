package repository

import (
	"context"

	"github.com/healthkey/healthkey-api/internal/model"
)

// All repository interfaces in one file. Mutations go through Mutate:
// the callback runs against the freshly loaded document inside the
// store's conflict-retried update cycle, so a concurrent write never
// gets clobbered by a stale snapshot taken via Get.
type (
	// UserRepository handles portal logins
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id string) (*model.User, error)
		// GetByLogin matches email, or mobile when role is patient.
		GetByLogin(ctx context.Context, identifier, role string) (*model.User, error)
		Mutate(ctx context.Context, id string, fn func(*model.User) error) error
		ListByRoleAndStatus(ctx context.Context, role, status string) ([]*model.User, error)
	}

	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id string) (*model.Patient, error)
		Mutate(ctx context.Context, id string, fn func(*model.Patient) error) error
	}

	DoctorRepository interface {
		Create(ctx context.Context, doctor *model.Doctor) error
		Get(ctx context.Context, id string) (*model.Doctor, error)
		Mutate(ctx context.Context, id string, fn func(*model.Doctor) error) error
		ListByHospital(ctx context.Context, hospitalID string) ([]*model.Doctor, error)
	}

	HospitalRepository interface {
		Create(ctx context.Context, hospital *model.Hospital) error
		Get(ctx context.Context, id string) (*model.Hospital, error)
		Mutate(ctx context.Context, id string, fn func(*model.Hospital) error) error
		List(ctx context.Context) ([]*model.Hospital, error)
	}

	NfcCardRepository interface {
		Create(ctx context.Context, card *model.NfcCard) error
		Get(ctx context.Context, id string) (*model.NfcCard, error)
		Mutate(ctx context.Context, id string, fn func(*model.NfcCard) error) error
	}

	ConsultationRepository interface {
		Create(ctx context.Context, consultation *model.Consultation) error
		Get(ctx context.Context, id string) (*model.Consultation, error)
		Mutate(ctx context.Context, id string, fn func(*model.Consultation) error) error
		ListByDoctor(ctx context.Context, doctorID string) ([]*model.Consultation, error)
		ListByHospital(ctx context.Context, hospitalID string) ([]*model.Consultation, error)
		List(ctx context.Context) ([]*model.Consultation, error)
	}

	// AccessLogRepository is append-only
	AccessLogRepository interface {
		Append(ctx context.Context, entry model.AccessLogEntry) error
		List(ctx context.Context, limit int) ([]model.AccessLogEntry, error)
	}

	EmergencyRepository interface {
		Create(ctx context.Context, grant *model.EmergencyAccessGrant) error
		Get(ctx context.Context, id string) (*model.EmergencyAccessGrant, error)
		ListByPatient(ctx context.Context, patientID string) ([]*model.EmergencyAccessGrant, error)
	}

	AnalyticsRepository interface {
		Get(ctx context.Context) (*model.AnalyticsSnapshot, error)
		Save(ctx context.Context, snapshot *model.AnalyticsSnapshot) error
	}
)
