package document

import (
	"context"
	"sort"
	"time"

	"github.com/healthkey/healthkey-api/internal/model"
	"github.com/healthkey/healthkey-api/internal/repository"
	"github.com/healthkey/healthkey-api/internal/store"
	"github.com/healthkey/healthkey-api/pkg/apperror"
)

type doctorRepository struct {
	store store.Store
}

func NewDoctorRepository(s store.Store) repository.DoctorRepository {
	return &doctorRepository{store: s}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	doctor.CreatedAt = time.Now()
	doctor.UpdatedAt = doctor.CreatedAt
	if doctor.PatientQueue == nil {
		doctor.PatientQueue = []string{}
	}
	if doctor.AssignedPatients == nil {
		doctor.AssignedPatients = []string{}
	}
	return r.store.Update(ctx, func(doc *model.Document) error {
		doc.Doctors[doctor.ID] = doctor
		if doctor.HospitalID != "" {
			if hospital, ok := doc.Hospitals[doctor.HospitalID]; ok {
				hospital.Doctors = appendUnique(hospital.Doctors, doctor.ID)
			}
		}
		return nil
	})
}

func (r *doctorRepository) Get(ctx context.Context, id string) (*model.Doctor, error) {
	doc, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	doctor, ok := doc.Doctors[id]
	if !ok {
		return nil, apperror.NotFound("doctor")
	}
	return doctor, nil
}

// Mutate applies fn to the doctor as loaded inside the update cycle,
// never to a snapshot the caller may be holding.
func (r *doctorRepository) Mutate(ctx context.Context, id string, fn func(*model.Doctor) error) error {
	return r.store.Update(ctx, func(doc *model.Document) error {
		doctor, ok := doc.Doctors[id]
		if !ok {
			return apperror.NotFound("doctor")
		}
		if err := fn(doctor); err != nil {
			return err
		}
		doctor.UpdatedAt = time.Now()
		return nil
	})
}

func (r *doctorRepository) ListByHospital(ctx context.Context, hospitalID string) ([]*model.Doctor, error) {
	doc, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	var doctors []*model.Doctor
	for _, doctor := range doc.Doctors {
		if doctor.HospitalID == hospitalID {
			doctors = append(doctors, doctor)
		}
	}
	sort.Slice(doctors, func(i, j int) bool { return doctors[i].ID < doctors[j].ID })
	return doctors, nil
}

func appendUnique(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}
