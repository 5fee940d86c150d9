package document

import (
	"context"
	"time"

	"github.com/healthkey/healthkey-api/internal/model"
	"github.com/healthkey/healthkey-api/internal/repository"
	"github.com/healthkey/healthkey-api/internal/store"
	"github.com/healthkey/healthkey-api/pkg/apperror"
)

type patientRepository struct {
	store store.Store
}

func NewPatientRepository(s store.Store) repository.PatientRepository {
	return &patientRepository{store: s}
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	patient.CreatedAt = time.Now()
	patient.UpdatedAt = patient.CreatedAt
	if patient.MedicalHistory == nil {
		patient.MedicalHistory = []model.MedicalHistoryEntry{}
	}
	return r.store.Update(ctx, func(doc *model.Document) error {
		doc.Patients[patient.ID] = patient
		return nil
	})
}

func (r *patientRepository) Get(ctx context.Context, id string) (*model.Patient, error) {
	doc, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	patient, ok := doc.Patients[id]
	if !ok {
		return nil, apperror.NotFound("patient")
	}
	return patient, nil
}

func (r *patientRepository) Mutate(ctx context.Context, id string, fn func(*model.Patient) error) error {
	return r.store.Update(ctx, func(doc *model.Document) error {
		patient, ok := doc.Patients[id]
		if !ok {
			return apperror.NotFound("patient")
		}
		if err := fn(patient); err != nil {
			return err
		}
		patient.UpdatedAt = time.Now()
		return nil
	})
}
