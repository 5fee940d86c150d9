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

type hospitalRepository struct {
	store store.Store
}

func NewHospitalRepository(s store.Store) repository.HospitalRepository {
	return &hospitalRepository{store: s}
}

func (r *hospitalRepository) Create(ctx context.Context, hospital *model.Hospital) error {
	hospital.CreatedAt = time.Now()
	hospital.UpdatedAt = hospital.CreatedAt
	if hospital.Doctors == nil {
		hospital.Doctors = []string{}
	}
	if hospital.CurrentPatients == nil {
		hospital.CurrentPatients = []string{}
	}
	return r.store.Update(ctx, func(doc *model.Document) error {
		doc.Hospitals[hospital.ID] = hospital
		return nil
	})
}

func (r *hospitalRepository) Get(ctx context.Context, id string) (*model.Hospital, error) {
	doc, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	hospital, ok := doc.Hospitals[id]
	if !ok {
		return nil, apperror.NotFound("hospital")
	}
	return hospital, nil
}

func (r *hospitalRepository) Mutate(ctx context.Context, id string, fn func(*model.Hospital) error) error {
	return r.store.Update(ctx, func(doc *model.Document) error {
		hospital, ok := doc.Hospitals[id]
		if !ok {
			return apperror.NotFound("hospital")
		}
		if err := fn(hospital); err != nil {
			return err
		}
		hospital.UpdatedAt = time.Now()
		return nil
	})
}

func (r *hospitalRepository) List(ctx context.Context) ([]*model.Hospital, error) {
	doc, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	hospitals := make([]*model.Hospital, 0, len(doc.Hospitals))
	for _, hospital := range doc.Hospitals {
		hospitals = append(hospitals, hospital)
	}
	sort.Slice(hospitals, func(i, j int) bool { return hospitals[i].ID < hospitals[j].ID })
	return hospitals, nil
}
