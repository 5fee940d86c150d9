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

type consultationRepository struct {
	store store.Store
}

func NewConsultationRepository(s store.Store) repository.ConsultationRepository {
	return &consultationRepository{store: s}
}

func (r *consultationRepository) Create(ctx context.Context, consultation *model.Consultation) error {
	consultation.CreatedAt = time.Now()
	consultation.UpdatedAt = consultation.CreatedAt
	return r.store.Update(ctx, func(doc *model.Document) error {
		doc.Consultations[consultation.ID] = consultation
		return nil
	})
}

func (r *consultationRepository) Get(ctx context.Context, id string) (*model.Consultation, error) {
	doc, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	consultation, ok := doc.Consultations[id]
	if !ok {
		return nil, apperror.NotFound("consultation")
	}
	return consultation, nil
}

func (r *consultationRepository) Mutate(ctx context.Context, id string, fn func(*model.Consultation) error) error {
	return r.store.Update(ctx, func(doc *model.Document) error {
		consultation, ok := doc.Consultations[id]
		if !ok {
			return apperror.NotFound("consultation")
		}
		if err := fn(consultation); err != nil {
			return err
		}
		consultation.UpdatedAt = time.Now()
		return nil
	})
}

func (r *consultationRepository) ListByDoctor(ctx context.Context, doctorID string) ([]*model.Consultation, error) {
	return r.list(ctx, func(c *model.Consultation) bool { return c.DoctorID == doctorID })
}

func (r *consultationRepository) ListByHospital(ctx context.Context, hospitalID string) ([]*model.Consultation, error) {
	return r.list(ctx, func(c *model.Consultation) bool { return c.HospitalID == hospitalID })
}

func (r *consultationRepository) List(ctx context.Context) ([]*model.Consultation, error) {
	return r.list(ctx, func(*model.Consultation) bool { return true })
}

func (r *consultationRepository) list(ctx context.Context, keep func(*model.Consultation) bool) ([]*model.Consultation, error) {
	doc, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	var consultations []*model.Consultation
	for _, consultation := range doc.Consultations {
		if keep(consultation) {
			consultations = append(consultations, consultation)
		}
	}
	sort.Slice(consultations, func(i, j int) bool {
		return consultations[i].CreatedAt.Before(consultations[j].CreatedAt)
	})
	return consultations, nil
}
