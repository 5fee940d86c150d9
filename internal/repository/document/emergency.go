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

type emergencyRepository struct {
	store store.Store
}

func NewEmergencyRepository(s store.Store) repository.EmergencyRepository {
	return &emergencyRepository{store: s}
}

func (r *emergencyRepository) Create(ctx context.Context, grant *model.EmergencyAccessGrant) error {
	// The grant service stamps CreatedAt together with ExpiresAt; only
	// fill it in when the caller left it zero.
	if grant.CreatedAt.IsZero() {
		grant.CreatedAt = time.Now()
	}
	if grant.UpdatedAt.IsZero() {
		grant.UpdatedAt = grant.CreatedAt
	}
	return r.store.Update(ctx, func(doc *model.Document) error {
		doc.EmergencyAccess[grant.ID] = grant
		return nil
	})
}

func (r *emergencyRepository) Get(ctx context.Context, id string) (*model.EmergencyAccessGrant, error) {
	doc, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	grant, ok := doc.EmergencyAccess[id]
	if !ok {
		return nil, apperror.NotFound("emergency access grant")
	}
	return grant, nil
}

func (r *emergencyRepository) ListByPatient(ctx context.Context, patientID string) ([]*model.EmergencyAccessGrant, error) {
	doc, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	var grants []*model.EmergencyAccessGrant
	for _, grant := range doc.EmergencyAccess {
		if grant.PatientID == patientID {
			grants = append(grants, grant)
		}
	}
	sort.Slice(grants, func(i, j int) bool {
		return grants[i].CreatedAt.Before(grants[j].CreatedAt)
	})
	return grants, nil
}
