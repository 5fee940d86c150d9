package document

import (
	"context"
	"time"

	"github.com/healthkey/healthkey-api/internal/model"
	"github.com/healthkey/healthkey-api/internal/repository"
	"github.com/healthkey/healthkey-api/internal/store"
	"github.com/healthkey/healthkey-api/pkg/apperror"
)

type analyticsRepository struct {
	store store.Store
}

func NewAnalyticsRepository(s store.Store) repository.AnalyticsRepository {
	return &analyticsRepository{store: s}
}

func (r *analyticsRepository) Get(ctx context.Context) (*model.AnalyticsSnapshot, error) {
	doc, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if doc.Analytics == nil {
		return nil, apperror.NotFound("analytics snapshot")
	}
	return doc.Analytics, nil
}

func (r *analyticsRepository) Save(ctx context.Context, snapshot *model.AnalyticsSnapshot) error {
	snapshot.UpdatedAt = time.Now()
	return r.store.Update(ctx, func(doc *model.Document) error {
		doc.Analytics = snapshot
		return nil
	})
}
