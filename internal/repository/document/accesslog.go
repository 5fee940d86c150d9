package document

import (
	"context"

	"github.com/google/uuid"

	"github.com/healthkey/healthkey-api/internal/model"
	"github.com/healthkey/healthkey-api/internal/repository"
	"github.com/healthkey/healthkey-api/internal/store"
)

type accessLogRepository struct {
	store store.Store
}

func NewAccessLogRepository(s store.Store) repository.AccessLogRepository {
	return &accessLogRepository{store: s}
}

func (r *accessLogRepository) Append(ctx context.Context, entry model.AccessLogEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	return r.store.Update(ctx, func(doc *model.Document) error {
		doc.AccessLogs = append(doc.AccessLogs, entry)
		return nil
	})
}

// List returns the newest entries first, at most limit of them (0 means
// all).
func (r *accessLogRepository) List(ctx context.Context, limit int) ([]model.AccessLogEntry, error) {
	doc, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]model.AccessLogEntry, 0, len(doc.AccessLogs))
	for i := len(doc.AccessLogs) - 1; i >= 0; i-- {
		entries = append(entries, doc.AccessLogs[i])
		if limit > 0 && len(entries) == limit {
			break
		}
	}
	return entries, nil
}
