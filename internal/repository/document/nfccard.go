package document

import (
	"context"
	"time"

	"github.com/healthkey/healthkey-api/internal/model"
	"github.com/healthkey/healthkey-api/internal/repository"
	"github.com/healthkey/healthkey-api/internal/store"
	"github.com/healthkey/healthkey-api/pkg/apperror"
)

type nfcCardRepository struct {
	store store.Store
}

func NewNfcCardRepository(s store.Store) repository.NfcCardRepository {
	return &nfcCardRepository{store: s}
}

func (r *nfcCardRepository) Create(ctx context.Context, card *model.NfcCard) error {
	card.CreatedAt = time.Now()
	card.UpdatedAt = card.CreatedAt
	return r.store.Update(ctx, func(doc *model.Document) error {
		doc.NfcCards[card.ID] = card
		return nil
	})
}

func (r *nfcCardRepository) Get(ctx context.Context, id string) (*model.NfcCard, error) {
	doc, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	card, ok := doc.NfcCards[id]
	if !ok {
		return nil, apperror.NotFound("nfc card")
	}
	return card, nil
}

func (r *nfcCardRepository) Mutate(ctx context.Context, id string, fn func(*model.NfcCard) error) error {
	return r.store.Update(ctx, func(doc *model.Document) error {
		card, ok := doc.NfcCards[id]
		if !ok {
			return apperror.NotFound("nfc card")
		}
		if err := fn(card); err != nil {
			return err
		}
		card.UpdatedAt = time.Now()
		return nil
	})
}
