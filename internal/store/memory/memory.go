// Package memory is the in-process store driver, used by tests and the
// default demo configuration.
package memory

import (
	"context"
	"sync"

	"github.com/healthkey/healthkey-api/internal/model"
	"github.com/healthkey/healthkey-api/internal/store"
)

type Store struct {
	mu  sync.Mutex
	doc *model.Document
}

func New() *Store {
	return &Store{doc: model.NewDocument()}
}

func (s *Store) Load(ctx context.Context) (*model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return store.Clone(s.doc)
}

func (s *Store) Save(ctx context.Context, doc *model.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if doc.Version != s.doc.Version {
		return store.ErrVersionConflict
	}
	doc.Version++

	copied, err := store.Clone(doc)
	if err != nil {
		doc.Version--
		return err
	}
	s.doc = copied
	return nil
}

func (s *Store) Update(ctx context.Context, fn func(*model.Document) error) error {
	return store.RunUpdate(ctx, s, fn)
}
