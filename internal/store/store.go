// Package store holds the record-store contract: the whole document is
// loaded and saved wholesale under a single storage key, with an
// optimistic version check on save so two clients sharing the store
// cannot silently overwrite each other.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/healthkey/healthkey-api/internal/model"
)

// Key is the fixed storage key the document lives under.
const Key = "healthkey_data"

// ErrVersionConflict is returned by Save when the stored document moved
// since the caller loaded it.
var ErrVersionConflict = errors.New("store: version conflict")

const maxUpdateRetries = 5

// Store persists the full record document. Load returns the default
// empty document when nothing has been saved yet. Save requires
// doc.Version to match the stored version and bumps it on success.
// Update runs a load-mutate-save cycle, retrying on version conflicts.
type Store interface {
	Load(ctx context.Context) (*model.Document, error)
	Save(ctx context.Context, doc *model.Document) error
	Update(ctx context.Context, fn func(*model.Document) error) error
}

// RunUpdate is the shared Update implementation used by the drivers.
func RunUpdate(ctx context.Context, s Store, fn func(*model.Document) error) error {
	var lastErr error
	for i := 0; i < maxUpdateRetries; i++ {
		doc, err := s.Load(ctx)
		if err != nil {
			return err
		}
		if err := fn(doc); err != nil {
			return err
		}
		err = s.Save(ctx, doc)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrVersionConflict) {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("update gave up after %d conflicts: %w", maxUpdateRetries, lastErr)
}

// Clone deep-copies a document through its JSON form. The document is
// JSON-serializable by definition, so this is the canonical copy.
func Clone(doc *model.Document) (*model.Document, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	var out model.Document
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}
	out.Normalize()
	return &out, nil
}
