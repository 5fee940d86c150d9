// Package file persists the document as one JSON file, written through a
// temp file and rename so a crash never leaves a half-written store.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/healthkey/healthkey-api/internal/model"
	"github.com/healthkey/healthkey-api/internal/store"
)

type Store struct {
	mu   sync.Mutex
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Load(ctx context.Context) (*model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *Store) Save(ctx context.Context, doc *model.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.read()
	if err != nil {
		return err
	}
	if doc.Version != current.Version {
		return store.ErrVersionConflict
	}
	doc.Version++

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		doc.Version--
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".healthkey-*")
	if err != nil {
		doc.Version--
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		doc.Version--
		return fmt.Errorf("failed to write document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		doc.Version--
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		doc.Version--
		return fmt.Errorf("failed to replace document file: %w", err)
	}
	return nil
}

func (s *Store) Update(ctx context.Context, fn func(*model.Document) error) error {
	return store.RunUpdate(ctx, s, fn)
}

func (s *Store) read() (*model.Document, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return model.NewDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read document file: %w", err)
	}

	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document file: %w", err)
	}
	doc.Normalize()
	return &doc, nil
}
