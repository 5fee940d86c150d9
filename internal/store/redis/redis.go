// Package redis keeps the document under the fixed storage key in Redis.
// Save runs a WATCH/MULTI compare-and-set against the stored version.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/healthkey/healthkey-api/internal/model"
	"github.com/healthkey/healthkey-api/internal/store"
)

type Config struct {
	URL          string
	MaxRetries   int
	RetryBackoff time.Duration
	PoolSize     int
	MinIdleConns int
}

type Store struct {
	client *redis.Client
}

func New(cfg Config) (*Store, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opts.MaxRetries = cfg.MaxRetries
	opts.MinRetryBackoff = cfg.RetryBackoff
	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Store{client: client}, nil
}

func (s *Store) Load(ctx context.Context) (*model.Document, error) {
	data, err := s.client.Get(ctx, store.Key).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.NewDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return decode(data)
}

func (s *Store) Save(ctx context.Context, doc *model.Document) error {
	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		current := int64(0)
		data, err := tx.Get(ctx, store.Key).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("failed to read document: %w", err)
		}
		if err == nil {
			stored, err := decode(data)
			if err != nil {
				return err
			}
			current = stored.Version
		}
		if doc.Version != current {
			return store.ErrVersionConflict
		}

		doc.Version++
		payload, err := json.Marshal(doc)
		if err != nil {
			doc.Version--
			return fmt.Errorf("failed to marshal document: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, store.Key, payload, 0)
			return nil
		})
		if err != nil {
			doc.Version--
		}
		return err
	}, store.Key)

	// A concurrent write under WATCH surfaces as TxFailedErr.
	if errors.Is(err, redis.TxFailedErr) {
		return store.ErrVersionConflict
	}
	return err
}

func (s *Store) Update(ctx context.Context, fn func(*model.Document) error) error {
	return store.RunUpdate(ctx, s, fn)
}

func (s *Store) Close() error {
	return s.client.Close()
}

func decode(data []byte) (*model.Document, error) {
	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	doc.Normalize()
	return &doc, nil
}
