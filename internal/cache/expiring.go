package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"
	log "github.com/sirupsen/logrus"
)

type FetchFunc[T any] func(ctx context.Context) (T, error)

// Expiring caches the result of a fetch function under one key for a fixed TTL.
// Values are stored as zstd compressed JSON. A failed fetch is never cached.
type Expiring[T any] struct {
	store Store
	key   string
	ttl   time.Duration
	fetch FetchFunc[T]

	// serializes the miss path, so concurrent callers refresh once
	mu      sync.Mutex
	encoder *zstd.Encoder
	decoder *zstd.Decoder

	onStoreError func(err error)
}

func NewExpiring[T any](store Store, key string, ttl time.Duration, fetch FetchFunc[T]) (*Expiring[T], error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}

	return &Expiring[T]{
		store:   store,
		key:     key,
		ttl:     ttl,
		fetch:   fetch,
		encoder: encoder,
		decoder: decoder,
	}, nil
}

// SetStoreErrorHandler is called, under the miss lock, whenever a fetched value could not be
// stored. Such a value is still returned, but the next Get fetches again.
func (e *Expiring[T]) SetStoreErrorHandler(handler func(err error)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onStoreError = handler
}

func (e *Expiring[T]) TTL() time.Duration {
	return e.ttl
}

// Get returns the cached value while it is fresh, otherwise fetches and stores a new one.
// The bool reports whether the value came from the cache.
func (e *Expiring[T]) Get(ctx context.Context) (T, bool, error) {
	if val, ok := e.lookup(ctx); ok {
		return val, true, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// another caller may have refreshed while we waited
	if val, ok := e.lookup(ctx); ok {
		return val, true, nil
	}

	val, err := e.fetch(ctx)
	if err != nil {
		var zero T
		return zero, false, err
	}

	if err := e.put(ctx, val); err != nil {
		log.Errorf("cache %s: %s", e.key, err)
		if e.onStoreError != nil {
			e.onStoreError(err)
		}
	}

	return val, false, nil
}

func (e *Expiring[T]) put(ctx context.Context, val T) error {
	encoded, err := e.encode(val)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if err := e.store.Set(ctx, e.key, encoded, e.ttl); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	return nil
}

// Clear drops the cached value; the next Get fetches again.
func (e *Expiring[T]) Clear(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.store.Delete(ctx, e.key); err != nil {
		return fmt.Errorf("clear cache %s: %w", e.key, err)
	}
	return nil
}

func (e *Expiring[T]) lookup(ctx context.Context) (T, bool) {
	var val T

	raw, err := e.store.Get(ctx, e.key)
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			log.Errorf("cache %s: lookup: %s", e.key, err)
		}
		return val, false
	}

	decoded, err := e.decoder.DecodeAll(raw, nil)
	if err != nil {
		log.Errorf("cache %s: decompress: %s", e.key, err)
		return val, false
	}
	if err := json.Unmarshal(decoded, &val); err != nil {
		log.Errorf("cache %s: unmarshal: %s", e.key, err)
		return val, false
	}

	return val, true
}

func (e *Expiring[T]) encode(val T) ([]byte, error) {
	raw, err := json.Marshal(val)
	if err != nil {
		return nil, err
	}
	return e.encoder.EncodeAll(raw, nil), nil
}
