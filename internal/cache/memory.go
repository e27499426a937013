package cache

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/coocood/freecache"
)

const DefaultMemoryCacheSize = 64 * 1024 * 1024

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps entries in a freecache ring buffer. freecache rejects entries larger
// than 1/1024 of its size (16 KiB for a 16 MiB cache, less than a year of a daily log),
// so those are kept aside in a map with the same expiry rules.
type MemoryStore struct {
	cache *freecache.Cache
	timer freecache.Timer

	mu    sync.Mutex
	large map[string]largeEntry
}

type largeEntry struct {
	val []byte
	// unix seconds, 0 never expires
	expireAt uint32
}

func NewMemoryStore(size int) *MemoryStore {
	return NewMemoryStoreWithTimer(size, nil)
}

// NewMemoryStoreWithTimer lets the caller drive expiry, mostly for tests. A nil timer uses the wall clock.
func NewMemoryStoreWithTimer(size int, timer freecache.Timer) *MemoryStore {
	if size <= 0 {
		size = DefaultMemoryCacheSize
	}

	s := &MemoryStore{
		timer: timer,
		large: make(map[string]largeEntry),
	}
	if timer == nil {
		s.cache = freecache.NewCache(size)
	} else {
		s.cache = freecache.NewCacheCustomTimer(size, timer)
	}
	return s
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	val, err := s.cache.Get([]byte(key))
	if err == nil {
		return val, nil
	}
	if !errors.Is(err, freecache.ErrNotFound) {
		return nil, fmt.Errorf("freecache get %s: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.large[key]
	if !ok {
		return nil, ErrMiss
	}
	if entry.expireAt != 0 && entry.expireAt <= s.now() {
		delete(s.large, key)
		return nil, ErrMiss
	}
	return entry.val, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	expire := expireSeconds(ttl)
	err := s.cache.Set([]byte(key), val, expire)

	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case err == nil:
		delete(s.large, key)
		return nil
	case errors.Is(err, freecache.ErrLargeEntry):
		// an older small value must not shadow this one
		s.cache.Del([]byte(key))

		entry := largeEntry{val: append([]byte(nil), val...)}
		if expire > 0 {
			entry.expireAt = s.now() + uint32(expire)
		}
		s.large[key] = entry
		return nil
	default:
		return fmt.Errorf("freecache set %s (%d bytes): %w", key, len(val), err)
	}
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.cache.Del([]byte(key))

	s.mu.Lock()
	delete(s.large, key)
	s.mu.Unlock()

	return nil
}

func (s *MemoryStore) now() uint32 {
	if s.timer != nil {
		return s.timer.Now()
	}
	return uint32(time.Now().Unix())
}

// freecache counts in whole seconds and treats 0 as never expiring
func expireSeconds(ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}
	return int(math.Ceil(ttl.Seconds()))
}
