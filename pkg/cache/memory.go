package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/coocood/freecache"
)

// DefaultMemoryCacheSize is the ring buffer size used by NewMemoryCache.
// freecache rejects entries larger than 1/1024 of the buffer.
const DefaultMemoryCacheSize = 32 * 1024 * 1024

type wallClock struct{}

func (wallClock) Now() uint32 { return uint32(time.Now().Unix()) }

// MemoryCache is a process-local Cache backed by freecache, used when no
// Redis host is configured, and by tests.
type MemoryCache struct {
	// mu serializes read-modify-write operations.
	mu    sync.Mutex
	fc    *freecache.Cache
	clock freecache.Timer
}

func NewMemoryCache() *MemoryCache {
	return NewMemoryCacheSize(DefaultMemoryCacheSize)
}

func NewMemoryCacheSize(size int) *MemoryCache {
	return newMemoryCache(size, wallClock{})
}

func newMemoryCache(size int, clock freecache.Timer) *MemoryCache {
	return &MemoryCache{
		fc:    freecache.NewCacheCustomTimer(size, clock),
		clock: clock,
	}
}

func (m *MemoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	payload, err := m.fc.Get([]byte(key))
	if errors.Is(err, freecache.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %q: %w", key, err)
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return false, fmt.Errorf("unmarshal cached %q: %w", key, err)
	}
	return true, nil
}

func (m *MemoryCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %q: %w", key, err)
	}
	if err := m.fc.Set([]byte(key), payload, ttlSeconds(ttl)); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (m *MemoryCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		m.fc.Del([]byte(k))
	}
	return nil
}

// DeletePattern removes every key matching a Redis-style glob, where
// '*' spans any run of characters including '/'.
func (m *MemoryCache) DeletePattern(_ context.Context, pattern string) error {
	re, err := globRegexp(pattern)
	if err != nil {
		return fmt.Errorf("bad pattern %q: %w", pattern, err)
	}

	var matched [][]byte
	it := m.fc.NewIterator()
	for entry := it.Next(); entry != nil; entry = it.Next() {
		if re.Match(entry.Key) {
			matched = append(matched, entry.Key)
		}
	}
	for _, k := range matched {
		m.fc.Del(k)
	}
	return nil
}

// Increment keeps the remaining TTL of an existing counter, like INCR.
func (m *MemoryCache) Increment(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := []byte(key)
	var n int64
	expireSeconds := 0

	payload, expireAt, err := m.fc.GetWithExpiration(k)
	switch {
	case errors.Is(err, freecache.ErrNotFound):
	case err != nil:
		return 0, fmt.Errorf("get %q: %w", key, err)
	default:
		n, err = strconv.ParseInt(string(payload), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("value at %q is not an integer", key)
		}
		if expireAt > 0 {
			expireSeconds = int(int64(expireAt) - int64(m.clock.Now()))
			if expireSeconds < 1 {
				expireSeconds = 1
			}
		}
	}
	n++

	if err := m.fc.Set(k, strconv.AppendInt(nil, n, 10), expireSeconds); err != nil {
		return 0, fmt.Errorf("set %q: %w", key, err)
	}
	return n, nil
}

func (m *MemoryCache) Expire(_ context.Context, key string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	err := m.fc.Touch([]byte(key), ttlSeconds(ttl))
	if err != nil && !errors.Is(err, freecache.ErrNotFound) {
		return fmt.Errorf("expire %q: %w", key, err)
	}
	return nil
}

func (m *MemoryCache) Ping(context.Context) error { return nil }

// ttlSeconds rounds up to freecache's one second resolution. Zero means
// no expiry.
func ttlSeconds(ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}
	return int((ttl + time.Second - 1) / time.Second)
}

func globRegexp(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("(?s)^")
	for _, r := range pattern {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return regexp.Compile(b.String())
}
