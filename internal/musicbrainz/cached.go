package musicbrainz

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/cesargomez89/albumdays/internal/logger"
)

// Lookup resolves an album title and artist to a release-group id and date.
type Lookup interface {
	LookupRelease(ctx context.Context, album, artist string) (Result, error)
}

// Cache stores serialized lookup results. Implementations must serialize
// access themselves if shared across goroutines.
type Cache interface {
	GetCache(key string) ([]byte, error)
	SetCache(key string, data []byte, ttl time.Duration) error
}

var _ Lookup = (*CachedLookup)(nil)

// CachedLookup memoizes release lookups by (title, artist) and walks the
// title variants of an album until one yields a dated result. Negative
// results are cached too, so a missing album costs one external query per
// variant per run.
type CachedLookup struct {
	client *Client
	cache  Cache
	ttl    time.Duration
	log    *logger.Logger
}

// NewCachedLookup wraps client with the given cache. ttl applies to cache
// writes; a MemoryCache ignores it.
func NewCachedLookup(client *Client, cache Cache, ttl time.Duration, log *logger.Logger) *CachedLookup {
	if log == nil {
		log = logger.Default()
	}
	return &CachedLookup{
		client: client,
		cache:  cache,
		ttl:    ttl,
		log:    log,
	}
}

// LookupRelease tries each title variant in order and returns the first
// dated result. When no variant has a date, the first variant's (possibly
// empty) result is the answer. Transport failures propagate and leave the
// album key uncached.
func (l *CachedLookup) LookupRelease(ctx context.Context, album, artist string) (Result, error) {
	key := cacheKey(album, artist)
	if res, ok := l.get(key); ok {
		return res, nil
	}

	var best Result
	for _, variant := range TitleVariants(album) {
		variantKey := cacheKey(variant, artist)
		res, ok := l.get(variantKey)
		if !ok {
			var err error
			res, err = l.client.LookupVariant(ctx, variant, artist)
			if err != nil {
				return Result{}, err
			}
			l.put(variantKey, res)
		}
		if res.Date != nil {
			best = res
			break
		}
		if best == (Result{}) {
			best = res
		}
	}

	l.put(key, best)
	return best, nil
}

func cacheKey(title, artist string) string {
	return "mb:release:" + strings.ToLower(title) + "|" + strings.ToLower(artist)
}

func (l *CachedLookup) get(key string) (Result, bool) {
	data, err := l.cache.GetCache(key)
	if err != nil {
		l.log.Debug("Cache read failed", "key", key, "error", err)
		return Result{}, false
	}
	if data == nil {
		return Result{}, false
	}
	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		return Result{}, false
	}
	return res, true
}

func (l *CachedLookup) put(key string, res Result) {
	data, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := l.cache.SetCache(key, data, l.ttl); err != nil {
		l.log.Debug("Cache write failed", "key", key, "error", err)
	}
}

// MemoryCache is a process-local Cache for single-run use. It is unbounded,
// never evicts, and ignores TTLs.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string][]byte)}
}

func (m *MemoryCache) GetCache(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.entries[key]
	if !ok {
		return nil, nil
	}
	return data, nil
}

func (m *MemoryCache) SetCache(key string, data []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = data
	return nil
}
