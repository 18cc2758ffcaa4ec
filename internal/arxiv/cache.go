// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package arxiv

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/arxiv-scout/pkg/types"
)

// Fingerprint returns a stable hex digest of the full parameter set.
// Parameter insertion order does not affect the result; any change to a
// key or value produces a different digest.
func Fingerprint(params url.Values) string {
	// url.Values.Encode sorts by key, giving a canonical form.
	sum := md5.Sum([]byte(params.Encode()))
	return hex.EncodeToString(sum[:])
}

// FileCache stores fetched result sets on disk, one JSON file per
// fingerprint. Entries expire passively: a stale file is ignored on read
// and overwritten by the next fetch, never proactively deleted.
//
// A nil *FileCache is the disabled mode: Get always misses and Put is a
// no-op, leaving the rest of the pipeline unaffected.
type FileCache struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

// NewFileCache creates the cache directory if needed and returns a cache
// whose entries stay fresh for ttl.
func NewFileCache(dir string, ttl time.Duration) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	return &FileCache{dir: dir, ttl: ttl, now: time.Now}, nil
}

// cacheEnvelope is the on-disk cache file format.
type cacheEnvelope struct {
	Timestamp time.Time      `json:"timestamp"`
	Records   []types.Record `json:"records"`
}

// Get returns the records stored under key if a fresh entry exists.
// Expired, missing, and unreadable entries are indistinguishable to the
// caller: all report a miss.
func (c *FileCache) Get(key string) ([]types.Record, bool) {
	if c == nil {
		return nil, false
	}
	data, err := os.ReadFile(c.path(key))
	if err != nil {
		return nil, false
	}
	var env cacheEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, false
	}
	if c.now().Sub(env.Timestamp) >= c.ttl {
		return nil, false
	}
	return env.Records, true
}

// Put stores records under key with the current timestamp, overwriting
// any previous entry unconditionally.
func (c *FileCache) Put(key string, records []types.Record) error {
	if c == nil {
		return nil
	}
	data, err := json.Marshal(cacheEnvelope{Timestamp: c.now(), Records: records})
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}
	if err := os.WriteFile(c.path(key), data, 0o644); err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

func (c *FileCache) path(key string) string {
	return filepath.Join(c.dir, key+".json")
}
