package scryfall

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Cache is a file-based cache of Scryfall responses. Entries expire after a
// TTL; the index file maps normalized names to entry files.
type Cache struct {
	dir string
	ttl time.Duration

	mu    sync.Mutex
	index map[string]indexEntry
}

type indexEntry struct {
	CardName  string    `json:"card_name"`
	Timestamp time.Time `json:"timestamp"`
	File      string    `json:"file"`
}

// NewCache opens (or creates) a cache directory.
func NewCache(dir string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache dir %s: %w", dir, err)
	}
	c := &Cache{dir: dir, ttl: ttl, index: make(map[string]indexEntry)}
	if err := c.loadIndex(); err != nil {
		return nil, err
	}
	return c, nil
}

// Get returns cached card data, or false when missing or expired. Expired
// entries are evicted on access.
func (c *Cache) Get(name string) (*CardData, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(name)
	entry, ok := c.index[key]
	if !ok {
		return nil, false
	}
	if time.Since(entry.Timestamp) > c.ttl {
		c.evictLocked(key)
		return nil, false
	}

	raw, err := os.ReadFile(filepath.Join(c.dir, entry.File))
	if err != nil {
		c.evictLocked(key)
		return nil, false
	}
	var data CardData
	if err := json.Unmarshal(raw, &data); err != nil {
		c.evictLocked(key)
		return nil, false
	}
	return &data, true
}

// Put stores card data under the normalized name.
func (c *Cache) Put(name string, data *CardData) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(name)
	file := key + ".json"

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode cache entry for %s: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(c.dir, file), raw, 0o644); err != nil {
		return fmt.Errorf("failed to write cache entry for %s: %w", name, err)
	}

	c.index[key] = indexEntry{CardName: name, Timestamp: time.Now(), File: file}
	return c.saveIndexLocked()
}

// ClearExpired removes all expired entries and returns how many were
// evicted.
func (c *Cache) ClearExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expired []string
	for key, entry := range c.index {
		if time.Since(entry.Timestamp) > c.ttl {
			expired = append(expired, key)
		}
	}
	for _, key := range expired {
		c.evictLocked(key)
	}
	return len(expired)
}

// Stats summarizes the cache contents.
func (c *Cache) Stats() (total, valid int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	total = len(c.index)
	for _, entry := range c.index {
		if time.Since(entry.Timestamp) <= c.ttl {
			valid++
		}
	}
	return total, valid
}

func (c *Cache) loadIndex() error {
	raw, err := os.ReadFile(filepath.Join(c.dir, "index.json"))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read cache index: %w", err)
	}
	// A corrupt index just means a cold cache.
	if err := json.Unmarshal(raw, &c.index); err != nil {
		c.index = make(map[string]indexEntry)
	}
	return nil
}

func (c *Cache) saveIndexLocked() error {
	raw, err := json.MarshalIndent(c.index, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode cache index: %w", err)
	}
	if err := os.WriteFile(filepath.Join(c.dir, "index.json"), raw, 0o644); err != nil {
		return fmt.Errorf("failed to write cache index: %w", err)
	}
	return nil
}

func (c *Cache) evictLocked(key string) {
	if entry, ok := c.index[key]; ok {
		os.Remove(filepath.Join(c.dir, entry.File))
		delete(c.index, key)
		_ = c.saveIndexLocked()
	}
}

func cacheKey(name string) string {
	key := strings.ToLower(name)
	key = strings.ReplaceAll(key, " ", "_")
	key = strings.ReplaceAll(key, ",", "")
	key = strings.ReplaceAll(key, "'", "")
	key = strings.ReplaceAll(key, "/", "_")
	return key
}
