package cache

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// Entry is a cached completion.
type Entry struct {
	Key        string    `json:"key"`
	Text       string    `json:"text"`
	TokensUsed int       `json:"tokensUsed"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Cache is a directory of JSON entry files.
type Cache struct {
	dir     string
	ttl     time.Duration
	enabled bool
	now     func() time.Time
}

// New creates a Cache. A disabled cache never hits and never writes. If dir
// is empty the default cache directory is used.
func New(enabled bool, dir string, ttlSeconds int) (*Cache, error) {
	if !enabled {
		return &Cache{now: time.Now}, nil
	}
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	return &Cache{
		dir:     dir,
		ttl:     time.Duration(ttlSeconds) * time.Second,
		enabled: true,
		now:     time.Now,
	}, nil
}

// Get returns the entry for key. Expired entries are removed and reported as
// a miss.
func (c *Cache) Get(key string) (Entry, bool) {
	if !c.enabled {
		return Entry{}, false
	}
	path := c.entryPath(key)
	data, err := os.ReadFile(path)
	if err != nil {
		return Entry{}, false
	}
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return Entry{}, false
	}
	if c.expired(e) {
		os.Remove(path)
		return Entry{}, false
	}
	return e, true
}

// Put stores a completion under key.
func (c *Cache) Put(key, text string, tokensUsed int) error {
	if !c.enabled {
		return nil
	}
	e := Entry{
		Key:        HashKey(key),
		Text:       text,
		TokensUsed: tokensUsed,
		CreatedAt:  c.now(),
	}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshaling cache entry: %w", err)
	}
	if err := os.WriteFile(c.entryPath(key), data, 0o644); err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

// Clear removes every entry and returns how many were deleted.
func (c *Cache) Clear() (int, error) {
	if !c.enabled || c.dir == "" {
		return 0, nil
	}
	files, err := c.entryFiles()
	if err != nil {
		return 0, err
	}
	var removed int
	for _, f := range files {
		if err := os.Remove(f); err == nil {
			removed++
		}
	}
	return removed, nil
}

// Prune removes expired and unreadable entries and returns how many were
// deleted. Entries never expire when the TTL is zero.
func (c *Cache) Prune() (int, error) {
	if !c.enabled || c.dir == "" {
		return 0, nil
	}
	files, err := c.entryFiles()
	if err != nil {
		return 0, err
	}
	var removed int
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			continue
		}
		var e Entry
		if json.Unmarshal(data, &e) == nil && !c.expired(e) {
			continue
		}
		if err := os.Remove(f); err == nil {
			removed++
		}
	}
	return removed, nil
}

// Stats describes the cache directory.
type Stats struct {
	Dir        string `json:"dir"`
	Entries    int    `json:"entries"`
	TotalBytes int64  `json:"totalBytes"`
	Expired    int    `json:"expired"`
	// Oldest is the creation time of the oldest entry, zero when empty.
	Oldest time.Time `json:"oldest"`
}

// GetStats walks the entries and counts size and expiry.
func (c *Cache) GetStats() (Stats, error) {
	stats := Stats{Dir: c.dir}
	if !c.enabled || c.dir == "" {
		return stats, nil
	}
	files, err := c.entryFiles()
	if err != nil {
		return stats, err
	}
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			continue
		}
		stats.Entries++
		stats.TotalBytes += int64(len(data))
		var e Entry
		if err := json.Unmarshal(data, &e); err != nil {
			continue
		}
		if c.expired(e) {
			stats.Expired++
		}
		if stats.Oldest.IsZero() || e.CreatedAt.Before(stats.Oldest) {
			stats.Oldest = e.CreatedAt
		}
	}
	return stats, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string { return c.dir }

// Enabled reports whether the cache reads and writes entries.
func (c *Cache) Enabled() bool { return c.enabled }

func (c *Cache) expired(e Entry) bool {
	return c.ttl > 0 && c.now().Sub(e.CreatedAt) > c.ttl
}

func (c *Cache) entryFiles() ([]string, error) {
	dirEntries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading cache directory: %w", err)
	}
	var files []string
	for _, d := range dirEntries {
		if !d.IsDir() && filepath.Ext(d.Name()) == ".json" {
			files = append(files, filepath.Join(c.dir, d.Name()))
		}
	}
	return files, nil
}

func (c *Cache) entryPath(key string) string {
	return filepath.Join(c.dir, HashKey(key)+".json")
}

// HashKey returns the hex SHA-256 of key.
func HashKey(key string) string {
	h := sha256.Sum256([]byte(key))
	return fmt.Sprintf("%x", h)
}

// BuildKey joins the inputs that determine a completion into one key.
// Parts are length-prefixed so different splits cannot collide.
func BuildKey(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		fmt.Fprintf(&b, "%d:%s;", len(p), p)
	}
	return HashKey(b.String())
}

// DefaultDir returns the platform cache directory for critique.
func DefaultDir() (string, error) {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "critique"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Caches", "critique"), nil
	case "windows":
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			return filepath.Join(local, "critique", "cache"), nil
		}
		return filepath.Join(home, "AppData", "Local", "critique", "cache"), nil
	default:
		return filepath.Join(home, ".cache", "critique"), nil
	}
}
