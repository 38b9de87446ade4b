// Package assets loads viewer data files (heightmaps, models, materials)
// from a list of search directories and caches their contents.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ErrNotFound is returned when no search directory holds the requested file.
var ErrNotFound = errors.New("asset not found")

// Manager handles asset loading from search directories.
type Manager struct {
	roots []string
	cache *Cache
	mu    sync.RWMutex
}

// NewManager creates a manager searching roots. Later roots take priority.
func NewManager(roots ...string) *Manager {
	return &Manager{
		roots: append([]string(nil), roots...),
		cache: NewCache(),
	}
}

// AddRoot adds a search directory with the highest priority.
func (m *Manager) AddRoot(dir string) {
	m.mu.Lock()
	m.roots = append(m.roots, dir)
	m.mu.Unlock()
}

// Resolve returns the on-disk path of an asset. Absolute paths are used
// as-is; relative paths are tried against the roots, last added first.
func (m *Manager) Resolve(path string) (string, os.FileInfo, error) {
	if filepath.IsAbs(path) {
		info, err := os.Stat(path)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %s: %v", ErrNotFound, path, err)
		}
		return path, info, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.roots) - 1; i >= 0; i-- {
		full := filepath.Join(m.roots[i], path)
		info, err := os.Stat(full)
		if err == nil && !info.IsDir() {
			return full, info, nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", nil, err
		}
	}
	return "", nil, fmt.Errorf("%w: %s", ErrNotFound, path)
}

// Load returns the contents of an asset. A cached copy is reused while the
// file's size and modification time are unchanged, so reloading picks up
// edited files.
func (m *Manager) Load(path string) ([]byte, error) {
	full, info, err := m.Resolve(path)
	if err != nil {
		return nil, err
	}

	stamp := stampOf(info)
	if data, ok := m.cache.Get(full, stamp); ok {
		return data, nil
	}

	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", full, err)
	}
	m.cache.Set(full, stamp, data)
	return data, nil
}

// Close drops all cached data.
func (m *Manager) Close() {
	m.cache.Clear()
}

// Cache returns the manager's cache, mainly for statistics.
func (m *Manager) Cache() *Cache {
	return m.cache
}

// Stamp identifies one version of a file on disk.
type Stamp struct {
	Size    int64
	ModTime time.Time
}

func stampOf(info os.FileInfo) Stamp {
	return Stamp{Size: info.Size(), ModTime: info.ModTime()}
}

type entry struct {
	stamp Stamp
	data  []byte
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string]entry
	mu   sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]entry),
	}
}

// Get retrieves an item from cache if it was stored with the same stamp.
func (c *Cache) Get(key string, stamp Stamp) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.data[key]
	if ok && e.stamp.Size == stamp.Size && e.stamp.ModTime.Equal(stamp.ModTime) {
		c.hits++
		return e.data, true
	}
	c.misses++
	return nil, false
}

// Set stores an item in cache.
func (c *Cache) Set(key string, stamp Stamp, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = entry{stamp: stamp, data: data}
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]entry)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
