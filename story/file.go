package story

import (
	"fmt"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Stories []Story `yaml:"stories"`
}

// LoadFile parses a YAML catalog:
//
//	stories:
//	  - slug: sample-story
//	    title: Golden Hour Photography
//	    template: classic
func LoadFile(path string) (*Static, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cf catalogFile
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cf); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	c, err := NewStatic(cf.Stories)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return c, nil
}

// FileCatalog serves a YAML catalog and re-reads it once the cached copy is
// older than ttl. A failed reload keeps serving the previous copy.
type FileCatalog struct {
	mu      sync.RWMutex
	path    string
	ttl     time.Duration
	current *Static
	fetched time.Time
	lastErr error
}

// NewFileCatalog loads path eagerly so configuration errors surface at startup.
func NewFileCatalog(path string, ttl time.Duration) (*FileCatalog, error) {
	c := &FileCatalog{path: path, ttl: ttl}
	if err := c.reload(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *FileCatalog) valid() bool {
	return c.current != nil && time.Since(c.fetched) < c.ttl
}

func (c *FileCatalog) reload() error {
	s, err := LoadFile(c.path)
	c.fetched = time.Now()
	if err != nil {
		c.lastErr = err
		if c.current != nil {
			return nil
		}
		return err
	}
	c.current = s
	c.lastErr = nil
	return nil
}

// ensureLoaded tries a read lock first and only takes the write lock when a
// reload is due.
func (c *FileCatalog) ensureLoaded() (*Static, error) {
	c.mu.RLock()
	if c.valid() {
		s := c.current
		c.mu.RUnlock()
		return s, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.valid() {
		if err := c.reload(); err != nil {
			return nil, err
		}
	}
	return c.current, nil
}

// Invalidate forces the next read to reload the file.
func (c *FileCatalog) Invalidate() {
	c.mu.Lock()
	c.fetched = time.Time{}
	c.mu.Unlock()
}

// LastError returns the most recent reload error, if the catalog is serving a
// stale copy.
func (c *FileCatalog) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

// Get returns the story for slug.
func (c *FileCatalog) Get(slug string) (Story, error) {
	s, err := c.ensureLoaded()
	if err != nil {
		return Story{}, err
	}
	return s.Get(slug)
}

// List returns all stories, newest first.
func (c *FileCatalog) List() ([]Story, error) {
	s, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	return s.List()
}
