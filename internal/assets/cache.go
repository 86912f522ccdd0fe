package assets

import "sync"

// Cache memoizes successful loads from an underlying loader.
// Failed loads are never cached: a theme file created after startup becomes
// loadable on the next request without a restart. Safe for concurrent use.
type Cache struct {
	loader AssetLoader

	mu        sync.RWMutex
	themes    map[string]string
	templates map[string]string
}

// NewCache wraps loader with a memoizing layer.
func NewCache(loader AssetLoader) *Cache {
	return &Cache{
		loader:    loader,
		themes:    make(map[string]string),
		templates: make(map[string]string),
	}
}

// LoadTheme returns the cached theme or delegates to the wrapped loader,
// caching on success.
func (c *Cache) LoadTheme(name string) (string, error) {
	c.mu.RLock()
	content, ok := c.themes[name]
	c.mu.RUnlock()
	if ok {
		return content, nil
	}

	content, err := c.loader.LoadTheme(name)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.themes[name] = content
	c.mu.Unlock()
	return content, nil
}

// LoadTemplate returns the cached template or delegates to the wrapped
// loader, caching on success.
func (c *Cache) LoadTemplate(name string) (string, error) {
	c.mu.RLock()
	content, ok := c.templates[name]
	c.mu.RUnlock()
	if ok {
		return content, nil
	}

	content, err := c.loader.LoadTemplate(name)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.templates[name] = content
	c.mu.Unlock()
	return content, nil
}

// Compile-time interface check.
var _ AssetLoader = (*Cache)(nil)
