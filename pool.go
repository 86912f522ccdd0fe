package md2wechat

import (
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one renderer is available.
	MinPoolSize = 1

	// MaxPoolSize caps concurrent conversions; they are CPU-bound.
	MaxPoolSize = 16
)

// RendererPool manages a pool of Renderer instances for parallel conversion.
// A renderer mutates internal state during Render, so each conversion holds
// one exclusively. Renderers are created lazily on first acquire.
type RendererPool struct {
	size    int
	sem     chan *Renderer
	mu      sync.Mutex
	created int
}

// NewRendererPool creates a pool with capacity for n Renderer instances.
// Renderers are created lazily when acquired, not at pool creation.
func NewRendererPool(n int) *RendererPool {
	if n < 1 {
		n = 1
	}

	return &RendererPool{
		size: n,
		sem:  make(chan *Renderer, n),
	}
}

// Acquire gets a renderer from the pool, creating one if needed.
// Blocks if all renderers are in use. Callers Reset before rendering and
// Release when done.
func (p *RendererPool) Acquire() *Renderer {
	// Try to get an existing renderer (non-blocking)
	select {
	case r := <-p.sem:
		return r
	default:
	}

	// Check if we can create a new renderer
	p.mu.Lock()
	if p.created < p.size {
		p.created++
		p.mu.Unlock()
		return NewRenderer(RenderOptions{})
	}
	p.mu.Unlock()

	// All renderers created, wait for one to be released
	return <-p.sem
}

// Release returns a renderer to the pool.
func (p *RendererPool) Release(r *Renderer) {
	p.sem <- r
}

// Size returns the pool capacity.
func (p *RendererPool) Size() int {
	return p.size
}

// ResolvePoolSize determines the renderer pool size.
// Priority: explicit workers > GOMAXPROCS.
// Exported for use by servers and CLIs.
func ResolvePoolSize(workers int) int {
	// Explicit value takes priority
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS reflects container CPU limits via automaxprocs
	n := runtime.GOMAXPROCS(0)
	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
