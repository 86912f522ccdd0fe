//go:build bench

package md2wechat

import (
	"fmt"
	"runtime"
	"sync"
	"testing"
)

// BenchmarkResolvePoolSize benchmarks pool size calculation.
func BenchmarkResolvePoolSize(b *testing.B) {
	workers := []int{0, 1, 2, 4, 8}

	for _, w := range workers {
		b.Run(workerName(w), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				result := ResolvePoolSize(w)
				_ = result
			}
		})
	}
}

func workerName(w int) string {
	if w == 0 {
		return "auto"
	}
	return fmt.Sprintf("%d", w)
}

// BenchmarkRendererPoolAcquireRelease benchmarks pool acquire/release cycle.
func BenchmarkRendererPoolAcquireRelease(b *testing.B) {
	sizes := []int{1, 2, 4, 8}

	for _, size := range sizes {
		b.Run(poolSizeName(size), func(b *testing.B) {
			pool := NewRendererPool(size)
			// Pre-warm the pool by acquiring and releasing all slots
			renderers := make([]*Renderer, size)
			for i := 0; i < size; i++ {
				renderers[i] = pool.Acquire()
			}
			for i := 0; i < size; i++ {
				pool.Release(renderers[i])
			}

			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				r := pool.Acquire()
				pool.Release(r)
			}
		})
	}
}

func poolSizeName(size int) string {
	return fmt.Sprintf("size_%d", size)
}

// BenchmarkRendererPoolContention benchmarks pool under contention.
// Simulates multiple goroutines competing for pool resources.
func BenchmarkRendererPoolContention(b *testing.B) {
	poolSize := 4
	goroutines := []int{4, 8, 16, 32}

	for _, g := range goroutines {
		b.Run(goroutineName(g), func(b *testing.B) {
			pool := NewRendererPool(poolSize)
			// Pre-warm
			renderers := make([]*Renderer, poolSize)
			for i := 0; i < poolSize; i++ {
				renderers[i] = pool.Acquire()
			}
			for i := 0; i < poolSize; i++ {
				pool.Release(renderers[i])
			}

			b.ReportAllocs()
			b.ResetTimer()

			var wg sync.WaitGroup
			opsPerGoroutine := b.N / g
			if opsPerGoroutine < 1 {
				opsPerGoroutine = 1
			}

			for i := 0; i < g; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for j := 0; j < opsPerGoroutine; j++ {
						r := pool.Acquire()
						// Simulate minimal work
						runtime.Gosched()
						pool.Release(r)
					}
				}()
			}
			wg.Wait()
		})
	}
}

func goroutineName(g int) string {
	return fmt.Sprintf("goroutines_%d", g)
}

// BenchmarkRendererPoolParallel benchmarks parallel pool access.
func BenchmarkRendererPoolParallel(b *testing.B) {
	pool := NewRendererPool(runtime.GOMAXPROCS(0))
	// Pre-warm
	size := pool.Size()
	renderers := make([]*Renderer, size)
	for i := 0; i < size; i++ {
		renderers[i] = pool.Acquire()
	}
	for i := 0; i < size; i++ {
		pool.Release(renderers[i])
	}

	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			r := pool.Acquire()
			pool.Release(r)
		}
	})
}

// BenchmarkNewRenderer benchmarks renderer construction, which builds the
// goldmark instance.
func BenchmarkNewRenderer(b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		r := NewRenderer(RenderOptions{})
		_ = r
	}
}
