// Package memory provides pooling of reusable objects to keep steady-state
// allocations out of hot decode and decompress paths.
package memory

import "sync"

// Pool is a typed object pool. Get either reuses a pooled object after
// calling reset on it, or constructs a fresh one.
type Pool[T any] struct {
	pool sync.Pool
}

// Get returns an object from the pool. reset is invoked on reused objects
// only; newly constructed objects are expected to come out of newFunc ready
// for use.
func (p *Pool[T]) Get(newFunc func() *T, reset func(*T)) *T {
	if v, _ := p.pool.Get().(*T); v != nil {
		reset(v)
		return v
	}
	return newFunc()
}

// Put returns an object to the pool for reuse.
func (p *Pool[T]) Put(v *T) {
	if v != nil {
		p.pool.Put(v)
	}
}
