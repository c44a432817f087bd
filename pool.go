package pixbuf

import (
	"fmt"
	"sync"
)

// PooledAllocator is an Allocator that retains freed pixel storage for
// reuse, grouped into power-of-two size classes. It reduces GC pressure
// for workloads that create and destroy many similarly-sized buffers.
//
// Buffers returned by Alloc may contain stale pixel data from a previous
// use; this is exactly the "unspecified contents" contract of
// NewUninitialized. New clears its storage regardless of allocator.
//
// Thread safety: all methods are safe for concurrent use.
type PooledAllocator struct {
	mu      sync.Mutex
	buckets map[int][][]byte // size class -> free buffers
	maxSize int              // max retained buffers per class
}

// minClass is the smallest size class. Requests below it share one class.
const minClass = 64

// NewPooledAllocator creates a pooled allocator retaining at most
// maxPerClass freed buffers in each size class. A maxPerClass of 0 means
// unlimited retention (use with caution).
func NewPooledAllocator(maxPerClass int) *PooledAllocator {
	return &PooledAllocator{
		buckets: make(map[int][][]byte),
		maxSize: maxPerClass,
	}
}

// sizeClass rounds size up to the next power of two, with a floor of
// minClass.
func sizeClass(size int) int {
	c := minClass
	for c < size {
		c <<= 1
	}
	return c
}

// Alloc returns a buffer of at least size bytes, reusing a pooled buffer
// of the matching size class when one is available. The contents are
// unspecified.
func (p *PooledAllocator) Alloc(size int) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: negative size %d", ErrAllocFailed, size)
	}
	class := sizeClass(size)

	p.mu.Lock()
	bucket := p.buckets[class]
	if n := len(bucket); n > 0 {
		buf := bucket[n-1]
		p.buckets[class] = bucket[:n-1]
		p.mu.Unlock()
		return buf[:size], nil
	}
	p.mu.Unlock()

	return make([]byte, size, class), nil
}

// Free returns a buffer to the pool. Buffers beyond the per-class
// retention limit are discarded and left to the garbage collector.
func (p *PooledAllocator) Free(buf []byte) {
	if buf == nil {
		return
	}
	class := cap(buf)
	buf = buf[:class]

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[class]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[class] = append(bucket, buf)
}

// Retained returns the total number of buffers currently held by the
// pool, for diagnostics.
func (p *PooledAllocator) Retained() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, bucket := range p.buckets {
		n += len(bucket)
	}
	return n
}
