package pixbuf

import (
	"fmt"
	"sync/atomic"
)

// Allocator supplies and reclaims pixel storage for image buffers.
//
// Only pixel storage goes through an Allocator; buffer headers are
// ordinary Go values. Implementations must return a slice of at least
// the requested size from Alloc, and must accept any slice previously
// returned by Alloc in Free.
//
// Install a process-wide allocator with SetAllocator before creating any
// buffers, or build a Factory for an isolated configuration.
type Allocator interface {
	// Alloc returns a buffer of at least size bytes. The contents are
	// unspecified; callers needing zeroed memory must clear it.
	Alloc(size int) ([]byte, error)

	// Free reclaims a buffer previously returned by Alloc.
	Free(buf []byte)
}

// heapAllocator is the default Allocator: plain Go allocations, with
// reclamation left to the garbage collector.
type heapAllocator struct{}

func (heapAllocator) Alloc(size int) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: negative size %d", ErrAllocFailed, size)
	}
	return make([]byte, size), nil
}

func (heapAllocator) Free([]byte) {}

// NewHeapAllocator returns the default heap-backed allocator.
func NewHeapAllocator() Allocator { return heapAllocator{} }

// FactoryOption configures a Factory during creation.
//
// Example:
//
//	// Pool pixel storage instead of hitting the heap per buffer
//	f := pixbuf.NewFactory(pixbuf.WithAllocator(pixbuf.NewPooledAllocator(8)))
type FactoryOption func(*factoryOptions)

// factoryOptions holds optional configuration for Factory creation.
type factoryOptions struct {
	alloc Allocator
}

// WithAllocator sets a custom pixel-storage allocator for the Factory.
// A nil allocator leaves the default in place.
func WithAllocator(a Allocator) FactoryOption {
	return func(o *factoryOptions) {
		if a != nil {
			o.alloc = a
		}
	}
}

// Factory creates image buffers with a fixed allocator configuration.
//
// The package-level creation functions (New, NewUninitialized, ...) use a
// shared default Factory. Tests and embedding applications that need
// independent allocator configurations should create their own Factory
// instead of mutating the shared one.
type Factory struct {
	alloc Allocator
}

// NewFactory creates a Factory. With no options it behaves exactly like
// the package-level creation functions with the default allocator.
func NewFactory(opts ...FactoryOption) *Factory {
	o := factoryOptions{alloc: heapAllocator{}}
	for _, opt := range opts {
		opt(&o)
	}
	return &Factory{alloc: o.alloc}
}

// Allocator returns the allocator this factory hands to its buffers.
func (f *Factory) Allocator() Allocator { return f.alloc }

// defaultFactory backs the package-level creation functions. Swapped
// atomically so SetAllocator does not race with concurrent creation,
// though it is intended to be called once at process start.
var defaultFactory atomic.Pointer[Factory]

func init() {
	defaultFactory.Store(NewFactory())
}

// SetAllocator replaces the allocator used by the package-level creation
// functions. Buffers already created keep the allocator they were born
// with, so their storage is always returned to the right place. Passing
// nil is a no-op, not an error.
//
// SetAllocator is intended to be called once at process start, before
// any buffers exist.
func SetAllocator(a Allocator) {
	if a == nil {
		return
	}
	defaultFactory.Store(NewFactory(WithAllocator(a)))
}

// DefaultFactory returns the Factory behind the package-level creation
// functions.
func DefaultFactory() *Factory {
	return defaultFactory.Load()
}
