package pixbuf

import (
	"errors"
	"testing"
)

// countingAllocator tracks allocation traffic and can be switched into a
// failure mode, for exercising the indirection layer.
type countingAllocator struct {
	allocs int
	frees  int
	fail   bool
}

func (a *countingAllocator) Alloc(size int) ([]byte, error) {
	if a.fail {
		return nil, errors.New("allocator exhausted")
	}
	a.allocs++
	return make([]byte, size), nil
}

func (a *countingAllocator) Free(buf []byte) {
	a.frees++
}

// TestFactoryUsesConfiguredAllocator verifies all payload storage flows
// through the configured allocator and is returned to it on destroy.
func TestFactoryUsesConfiguredAllocator(t *testing.T) {
	alloc := &countingAllocator{}
	f := NewFactory(WithAllocator(alloc))

	b, err := f.New(32, 32, Depth8)
	if err != nil {
		t.Fatal(err)
	}
	if alloc.allocs != 1 {
		t.Errorf("allocs: got %d, want 1", alloc.allocs)
	}

	Destroy(&b)
	if alloc.frees != 1 {
		t.Errorf("frees: got %d, want 1", alloc.frees)
	}
}

// TestHeaderDoesNotAllocatePayload verifies header creation bypasses the
// allocator entirely.
func TestHeaderDoesNotAllocatePayload(t *testing.T) {
	alloc := &countingAllocator{}
	f := NewFactory(WithAllocator(alloc))

	b, err := f.NewHeader(32, 32, Depth8)
	if err != nil {
		t.Fatal(err)
	}
	if alloc.allocs != 0 {
		t.Errorf("header creation touched the allocator: %d allocs", alloc.allocs)
	}
	Destroy(&b)
	if alloc.frees != 0 {
		t.Errorf("header destroy touched the allocator: %d frees", alloc.frees)
	}
}

// TestAllocationFailure verifies ErrAllocFailed propagates from creation
// and nothing is leaked into the allocator.
func TestAllocationFailure(t *testing.T) {
	alloc := &countingAllocator{fail: true}
	f := NewFactory(WithAllocator(alloc))

	if _, err := f.NewUninitialized(32, 32, Depth8); !errors.Is(err, ErrAllocFailed) {
		t.Errorf("got %v, want ErrAllocFailed", err)
	}
	if _, err := f.New(32, 32, Depth8); !errors.Is(err, ErrAllocFailed) {
		t.Errorf("got %v, want ErrAllocFailed", err)
	}
}

// TestBufferKeepsItsAllocator verifies a buffer frees through the
// allocator it was created with, even after the default is swapped.
func TestBufferKeepsItsAllocator(t *testing.T) {
	first := &countingAllocator{}
	second := &countingAllocator{}

	b, err := NewFactory(WithAllocator(first)).New(8, 8, Depth8)
	if err != nil {
		t.Fatal(err)
	}

	// New buffers from another factory use the other allocator; the
	// existing buffer must not follow.
	c, err := NewFactory(WithAllocator(second)).New(8, 8, Depth8)
	if err != nil {
		t.Fatal(err)
	}

	Destroy(&b)
	Destroy(&c)
	if first.frees != 1 {
		t.Errorf("first allocator frees: got %d, want 1", first.frees)
	}
	if second.frees != 1 {
		t.Errorf("second allocator frees: got %d, want 1", second.frees)
	}
}

// TestTemplateInheritsSourceAllocator verifies buffers derived via
// template creation and CopyInto(nil, src) stay on the source's
// allocator.
func TestTemplateInheritsSourceAllocator(t *testing.T) {
	alloc := &countingAllocator{}
	src, err := NewFactory(WithAllocator(alloc)).New(8, 8, Depth8)
	if err != nil {
		t.Fatal(err)
	}

	dst, err := CopyInto(nil, src)
	if err != nil {
		t.Fatal(err)
	}
	if alloc.allocs != 2 {
		t.Errorf("allocs: got %d, want 2", alloc.allocs)
	}
	Destroy(&dst)
	if alloc.frees != 1 {
		t.Errorf("frees: got %d, want 1", alloc.frees)
	}
}

// TestSetAllocatorNilIsNoOp verifies the optional-slot semantics of the
// process-wide configuration call.
func TestSetAllocatorNilIsNoOp(t *testing.T) {
	before := DefaultFactory()
	SetAllocator(nil)
	if DefaultFactory() != before {
		t.Error("SetAllocator(nil) must leave the default factory unchanged")
	}
}
