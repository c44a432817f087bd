package pixbuf

import (
	"fmt"
	"sync/atomic"
)

// ImageBuffer is a reference-counted raster buffer.
//
// An ImageBuffer couples packed pixel storage with its geometry (width,
// height, depth, derived row stride) and side metadata (palette,
// resolution, free-text annotation, source-format tag). Handles to one
// buffer are created with Clone and released with Destroy; the pixel
// storage is freed through the buffer's allocator when the last handle
// is destroyed.
//
// The zero value is not usable; obtain buffers from the creation
// functions or a Factory.
type ImageBuffer struct {
	width  int
	height int
	depth  Depth
	stride int // bytes per row, 4 * words-per-row

	data []byte // nil between header creation and storage allocation

	refs atomic.Int32

	palette *Palette
	xRes    uint
	yRes    uint
	format  SourceFormat
	text    string

	alloc Allocator // storage always returns to the allocator that produced it
}

// NewHeader creates a buffer with validated geometry and no pixel
// storage. The caller (normally NewUninitialized or a decoder that
// manages storage itself) must attach storage with SetData before the
// buffer is used for pixel access.
func (f *Factory) NewHeader(width, height int, depth Depth) (*ImageBuffer, error) {
	if !depth.IsValid() {
		return nil, fmt.Errorf("%w: depth must be one of {1, 2, 4, 8, 16, 24, 32}, got %d",
			ErrInvalidGeometry, depth)
	}
	if width <= 0 {
		return nil, fmt.Errorf("%w: width must be > 0, got %d", ErrInvalidGeometry, width)
	}
	if height <= 0 {
		return nil, fmt.Errorf("%w: height must be > 0, got %d", ErrInvalidGeometry, height)
	}

	b := &ImageBuffer{
		width:  width,
		height: height,
		depth:  depth,
		stride: depth.RowBytes(width),
		format: FormatUnknown,
		alloc:  f.alloc,
	}
	b.refs.Store(1)
	return b, nil
}

// NewUninitialized creates a buffer with storage allocated but not
// cleared. The contents are unspecified, including the pad bits beyond
// the logical row width; routines that read whole words must not assume
// they are zero. Use New when deterministic content matters.
func (f *Factory) NewUninitialized(width, height int, depth Depth) (*ImageBuffer, error) {
	b, err := f.NewHeader(width, height, depth)
	if err != nil {
		return nil, err
	}
	n := b.stride * b.height
	data, err := f.alloc.Alloc(n)
	if err != nil {
		return nil, fmt.Errorf("%w: %d bytes: %v", ErrAllocFailed, n, err)
	}
	if len(data) < n {
		f.alloc.Free(data)
		return nil, fmt.Errorf("%w: allocator returned %d of %d bytes", ErrAllocFailed, len(data), n)
	}
	b.data = data[:n]
	return b, nil
}

// New creates a buffer with storage allocated and zero-filled.
func (f *Factory) New(width, height int, depth Depth) (*ImageBuffer, error) {
	b, err := f.NewUninitialized(width, height, depth)
	if err != nil {
		return nil, err
	}
	clear(b.data)
	return b, nil
}

// NewTemplateUninitialized creates a buffer with the same geometry and
// metadata as src (palette deep-copied, resolution, annotation and
// source-format tag carried over) and uncleared storage. The new buffer
// uses src's allocator so that families of buffers stay on one memory
// strategy.
func (f *Factory) NewTemplateUninitialized(src *ImageBuffer) (*ImageBuffer, error) {
	if src == nil {
		return nil, ErrNilBuffer
	}
	tf := f
	if src.alloc != nil && src.alloc != f.alloc {
		tf = &Factory{alloc: src.alloc}
	}
	b, err := tf.NewUninitialized(src.width, src.height, src.depth)
	if err != nil {
		return nil, err
	}
	b.copyResolutionFrom(src)
	b.copyPaletteFrom(src)
	b.text = src.text
	b.format = src.format
	return b, nil
}

// NewTemplate is NewTemplateUninitialized with zero-filled storage.
func (f *Factory) NewTemplate(src *ImageBuffer) (*ImageBuffer, error) {
	b, err := f.NewTemplateUninitialized(src)
	if err != nil {
		return nil, err
	}
	clear(b.data)
	return b, nil
}

// NewHeader creates a buffer header with no pixel storage, using the
// default factory. See Factory.NewHeader.
func NewHeader(width, height int, depth Depth) (*ImageBuffer, error) {
	return DefaultFactory().NewHeader(width, height, depth)
}

// NewUninitialized creates a buffer with uncleared storage, using the
// default factory. See Factory.NewUninitialized.
func NewUninitialized(width, height int, depth Depth) (*ImageBuffer, error) {
	return DefaultFactory().NewUninitialized(width, height, depth)
}

// New creates a buffer with zero-filled storage, using the default
// factory.
func New(width, height int, depth Depth) (*ImageBuffer, error) {
	return DefaultFactory().New(width, height, depth)
}

// NewTemplate creates a zero-filled buffer with src's geometry and
// metadata, using src's allocator.
func NewTemplate(src *ImageBuffer) (*ImageBuffer, error) {
	return DefaultFactory().NewTemplate(src)
}

// NewTemplateUninitialized creates an uncleared buffer with src's
// geometry and metadata, using src's allocator.
func NewTemplateUninitialized(src *ImageBuffer) (*ImageBuffer, error) {
	return DefaultFactory().NewTemplateUninitialized(src)
}

// Clone returns a new handle to the same buffer and increments the
// handle count. No pixel data is copied: mutations through the returned
// handle are visible through every other handle.
//
// The protocol is: take a handle with Clone whenever a component keeps a
// reference, and call Destroy on every handle when done. The storage is
// freed exactly once, when the last handle is destroyed.
func (b *ImageBuffer) Clone() (*ImageBuffer, error) {
	if b == nil {
		return nil, ErrNilBuffer
	}
	b.refs.Add(1)
	return b, nil
}

// Destroy releases one handle to the buffer held in *pb and always sets
// *pb to nil. When the handle count reaches zero the pixel storage is
// returned to the buffer's allocator and the palette and annotation are
// dropped.
//
// Destroying an already-nil slot is a no-op. A nil slot address is
// logged as a warning and ignored. Because the slot is cleared
// unconditionally, a caller that destroys its own handle can never
// double-free or observe a stale buffer, whether or not other clones
// remain live.
func Destroy(pb **ImageBuffer) {
	if pb == nil {
		Logger().Warn("pixbuf: Destroy called with nil slot address")
		return
	}
	b := *pb
	if b == nil {
		return
	}
	b.release()
	*pb = nil
}

// release decrements the handle count and frees owned resources at zero.
func (b *ImageBuffer) release() {
	if b.refs.Add(-1) > 0 {
		return
	}
	if b.data != nil {
		b.alloc.Free(b.data)
		b.data = nil
	}
	b.palette = nil
	b.text = ""
}
