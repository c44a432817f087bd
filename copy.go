package pixbuf

import "fmt"

// CopyInto copies src into dst and returns the destination buffer.
// There are three cases, distinguished by identity and then by size:
//
//  1. dst == nil: a new buffer is created with src's geometry, metadata
//     and allocator, the pixel bytes are copied, and the new buffer is
//     returned with a handle count of 1.
//  2. dst == src: no-op; dst is returned unchanged.
//  3. dst is a distinct existing buffer: if dst is not size-equal to
//     src, dst's storage is resized in place to match src's geometry.
//     The resize mutates the shared object, so the new geometry is
//     visible to every handle that aliases dst. The palette, resolution,
//     source-format tag and annotation are then copied from src,
//     replacing dst's previous values, and finally the pixel bytes.
//
// The general pattern of use is:
//
//	dst, err = pixbuf.CopyInto(dst, src)
//
// which works for all three cases. On allocation failure dst keeps its
// old geometry and storage; it is never left with mismatched fields.
func CopyInto(dst, src *ImageBuffer) (*ImageBuffer, error) {
	if src == nil {
		return nil, ErrNilBuffer
	}
	if dst == src {
		return dst, nil
	}
	if src.data == nil {
		return nil, fmt.Errorf("%w: source buffer has no pixel storage", ErrInvalidValue)
	}

	if dst == nil {
		out, err := NewTemplateUninitialized(src)
		if err != nil {
			return nil, err
		}
		copy(out.data, src.data)
		return out, nil
	}

	if err := dst.resizeStorage(src); err != nil {
		return nil, err
	}

	dst.copyPaletteFrom(src)
	dst.copyResolutionFrom(src)
	dst.format = src.format
	dst.text = src.text

	copy(dst.data, src.data)
	return dst, nil
}

// resizeStorage reallocates b's storage to match src's geometry. It is a
// no-op when the two buffers are already size-equal. The new storage is
// allocated before the old one is freed and the geometry fields are
// updated only after the allocation succeeds, so b is never observed
// with a size/storage mismatch, even on the failure path.
func (b *ImageBuffer) resizeStorage(src *ImageBuffer) error {
	if b == src {
		return nil
	}
	eq, err := SizesEqual(b, src)
	if err != nil {
		return err
	}
	if eq {
		return nil
	}

	n := src.stride * src.height
	data, err := b.alloc.Alloc(n)
	if err != nil {
		return fmt.Errorf("%w: %d bytes: %v", ErrAllocFailed, n, err)
	}
	if len(data) < n {
		b.alloc.Free(data)
		return fmt.Errorf("%w: allocator returned %d of %d bytes", ErrAllocFailed, len(data), n)
	}
	if b.data != nil {
		b.alloc.Free(b.data)
	}
	b.width = src.width
	b.height = src.height
	b.depth = src.depth
	b.stride = src.stride
	b.data = data[:n]
	return nil
}

// CopyPaletteFrom replaces b's palette with a deep copy of src's.
// A src without a palette clears b's palette; that is not an error.
func (b *ImageBuffer) CopyPaletteFrom(src *ImageBuffer) error {
	if b == nil || src == nil {
		return ErrNilBuffer
	}
	b.copyPaletteFrom(src)
	return nil
}

func (b *ImageBuffer) copyPaletteFrom(src *ImageBuffer) {
	if src.palette == nil {
		b.palette = nil
		return
	}
	b.palette = src.palette.Copy()
}

// CopyResolutionFrom copies src's x and y resolution into b.
func (b *ImageBuffer) CopyResolutionFrom(src *ImageBuffer) error {
	if b == nil || src == nil {
		return ErrNilBuffer
	}
	b.copyResolutionFrom(src)
	return nil
}

func (b *ImageBuffer) copyResolutionFrom(src *ImageBuffer) {
	b.xRes = src.xRes
	b.yRes = src.yRes
}

// CopyFormatFrom copies src's source-format tag into b.
func (b *ImageBuffer) CopyFormatFrom(src *ImageBuffer) error {
	if b == nil || src == nil {
		return ErrNilBuffer
	}
	b.format = src.format
	return nil
}

// CopyTextFrom replaces b's annotation with src's.
func (b *ImageBuffer) CopyTextFrom(src *ImageBuffer) error {
	if b == nil || src == nil {
		return ErrNilBuffer
	}
	b.text = src.text
	return nil
}

// SizesEqual reports whether a and b have the same width, height and
// depth. A buffer is always size-equal to itself. Nil inputs are
// reported through the error return, distinct from a legitimate
// "sizes differ" answer.
func SizesEqual(a, b *ImageBuffer) (bool, error) {
	if a == nil || b == nil {
		return false, ErrNilBuffer
	}
	if a == b {
		return true, nil
	}
	return a.width == b.width && a.height == b.height && a.depth == b.depth, nil
}
