package pixbuf

import "fmt"

// Undefined is returned by integer getters when the buffer handle is nil.
const Undefined = -1

// Width returns the buffer width in pixels, or Undefined for a nil handle.
func (b *ImageBuffer) Width() int {
	if b == nil {
		Logger().Warn("pixbuf: Width on nil buffer")
		return Undefined
	}
	return b.width
}

// SetWidth sets the buffer width. A negative width clamps the field to 0
// and reports ErrInvalidValue. The row stride is not recomputed; callers
// changing geometry directly are expected to manage the backing storage
// themselves, as the copy/resize path does.
func (b *ImageBuffer) SetWidth(width int) error {
	if b == nil {
		return ErrNilBuffer
	}
	if width < 0 {
		b.width = 0
		return fmt.Errorf("%w: width must be >= 0, got %d", ErrInvalidValue, width)
	}
	b.width = width
	return nil
}

// Height returns the buffer height in pixels, or Undefined for a nil handle.
func (b *ImageBuffer) Height() int {
	if b == nil {
		Logger().Warn("pixbuf: Height on nil buffer")
		return Undefined
	}
	return b.height
}

// SetHeight sets the buffer height. A negative height clamps the field
// to 0 and reports ErrInvalidValue.
func (b *ImageBuffer) SetHeight(height int) error {
	if b == nil {
		return ErrNilBuffer
	}
	if height < 0 {
		b.height = 0
		return fmt.Errorf("%w: height must be >= 0, got %d", ErrInvalidValue, height)
	}
	b.height = height
	return nil
}

// Depth returns the bits per pixel, or 0 for a nil handle.
func (b *ImageBuffer) Depth() Depth {
	if b == nil {
		Logger().Warn("pixbuf: Depth on nil buffer")
		return 0
	}
	return b.depth
}

// SetDepth sets the bits per pixel. Values outside the legal set
// {1, 2, 4, 8, 16, 24, 32} are rejected with ErrInvalidValue.
func (b *ImageBuffer) SetDepth(depth Depth) error {
	if b == nil {
		return ErrNilBuffer
	}
	if !depth.IsValid() {
		return fmt.Errorf("%w: depth must be one of {1, 2, 4, 8, 16, 24, 32}, got %d",
			ErrInvalidValue, depth)
	}
	b.depth = depth
	return nil
}

// Dimensions returns width, height and depth in one call. For a nil
// handle it returns (Undefined, Undefined, 0).
func (b *ImageBuffer) Dimensions() (width, height int, depth Depth) {
	if b == nil {
		Logger().Warn("pixbuf: Dimensions on nil buffer")
		return Undefined, Undefined, 0
	}
	return b.width, b.height, b.depth
}

// Stride returns the bytes per packed row, or Undefined for a nil handle.
func (b *ImageBuffer) Stride() int {
	if b == nil {
		Logger().Warn("pixbuf: Stride on nil buffer")
		return Undefined
	}
	return b.stride
}

// SetStride overrides the derived row stride. This is a low-level
// operation for callers that manage the backing storage themselves; it
// does not touch the storage, so the stride*height == len(data)
// invariant becomes the caller's responsibility until storage is
// reattached.
func (b *ImageBuffer) SetStride(stride int) error {
	if b == nil {
		return ErrNilBuffer
	}
	if stride < 0 {
		return fmt.Errorf("%w: stride must be >= 0, got %d", ErrInvalidValue, stride)
	}
	b.stride = stride
	return nil
}

// XRes returns the horizontal resolution (pixels per inch; 0 if unset).
func (b *ImageBuffer) XRes() uint {
	if b == nil {
		Logger().Warn("pixbuf: XRes on nil buffer")
		return 0
	}
	return b.xRes
}

// SetXRes sets the horizontal resolution.
func (b *ImageBuffer) SetXRes(res uint) error {
	if b == nil {
		return ErrNilBuffer
	}
	b.xRes = res
	return nil
}

// YRes returns the vertical resolution (pixels per inch; 0 if unset).
func (b *ImageBuffer) YRes() uint {
	if b == nil {
		Logger().Warn("pixbuf: YRes on nil buffer")
		return 0
	}
	return b.yRes
}

// SetYRes sets the vertical resolution.
func (b *ImageBuffer) SetYRes(res uint) error {
	if b == nil {
		return ErrNilBuffer
	}
	b.yRes = res
	return nil
}

// ScaleResolution multiplies both resolutions by the given factors,
// rounding to nearest. Buffers with either resolution unset are left
// unchanged.
func (b *ImageBuffer) ScaleResolution(xScale, yScale float64) error {
	if b == nil {
		return ErrNilBuffer
	}
	if b.xRes != 0 && b.yRes != 0 {
		b.xRes = uint(xScale*float64(b.xRes) + 0.5)
		b.yRes = uint(yScale*float64(b.yRes) + 0.5)
	}
	return nil
}

// Format returns the source-format tag, or FormatUnknown for a nil handle.
func (b *ImageBuffer) Format() SourceFormat {
	if b == nil {
		Logger().Warn("pixbuf: Format on nil buffer")
		return FormatUnknown
	}
	return b.format
}

// SetFormat sets the source-format tag. Unknown tags are rejected with
// ErrInvalidValue.
func (b *ImageBuffer) SetFormat(format SourceFormat) error {
	if b == nil {
		return ErrNilBuffer
	}
	if !format.IsValid() {
		return fmt.Errorf("%w: unknown source format %d", ErrInvalidValue, format)
	}
	b.format = format
	return nil
}

// Text returns the annotation string; empty if unset or for a nil handle.
func (b *ImageBuffer) Text() string {
	if b == nil {
		Logger().Warn("pixbuf: Text on nil buffer")
		return ""
	}
	return b.text
}

// SetText replaces the annotation string.
func (b *ImageBuffer) SetText(text string) error {
	if b == nil {
		return ErrNilBuffer
	}
	b.text = text
	return nil
}

// AppendText concatenates text onto the existing annotation. Appending
// to an empty annotation is equivalent to SetText.
func (b *ImageBuffer) AppendText(text string) error {
	if b == nil {
		return ErrNilBuffer
	}
	b.text += text
	return nil
}

// Palette returns the buffer's palette, or nil if it has none.
// The palette belongs to the buffer; callers must not retain it past the
// buffer's lifetime.
func (b *ImageBuffer) Palette() *Palette {
	if b == nil {
		Logger().Warn("pixbuf: Palette on nil buffer")
		return nil
	}
	return b.palette
}

// SetPalette installs p as the buffer's palette, replacing and dropping
// any previous one. The buffer takes ownership of p; callers must not
// install the same palette on two buffers.
func (b *ImageBuffer) SetPalette(p *Palette) error {
	if b == nil {
		return ErrNilBuffer
	}
	b.palette = p
	return nil
}

// ClearPalette removes the buffer's palette, if any.
func (b *ImageBuffer) ClearPalette() error {
	if b == nil {
		return ErrNilBuffer
	}
	b.palette = nil
	return nil
}

// Data returns the raw pixel storage, or nil for a nil handle or a
// header-only buffer. Algorithms read and write pixel bytes directly
// through this slice together with Stride; the buffer core does not
// interpret pixel content.
func (b *ImageBuffer) Data() []byte {
	if b == nil {
		Logger().Warn("pixbuf: Data on nil buffer")
		return nil
	}
	return b.data
}

// SetData attaches data as the buffer's pixel storage. This is a
// low-level operation: the previous storage is not freed, and the new
// slice is not validated against stride*height. It exists for the
// resize path and for decoders that allocate storage themselves.
func (b *ImageBuffer) SetData(data []byte) error {
	if b == nil {
		return ErrNilBuffer
	}
	b.data = data
	return nil
}

// RefCount returns the number of live handles, or Undefined for a nil
// handle.
func (b *ImageBuffer) RefCount() int {
	if b == nil {
		Logger().Warn("pixbuf: RefCount on nil buffer")
		return Undefined
	}
	return int(b.refs.Load())
}
