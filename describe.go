package pixbuf

import (
	"fmt"
	"io"
)

// DumpInfo writes a human-readable description of the buffer to w,
// prefixed by label: geometry, stride, storage identity, handle count
// and palette contents. It is a pure read with no side effects.
func (b *ImageBuffer) DumpInfo(w io.Writer, label string) error {
	if b == nil {
		return ErrNilBuffer
	}
	if w == nil {
		return fmt.Errorf("%w: nil writer", ErrInvalidValue)
	}

	if _, err := fmt.Fprintf(w, "  ImageBuffer info for %s:\n", label); err != nil {
		return err
	}
	fmt.Fprintf(w, "    width = %d, height = %d, depth = %d\n", b.width, b.height, b.depth)
	fmt.Fprintf(w, "    stride = %d, data = %p, refcount = %d\n", b.stride, b.data, b.refs.Load())
	if b.format != FormatUnknown {
		fmt.Fprintf(w, "    source format = %s\n", b.format)
	}
	if b.text != "" {
		fmt.Fprintf(w, "    text = %q\n", b.text)
	}
	if b.palette == nil {
		fmt.Fprintf(w, "    no palette\n")
		return nil
	}
	fmt.Fprintf(w, "    palette: %d entries (depth %d)\n", b.palette.Len(), b.palette.Depth())
	for i, e := range b.palette.entries {
		fmt.Fprintf(w, "      [%3d] r = %3d, g = %3d, b = %3d\n", i, e.R, e.G, e.B)
	}
	return nil
}
