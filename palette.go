package pixbuf

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// PaletteEntry is one indexed color.
type PaletteEntry struct {
	R, G, B uint8
}

// colorful converts the entry to a go-colorful color for perceptual math.
func (e PaletteEntry) colorful() colorful.Color {
	return colorful.Color{
		R: float64(e.R) / 255.0,
		G: float64(e.G) / 255.0,
		B: float64(e.B) / 255.0,
	}
}

// Palette is an indexed-color lookup table for buffers of depth 1, 2, 4
// or 8. It holds at most 2^depth entries.
//
// A Palette is exclusively owned by the ImageBuffer it is installed on:
// SetPalette replaces and drops the previous table, and template
// creation and CopyInto deep-copy it, never share it.
type Palette struct {
	depth   Depth
	entries []PaletteEntry
}

// NewPalette creates an empty palette for the given indexed depth.
func NewPalette(depth Depth) (*Palette, error) {
	if !depth.IsIndexed() {
		return nil, fmt.Errorf("%w: palette depth must be one of {1, 2, 4, 8}, got %d",
			ErrInvalidValue, depth)
	}
	return &Palette{
		depth:   depth,
		entries: make([]PaletteEntry, 0, 1<<depth),
	}, nil
}

// Depth returns the indexed depth this palette was created for.
func (p *Palette) Depth() Depth {
	if p == nil {
		return 0
	}
	return p.depth
}

// Len returns the number of entries currently in the palette.
func (p *Palette) Len() int {
	if p == nil {
		return 0
	}
	return len(p.entries)
}

// Cap returns the maximum number of entries (2^depth).
func (p *Palette) Cap() int {
	if p == nil {
		return 0
	}
	return 1 << p.depth
}

// Add appends a color and returns its index. Adding to a full palette
// fails with ErrInvalidValue.
func (p *Palette) Add(r, g, b uint8) (int, error) {
	if p == nil {
		return Undefined, ErrNilBuffer
	}
	if len(p.entries) >= p.Cap() {
		return Undefined, fmt.Errorf("%w: palette full (%d entries)", ErrInvalidValue, p.Cap())
	}
	p.entries = append(p.entries, PaletteEntry{R: r, G: g, B: b})
	return len(p.entries) - 1, nil
}

// At returns the entry at index i.
func (p *Palette) At(i int) (PaletteEntry, error) {
	if p == nil {
		return PaletteEntry{}, ErrNilBuffer
	}
	if i < 0 || i >= len(p.entries) {
		return PaletteEntry{}, fmt.Errorf("%w: palette index %d out of range [0, %d)",
			ErrInvalidValue, i, len(p.entries))
	}
	return p.entries[i], nil
}

// Copy returns a deep copy of the palette. Copy of nil is nil.
func (p *Palette) Copy() *Palette {
	if p == nil {
		return nil
	}
	c := &Palette{
		depth:   p.depth,
		entries: make([]PaletteEntry, len(p.entries), 1<<p.depth),
	}
	copy(c.entries, p.entries)
	return c
}

// Nearest returns the index of the entry perceptually closest to the
// given color, using CIE Lab distance. An empty palette fails with
// ErrInvalidValue.
func (p *Palette) Nearest(r, g, b uint8) (int, error) {
	if p == nil {
		return Undefined, ErrNilBuffer
	}
	if len(p.entries) == 0 {
		return Undefined, fmt.Errorf("%w: empty palette", ErrInvalidValue)
	}
	target := PaletteEntry{R: r, G: g, B: b}.colorful()
	best := 0
	bestDist := target.DistanceLab(p.entries[0].colorful())
	for i := 1; i < len(p.entries); i++ {
		d := target.DistanceLab(p.entries[i].colorful())
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best, nil
}

// Hex returns the entry at index i formatted as "#rrggbb".
func (p *Palette) Hex(i int) (string, error) {
	e, err := p.At(i)
	if err != nil {
		return "", err
	}
	return e.colorful().Hex(), nil
}
