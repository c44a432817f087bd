package pixbuf

import (
	"errors"
	"testing"
)

// TestNewPaletteDepths verifies only indexed depths can carry a palette.
func TestNewPaletteDepths(t *testing.T) {
	for _, d := range []Depth{Depth1, Depth2, Depth4, Depth8} {
		p, err := NewPalette(d)
		if err != nil {
			t.Errorf("NewPalette(%d): %v", d, err)
			continue
		}
		if got := p.Cap(); got != 1<<d {
			t.Errorf("Cap for depth %d: got %d, want %d", d, got, 1<<d)
		}
	}
	for _, d := range []Depth{Depth16, Depth24, Depth32, Depth(3)} {
		if _, err := NewPalette(d); !errors.Is(err, ErrInvalidValue) {
			t.Errorf("NewPalette(%d): got %v, want ErrInvalidValue", d, err)
		}
	}
}

// TestPaletteAddFull verifies the entry limit.
func TestPaletteAddFull(t *testing.T) {
	p, err := NewPalette(Depth2)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 4; i++ {
		idx, err := p.Add(uint8(i), uint8(i), uint8(i))
		if err != nil {
			t.Fatalf("Add %d: %v", i, err)
		}
		if idx != i {
			t.Errorf("index: got %d, want %d", idx, i)
		}
	}
	if _, err := p.Add(9, 9, 9); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("Add to full palette: got %v, want ErrInvalidValue", err)
	}
	if p.Len() != 4 {
		t.Errorf("Len: got %d, want 4", p.Len())
	}
}

// TestPaletteAt verifies lookup and bounds checking.
func TestPaletteAt(t *testing.T) {
	p, err := NewPalette(Depth8)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Add(10, 20, 30); err != nil {
		t.Fatal(err)
	}

	e, err := p.At(0)
	if err != nil {
		t.Fatal(err)
	}
	if e != (PaletteEntry{R: 10, G: 20, B: 30}) {
		t.Errorf("entry: got %+v", e)
	}
	if _, err := p.At(1); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("out of range: got %v, want ErrInvalidValue", err)
	}
	if _, err := p.At(-1); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("negative index: got %v, want ErrInvalidValue", err)
	}
}

// TestPaletteCopyIndependence verifies Copy is deep.
func TestPaletteCopyIndependence(t *testing.T) {
	p, err := NewPalette(Depth4)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Add(1, 1, 1); err != nil {
		t.Fatal(err)
	}

	c := p.Copy()
	if c == p {
		t.Fatal("Copy returned the same palette")
	}
	if _, err := c.Add(2, 2, 2); err != nil {
		t.Fatal(err)
	}
	if p.Len() != 1 || c.Len() != 2 {
		t.Errorf("lengths after copy mutation: src %d, copy %d", p.Len(), c.Len())
	}

	var nilPal *Palette
	if nilPal.Copy() != nil {
		t.Error("Copy of nil palette must be nil")
	}
}

// TestPaletteNearest verifies perceptual nearest-entry lookup.
func TestPaletteNearest(t *testing.T) {
	p, err := NewPalette(Depth2)
	if err != nil {
		t.Fatal(err)
	}
	// black, white, red, blue
	for _, e := range []PaletteEntry{
		{0, 0, 0}, {255, 255, 255}, {255, 0, 0}, {0, 0, 255},
	} {
		if _, err := p.Add(e.R, e.G, e.B); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name    string
		r, g, b uint8
		want    int
	}{
		{"near black", 10, 10, 10, 0},
		{"near white", 250, 250, 245, 1},
		{"dark red", 200, 20, 20, 2},
		{"navy", 20, 20, 180, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Nearest(tt.r, tt.g, tt.b)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Nearest(%d, %d, %d): got %d, want %d", tt.r, tt.g, tt.b, got, tt.want)
			}
		})
	}

	empty, err := NewPalette(Depth1)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := empty.Nearest(0, 0, 0); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("empty palette: got %v, want ErrInvalidValue", err)
	}
}

// TestPaletteHex verifies hex formatting of entries.
func TestPaletteHex(t *testing.T) {
	p, err := NewPalette(Depth1)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Add(255, 0, 128); err != nil {
		t.Fatal(err)
	}
	hex, err := p.Hex(0)
	if err != nil {
		t.Fatal(err)
	}
	if hex != "#ff0080" {
		t.Errorf("Hex: got %q, want #ff0080", hex)
	}
}
