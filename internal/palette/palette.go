// Package palette models the fixed six-color palette of a multi-color
// electrophoretic panel. A palette binds each device color to the 4-bit
// register code the controller expects in the packed frame buffer.
//
// Code assignments differ between panel revisions (the original Spectra
// controller skips 0x4, the rev-B controller does not), so the palette is
// explicit configuration rather than an assumption baked into the packer.
package palette

import (
	"errors"
	"fmt"
	"image/color"
)

// Size is the number of entries every palette must have. The panels this
// tool targets expose exactly six ink states.
const Size = 6

// MaxCode is the largest representable code: codes travel as nibbles.
const MaxCode = 0x0F

var ErrInvalid = errors.New("palette: invalid palette")

// Entry binds one device code to its nominal display color.
type Entry struct {
	Code  uint8
	Name  string
	Color color.NRGBA
}

// Palette is an immutable, validated set of exactly six entries.
// Construct with New; the zero value is not usable.
type Palette struct {
	entries [Size]Entry
	byColor map[[3]uint8]uint8 // exact color -> code
	white   uint8              // code used for padding/background
}

// New validates entries and builds a palette. It fails if there are not
// exactly six entries, a code repeats or exceeds 4 bits, or no entry is
// pure white (the packer needs a designated background code).
func New(entries []Entry) (*Palette, error) {
	if len(entries) != Size {
		return nil, fmt.Errorf("%w: got %d entries, want %d", ErrInvalid, len(entries), Size)
	}

	p := &Palette{byColor: make(map[[3]uint8]uint8, Size)}
	seen := make(map[uint8]bool, Size)
	whiteFound := false

	for i, e := range entries {
		if e.Code > MaxCode {
			return nil, fmt.Errorf("%w: code 0x%X out of nibble range", ErrInvalid, e.Code)
		}
		if seen[e.Code] {
			return nil, fmt.Errorf("%w: duplicate code 0x%X", ErrInvalid, e.Code)
		}
		seen[e.Code] = true

		e.Color.A = 0xFF
		p.entries[i] = e

		key := [3]uint8{e.Color.R, e.Color.G, e.Color.B}
		if _, dup := p.byColor[key]; dup {
			return nil, fmt.Errorf("%w: duplicate color %02X%02X%02X", ErrInvalid, key[0], key[1], key[2])
		}
		p.byColor[key] = e.Code

		if key == [3]uint8{0xFF, 0xFF, 0xFF} {
			p.white = e.Code
			whiteFound = true
		}
	}

	if !whiteFound {
		return nil, fmt.Errorf("%w: no white (FFFFFF) entry for background fill", ErrInvalid)
	}
	return p, nil
}

// Entries returns the palette entries in declaration order.
func (p *Palette) Entries() []Entry {
	out := make([]Entry, Size)
	copy(out[:], p.entries[:])
	return out
}

// Entry returns the i-th entry in declaration order.
func (p *Palette) Entry(i int) Entry { return p.entries[i] }

// WhiteCode returns the code of the designated white/background entry.
func (p *Palette) WhiteCode() uint8 { return p.white }

// CodeFor looks up the code of an exactly matching color. The second
// return is false when the color is not a palette color.
func (p *Palette) CodeFor(r, g, b uint8) (uint8, bool) {
	code, ok := p.byColor[[3]uint8{r, g, b}]
	return code, ok
}

// Colors returns the palette as a color.Palette in declaration order,
// for handing to image/draw and dithering libraries. Index i corresponds
// to Entry(i).
func (p *Palette) Colors() color.Palette {
	out := make(color.Palette, Size)
	for i, e := range p.entries {
		out[i] = e.Color
	}
	return out
}

// Nearest returns the declaration-order index of the entry closest to the
// given channel values under the panel's perceptual metric. Inputs may be
// error-adjusted intermediates, so they are float64 and may lie outside
// [0,255].
//
// The metric is the luma-weighted squared difference
//
//	d = 0.299*dR^2 + 0.587*dG^2 + 0.114*dB^2
//
// compared in squared form throughout. Ties keep the earliest entry.
func (p *Palette) Nearest(r, g, b float64) int {
	best := 0
	bestDist := distance(r, g, b, p.entries[0].Color)
	for i := 1; i < Size; i++ {
		if d := distance(r, g, b, p.entries[i].Color); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

func distance(r, g, b float64, c color.NRGBA) float64 {
	dr := r - float64(c.R)
	dg := g - float64(c.G)
	db := b - float64(c.B)
	return 0.299*dr*dr + 0.587*dg*dg + 0.114*db*db
}
