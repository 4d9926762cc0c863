package frame

import (
	"fmt"
	"image"

	"github.com/AnyUserName/inkframe-cli/internal/palette"
)

// pack serializes a quantized canvas into the device wire format: one
// byte per two horizontally adjacent pixels, earlier column in the high
// nibble, rows top to bottom. An odd row width pads the final low nibble
// with the palette's white code.
//
// Every pixel must already be an exact palette color. A miss means the
// quantizer was bypassed or buggy; the pixel falls back to white and is
// counted in defects so callers can flag the run. The returned length is
// checked against ceil(w/2)*h before return.
func pack(img image.Image, pal *palette.Palette) (buf []byte, defects int, err error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, 0, fmt.Errorf("%w: cannot pack %dx%d image", ErrInput, w, h)
	}

	rowBytes := (w + 1) / 2
	buf = make([]byte, 0, rowBytes*h)

	// Fast path: a paletted image carrying this palette maps indices to
	// codes directly, no color lookup and no defect possible.
	if p, ok := img.(*image.Paletted); ok && samePalette(p, pal) {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x += 2 {
				hi := pal.Entry(int(p.ColorIndexAt(b.Min.X+x, b.Min.Y+y))).Code
				lo := pal.WhiteCode()
				if x+1 < w {
					lo = pal.Entry(int(p.ColorIndexAt(b.Min.X+x+1, b.Min.Y+y))).Code
				}
				buf = append(buf, hi<<4|lo)
			}
		}
	} else {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x += 2 {
				hi, d1 := codeAt(img, b.Min.X+x, b.Min.Y+y, pal)
				lo := pal.WhiteCode()
				var d2 int
				if x+1 < w {
					lo, d2 = codeAt(img, b.Min.X+x+1, b.Min.Y+y, pal)
				}
				defects += d1 + d2
				buf = append(buf, hi<<4|lo)
			}
		}
	}

	if len(buf) != rowBytes*h {
		return nil, defects, fmt.Errorf("%w: packed %d bytes, want %d",
			ErrSizeMismatch, len(buf), rowBytes*h)
	}
	return buf, defects, nil
}

// codeAt resolves one pixel to its palette code by exact color match.
// The second return is 1 when the pixel had no match and fell back.
func codeAt(img image.Image, x, y int, pal *palette.Palette) (uint8, int) {
	r16, g16, b16, _ := img.At(x, y).RGBA()
	code, ok := pal.CodeFor(uint8(r16>>8), uint8(g16>>8), uint8(b16>>8))
	if !ok {
		return pal.WhiteCode(), 1
	}
	return code, 0
}

// samePalette reports whether the paletted image's palette is exactly the
// given palette in declaration order.
func samePalette(p *image.Paletted, pal *palette.Palette) bool {
	if len(p.Palette) != palette.Size {
		return false
	}
	for i, c := range p.Palette {
		r16, g16, b16, _ := c.RGBA()
		e := pal.Entry(i).Color
		if uint8(r16>>8) != e.R || uint8(g16>>8) != e.G || uint8(b16>>8) != e.B {
			return false
		}
	}
	return true
}
