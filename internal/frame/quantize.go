package frame

import (
	"image"

	"github.com/AnyUserName/inkframe-cli/internal/palette"
)

// quantize maps every pixel to its nearest palette entry with no error
// diffusion. The returned paletted image indexes the palette in
// declaration order, so index i corresponds to pal.Entry(i).
func quantize(img *image.NRGBA, pal *palette.Palette) *image.Paletted {
	b := img.Bounds()
	out := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), pal.Colors())

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			i := img.PixOffset(b.Min.X+x, b.Min.Y+y)
			idx := pal.Nearest(
				float64(img.Pix[i]),
				float64(img.Pix[i+1]),
				float64(img.Pix[i+2]),
			)
			out.SetColorIndex(x, y, uint8(idx))
		}
	}
	return out
}
