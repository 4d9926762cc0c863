package frame

import (
	"image"

	"github.com/makeworld-the-better-one/dither/v2"

	"github.com/AnyUserName/inkframe-cli/internal/palette"
)

// Floyd-Steinberg diffusion weights, in sixteenths.
const (
	fsScale     = 16
	fsRight     = 7
	fsDownLeft  = 3
	fsDown      = 5
	fsDownRight = 1
)

// ditherFast quantizes through the dither library's Floyd-Steinberg.
// Its nearest-color search runs in linearized sRGB, which differs from
// the panel-tuned luma metric; the trade is speed for a close
// approximation. Output indices follow palette declaration order.
func ditherFast(img *image.NRGBA, pal *palette.Palette) *image.Paletted {
	d := dither.NewDitherer(pal.Colors())
	d.Matrix = dither.FloydSteinberg
	return d.DitherPaletted(img)
}

// ditherQuality is the in-house Floyd-Steinberg error diffusion using the
// same luma-weighted metric as plain quantization.
//
// Pixels are visited strictly row-major. Each pixel is quantized against
// the original palette colors, and the residual is pushed to the four
// unvisited neighbors (7/16 right, 3/16 below-left, 5/16 below, 1/16
// below-right). Out-of-bounds neighbors are skipped; adjusted channels
// are clamped to [0,255] before they are visited. The strict ordering is
// load-bearing: pixel (x,y) depends only on already-visited pixels, so
// output is deterministic.
func ditherQuality(img *image.NRGBA, pal *palette.Palette) *image.Paletted {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewPaletted(image.Rect(0, 0, w, h), pal.Colors())

	// Floating-point working copy; diffusion needs fractional error.
	work := make([]float64, w*h*3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := img.PixOffset(b.Min.X+x, b.Min.Y+y)
			j := (y*w + x) * 3
			work[j] = float64(img.Pix[i])
			work[j+1] = float64(img.Pix[i+1])
			work[j+2] = float64(img.Pix[i+2])
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			j := (y*w + x) * 3
			r, g, bl := work[j], work[j+1], work[j+2]

			idx := pal.Nearest(r, g, bl)
			out.SetColorIndex(x, y, uint8(idx))

			chosen := pal.Entry(idx).Color
			er := r - float64(chosen.R)
			eg := g - float64(chosen.G)
			eb := bl - float64(chosen.B)

			diffuse(work, w, h, x+1, y, er, eg, eb, fsRight)
			diffuse(work, w, h, x-1, y+1, er, eg, eb, fsDownLeft)
			diffuse(work, w, h, x, y+1, er, eg, eb, fsDown)
			diffuse(work, w, h, x+1, y+1, er, eg, eb, fsDownRight)
		}
	}
	return out
}

// diffuse adds weight/16 of the error to the pixel at (x,y), clamping
// each channel. No-op outside the image.
func diffuse(work []float64, w, h, x, y int, er, eg, eb float64, weight float64) {
	if x < 0 || x >= w || y >= h {
		return
	}
	j := (y*w + x) * 3
	work[j] = clampf(work[j] + er*weight/fsScale)
	work[j+1] = clampf(work[j+1] + eg*weight/fsScale)
	work[j+2] = clampf(work[j+2] + eb*weight/fsScale)
}

func clampf(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
