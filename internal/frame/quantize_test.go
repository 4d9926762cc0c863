package frame

import (
	"image"
	"image/color"
	"testing"
)

func TestQuantizeUniformRed(t *testing.T) {
	pal := testPalette(t)

	img := image.NewNRGBA(image.Rect(0, 0, 5, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			img.SetNRGBA(x, y, color.NRGBA{255, 0, 0, 255})
		}
	}

	out := quantize(img, pal)
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			idx := out.ColorIndexAt(x, y)
			if pal.Entry(int(idx)).Code != 0x3 {
				t.Fatalf("pixel (%d,%d): code 0x%X, want 0x3 (red)",
					x, y, pal.Entry(int(idx)).Code)
			}
		}
	}
}

func TestQuantizePreservesDimensions(t *testing.T) {
	pal := testPalette(t)
	img := image.NewNRGBA(image.Rect(0, 0, 7, 11))

	out := quantize(img, pal)
	if out.Bounds().Dx() != 7 || out.Bounds().Dy() != 11 {
		t.Fatalf("bounds: got %v", out.Bounds())
	}
}
