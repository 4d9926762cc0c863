package frame

import (
	"image"

	"github.com/AnyUserName/inkframe-cli/internal/device"
	"github.com/AnyUserName/inkframe-cli/internal/palette"
)

// TestPattern builds the packed buffer for the device self-test screen:
// horizontal bands of equal height, one per palette entry in declaration
// order, with remainder rows absorbed by the last band. Deterministic for
// a given profile and palette.
func TestPattern(prof device.Profile, pal *palette.Palette) ([]byte, error) {
	img := image.NewPaletted(image.Rect(0, 0, prof.Width, prof.Height), pal.Colors())

	bandHeight := prof.Height / palette.Size
	if bandHeight < 1 {
		bandHeight = 1
	}
	for y := 0; y < prof.Height; y++ {
		band := y / bandHeight
		if band >= palette.Size {
			band = palette.Size - 1
		}
		for x := 0; x < prof.Width; x++ {
			img.SetColorIndex(x, y, uint8(band))
		}
	}

	buf, _, err := pack(img, pal)
	return buf, err
}
