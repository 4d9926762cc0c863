package frame

import "image"

// Tone factors above this threshold trigger the e-ink legibility
// brightness bump: strong contrast or saturation pushes midtones dark on
// reflective panels.
const brightnessTrigger = 1.5

// brightnessBump is the fixed +10% multiplier applied once when
// triggered. Not configurable.
const brightnessBump = 1.1

// enhance applies contrast then saturation adjustment in place, followed
// by the conditional brightness correction. Both factors at 1.0 is a
// pass-through and returns img untouched.
//
// Contrast scales each channel's deviation from mid-gray; saturation
// scales each channel's deviation from the pixel's own luma. The luma
// weights match the quantizer metric so tone shaping and quantization
// agree on what "brightness" means.
func enhance(img *image.NRGBA, contrast, saturation float64) *image.NRGBA {
	if contrast == 1.0 && saturation == 1.0 {
		return img
	}

	brighten := contrast > brightnessTrigger || saturation > brightnessTrigger

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := img.PixOffset(x, y)
			r := float64(img.Pix[i])
			g := float64(img.Pix[i+1])
			bl := float64(img.Pix[i+2])

			if contrast != 1.0 {
				r = (r-128)*contrast + 128
				g = (g-128)*contrast + 128
				bl = (bl-128)*contrast + 128
			}

			if saturation != 1.0 {
				luma := 0.299*r + 0.587*g + 0.114*bl
				r = luma + (r-luma)*saturation
				g = luma + (g-luma)*saturation
				bl = luma + (bl-luma)*saturation
			}

			if brighten {
				r *= brightnessBump
				g *= brightnessBump
				bl *= brightnessBump
			}

			img.Pix[i] = clamp8(r)
			img.Pix[i+1] = clamp8(g)
			img.Pix[i+2] = clamp8(bl)
		}
	}
	return img
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
