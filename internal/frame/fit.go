package frame

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// canvasBackground fills the unused border in fit mode. E-paper panels
// rest at white, so borders blend with the bezel.
var canvasBackground = color.NRGBA{0xFF, 0xFF, 0xFF, 0xFF}

// fitCanvas maps src onto a width x height canvas under the given mode.
// The result always has exactly the requested dimensions; anything else
// is an ErrSizeMismatch, surfaced rather than corrected.
func fitCanvas(src image.Image, width, height int, mode ResizeMode) (*image.NRGBA, error) {
	b := src.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: source is %dx%d", ErrInput, b.Dx(), b.Dy())
	}

	var out *image.NRGBA
	switch mode {
	case ResizeStretch:
		out = imaging.Resize(src, width, height, imaging.Lanczos)
	case ResizeFill:
		// Cover the canvas, then center-crop the overflow on the long axis.
		out = imaging.Fill(src, width, height, imaging.Center, imaging.Lanczos)
	case ResizeFit:
		// Thumbnail semantics: scale down only, then center on white.
		thumb := imaging.Fit(src, width, height, imaging.Lanczos)
		canvas := imaging.New(width, height, canvasBackground)
		out = imaging.PasteCenter(canvas, thumb)
	default:
		return nil, fmt.Errorf("%w: resize mode %d", ErrConfig, int(mode))
	}

	if got := out.Bounds(); got.Dx() != width || got.Dy() != height {
		return nil, fmt.Errorf("%w: fitted image is %dx%d, want %dx%d",
			ErrSizeMismatch, got.Dx(), got.Dy(), width, height)
	}
	return out, nil
}
