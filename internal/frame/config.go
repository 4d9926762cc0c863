package frame

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
)

// Sentinel errors for the encode pipeline. Callers distinguish bad input
// from internal logic defects with errors.Is.
var (
	// ErrInput marks an undecodable or degenerate source image.
	ErrInput = errors.New("frame: invalid input image")
	// ErrConfig marks an unrecognized mode or out-of-range factor,
	// rejected before the pipeline starts.
	ErrConfig = errors.New("frame: invalid config")
	// ErrSizeMismatch marks a stage output whose dimensions or byte
	// length violate the device contract. Always a logic defect, never
	// auto-corrected.
	ErrSizeMismatch = errors.New("frame: size mismatch")
)

// ResizeMode selects how a source image is mapped onto the canvas.
type ResizeMode int

const (
	// ResizeFit scales down to fit inside the canvas, preserving aspect
	// ratio, and centers the result on a white background.
	ResizeFit ResizeMode = iota
	// ResizeFill scales to cover the canvas, preserving aspect ratio,
	// and center-crops the overflow.
	ResizeFill
	// ResizeStretch resizes to the canvas exactly, ignoring aspect ratio.
	ResizeStretch
)

func (m ResizeMode) String() string {
	switch m {
	case ResizeFit:
		return "fit"
	case ResizeFill:
		return "fill"
	case ResizeStretch:
		return "stretch"
	}
	return fmt.Sprintf("ResizeMode(%d)", int(m))
}

// ParseResizeMode maps a flag value to a ResizeMode.
func ParseResizeMode(s string) (ResizeMode, error) {
	switch s {
	case "fit":
		return ResizeFit, nil
	case "fill":
		return ResizeFill, nil
	case "stretch":
		return ResizeStretch, nil
	}
	return 0, fmt.Errorf("%w: unknown resize mode %q (fit, fill, stretch)", ErrConfig, s)
}

// DitherMode selects the quantization strategy.
type DitherMode int

const (
	// DitherNone quantizes each pixel independently, no error diffusion.
	DitherNone DitherMode = iota
	// DitherFast runs the dither library's Floyd-Steinberg. Quicker, but
	// its distance metric differs slightly from the panel-tuned one.
	DitherFast
	// DitherQuality runs the in-house Floyd-Steinberg with the
	// luma-weighted metric used everywhere else in the pipeline.
	DitherQuality
)

func (m DitherMode) String() string {
	switch m {
	case DitherNone:
		return "none"
	case DitherFast:
		return "fast"
	case DitherQuality:
		return "quality"
	}
	return fmt.Sprintf("DitherMode(%d)", int(m))
}

// ParseDitherMode maps a flag value to a DitherMode.
func ParseDitherMode(s string) (DitherMode, error) {
	switch s {
	case "none":
		return DitherNone, nil
	case "fast":
		return DitherFast, nil
	case "quality":
		return DitherQuality, nil
	}
	return 0, fmt.Errorf("%w: unknown dither mode %q (none, fast, quality)", ErrConfig, s)
}

// Config holds the per-encode options. The zero value is valid except for
// the tone factors, which must be set (1.0 means identity).
type Config struct {
	Resize     ResizeMode
	Dither     DitherMode
	Contrast   float64 // 1.0 = identity
	Saturation float64 // 1.0 = identity

	// Observe, when non-nil, receives each intermediate stage image.
	// Purely instrumentation: it must not mutate img and never changes
	// the encoded bytes.
	Observe func(stage string, img image.Image)

	// Logger for per-stage diagnostics. Defaults to slog.Default.
	Logger *slog.Logger
}

// DefaultConfig returns an identity configuration: fit mode, no
// dithering, no tone adjustment.
func DefaultConfig() Config {
	return Config{
		Resize:     ResizeFit,
		Dither:     DitherNone,
		Contrast:   1.0,
		Saturation: 1.0,
	}
}

func (c Config) validate() error {
	switch c.Resize {
	case ResizeFit, ResizeFill, ResizeStretch:
	default:
		return fmt.Errorf("%w: resize mode %d", ErrConfig, int(c.Resize))
	}
	switch c.Dither {
	case DitherNone, DitherFast, DitherQuality:
	default:
		return fmt.Errorf("%w: dither mode %d", ErrConfig, int(c.Dither))
	}
	if c.Contrast < 0 {
		return fmt.Errorf("%w: contrast %v < 0", ErrConfig, c.Contrast)
	}
	if c.Saturation < 0 {
		return fmt.Errorf("%w: saturation %v < 0", ErrConfig, c.Saturation)
	}
	return nil
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

func (c Config) observe(stage string, img image.Image) {
	if c.Observe != nil {
		c.Observe(stage, img)
	}
}
