// Package frame converts a decoded raster image into the packed 4bpp
// frame buffer a six-color e-paper panel consumes. The pipeline is
// strictly linear — canvas fitting, optional tone enhancement, palette
// quantization with optional error diffusion, nibble packing — and pure:
// no I/O, no shared state, byte-identical output for identical inputs.
package frame

import (
	"fmt"
	"image"

	"github.com/AnyUserName/inkframe-cli/internal/device"
	"github.com/AnyUserName/inkframe-cli/internal/palette"
)

// Encode runs the full pipeline for one image and returns the packed
// frame buffer plus encode statistics. It either returns a complete,
// length-checked buffer or a typed error; never a partial buffer.
func Encode(src image.Image, prof device.Profile, pal *palette.Palette, cfg Config) ([]byte, *Stats, error) {
	if src == nil {
		return nil, nil, fmt.Errorf("%w: nil image", ErrInput)
	}
	if err := cfg.validate(); err != nil {
		return nil, nil, err
	}

	log := cfg.logger()

	fitted, err := fitCanvas(src, prof.Width, prof.Height, cfg.Resize)
	if err != nil {
		return nil, nil, err
	}
	cfg.observe("fitted", fitted)
	log.Debug("canvas fitted",
		"mode", cfg.Resize.String(),
		"source", fmt.Sprintf("%dx%d", src.Bounds().Dx(), src.Bounds().Dy()),
		"canvas", fmt.Sprintf("%dx%d", prof.Width, prof.Height))

	// fitCanvas always returns a fresh image, safe to adjust in place.
	toned := enhance(fitted, cfg.Contrast, cfg.Saturation)
	if cfg.Contrast != 1.0 || cfg.Saturation != 1.0 {
		cfg.observe("enhanced", toned)
		log.Debug("tone enhanced", "contrast", cfg.Contrast, "saturation", cfg.Saturation)
	}

	var quantized *image.Paletted
	switch cfg.Dither {
	case DitherFast:
		quantized = ditherFast(toned, pal)
	case DitherQuality:
		quantized = ditherQuality(toned, pal)
	default:
		quantized = quantize(toned, pal)
	}
	cfg.observe("quantized", quantized)

	buf, defects, err := pack(quantized, pal)
	if err != nil {
		return nil, nil, err
	}
	if defects > 0 {
		// Quantization guarantees exact palette colors, so any defect is
		// a pipeline bug. Fall back was applied per pixel; flag it loudly.
		log.Warn("pixels without exact palette match packed as white",
			"defects", defects)
	}

	if want := prof.BufferSize(); len(buf) != want {
		return nil, nil, fmt.Errorf("%w: frame buffer is %d bytes, device expects %d",
			ErrSizeMismatch, len(buf), want)
	}

	stats := &Stats{
		Width:       prof.Width,
		Height:      prof.Height,
		BufferSize:  len(buf),
		Resize:      cfg.Resize.String(),
		Dither:      cfg.Dither.String(),
		Histogram:   histogram(quantized, pal),
		PackDefects: defects,
	}
	return buf, stats, nil
}
