package frame

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/AnyUserName/inkframe-cli/internal/device"
)

// smallProfile keeps encode tests fast while exercising the same code
// paths as the real 800x480 panel.
func smallProfile() device.Profile {
	return device.Profile{Name: "test", Width: 16, Height: 12, Palette: "spectra6"}
}

func gradientImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 100, A: 255,
			})
		}
	}
	return img
}

func TestEncodeLengthInvariant(t *testing.T) {
	pal := testPalette(t)
	src := gradientImage(37, 23)

	for _, resize := range []ResizeMode{ResizeFit, ResizeFill, ResizeStretch} {
		for _, dith := range []DitherMode{DitherNone, DitherFast, DitherQuality} {
			cfg := DefaultConfig()
			cfg.Resize = resize
			cfg.Dither = dith

			buf, stats, err := Encode(src, smallProfile(), pal, cfg)
			if err != nil {
				t.Fatalf("%s/%s: %v", resize, dith, err)
			}
			if want := smallProfile().BufferSize(); len(buf) != want {
				t.Errorf("%s/%s: %d bytes, want %d", resize, dith, len(buf), want)
			}
			if stats.PackDefects != 0 {
				t.Errorf("%s/%s: %d pack defects", resize, dith, stats.PackDefects)
			}
		}
	}
}

func TestEncodeFullPanelSize(t *testing.T) {
	pal := testPalette(t)
	prof := device.Get("spectra6")

	buf, _, err := Encode(gradientImage(64, 48), prof, pal, DefaultConfig())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(buf) != 192000 {
		t.Fatalf("frame buffer: %d bytes, want 192000", len(buf))
	}
}

func TestEncodeDeterministic(t *testing.T) {
	pal := testPalette(t)

	for _, dith := range []DitherMode{DitherNone, DitherFast, DitherQuality} {
		cfg := DefaultConfig()
		cfg.Dither = dith
		cfg.Contrast = 1.3
		cfg.Saturation = 1.2

		a, _, err := Encode(gradientImage(37, 23), smallProfile(), pal, cfg)
		if err != nil {
			t.Fatalf("%s: %v", dith, err)
		}
		b, _, err := Encode(gradientImage(37, 23), smallProfile(), pal, cfg)
		if err != nil {
			t.Fatalf("%s: %v", dith, err)
		}
		if !bytes.Equal(a, b) {
			t.Errorf("%s: repeated encode differs", dith)
		}
	}
}

func TestEncodeUniformRedPacksTo0x33(t *testing.T) {
	pal := testPalette(t)
	prof := smallProfile()

	// Pure red source stretched onto the canvas stays pure red through
	// resampling, quantizes to red (0x3) in every mode, and packs to
	// all 0x33 bytes.
	src := solid(prof.Width, prof.Height, color.NRGBA{255, 0, 0, 255})

	for _, dith := range []DitherMode{DitherNone, DitherFast, DitherQuality} {
		cfg := DefaultConfig()
		cfg.Resize = ResizeStretch
		cfg.Dither = dith

		buf, _, err := Encode(src, prof, pal, cfg)
		if err != nil {
			t.Fatalf("%s: %v", dith, err)
		}
		for i, by := range buf {
			if by != 0x33 {
				t.Fatalf("%s: byte %d is %#x, want 0x33", dith, i, by)
			}
		}
	}
}

func TestEncodeRejectsBadConfig(t *testing.T) {
	pal := testPalette(t)
	src := gradientImage(8, 8)

	cfg := DefaultConfig()
	cfg.Contrast = -0.1
	if _, _, err := Encode(src, smallProfile(), pal, cfg); !errors.Is(err, ErrConfig) {
		t.Fatalf("negative contrast: got %v, want ErrConfig", err)
	}

	cfg = DefaultConfig()
	cfg.Saturation = -1
	if _, _, err := Encode(src, smallProfile(), pal, cfg); !errors.Is(err, ErrConfig) {
		t.Fatalf("negative saturation: got %v, want ErrConfig", err)
	}

	cfg = DefaultConfig()
	cfg.Resize = ResizeMode(99)
	if _, _, err := Encode(src, smallProfile(), pal, cfg); !errors.Is(err, ErrConfig) {
		t.Fatalf("bad resize mode: got %v, want ErrConfig", err)
	}
}

func TestEncodeRejectsNilAndEmpty(t *testing.T) {
	pal := testPalette(t)

	if _, _, err := Encode(nil, smallProfile(), pal, DefaultConfig()); !errors.Is(err, ErrInput) {
		t.Fatalf("nil image: got %v, want ErrInput", err)
	}

	empty := image.NewNRGBA(image.Rect(0, 0, 0, 0))
	if _, _, err := Encode(empty, smallProfile(), pal, DefaultConfig()); !errors.Is(err, ErrInput) {
		t.Fatalf("empty image: got %v, want ErrInput", err)
	}
}

func TestEncodeHistogramAccountsAllPixels(t *testing.T) {
	pal := testPalette(t)
	prof := smallProfile()

	_, stats, err := Encode(gradientImage(32, 24), prof, pal, DefaultConfig())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	total := 0
	for _, cc := range stats.Histogram {
		total += cc.Pixels
	}
	if total != prof.Width*prof.Height {
		t.Fatalf("histogram total: %d, want %d", total, prof.Width*prof.Height)
	}
}

func TestEncodeObserverSeesStages(t *testing.T) {
	pal := testPalette(t)

	var stages []string
	cfg := DefaultConfig()
	cfg.Contrast = 1.2
	cfg.Observe = func(stage string, img image.Image) {
		if img == nil {
			t.Errorf("stage %s: nil image", stage)
		}
		stages = append(stages, stage)
	}

	withHook, _, err := Encode(gradientImage(20, 20), smallProfile(), pal, cfg)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	want := []string{"fitted", "enhanced", "quantized"}
	if len(stages) != len(want) {
		t.Fatalf("stages: got %v, want %v", stages, want)
	}
	for i := range want {
		if stages[i] != want[i] {
			t.Fatalf("stages: got %v, want %v", stages, want)
		}
	}

	// The hook is instrumentation only: output must match a hook-less run.
	cfg.Observe = nil
	plain, _, err := Encode(gradientImage(20, 20), smallProfile(), pal, cfg)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(withHook, plain) {
		t.Fatal("observer changed encoded bytes")
	}
}

func TestTestPatternBands(t *testing.T) {
	pal := testPalette(t)
	prof := device.Profile{Name: "bands", Width: 4, Height: 12, Palette: "spectra6"}

	buf, err := TestPattern(prof, pal)
	if err != nil {
		t.Fatalf("pattern: %v", err)
	}
	if len(buf) != prof.BufferSize() {
		t.Fatalf("pattern: %d bytes, want %d", len(buf), prof.BufferSize())
	}

	// 12 rows, 6 entries: two rows per band, 2 bytes per row. The first
	// row is all black (0x00), the last all green (0x66).
	if buf[0] != 0x00 || buf[1] != 0x00 {
		t.Errorf("first row: %#x %#x, want black", buf[0], buf[1])
	}
	last := len(buf) - 2
	if buf[last] != 0x66 || buf[last+1] != 0x66 {
		t.Errorf("last row: %#x %#x, want green", buf[last], buf[last+1])
	}
}

func TestTestPatternFullPanel(t *testing.T) {
	pal := testPalette(t)
	prof := device.Get("spectra6")

	buf, err := TestPattern(prof, pal)
	if err != nil {
		t.Fatalf("pattern: %v", err)
	}
	if len(buf) != 192000 {
		t.Fatalf("pattern: %d bytes, want 192000", len(buf))
	}
}
