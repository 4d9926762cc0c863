package frame

import (
	"image"
	"image/color"
	"testing"
)

func TestEnhanceIdentityPassThrough(t *testing.T) {
	img := gray(4, 4, 77)
	before := make([]uint8, len(img.Pix))
	copy(before, img.Pix)

	out := enhance(img, 1.0, 1.0)
	if out != img {
		t.Fatal("identity enhance should return the same image")
	}
	for i := range before {
		if img.Pix[i] != before[i] {
			t.Fatal("identity enhance mutated pixels")
		}
	}
}

func TestEnhanceContrastSpreadsAroundMidGray(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{100, 100, 100, 255})
	img.SetNRGBA(1, 0, color.NRGBA{160, 160, 160, 255})

	enhance(img, 1.2, 1.0)

	// (100-128)*1.2+128 = 94.4 -> rounds to 94; (160-128)*1.2+128 = 166.
	if got := img.NRGBAAt(0, 0).R; got != 94 {
		t.Errorf("dark pixel: got %d, want 94", got)
	}
	if got := img.NRGBAAt(1, 0).R; got != 166 {
		t.Errorf("light pixel: got %d, want 166", got)
	}
}

func TestEnhanceSaturationLeavesGrayAlone(t *testing.T) {
	// A pure gray pixel equals its own luma: saturation scaling must not
	// move it.
	img := gray(1, 1, 90)
	enhance(img, 1.0, 1.4)
	if got := img.NRGBAAt(0, 0); got.R != 90 || got.G != 90 || got.B != 90 {
		t.Fatalf("gray pixel moved: %v", got)
	}
}

func TestEnhanceSaturationAmplifiesChroma(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, color.NRGBA{200, 100, 100, 255})

	enhance(img, 1.0, 1.5)

	got := img.NRGBAAt(0, 0)
	// Luma = 0.299*200 + 0.587*100 + 0.114*100 = 129.9. Red deviation
	// grows 1.5x, green/blue shrink further below luma.
	if got.R <= 200 {
		t.Errorf("red should increase: got %d", got.R)
	}
	if got.G >= 100 || got.B >= 100 {
		t.Errorf("green/blue should decrease: got %d,%d", got.G, got.B)
	}
}

func TestEnhanceBrightnessBumpTriggers(t *testing.T) {
	// Saturation 1.6 exceeds the 1.5 threshold: a gray pixel (immune to
	// saturation itself) still gains the +10% brightness bump.
	img := gray(1, 1, 100)
	enhance(img, 1.0, 1.6)
	if got := img.NRGBAAt(0, 0).R; got != 110 {
		t.Fatalf("brightness bump: got %d, want 110", got)
	}

	// At exactly 1.5 the bump must not trigger.
	img = gray(1, 1, 100)
	enhance(img, 1.0, 1.5)
	if got := img.NRGBAAt(0, 0).R; got != 100 {
		t.Fatalf("no bump expected at 1.5: got %d", got)
	}
}

func TestEnhanceClamps(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{250, 250, 250, 255})
	img.SetNRGBA(1, 0, color.NRGBA{5, 5, 5, 255})

	enhance(img, 3.0, 1.0)

	if got := img.NRGBAAt(0, 0).R; got != 255 {
		t.Errorf("bright pixel should clamp to 255: got %d", got)
	}
	if got := img.NRGBAAt(1, 0).R; got != 0 {
		t.Errorf("dark pixel should clamp to 0: got %d", got)
	}
}
