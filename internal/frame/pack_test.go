package frame

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/AnyUserName/inkframe-cli/internal/palette"
)

func testPalette(t *testing.T) *palette.Palette {
	t.Helper()
	p, ok := palette.Builtin("spectra6")
	if !ok {
		t.Fatal("spectra6 builtin missing")
	}
	return p
}

// paletted builds a quantized image from rows of declaration-order
// palette indices.
func paletted(pal *palette.Palette, rows [][]uint8) *image.Paletted {
	h := len(rows)
	w := len(rows[0])
	img := image.NewPaletted(image.Rect(0, 0, w, h), pal.Colors())
	for y, row := range rows {
		for x, idx := range row {
			img.SetColorIndex(x, y, idx)
		}
	}
	return img
}

func TestPackCheckerboard(t *testing.T) {
	pal := testPalette(t)

	// black,white / white,black with black=0x0, white=0x1.
	img := paletted(pal, [][]uint8{
		{0, 1},
		{1, 0},
	})

	buf, defects, err := pack(img, pal)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	if defects != 0 {
		t.Fatalf("defects: got %d, want 0", defects)
	}
	want := []byte{0x01, 0x10}
	if !bytes.Equal(buf, want) {
		t.Fatalf("packed bytes: got %#v, want %#v", buf, want)
	}
}

func TestPackHighNibbleFirst(t *testing.T) {
	pal := testPalette(t)

	// red (0x3) then blue (0x5): red is the earlier column.
	img := paletted(pal, [][]uint8{{3, 4}})

	buf, _, err := pack(img, pal)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	if len(buf) != 1 || buf[0] != 0x35 {
		t.Fatalf("packed byte: got %#v, want [0x35]", buf)
	}
}

func TestPackOddWidthPadsWithWhite(t *testing.T) {
	pal := testPalette(t)

	img := paletted(pal, [][]uint8{
		{0, 0, 0},
		{3, 3, 3},
	})

	buf, _, err := pack(img, pal)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	// 3 pixels -> 2 bytes per row; trailing low nibble is white (0x1).
	want := []byte{0x00, 0x01, 0x33, 0x31}
	if !bytes.Equal(buf, want) {
		t.Fatalf("packed bytes: got %#v, want %#v", buf, want)
	}
}

func TestPackLengthInvariant(t *testing.T) {
	pal := testPalette(t)

	for _, tc := range []struct{ w, h, want int }{
		{800, 480, 192000},
		{2, 2, 2},
		{3, 2, 4},
		{1, 1, 1},
	} {
		img := image.NewPaletted(image.Rect(0, 0, tc.w, tc.h), pal.Colors())
		buf, _, err := pack(img, pal)
		if err != nil {
			t.Fatalf("pack %dx%d: %v", tc.w, tc.h, err)
		}
		if len(buf) != tc.want {
			t.Errorf("pack %dx%d: got %d bytes, want %d", tc.w, tc.h, len(buf), tc.want)
		}
	}
}

func TestPackExactColorPath(t *testing.T) {
	pal := testPalette(t)

	// A plain NRGBA image with exact palette colors takes the reverse
	// lookup path and must agree with the paletted fast path.
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{0, 0, 0, 255})
	img.SetNRGBA(1, 0, color.NRGBA{255, 0, 0, 255})

	buf, defects, err := pack(img, pal)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	if defects != 0 {
		t.Fatalf("defects: got %d, want 0", defects)
	}
	if len(buf) != 1 || buf[0] != 0x03 {
		t.Fatalf("packed byte: got %#v, want [0x03]", buf)
	}
}

func TestPackCountsDefects(t *testing.T) {
	pal := testPalette(t)

	// (7,7,7) is no palette color: the packer must fall back to white
	// and count the defect rather than hide it.
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{7, 7, 7, 255})
	img.SetNRGBA(1, 0, color.NRGBA{0, 0, 0, 255})

	buf, defects, err := pack(img, pal)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	if defects != 1 {
		t.Fatalf("defects: got %d, want 1", defects)
	}
	if buf[0] != 0x10 {
		t.Fatalf("packed byte: got %#x, want 0x10 (white fallback, black)", buf[0])
	}
}

func TestPackRejectsEmptyImage(t *testing.T) {
	pal := testPalette(t)
	img := image.NewPaletted(image.Rect(0, 0, 0, 0), pal.Colors())
	if _, _, err := pack(img, pal); err == nil {
		t.Fatal("expected error for empty image")
	}
}
