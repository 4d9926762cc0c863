//go:build ignore

// gen_fixtures creates small test images for exercising the encode
// pipeline end to end.
// Usage: go run gen_fixtures.go <output_dir>
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	os.MkdirAll(dir, 0o755)

	// Photo-like gradient, panel aspect ratio (JPEG, 400x240).
	writeJPEG(filepath.Join(dir, "photo.jpg"), gradient(400, 240))

	// Tall portrait crop case (PNG, 240x400).
	writePNG(filepath.Join(dir, "portrait.png"), gradient(240, 400))

	// Flat primaries: quantizes without any dithering noise.
	writePNG(filepath.Join(dir, "primaries.png"), primaries(300, 180))

	// Tiny odd-width image: exercises the packer's nibble padding.
	writePNG(filepath.Join(dir, "odd.png"), gradient(33, 21))

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created 4 fixtures in %s\n", dir)
}

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

func primaries(w, h int) *image.NRGBA {
	colors := []color.NRGBA{
		{0, 0, 0, 255}, {255, 255, 255, 255}, {255, 255, 0, 255},
		{255, 0, 0, 255}, {0, 0, 255, 255}, {0, 255, 0, 255},
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	band := w / len(colors)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := x / band
			if i >= len(colors) {
				i = len(colors) - 1
			}
			img.SetNRGBA(x, y, colors[i])
		}
	}
	return img
}

func writePNG(path string, img image.Image) {
	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[gen_fixtures] %v\n", err)
		os.Exit(1)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		fmt.Fprintf(os.Stderr, "[gen_fixtures] %v\n", err)
		os.Exit(1)
	}
}

func writeJPEG(path string, img image.Image) {
	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[gen_fixtures] %v\n", err)
		os.Exit(1)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 90}); err != nil {
		fmt.Fprintf(os.Stderr, "[gen_fixtures] %v\n", err)
		os.Exit(1)
	}
}
