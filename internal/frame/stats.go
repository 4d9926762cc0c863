package frame

import (
	"encoding/json"
	"image"
	"os"

	"github.com/AnyUserName/inkframe-cli/internal/palette"
)

// Stats summarizes one encode: canvas geometry, final buffer size, the
// per-color pixel distribution, and how many pixels (if any) reached the
// packer without an exact palette match.
type Stats struct {
	Width      int          `json:"width"`
	Height     int          `json:"height"`
	BufferSize int          `json:"buffer_size"`
	Resize     string       `json:"resize"`
	Dither     string       `json:"dither"`
	Histogram  []ColorCount `json:"histogram"`
	// PackDefects counts pixels that fell back to the white code because
	// they matched no palette color. Nonzero means a pipeline defect.
	PackDefects int `json:"pack_defects,omitempty"`
}

// ColorCount is the pixel count for one palette entry.
type ColorCount struct {
	Code   uint8  `json:"code"`
	Name   string `json:"name"`
	Pixels int    `json:"pixels"`
}

// histogram tallies a quantized image per palette entry, in declaration
// order.
func histogram(p *image.Paletted, pal *palette.Palette) []ColorCount {
	counts := make([]int, palette.Size)
	b := p.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if idx := int(p.ColorIndexAt(x, y)); idx < palette.Size {
				counts[idx]++
			}
		}
	}

	out := make([]ColorCount, palette.Size)
	for i := range out {
		e := pal.Entry(i)
		out[i] = ColorCount{Code: e.Code, Name: e.Name, Pixels: counts[i]}
	}
	return out
}

// WriteReport serializes stats to a JSON file, indented, with a trailing
// newline.
func WriteReport(s *Stats, path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}
