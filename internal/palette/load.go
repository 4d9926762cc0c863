package palette

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// fileEntry is one palette entry as written in a palette file:
//
//	[
//	  {"code": 0, "name": "black", "color": "#000000"},
//	  ...
//	]
type fileEntry struct {
	Code  uint8  `json:"code"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// LoadFile reads a custom palette from a JSON file. Colors are hex
// strings ("#RRGGBB"); the same six-entry validation as New applies.
func LoadFile(path string) (*Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read palette: %w", err)
	}

	var raw []fileEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse palette %s: %w", path, err)
	}

	entries := make([]Entry, 0, len(raw))
	for _, fe := range raw {
		c, err := colorful.Hex(fe.Color)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %q: bad color %q", ErrInvalid, fe.Name, fe.Color)
		}
		r, g, b := c.RGB255()
		entries = append(entries, Entry{
			Code:  fe.Code,
			Name:  fe.Name,
			Color: color.NRGBA{R: r, G: g, B: b, A: 0xFF},
		})
	}

	return New(entries)
}

// Resolve maps a --palette argument to a palette: a built-in name first,
// otherwise a path to a palette file.
func Resolve(nameOrPath string) (*Palette, error) {
	if p, ok := Builtin(nameOrPath); ok {
		return p, nil
	}
	if _, err := os.Stat(nameOrPath); err != nil {
		return nil, fmt.Errorf("unknown palette %q (built-ins: %v)", nameOrPath, BuiltinNames())
	}
	return LoadFile(nameOrPath)
}
