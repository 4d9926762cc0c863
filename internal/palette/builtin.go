package palette

import "image/color"

// Built-in palettes for known panel revisions.
//
// "spectra6" is the original six-color controller: code 0x4 is reserved
// and unused. "spectra6-revb" is the later revision that compacts the
// code space to 0-5, moving blue onto 0x4.
var builtins = map[string][]Entry{
	"spectra6": {
		{Code: 0x0, Name: "black", Color: color.NRGBA{0x00, 0x00, 0x00, 0xFF}},
		{Code: 0x1, Name: "white", Color: color.NRGBA{0xFF, 0xFF, 0xFF, 0xFF}},
		{Code: 0x2, Name: "yellow", Color: color.NRGBA{0xFF, 0xFF, 0x00, 0xFF}},
		{Code: 0x3, Name: "red", Color: color.NRGBA{0xFF, 0x00, 0x00, 0xFF}},
		{Code: 0x5, Name: "blue", Color: color.NRGBA{0x00, 0x00, 0xFF, 0xFF}},
		{Code: 0x6, Name: "green", Color: color.NRGBA{0x00, 0xFF, 0x00, 0xFF}},
	},
	"spectra6-revb": {
		{Code: 0x0, Name: "black", Color: color.NRGBA{0x00, 0x00, 0x00, 0xFF}},
		{Code: 0x1, Name: "white", Color: color.NRGBA{0xFF, 0xFF, 0xFF, 0xFF}},
		{Code: 0x2, Name: "yellow", Color: color.NRGBA{0xFF, 0xFF, 0x00, 0xFF}},
		{Code: 0x3, Name: "red", Color: color.NRGBA{0xFF, 0x00, 0x00, 0xFF}},
		{Code: 0x4, Name: "blue", Color: color.NRGBA{0x00, 0x00, 0xFF, 0xFF}},
		{Code: 0x5, Name: "green", Color: color.NRGBA{0x00, 0xFF, 0x00, 0xFF}},
	},
}

// Builtin returns a named built-in palette. The boolean is false for
// unknown names.
func Builtin(name string) (*Palette, bool) {
	entries, ok := builtins[name]
	if !ok {
		return nil, false
	}
	p, err := New(entries)
	if err != nil {
		// Built-in tables are fixed at compile time; a failure here is a
		// programming error, not bad input.
		panic(err)
	}
	return p, true
}

// BuiltinNames returns the names of all built-in palettes.
func BuiltinNames() []string {
	return []string{"spectra6", "spectra6-revb"}
}
