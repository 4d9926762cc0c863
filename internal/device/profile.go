// Package device describes the target e-paper devices: canvas geometry,
// palette revision, and the HTTP surface the firmware exposes.
package device

// Profile defines the fixed parameters of one display device.
type Profile struct {
	Name       string
	Width      int // canvas width in pixels
	Height     int // canvas height in pixels
	Palette    string
	Port       int
	FramePath  string
	StatusPath string
}

// Built-in profiles.
var profiles = map[string]Profile{
	"spectra6": {
		Name:       "spectra6",
		Width:      800,
		Height:     480,
		Palette:    "spectra6",
		Port:       80,
		FramePath:  "/api/display/frame",
		StatusPath: "/api/status",
	},
	"spectra6-revb": {
		Name:       "spectra6-revb",
		Width:      800,
		Height:     480,
		Palette:    "spectra6-revb",
		Port:       80,
		FramePath:  "/api/display/frame",
		StatusPath: "/api/status",
	},
}

// Get returns a profile by name. Falls back to spectra6 if unknown.
func Get(name string) Profile {
	if p, ok := profiles[name]; ok {
		return p
	}
	p := profiles["spectra6"]
	p.Name = name // preserve requested name
	return p
}

// Known reports whether name is a built-in profile.
func Known(name string) bool {
	_, ok := profiles[name]
	return ok
}

// Names returns all built-in profile names.
func Names() []string {
	return []string{"spectra6", "spectra6-revb"}
}

// BufferSize returns the exact packed frame-buffer size in bytes:
// two pixels per byte, rows padded up to a whole byte.
func (p Profile) BufferSize() int {
	return (p.Width + 1) / 2 * p.Height
}
