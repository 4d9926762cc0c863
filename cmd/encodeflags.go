package cmd

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/AnyUserName/inkframe-cli/internal/device"
	"github.com/AnyUserName/inkframe-cli/internal/frame"
	"github.com/AnyUserName/inkframe-cli/internal/palette"
)

// encodeFlags are the pipeline options shared by send, convert and
// pattern.
type encodeFlags struct {
	profileName string
	paletteArg  string
	resize      string
	dither      string
	contrast    float64
	saturation  float64
	debugDir    string
}

func (f *encodeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.profileName, "profile", "p", "spectra6",
		fmt.Sprintf("device profile %v", device.Names()))
	cmd.Flags().StringVar(&f.paletteArg, "palette", "",
		"palette name or JSON file (default: the profile's palette)")
	cmd.Flags().StringVarP(&f.resize, "mode", "m", "fit", "resize mode: fit, fill, stretch")
	cmd.Flags().StringVarP(&f.dither, "dither", "d", "quality", "dither mode: none, fast, quality")
	cmd.Flags().Float64Var(&f.contrast, "contrast", 1.0, "contrast factor (1.0 = unchanged)")
	cmd.Flags().Float64Var(&f.saturation, "saturation", 1.0, "saturation factor (1.0 = unchanged)")
	cmd.Flags().StringVar(&f.debugDir, "debug-dir", "", "write intermediate stage images to this directory")
}

// resolve turns the raw flag values into the profile, palette and
// pipeline config, wiring up the debug-dump observer when requested.
func (f *encodeFlags) resolve() (device.Profile, *palette.Palette, frame.Config, error) {
	prof := device.Get(f.profileName)
	if !device.Known(f.profileName) {
		return prof, nil, frame.Config{}, fmt.Errorf("unknown profile %q (built-ins: %v)",
			f.profileName, device.Names())
	}

	paletteArg := f.paletteArg
	if paletteArg == "" {
		paletteArg = prof.Palette
	}
	pal, err := palette.Resolve(paletteArg)
	if err != nil {
		return prof, nil, frame.Config{}, err
	}

	cfg := frame.DefaultConfig()
	cfg.Contrast = f.contrast
	cfg.Saturation = f.saturation
	if cfg.Resize, err = frame.ParseResizeMode(f.resize); err != nil {
		return prof, nil, frame.Config{}, err
	}
	if cfg.Dither, err = frame.ParseDitherMode(f.dither); err != nil {
		return prof, nil, frame.Config{}, err
	}

	if f.debugDir != "" {
		if err := os.MkdirAll(f.debugDir, 0o755); err != nil {
			return prof, nil, frame.Config{}, fmt.Errorf("create debug dir: %w", err)
		}
		dir := f.debugDir
		cfg.Observe = func(stage string, img image.Image) {
			path := filepath.Join(dir, stage+".png")
			if err := imaging.Save(img, path); err != nil {
				slog.Warn("debug dump failed", "stage", stage, "error", err)
			} else {
				slog.Debug("debug dump written", "path", path)
			}
		}
	}

	return prof, pal, cfg, nil
}

// printHistogram writes the per-color pixel distribution to stdout.
func printHistogram(stats *frame.Stats) {
	total := stats.Width * stats.Height
	fmt.Println("  Color distribution:")
	for _, cc := range stats.Histogram {
		share := float64(cc.Pixels) / float64(total) * 100
		fmt.Printf("    0x%X %-8s %8d px  (%.1f%%)\n", cc.Code, cc.Name, cc.Pixels, share)
	}
	if stats.PackDefects > 0 {
		fmt.Printf("  WARNING: %d pixels had no exact palette match\n", stats.PackDefects)
	}
}
