package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "inkframe",
	Short: "Convert and send images to six-color e-paper displays",
	Long: `inkframe — turns any raster image into the packed 4bpp frame buffer a
six-color electrophoretic panel expects, and ships it to the panel's
HTTP endpoint.

Handles canvas fitting (fit/fill/stretch), tone enhancement, palette
quantization with optional Floyd-Steinberg dithering, and the device's
two-pixels-per-byte wire format.`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(setupLogging)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"inkframe %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// setupLogging installs the tint handler on the default logger. Debug
// level only with --verbose; the commands' own reports go to stdout.
func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})))
}
