package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/inkframe-cli/internal/config"
	"github.com/AnyUserName/inkframe-cli/internal/device"
	"github.com/AnyUserName/inkframe-cli/internal/frame"
	"github.com/AnyUserName/inkframe-cli/internal/palette"
	"github.com/AnyUserName/inkframe-cli/internal/sender"
)

var (
	patternProfile string
	patternPalette string
	patternAddr    string
	patternOut     string
	patternTimeout time.Duration
)

var patternCmd = &cobra.Command{
	Use:   "pattern",
	Short: "Generate the device self-test pattern",
	Long: `Builds the test pattern — one horizontal band per palette color — and
either uploads it (--addr) or writes it to a file (--out).`,
	Args: cobra.NoArgs,
	RunE: runPattern,
}

func init() {
	patternCmd.Flags().StringVarP(&patternProfile, "profile", "p", "spectra6",
		fmt.Sprintf("device profile %v", device.Names()))
	patternCmd.Flags().StringVar(&patternPalette, "palette", "",
		"palette name or JSON file (default: the profile's palette)")
	patternCmd.Flags().StringVarP(&patternAddr, "addr", "a",
		config.Get("INKFRAME_ADDR", ""), "device IP or hostname")
	patternCmd.Flags().StringVarP(&patternOut, "out", "o", "", "write the pattern to a file instead of uploading")
	patternCmd.Flags().DurationVar(&patternTimeout, "timeout",
		config.GetDuration("INKFRAME_TIMEOUT", sender.DefaultTimeout), "upload timeout")
	rootCmd.AddCommand(patternCmd)
}

func runPattern(cmd *cobra.Command, _ []string) error {
	prof := device.Get(patternProfile)
	if !device.Known(patternProfile) {
		return fmt.Errorf("unknown profile %q (built-ins: %v)", patternProfile, device.Names())
	}

	paletteArg := patternPalette
	if paletteArg == "" {
		paletteArg = prof.Palette
	}
	pal, err := palette.Resolve(paletteArg)
	if err != nil {
		return err
	}

	buf, err := frame.TestPattern(prof, pal)
	if err != nil {
		return err
	}

	if patternOut != "" {
		if err := os.WriteFile(patternOut, buf, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", patternOut, err)
		}
		fmt.Printf("Wrote test pattern to %s (%d bytes)\n", patternOut, len(buf))
		return nil
	}

	host, err := resolveHost(cmd.Context(), prof, patternAddr, false)
	if err != nil {
		return err
	}
	client := sender.New(host, prof, patternTimeout, nil)
	st, err := client.Status(cmd.Context())
	if err != nil {
		return fmt.Errorf("device not reachable: %w", err)
	}
	if err := sender.CheckFrameSize(st, len(buf)); err != nil {
		return err
	}

	result, err := client.SendFrame(cmd.Context(), buf, false)
	if err != nil {
		return err
	}
	fmt.Printf("Test pattern accepted as frame %d: %s\n", result.FrameNumber, result.Message)
	return nil
}
