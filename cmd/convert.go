package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/inkframe-cli/internal/frame"
	"github.com/AnyUserName/inkframe-cli/internal/hasher"
)

var (
	convertEnc    encodeFlags
	convertOut    string
	convertReport string
)

var convertCmd = &cobra.Command{
	Use:   "convert <image>",
	Short: "Encode an image to a frame-buffer file without uploading",
	Long: `Runs the encode pipeline and writes the packed frame buffer to disk.
Without --out the filename is content-addressed: <stem>.<hash>.bin.
Useful for flashing over serial, diffing encoder output, or feeding a
firmware simulator.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertEnc.register(convertCmd)
	convertCmd.Flags().StringVarP(&convertOut, "out", "o", "", "output file (default <stem>.<hash>.bin)")
	convertCmd.Flags().StringVar(&convertReport, "report", "", "also write encode stats as JSON to this path")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	start := time.Now()

	prof, pal, cfg, err := convertEnc.resolve()
	if err != nil {
		return err
	}

	img, format, err := frame.DecodeFile(args[0])
	if err != nil {
		return err
	}
	b := img.Bounds()
	fmt.Printf("Processing %s (%s, %dx%d)\n", args[0], format, b.Dx(), b.Dy())

	buf, stats, err := frame.Encode(img, prof, pal, cfg)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	hash := hasher.ContentHash(buf, 16)
	outPath := convertOut
	if outPath == "" {
		stem := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		outPath = fmt.Sprintf("%s.%s.bin", stem, hash[:8])
	}
	if err := os.WriteFile(outPath, buf, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	if convertReport != "" {
		if err := frame.WriteReport(stats, convertReport); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}

	fmt.Println()
	fmt.Printf("Wrote %s (%d bytes, xxh64 %s)\n", outPath, len(buf), hash)
	fmt.Printf("  Options: mode=%s dither=%s contrast=%.2f saturation=%.2f\n",
		stats.Resize, stats.Dither, cfg.Contrast, cfg.Saturation)
	printHistogram(stats)
	fmt.Printf("  Time:    %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}
