package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/inkframe-cli/internal/config"
	"github.com/AnyUserName/inkframe-cli/internal/device"
	"github.com/AnyUserName/inkframe-cli/internal/frame"
	"github.com/AnyUserName/inkframe-cli/internal/hasher"
	"github.com/AnyUserName/inkframe-cli/internal/sender"
)

var (
	sendEnc       encodeFlags
	sendAddr      string
	sendTimeout   time.Duration
	sendMultipart bool
	sendFind      bool
)

var sendCmd = &cobra.Command{
	Use:   "send <image>",
	Short: "Encode an image and upload it to the device",
	Long: `Decodes an image (png, jpeg, gif, bmp, tiff, webp), runs the encode
pipeline for the selected device profile, verifies the device is
reachable and expects the produced buffer size, then uploads the frame.`,
	Args: cobra.ExactArgs(1),
	RunE: runSend,
}

func init() {
	sendEnc.register(sendCmd)
	sendCmd.Flags().StringVarP(&sendAddr, "addr", "a",
		config.Get("INKFRAME_ADDR", ""), "device IP or hostname")
	sendCmd.Flags().DurationVar(&sendTimeout, "timeout",
		config.GetDuration("INKFRAME_TIMEOUT", sender.DefaultTimeout), "upload timeout")
	sendCmd.Flags().BoolVar(&sendMultipart, "multipart",
		config.GetBool("INKFRAME_MULTIPART", false), "upload as a multipart file field instead of a raw body")
	sendCmd.Flags().BoolVar(&sendFind, "find", false, "scan the local network for the device")
	rootCmd.AddCommand(sendCmd)
}

func runSend(cmd *cobra.Command, args []string) error {
	start := time.Now()
	ctx := cmd.Context()

	prof, pal, cfg, err := sendEnc.resolve()
	if err != nil {
		return err
	}

	host, err := resolveHost(ctx, prof, sendAddr, sendFind)
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

	client := sender.New(host, prof, sendTimeout, nil)
	st, err := client.Status(ctx)
	if err != nil {
		return fmt.Errorf("device not reachable: %w", err)
	}
	fmt.Printf("Connected to %s (%s, %s)\n", client.BaseURL(), st.Service, st.State)
	if !st.HardwareAvailable {
		fmt.Println("  note: device reports simulation mode, no panel attached")
	}
	if err := sender.CheckFrameSize(st, len(buf)); err != nil {
		return err
	}

	result, err := client.SendFrame(ctx, buf, sendMultipart)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("Frame %d accepted: %s\n", result.FrameNumber, result.Message)
	fmt.Printf("  Buffer:  %d bytes (xxh64 %s)\n", len(buf), hasher.ContentHash(buf, 16))
	fmt.Printf("  Options: mode=%s dither=%s contrast=%.2f saturation=%.2f\n",
		stats.Resize, stats.Dither, cfg.Contrast, cfg.Saturation)
	printHistogram(stats)
	fmt.Printf("  Time:    %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}

// resolveHost picks the device host: explicit flag first, discovery scan
// when asked for or when no address is known.
func resolveHost(ctx context.Context, prof device.Profile, addr string, find bool) (string, error) {
	if addr != "" && !find {
		return addr, nil
	}
	host, err := sender.Discover(ctx, prof, nil)
	if err == nil {
		return host, nil
	}
	if addr != "" {
		return addr, nil
	}
	return "", fmt.Errorf("no device address: set --addr or INKFRAME_ADDR (%w)", err)
}
