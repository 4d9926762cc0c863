package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/inkframe-cli/internal/config"
	"github.com/AnyUserName/inkframe-cli/internal/device"
	"github.com/AnyUserName/inkframe-cli/internal/sender"
)

var (
	statusAddr    string
	statusProfile string
	statusTimeout time.Duration
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Query the device status endpoint",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().StringVarP(&statusAddr, "addr", "a",
		config.Get("INKFRAME_ADDR", ""), "device IP or hostname")
	statusCmd.Flags().StringVarP(&statusProfile, "profile", "p", "spectra6",
		fmt.Sprintf("device profile %v", device.Names()))
	statusCmd.Flags().DurationVar(&statusTimeout, "timeout",
		config.GetDuration("INKFRAME_TIMEOUT", 5*time.Second), "request timeout")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	prof := device.Get(statusProfile)

	host, err := resolveHost(cmd.Context(), prof, statusAddr, false)
	if err != nil {
		return err
	}

	client := sender.New(host, prof, statusTimeout, nil)
	st, err := client.Status(cmd.Context())
	if err != nil {
		return err
	}

	hw := "available"
	if !st.HardwareAvailable {
		hw = "simulation mode"
	}
	fmt.Printf("Device:   %s\n", client.BaseURL())
	fmt.Printf("Service:  %s\n", st.Service)
	fmt.Printf("Status:   %s\n", st.State)
	fmt.Printf("Uptime:   %s\n", st.Uptime)
	fmt.Printf("Hardware: %s\n", hw)
	if st.FrameSize > 0 {
		fmt.Printf("Frame:    %d bytes expected (profile %s produces %d)\n",
			st.FrameSize, prof.Name, prof.BufferSize())
	}
	return nil
}
