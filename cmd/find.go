package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/inkframe-cli/internal/device"
	"github.com/AnyUserName/inkframe-cli/internal/sender"
)

var findProfile string

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Scan the local network for an e-paper device",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		prof := device.Get(findProfile)
		host, err := sender.Discover(cmd.Context(), prof, nil)
		if err != nil {
			return err
		}
		fmt.Println(host)
		return nil
	},
}

func init() {
	findCmd.Flags().StringVarP(&findProfile, "profile", "p", "spectra6",
		fmt.Sprintf("device profile %v", device.Names()))
	rootCmd.AddCommand(findCmd)
}
