package cmd

import (
	"fmt"

	"github.com/alde/bitcam/pkg/estimate"
	"github.com/alde/bitcam/pkg/gradation"
	"github.com/alde/bitcam/pkg/preset"
	"github.com/spf13/cobra"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the available presets",
	Args:  cobra.NoArgs,
	RunE:  runPresets,
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}

func runPresets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	all := preset.List()

	for _, key := range preset.Names() {
		p := all[key]
		bpp, err := estimate.BitsPerPixel(p.Params.Mode, p.Params.Levels)
		if err != nil {
			return fmt.Errorf("preset %s: %w", key, err)
		}

		gradationInfo := "full colour"
		if p.Params.Mode != gradation.None {
			gradationInfo = fmt.Sprintf("%s, %d levels", p.Params.Mode, p.Params.Levels)
		}

		fmt.Fprintf(out, "%-10s %s\n", key, p.Name)
		fmt.Fprintf(out, "           %s\n", p.Description)
		fmt.Fprintf(out, "           %.0f%%, %s, %d bits/pixel\n", p.Params.Scale, gradationInfo, bpp)
	}
	return nil
}
