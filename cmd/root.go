package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "bitcam",
	Short: "Explore how gradation and resolution shrink a photo",
	Long: `bitcam takes a photo and shows what it looks like with fewer gray or
colour levels and a lower resolution, together with the theoretical
uncompressed data size of the result.

Currently supports:
- One-shot rendering with a size summary and an optional preview image
- An interactive editing session (capture, adjust, reset, retake)
- Batch sweeps over many images and level counts`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}
