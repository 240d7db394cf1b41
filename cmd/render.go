package cmd

import (
	"fmt"
	"os"

	"github.com/alde/bitcam/pkg/capture"
	"github.com/alde/bitcam/pkg/gradation"
	"github.com/alde/bitcam/pkg/pipeline"
	"github.com/alde/bitcam/pkg/preset"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	renderScale    float64
	renderMode     = gradation.None
	renderLevels   int
	renderPreset   string
	previewPath    string
	renderDecimals int
)

// gradation.Mode is bound directly as a flag value
var _ pflag.Value = (*gradation.Mode)(nil)

var renderCmd = &cobra.Command{
	Use:   "render [image|-]",
	Short: "Apply scale and gradation to a photo and report its size",
	Long: `Render a photo at a reduced resolution and gradation and print the
theoretical uncompressed size of the result.

A preset seeds all parameters; flags given explicitly override it.
Use "-" to read the photo from stdin.

Examples:
  bitcam render photo.jpg --scale 25 --mode grayscale --levels 4
  bitcam render photo.jpg --preset gameboy --preview out.png
  cat photo.png | bitcam render - --mode rgb --levels 8`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().Float64Var(&renderScale, "scale", 100, "Resolution in percent of the source (clamped to the image minimum)")
	renderCmd.Flags().Var(&renderMode, "mode", "Gradation mode (none, grayscale, rgb)")
	renderCmd.Flags().IntVar(&renderLevels, "levels", gradation.DefaultLevels, "Gradation levels per channel (2-256)")
	renderCmd.Flags().StringVar(&renderPreset, "preset", "", "Start from a named preset (see 'bitcam presets')")
	renderCmd.Flags().StringVarP(&previewPath, "preview", "o", "", "Write the result at source size to this image file")
	renderCmd.Flags().IntVar(&renderDecimals, "decimals", 2, "Decimal places in the formatted data size")
}

func runRender(cmd *cobra.Command, args []string) error {
	source := args[0]

	if err := validateSource(source); err != nil {
		return fmt.Errorf("input validation failed: %w", err)
	}
	if previewPath != "" {
		if err := validatePreviewPath(previewPath); err != nil {
			return fmt.Errorf("preview validation failed: %w", err)
		}
	}

	params, err := resolveParams(cmd.Flags())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if verbose {
		if source == "-" {
			fmt.Fprintln(out, "Reading photo from stdin")
		} else if info, err := os.Stat(source); err == nil {
			fmt.Fprintf(out, "Reading %s (%s)\n", source, humanize.Bytes(uint64(info.Size())))
		}
	}

	src, err := capture.Grab(cmd.Context(), sourceOpener(source, cmd.InOrStdin()))
	if err != nil {
		return err
	}

	res, err := pipeline.Run(src, params.Normalize(src.Width, src.Height))
	if err != nil {
		return err
	}

	printSummary(out, src, res, renderDecimals)

	if previewPath != "" {
		if err := writePreview(previewPath, src, res); err != nil {
			return err
		}
		fmt.Fprintf(out, "Preview written to %s\n", previewPath)
	}
	return nil
}

// resolveParams starts from the preset (or the defaults) and applies every
// flag the user set explicitly
func resolveParams(flags *pflag.FlagSet) (pipeline.Params, error) {
	params := pipeline.DefaultParams()
	if renderPreset != "" {
		p, err := preset.Get(renderPreset)
		if err != nil {
			return pipeline.Params{}, fmt.Errorf("preset error: %w", err)
		}
		params = p.Params
	}

	if renderPreset == "" || flags.Changed("scale") {
		params.Scale = renderScale
	}
	if renderPreset == "" || flags.Changed("mode") {
		params.Mode = renderMode
	}
	if renderPreset == "" || flags.Changed("levels") {
		if err := gradation.ValidateLevels(renderLevels); err != nil {
			return pipeline.Params{}, err
		}
		params.Levels = renderLevels
	}
	return params, nil
}
