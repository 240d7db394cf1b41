package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"github.com/alde/bitcam/pkg/batch"
	"github.com/alde/bitcam/pkg/estimate"
	"github.com/alde/bitcam/pkg/gradation"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	sweepLevels  string
	sweepMode    = gradation.RGB
	sweepScale   float64
	sweepWorkers int
)

var sweepCmd = &cobra.Command{
	Use:   "sweep [images...]",
	Short: "Estimate sizes for many images across level counts",
	Long: `Run the pipeline for every image and every requested level count and
print a table of render sizes, bits per pixel, theoretical sizes and the
number of distinct colours that survive.

Images are processed in parallel.

Examples:
  bitcam sweep photos/*.jpg
  bitcam sweep a.png b.png --mode grayscale --levels "2-8,16" --scale 50`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSweep,
}

func init() {
	rootCmd.AddCommand(sweepCmd)

	sweepCmd.Flags().StringVar(&sweepLevels, "levels", batch.DefaultLevels.String(), "Level counts to evaluate (e.g., \"2,4,16-32\")")
	sweepCmd.Flags().Var(&sweepMode, "mode", "Gradation mode (none, grayscale, rgb)")
	sweepCmd.Flags().Float64Var(&sweepScale, "scale", 100, "Resolution in percent of each source")
	sweepCmd.Flags().IntVar(&sweepWorkers, "workers", 0, "Number of worker goroutines (0 = auto)")
}

func runSweep(cmd *cobra.Command, args []string) error {
	levels, err := batch.ParseLevelSet(sweepLevels)
	if err != nil {
		return fmt.Errorf("invalid levels format: %w", err)
	}

	out := cmd.OutOrStdout()
	opts := batch.Options{
		Mode:        sweepMode,
		Scale:       sweepScale,
		Levels:      levels,
		WorkerCount: sweepWorkers,
	}
	if verbose {
		opts.Progress = cmd.ErrOrStderr()
		fmt.Fprintf(out, "Sweeping %d images, mode %s, levels %s\n", len(args), sweepMode, levels)
	}

	reports := batch.Sweep(cmd.Context(), args, opts)

	failed := 0
	for _, report := range reports {
		if report.Error != nil {
			failed++
		}
		printReport(out, report)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d images failed", failed, len(reports))
	}
	return nil
}

func printReport(w io.Writer, report batch.Report) {
	name := filepath.Base(report.Path)
	if report.Error != nil {
		fmt.Fprintf(w, "%s: %v\n\n", name, report.Error)
		return
	}

	fmt.Fprintf(w, "%s (%s, %dpx × %dpx) at %.1f%%\n", name, humanize.Bytes(report.FileSize),
		report.SourceWidth, report.SourceHeight, report.Scale)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "levels\tsize\tbits/px\tbytes\tformatted\tcolours\t")
	for _, row := range report.Rows {
		fmt.Fprintf(tw, "%d\t%d×%d\t%d\t%s\t%s\t%s\t\n", row.Levels, row.Width, row.Height,
			row.BitsPerPixel, estimate.FormatExact(row.Bytes), estimate.Format(row.Bytes, 2),
			humanize.Comma(int64(row.Colors)))
	}
	tw.Flush()
	fmt.Fprintln(w)
}
