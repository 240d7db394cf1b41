package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alde/bitcam/pkg/capture"
	"github.com/alde/bitcam/pkg/estimate"
	"github.com/alde/bitcam/pkg/gradation"
	"github.com/alde/bitcam/pkg/pipeline"
	"github.com/alde/bitcam/pkg/raster"
	"github.com/alde/bitcam/pkg/resample"
	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/dustin/go-humanize"
)

// sourceOpener maps a command-line source to a capture device. "-" reads a
// single encoded frame from stdin.
func sourceOpener(arg string, stdin io.Reader) capture.Opener {
	if arg == "-" {
		return capture.OpenReader(io.NopCloser(stdin))
	}
	return capture.OpenFile(arg)
}

func validateSource(arg string) error {
	if arg == "-" {
		return nil
	}
	stat, err := os.Stat(arg)
	if os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", arg)
	}
	if err != nil {
		return fmt.Errorf("cannot read input file: %w", err)
	}
	if stat.IsDir() {
		return fmt.Errorf("input path is a directory: %s", arg)
	}
	return nil
}

var previewFormats = []string{".png", ".jpg", ".jpeg", ".gif", ".tif", ".tiff", ".bmp", ".webp"}

func validatePreviewPath(path string) error {
	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return fmt.Errorf("preview directory does not exist: %s", dir)
	}

	ext := strings.ToLower(filepath.Ext(path))
	for _, valid := range previewFormats {
		if ext == valid {
			return nil
		}
	}
	return fmt.Errorf("unsupported preview format: %s (valid options: %s)", ext, strings.Join(previewFormats, ", "))
}

// writePreview shows the processed raster the way the editor displays it:
// blown back up to the source size without smoothing
func writePreview(path string, src *raster.Raster, res pipeline.Result) error {
	display, err := resample.Present(res.Raster, src.Width, src.Height)
	if err != nil {
		return fmt.Errorf("failed to prepare preview: %w", err)
	}

	outFile, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create preview file: %w", err)
	}
	defer outFile.Close()

	if strings.EqualFold(filepath.Ext(path), ".webp") {
		// lossless keeps the quantized levels intact
		if err := webp.Encode(outFile, display, &webp.Options{Lossless: true}); err != nil {
			return fmt.Errorf("failed to encode preview: %w", err)
		}
		return nil
	}

	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return fmt.Errorf("unsupported preview format: %w", err)
	}
	if err := imaging.Encode(outFile, display, format, imaging.JPEGQuality(100)); err != nil {
		return fmt.Errorf("failed to encode preview: %w", err)
	}
	return nil
}

// printSummary renders the size panel for a pipeline result
func printSummary(w io.Writer, src *raster.Raster, res pipeline.Result, decimals int) {
	fmt.Fprintf(w, "Source:        %dpx × %dpx\n", src.Width, src.Height)
	fmt.Fprintf(w, "Render size:   %dpx × %dpx (%.1f%%)\n", res.Width, res.Height, res.Params.Scale)
	if res.Params.Mode == gradation.None {
		fmt.Fprintf(w, "Gradation:     none (%d bits/pixel)\n", res.BitsPerPixel)
	} else {
		fmt.Fprintf(w, "Gradation:     %s, %d levels (%d bits/pixel)\n", res.Params.Mode, res.Params.Levels, res.BitsPerPixel)
	}
	fmt.Fprintf(w, "Data size:     %s B (%s) uncompressed\n", estimate.FormatExact(res.Bytes), estimate.Format(res.Bytes, decimals))

	if verbose {
		original := float64(src.Width*src.Height) * estimate.TrueColorBitsPerPixel / 8
		if original > 0 {
			fmt.Fprintf(w, "Reduction:     %.1f%% of the original %s\n", res.Bytes/original*100,
				humanize.IBytes(uint64(original)))
		}
	}
}
