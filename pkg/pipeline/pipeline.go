package pipeline

import (
	"fmt"

	"github.com/alde/bitcam/pkg/estimate"
	"github.com/alde/bitcam/pkg/geometry"
	"github.com/alde/bitcam/pkg/gradation"
	"github.com/alde/bitcam/pkg/raster"
	"github.com/alde/bitcam/pkg/resample"
)

// Params is the full set of user-adjustable transform settings
type Params struct {
	Scale  float64 // percent of the source resolution
	Mode   gradation.Mode
	Levels int
}

// DefaultParams returns the untouched state: native resolution, no gradation
func DefaultParams() Params {
	return Params{
		Scale:  geometry.MaxScale,
		Mode:   gradation.None,
		Levels: gradation.DefaultLevels,
	}
}

// Normalize clamps the scale to the range allowed for a width x height source
// and the level count to [2, 256]
func (p Params) Normalize(width, height int) Params {
	p.Scale = geometry.ClampScale(p.Scale, geometry.MinScale(width, height))
	p.Levels = gradation.ClampLevels(p.Levels)
	return p
}

func (p Params) String() string {
	if p.Mode == gradation.None {
		return fmt.Sprintf("scale=%.1f%% mode=%s", p.Scale, p.Mode)
	}
	return fmt.Sprintf("scale=%.1f%% mode=%s levels=%d", p.Scale, p.Mode, p.Levels)
}

// Result is one complete pipeline output
type Result struct {
	Params       Params
	Raster       *raster.Raster // processed raster at render dimensions
	Width        int            // render width
	Height       int            // render height
	BitsPerPixel int
	Bytes        float64 // theoretical uncompressed size, not rounded
}

// Run executes resample, quantize and estimate for src with the given
// parameters. Params are used as given; callers that take user input should
// Normalize them first. Nothing after a failing stage runs.
func Run(src *raster.Raster, p Params) (Result, error) {
	if err := src.Validate(); err != nil {
		return Result{}, fmt.Errorf("source: %w", err)
	}

	w, h := geometry.RenderDimensions(src.Width, src.Height, p.Scale)
	scaled, err := resample.Resample(src, w, h)
	if err != nil {
		return Result{}, fmt.Errorf("resample failed: %w", err)
	}

	quantized, err := gradation.Quantize(scaled, p.Mode, p.Levels)
	if err != nil {
		return Result{}, fmt.Errorf("gradation failed: %w", err)
	}

	bpp, err := estimate.BitsPerPixel(p.Mode, p.Levels)
	if err != nil {
		return Result{}, fmt.Errorf("size estimate failed: %w", err)
	}
	size, err := estimate.Bytes(w, h, p.Mode, p.Levels)
	if err != nil {
		return Result{}, fmt.Errorf("size estimate failed: %w", err)
	}

	return Result{
		Params:       p,
		Raster:       quantized,
		Width:        w,
		Height:       h,
		BitsPerPixel: bpp,
		Bytes:        size,
	}, nil
}
