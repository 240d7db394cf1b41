package resample

import (
	"fmt"
	"image"

	"github.com/alde/bitcam/pkg/geometry"
	"github.com/alde/bitcam/pkg/raster"
	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// Resample point-samples src to exactly width x height pixels. Destination
// pixel (x, y) copies source pixel (floor((x+0.5)*sw/w), floor((y+0.5)*sh/h)),
// so equal dimensions reproduce the source byte for byte. src is not modified.
func Resample(src *raster.Raster, width, height int) (*raster.Raster, error) {
	if err := src.Validate(); err != nil {
		return nil, fmt.Errorf("resample source: %w", err)
	}
	if err := geometry.Check(width, height); err != nil {
		return nil, fmt.Errorf("resample target: %w", err)
	}

	out, err := raster.Adopt(imaging.Resize(src.Image(), width, height, imaging.NearestNeighbor))
	if err != nil {
		return nil, fmt.Errorf("resample: %w", err)
	}
	return out, nil
}

// Scale resamples src to its render dimensions at the given percentage
func Scale(src *raster.Raster, scale float64) (*raster.Raster, error) {
	if err := src.Validate(); err != nil {
		return nil, fmt.Errorf("resample source: %w", err)
	}
	w, h := geometry.RenderDimensions(src.Width, src.Height, scale)
	return Resample(src, w, h)
}

// Present draws r onto a new width x height image for display, with smoothing
// disabled: every display pixel shows exactly one raster pixel, so a
// downscaled raster keeps its blocky look when shown at the source size.
func Present(r *raster.Raster, width, height int) (*image.NRGBA, error) {
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("present source: %w", err)
	}
	if err := geometry.Check(width, height); err != nil {
		return nil, fmt.Errorf("present target: %w", err)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), r.Image(), r.Bounds(), draw.Src, nil)
	return dst, nil
}
