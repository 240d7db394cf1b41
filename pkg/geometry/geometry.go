package geometry

import (
	"fmt"
	"math"

	"github.com/alde/bitcam/pkg/raster"
)

const (
	// MinDimension is the smallest size, in pixels, the shorter image side
	// may be scaled down to
	MinDimension = 5

	// MaxScale is the native resolution, in percent
	MaxScale = 100.0

	// AbsoluteMinScale is the floor for MinScale regardless of image size
	AbsoluteMinScale = 1.0
)

// MinScale returns the lowest scale percentage that keeps the shorter side of
// a width x height image at MinDimension pixels or more. The result is always
// within [1, 100]; images whose shorter side is already at or below
// MinDimension cannot be downscaled.
func MinScale(width, height int) float64 {
	shorter := min(width, height)
	if shorter <= MinDimension {
		return MaxScale
	}
	return math.Max(AbsoluteMinScale, float64(MinDimension)/float64(shorter)*100)
}

// ClampScale bounds scale to [minScale, 100]. NaN is treated as 100.
func ClampScale(scale, minScale float64) float64 {
	if math.IsNaN(scale) {
		return MaxScale
	}
	return math.Min(MaxScale, math.Max(minScale, scale))
}

// RenderDimensions applies a scale percentage to the source size. Each axis
// is rounded half-up and never drops below one pixel.
func RenderDimensions(width, height int, scale float64) (int, int) {
	return scaleAxis(width, scale), scaleAxis(height, scale)
}

func scaleAxis(dim int, scale float64) int {
	v := math.Floor(float64(dim)*(scale/100) + 0.5)
	if v < 1 || math.IsNaN(v) {
		return 1
	}
	return int(v)
}

// Check returns raster.ErrInvalidGeometry unless both dimensions are positive
func Check(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("dimensions %dx%d: %w", width, height, raster.ErrInvalidGeometry)
	}
	return nil
}
