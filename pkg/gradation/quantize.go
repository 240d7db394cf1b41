package gradation

import (
	"fmt"
	"image/color"

	"github.com/alde/bitcam/pkg/raster"
	"github.com/disintegration/imaging"
)

// Luminance weights (ITU-R BT.601) in thousandths
const (
	lumaR = 299
	lumaG = 587
	lumaB = 114
)

// Quantize returns a copy of r reduced to the given number of levels.
//
// In RGB mode each colour channel c becomes the lower edge of its bucket,
// floor(c/step)*step with step = 256/levels. In Grayscale mode the luminance,
// rounded half-up, is quantized the same way and written to all three
// channels. Alpha is never modified and r itself is left untouched.
//
// Bucket edges that are not whole numbers are rounded up to the next code
// value, which keeps every edge inside its own bucket: quantizing an already
// quantized raster with the same mode and levels is a no-op. Rounding those
// edges to nearest instead would give e.g. 85 rather than 86 for the second
// of three levels, and 85 would then fall back into the first bucket.
func Quantize(r *raster.Raster, mode Mode, levels int) (*raster.Raster, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	var fn func(color.NRGBA) color.NRGBA
	switch mode {
	case None:
		return r.Clone(), nil
	case Grayscale, RGB:
		if err := ValidateLevels(levels); err != nil {
			return nil, err
		}
		lut := codeTable(levels)
		if mode == RGB {
			fn = func(c color.NRGBA) color.NRGBA {
				return color.NRGBA{R: lut[c.R], G: lut[c.G], B: lut[c.B], A: c.A}
			}
		} else {
			fn = func(c color.NRGBA) color.NRGBA {
				q := lut[Luminance(c.R, c.G, c.B)]
				return color.NRGBA{R: q, G: q, B: q, A: c.A}
			}
		}
	default:
		return nil, fmt.Errorf("gradation mode %v: %w", mode, raster.ErrInvalidParameter)
	}

	out, err := raster.Adopt(imaging.AdjustFunc(r.Image(), fn))
	if err != nil {
		return nil, fmt.Errorf("quantize: %w", err)
	}
	return out, nil
}

// Luminance returns round(0.299R + 0.587G + 0.114B), rounding halves up.
// The sum is taken in thousandths so exact halves such as 127.5 are not
// lost to float error.
func Luminance(r, g, b uint8) uint8 {
	return uint8((lumaR*int(r) + lumaG*int(g) + lumaB*int(b) + 500) / 1000)
}

// QuantizeValue maps a single channel value onto its bucket edge
func QuantizeValue(v uint8, levels int) uint8 {
	return bucketCode(int(v)*levels/256, levels)
}

// bucketCode returns ceil(k*256/levels) using exact integer arithmetic
func bucketCode(k, levels int) uint8 {
	return uint8((k*256 + levels - 1) / levels)
}

func codeTable(levels int) *[256]uint8 {
	var lut [256]uint8
	for v := range lut {
		lut[v] = QuantizeValue(uint8(v), levels)
	}
	return &lut
}

// Levels lists the distinct channel values Quantize can produce for the given
// mode, in ascending order. None yields all 256 byte values.
func Levels(mode Mode, levels int) ([]uint8, error) {
	switch mode {
	case None:
		out := make([]uint8, 256)
		for i := range out {
			out[i] = uint8(i)
		}
		return out, nil
	case Grayscale, RGB:
		if err := ValidateLevels(levels); err != nil {
			return nil, err
		}
		out := make([]uint8, levels)
		for k := range out {
			out[k] = bucketCode(k, levels)
		}
		return out, nil
	}
	return nil, fmt.Errorf("gradation mode %v: %w", mode, raster.ErrInvalidParameter)
}
