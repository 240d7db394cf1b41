package estimate

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/alde/bitcam/pkg/geometry"
	"github.com/alde/bitcam/pkg/gradation"
	"github.com/alde/bitcam/pkg/raster"
	"github.com/dustin/go-humanize"
)

// TrueColorBitsPerPixel is assumed when no gradation is applied: 8 bits for
// each of red, green and blue. Alpha is not counted.
const TrueColorBitsPerPixel = 24

// BitsPerPixel returns the storage cost of one pixel. A gradation with n
// levels needs floor(log2(n)) bits per channel; RGB stores three channels,
// grayscale one.
func BitsPerPixel(mode gradation.Mode, levels int) (int, error) {
	switch mode {
	case gradation.None:
		return TrueColorBitsPerPixel, nil
	case gradation.Grayscale, gradation.RGB:
		if err := gradation.ValidateLevels(levels); err != nil {
			return 0, err
		}
		perChannel := bits.Len(uint(levels)) - 1
		if mode == gradation.RGB {
			return perChannel * 3, nil
		}
		return perChannel, nil
	}
	return 0, fmt.Errorf("gradation mode %v: %w", mode, raster.ErrInvalidParameter)
}

// Bytes returns the theoretical uncompressed size of a width x height image,
// width*height*bitsPerPixel/8. The result is not rounded and may carry a
// fractional byte.
func Bytes(width, height int, mode gradation.Mode, levels int) (float64, error) {
	if err := geometry.Check(width, height); err != nil {
		return 0, err
	}
	bpp, err := BitsPerPixel(mode, levels)
	if err != nil {
		return 0, err
	}
	return float64(width) * float64(height) * float64(bpp) / 8, nil
}

var units = []string{"B", "KB", "MB", "GB", "TB"}

// Format renders a byte count with a base-1024 unit, rounded to at most
// decimals fractional digits with trailing zeros removed, e.g. "1.5 KB".
func Format(bytes float64, decimals int) string {
	if bytes == 0 || math.IsNaN(bytes) {
		return "0 B"
	}
	decimals = max(decimals, 0)

	i := 0
	if bytes >= 1 {
		i = min(int(math.Floor(math.Log(bytes)/math.Log(1024))), len(units)-1)
	}
	value := bytes / math.Pow(1024, float64(i))

	p := math.Pow(10, float64(decimals))
	value = math.Round(value*p) / p

	return humanize.FtoaWithDigits(value, decimals) + " " + units[i]
}

// FormatExact renders a byte count rounded to whole bytes with thousands
// separators, e.g. "1,234,567"
func FormatExact(bytes float64) string {
	return humanize.Comma(int64(math.Round(bytes)))
}
