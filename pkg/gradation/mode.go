package gradation

import (
	"fmt"
	"strings"

	"github.com/alde/bitcam/pkg/raster"
)

// Mode selects how a raster is quantized
type Mode int

const (
	// None leaves pixels untouched
	None Mode = iota
	// Grayscale replaces each pixel by its quantized luminance
	Grayscale
	// RGB quantizes the red, green and blue channels independently
	RGB
)

const (
	MinLevels     = 2
	MaxLevels     = 256
	DefaultLevels = MaxLevels
)

var modeNames = map[Mode]string{
	None:      "none",
	Grayscale: "grayscale",
	RGB:       "rgb",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Valid reports whether m is one of the known modes
func (m Mode) Valid() bool {
	_, ok := modeNames[m]
	return ok
}

// ParseMode parses a mode name. "gray" and "grey" are accepted for grayscale.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return None, nil
	case "grayscale", "gray", "grey", "greyscale":
		return Grayscale, nil
	case "rgb":
		return RGB, nil
	}
	return None, fmt.Errorf("unknown gradation mode %q (valid options: none, grayscale, rgb): %w",
		s, raster.ErrInvalidParameter)
}

// Set implements pflag.Value
func (m *Mode) Set(s string) error {
	parsed, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Type implements pflag.Value
func (m *Mode) Type() string {
	return "mode"
}

// ClampLevels bounds n to [MinLevels, MaxLevels]
func ClampLevels(n int) int {
	return max(MinLevels, min(MaxLevels, n))
}

// ValidateLevels rejects level counts outside [MinLevels, MaxLevels]
func ValidateLevels(n int) error {
	if n < MinLevels || n > MaxLevels {
		return fmt.Errorf("gradation levels %d outside [%d, %d]: %w", n, MinLevels, MaxLevels, raster.ErrInvalidParameter)
	}
	return nil
}

// Step is the width of one quantization bucket, 256/levels
func Step(levels int) float64 {
	return 256 / float64(levels)
}
