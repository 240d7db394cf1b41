package raster

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

var (
	// ErrInvalidGeometry is returned when a width or height is not positive
	// or a pixel buffer does not match its dimensions.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrInvalidParameter is returned for out-of-range transform parameters
	ErrInvalidParameter = errors.New("invalid parameter")
)

// Raster is a width x height grid of non-premultiplied RGBA pixels.
// Pix holds 4 interleaved bytes per pixel, row-major, with no padding.
type Raster struct {
	Width  int
	Height int
	Pix    []uint8
}

// New allocates a zeroed (fully transparent black) raster
func New(width, height int) (*Raster, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("raster %dx%d: %w", width, height, ErrInvalidGeometry)
	}
	return &Raster{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*4),
	}, nil
}

// FromImage copies a decoded image into a new raster. The image origin is
// moved to (0, 0); colors are converted to non-premultiplied RGBA.
func FromImage(img image.Image) (*Raster, error) {
	if img == nil {
		return nil, fmt.Errorf("nil image: %w", ErrInvalidGeometry)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("image %dx%d: %w", b.Dx(), b.Dy(), ErrInvalidGeometry)
	}
	return fromNRGBA(imaging.Clone(img)), nil
}

// fromNRGBA adopts the pixel buffer of an image produced by imaging, which
// always has a zero origin and a tight stride.
func fromNRGBA(img *image.NRGBA) *Raster {
	return &Raster{
		Width:  img.Rect.Dx(),
		Height: img.Rect.Dy(),
		Pix:    img.Pix,
	}
}

// Adopt wraps an imaging result without copying. The image must have a zero
// origin and a stride of 4*width.
func Adopt(img *image.NRGBA) (*Raster, error) {
	if img == nil || img.Rect.Min != (image.Point{}) || img.Stride != 4*img.Rect.Dx() {
		return nil, fmt.Errorf("cannot adopt image layout: %w", ErrInvalidGeometry)
	}
	r := fromNRGBA(img)
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate checks the buffer length and dimension invariants
func (r *Raster) Validate() error {
	if r == nil {
		return fmt.Errorf("nil raster: %w", ErrInvalidGeometry)
	}
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("raster %dx%d: %w", r.Width, r.Height, ErrInvalidGeometry)
	}
	if want := r.Width * r.Height * 4; len(r.Pix) != want {
		return fmt.Errorf("raster %dx%d has %d bytes, want %d: %w",
			r.Width, r.Height, len(r.Pix), want, ErrInvalidGeometry)
	}
	return nil
}

// Image returns an *image.NRGBA view over the same pixel buffer.
// Writes through the view modify the raster.
func (r *Raster) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    r.Pix,
		Stride: r.Width * 4,
		Rect:   image.Rect(0, 0, r.Width, r.Height),
	}
}

// Bounds returns the raster rectangle anchored at the origin
func (r *Raster) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.Width, r.Height)
}

// At returns the pixel at (x, y). Out-of-range coordinates yield the zero color.
func (r *Raster) At(x, y int) color.NRGBA {
	if x < 0 || y < 0 || x >= r.Width || y >= r.Height {
		return color.NRGBA{}
	}
	i := (y*r.Width + x) * 4
	return color.NRGBA{R: r.Pix[i], G: r.Pix[i+1], B: r.Pix[i+2], A: r.Pix[i+3]}
}

// Set writes the pixel at (x, y); out-of-range coordinates are ignored
func (r *Raster) Set(x, y int, c color.NRGBA) {
	if x < 0 || y < 0 || x >= r.Width || y >= r.Height {
		return
	}
	i := (y*r.Width + x) * 4
	r.Pix[i], r.Pix[i+1], r.Pix[i+2], r.Pix[i+3] = c.R, c.G, c.B, c.A
}

// Clone returns a deep copy
func (r *Raster) Clone() *Raster {
	pix := make([]uint8, len(r.Pix))
	copy(pix, r.Pix)
	return &Raster{Width: r.Width, Height: r.Height, Pix: pix}
}

// Equal reports whether both rasters have the same size and identical bytes
func (r *Raster) Equal(other *Raster) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.Width == other.Width && r.Height == other.Height && bytes.Equal(r.Pix, other.Pix)
}

// PixelCount returns width*height
func (r *Raster) PixelCount() int {
	return r.Width * r.Height
}
