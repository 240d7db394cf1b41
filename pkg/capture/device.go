package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"sync"

	"github.com/alde/bitcam/pkg/raster"
	_ "github.com/chai2010/webp" // registers the webp decoder with image.Decode
	"github.com/disintegration/imaging"
)

// ErrClosed is returned by Frame after the device has been released
var ErrClosed = errors.New("capture device closed")

// ErrNoDevice is returned when an Opener reports success without a device
var ErrNoDevice = errors.New("no capture device")

// Device is an acquired image source, such as a camera or a still photo.
// It must be released with Close once the caller is done capturing.
type Device interface {
	// Frame returns the current frame
	Frame(ctx context.Context) (image.Image, error)
	Close() error
}

// Opener acquires a device
type Opener func(ctx context.Context) (Device, error)

// Grab acquires a device, takes one frame and converts it to a raster.
// The device is always released, whether or not the frame could be read.
func Grab(ctx context.Context, open Opener) (r *raster.Raster, err error) {
	dev, err := open(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire capture device: %w", err)
	}
	if dev == nil {
		return nil, ErrNoDevice
	}
	defer func() {
		if closeErr := dev.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to release capture device: %w", closeErr)
		}
	}()

	frame, err := dev.Frame(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read frame: %w", err)
	}
	return raster.FromImage(frame)
}

// stillDevice serves a single decoded image
type stillDevice struct {
	mu     sync.Mutex
	frame  image.Image
	decode func() (image.Image, error)
	closer io.Closer
	closed bool
}

func (d *stillDevice) Frame(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil, ErrClosed
	}
	if d.frame == nil {
		img, err := d.decode()
		if err != nil {
			return nil, fmt.Errorf("failed to decode image: %w", err)
		}
		d.frame = img
	}
	return d.frame, nil
}

func (d *stillDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true
	d.frame = nil
	if d.closer != nil {
		return d.closer.Close()
	}
	return nil
}

// OpenFile returns an Opener for a photo on disk. EXIF orientation is
// applied so the frame appears the way the camera was held.
func OpenFile(path string) Opener {
	return func(ctx context.Context) (Device, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("image not available: %w", err)
		}
		return &stillDevice{
			decode: func() (image.Image, error) {
				return imaging.Open(path, imaging.AutoOrientation(true))
			},
		}, nil
	}
}

// OpenReader returns an Opener that decodes one encoded frame from r, for
// example a camera snapshot piped on stdin. If r is an io.Closer it is closed
// together with the device.
func OpenReader(r io.Reader) Opener {
	return func(ctx context.Context) (Device, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dev := &stillDevice{
			decode: func() (image.Image, error) {
				return imaging.Decode(r, imaging.AutoOrientation(true))
			},
		}
		if c, ok := r.(io.Closer); ok {
			dev.closer = c
		}
		return dev, nil
	}
}

// OpenImage wraps an already decoded image, e.g. a frame produced in memory
func OpenImage(img image.Image) Opener {
	return func(ctx context.Context) (Device, error) {
		if img == nil {
			return nil, fmt.Errorf("no image: %w", raster.ErrInvalidGeometry)
		}
		return &stillDevice{frame: img}, nil
	}
}
