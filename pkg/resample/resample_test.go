package resample

import (
	"errors"
	"image/color"
	"testing"

	"github.com/alde/bitcam/pkg/raster"
)

func gradient(t *testing.T, w, h int) *raster.Raster {
	t.Helper()
	r, err := raster.New(w, h)
	if err != nil {
		t.Fatalf("raster.New() error: %v", err)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r.Set(x, y, color.NRGBA{R: uint8(x * 17), G: uint8(y * 29), B: uint8(x ^ y), A: uint8(x*y + 1)})
		}
	}
	return r
}

func TestResampleDimensions(t *testing.T) {
	src := gradient(t, 13, 7)
	tests := []struct {
		name          string
		width, height int
	}{
		{name: "downscale", width: 4, height: 3},
		{name: "upscale", width: 40, height: 21},
		{name: "single pixel", width: 1, height: 1},
		{name: "mixed", width: 26, height: 2},
		{name: "wide down tall up", width: 2, height: 30},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			out, err := Resample(src, test.width, test.height)
			if err != nil {
				t.Fatalf("Resample() error: %v", err)
			}
			if out.Width != test.width || out.Height != test.height {
				t.Errorf("Expected %dx%d, got %dx%d", test.width, test.height, out.Width, out.Height)
			}
			if err := out.Validate(); err != nil {
				t.Errorf("Validate() = %v", err)
			}
		})
	}
}

func TestResampleIdentity(t *testing.T) {
	src := gradient(t, 9, 5)
	before := src.Clone()

	out, err := Resample(src, src.Width, src.Height)
	if err != nil {
		t.Fatalf("Resample() error: %v", err)
	}
	if !out.Equal(src) {
		t.Error("Resample() at native size should be pixel-identical")
	}
	if !src.Equal(before) {
		t.Error("Resample() modified its source")
	}
	out.Pix[0]++
	if src.Pix[0] == out.Pix[0] {
		t.Error("Resample() output aliases its source")
	}
}

func TestResamplePointSampling(t *testing.T) {
	src := gradient(t, 4, 4)
	out, err := Resample(src, 2, 2)
	if err != nil {
		t.Fatalf("Resample() error: %v", err)
	}
	// (x+0.5)*2 picks source columns and rows 1 and 3
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			want := src.At(2*x+1, 2*y+1)
			if got := out.At(x, y); got != want {
				t.Errorf("pixel (%d,%d) = %v, expected %v", x, y, got, want)
			}
		}
	}

	up, err := Resample(src, 8, 8)
	if err != nil {
		t.Fatalf("Resample() error: %v", err)
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if got, want := up.At(x, y), src.At(x/2, y/2); got != want {
				t.Fatalf("upscaled pixel (%d,%d) = %v, expected %v", x, y, got, want)
			}
		}
	}
}

func TestResampleDeterministic(t *testing.T) {
	src := gradient(t, 31, 17)
	a, _ := Resample(src, 11, 6)
	b, _ := Resample(src, 11, 6)
	if !a.Equal(b) {
		t.Error("Resample() is not deterministic")
	}
}

func TestResampleInvalidGeometry(t *testing.T) {
	src := gradient(t, 3, 3)
	for _, dims := range [][2]int{{0, 3}, {3, 0}, {-1, -1}} {
		if _, err := Resample(src, dims[0], dims[1]); !errors.Is(err, raster.ErrInvalidGeometry) {
			t.Errorf("Resample(%d, %d) error = %v, expected ErrInvalidGeometry", dims[0], dims[1], err)
		}
	}
	if _, err := Resample(&raster.Raster{Width: 2, Height: 2}, 1, 1); !errors.Is(err, raster.ErrInvalidGeometry) {
		t.Errorf("Expected invalid source to be rejected, got %v", err)
	}
}

func TestScale(t *testing.T) {
	src := gradient(t, 192, 108)
	out, err := Scale(src, 50)
	if err != nil {
		t.Fatalf("Scale() error: %v", err)
	}
	if out.Width != 96 || out.Height != 54 {
		t.Errorf("Expected 96x54, got %dx%d", out.Width, out.Height)
	}
}

func TestScaleFullHD(t *testing.T) {
	src := gradient(t, 1920, 1080)

	tests := []struct {
		name string
		run  func() (*raster.Raster, error)
	}{
		{name: "scale", run: func() (*raster.Raster, error) { return Scale(src, 50) }},
		{name: "resample", run: func() (*raster.Raster, error) { return Resample(src, 960, 540) }},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			out, err := test.run()
			if err != nil {
				t.Fatalf("error: %v", err)
			}
			if out.Width != 960 || out.Height != 540 {
				t.Fatalf("Expected 960x540, got %dx%d", out.Width, out.Height)
			}
			if len(out.Pix) != 960*540*4 {
				t.Errorf("Expected %d bytes, got %d", 960*540*4, len(out.Pix))
			}
			// halving samples the centre of each 2x2 block
			for _, p := range [][2]int{{0, 0}, {479, 269}, {959, 539}} {
				if got, want := out.At(p[0], p[1]), src.At(2*p[0]+1, 2*p[1]+1); got != want {
					t.Errorf("pixel %v = %v, expected %v", p, got, want)
				}
			}
		})
	}
}

func TestPresentNearestNeighbor(t *testing.T) {
	small, _ := raster.New(2, 1)
	small.Set(0, 0, color.NRGBA{R: 255, A: 255})
	small.Set(1, 0, color.NRGBA{B: 255, A: 255})

	img, err := Present(small, 6, 2)
	if err != nil {
		t.Fatalf("Present() error: %v", err)
	}
	if img.Bounds().Dx() != 6 || img.Bounds().Dy() != 2 {
		t.Fatalf("Expected 6x2 display, got %v", img.Bounds())
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 6; x++ {
			want := small.At(x/3, 0)
			if got := img.NRGBAAt(x, y); got != want {
				t.Errorf("display pixel (%d,%d) = %v, expected %v", x, y, got, want)
			}
		}
	}

	if _, err := Present(small, 0, 2); !errors.Is(err, raster.ErrInvalidGeometry) {
		t.Errorf("Present(0, 2) error = %v", err)
	}
}
