package raster

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		height  int
		wantErr bool
	}{
		{name: "single pixel", width: 1, height: 1},
		{name: "landscape", width: 16, height: 9},
		{name: "zero width", width: 0, height: 5, wantErr: true},
		{name: "negative height", width: 5, height: -1, wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r, err := New(test.width, test.height)
			if test.wantErr {
				if !errors.Is(err, ErrInvalidGeometry) {
					t.Fatalf("New(%d, %d) error = %v, expected ErrInvalidGeometry", test.width, test.height, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() unexpected error: %v", err)
			}
			if len(r.Pix) != test.width*test.height*4 {
				t.Errorf("Expected %d bytes, got %d", test.width*test.height*4, len(r.Pix))
			}
			if err := r.Validate(); err != nil {
				t.Errorf("Validate() = %v", err)
			}
		})
	}
}

func TestFromImageMovesOrigin(t *testing.T) {
	src := image.NewNRGBA(image.Rect(10, 20, 13, 22))
	src.SetNRGBA(10, 20, color.NRGBA{R: 1, G: 2, B: 3, A: 4})
	src.SetNRGBA(12, 21, color.NRGBA{R: 200, G: 100, B: 50, A: 255})

	r, err := FromImage(src)
	if err != nil {
		t.Fatalf("FromImage() error: %v", err)
	}
	if r.Width != 3 || r.Height != 2 {
		t.Fatalf("Expected 3x2, got %dx%d", r.Width, r.Height)
	}
	if got := r.At(0, 0); got != (color.NRGBA{R: 1, G: 2, B: 3, A: 4}) {
		t.Errorf("At(0,0) = %v", got)
	}
	if got := r.At(2, 1); got != (color.NRGBA{R: 200, G: 100, B: 50, A: 255}) {
		t.Errorf("At(2,1) = %v", got)
	}

	// the raster must not alias the source buffer
	r.Pix[0] = 99
	if src.Pix[0] == 99 {
		t.Error("FromImage() shares the source buffer")
	}
}

func TestFromImageEmpty(t *testing.T) {
	if _, err := FromImage(image.NewNRGBA(image.Rect(0, 0, 0, 4))); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("Expected ErrInvalidGeometry, got %v", err)
	}
	if _, err := FromImage(nil); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("Expected ErrInvalidGeometry for nil image, got %v", err)
	}
}

func TestValidateBufferMismatch(t *testing.T) {
	r := &Raster{Width: 2, Height: 2, Pix: make([]uint8, 15)}
	if err := r.Validate(); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("Expected ErrInvalidGeometry, got %v", err)
	}
}

func TestImageViewSharesBuffer(t *testing.T) {
	r, _ := New(2, 2)
	img := r.Image()
	img.SetNRGBA(1, 1, color.NRGBA{R: 7, A: 255})
	if r.At(1, 1).R != 7 {
		t.Error("Image() view does not write through")
	}
	if img.Bounds() != r.Bounds() {
		t.Errorf("Bounds mismatch: %v vs %v", img.Bounds(), r.Bounds())
	}
}

func TestAdopt(t *testing.T) {
	if _, err := Adopt(image.NewNRGBA(image.Rect(1, 1, 3, 3))); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("Expected offset image to be rejected, got %v", err)
	}
	r, err := Adopt(image.NewNRGBA(image.Rect(0, 0, 3, 2)))
	if err != nil {
		t.Fatalf("Adopt() error: %v", err)
	}
	if r.Width != 3 || r.Height != 2 {
		t.Errorf("Expected 3x2, got %dx%d", r.Width, r.Height)
	}
}

func TestCloneAndEqual(t *testing.T) {
	r, _ := New(3, 3)
	r.Set(1, 2, color.NRGBA{R: 10, G: 20, B: 30, A: 40})

	c := r.Clone()
	if !r.Equal(c) {
		t.Fatal("Clone() should be equal to the original")
	}
	c.Set(0, 0, color.NRGBA{A: 1})
	if r.Equal(c) {
		t.Error("Modified clone should differ")
	}
	if r.At(0, 0).A != 0 {
		t.Error("Clone() shares its buffer with the original")
	}

	other, _ := New(9, 1)
	if r.Equal(other) {
		t.Error("Rasters with different dimensions should not be equal")
	}
}

func TestAtOutOfRange(t *testing.T) {
	r, _ := New(1, 1)
	r.Set(5, 5, color.NRGBA{R: 1})
	if got := r.At(-1, 0); got != (color.NRGBA{}) {
		t.Errorf("At(-1,0) = %v, expected zero", got)
	}
}
