package preset

import (
	"strings"
	"testing"

	"github.com/alde/bitcam/pkg/estimate"
	"github.com/alde/bitcam/pkg/gradation"
	"github.com/alde/bitcam/pkg/pipeline"
)

func TestGet(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "exact key", input: "vga"},
		{name: "mixed case and spaces", input: "  GameBoy "},
		{name: "unknown", input: "cga", wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p, err := Get(test.input)
			if test.wantErr {
				if err == nil {
					t.Fatal("Expected error for unknown preset")
				}
				if !strings.Contains(err.Error(), "original") {
					t.Errorf("Error should list available presets: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Get(%q) error: %v", test.input, err)
			}
			if p.Name == "" {
				t.Error("Preset should have a display name")
			}
		})
	}
}

func TestOriginalIsDefault(t *testing.T) {
	p, err := Get("original")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if p.Params != pipeline.DefaultParams() {
		t.Errorf("original preset = %+v, expected defaults", p.Params)
	}
}

func TestPresetsAreValid(t *testing.T) {
	for key, p := range List() {
		if p.Params.Scale <= 0 || p.Params.Scale > 100 {
			t.Errorf("%s: scale %v out of range", key, p.Params.Scale)
		}
		if p.Params.Mode != gradation.None {
			if err := gradation.ValidateLevels(p.Params.Levels); err != nil {
				t.Errorf("%s: %v", key, err)
			}
		}
		if _, err := estimate.BitsPerPixel(p.Params.Mode, p.Params.Levels); err != nil {
			t.Errorf("%s: %v", key, err)
		}
	}
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	if len(names) != len(List()) {
		t.Fatalf("Names() has %d entries, List() has %d", len(names), len(List()))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("Names() not sorted: %v", names)
		}
	}
}
