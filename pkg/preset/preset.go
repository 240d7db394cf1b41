package preset

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alde/bitcam/pkg/gradation"
	"github.com/alde/bitcam/pkg/pipeline"
)

// Preset is a named combination of transform parameters that imitates a
// familiar display or storage format
type Preset struct {
	Name        string
	Description string
	Params      pipeline.Params
}

// Available presets
var presets = map[string]Preset{
	"original": {
		Name:        "Original",
		Description: "Native resolution, 8 bits per channel",
		Params:      pipeline.DefaultParams(),
	},
	"mono": {
		Name:        "Monochrome",
		Description: "1-bit black and white",
		Params: pipeline.Params{
			Scale:  100,
			Mode:   gradation.Grayscale,
			Levels: 2,
		},
	},
	"gameboy": {
		Name:        "Handheld LCD",
		Description: "Quarter resolution, 4 gray shades (2 bits per pixel)",
		Params: pipeline.Params{
			Scale:  25,
			Mode:   gradation.Grayscale,
			Levels: 4,
		},
	},
	"ega": {
		Name:        "EGA",
		Description: "4 levels per channel (6 bits per pixel)",
		Params: pipeline.Params{
			Scale:  50,
			Mode:   gradation.RGB,
			Levels: 4,
		},
	},
	"vga": {
		Name:        "VGA",
		Description: "8 levels per channel (9 bits per pixel)",
		Params: pipeline.Params{
			Scale:  100,
			Mode:   gradation.RGB,
			Levels: 8,
		},
	},
	"web": {
		Name:        "Web thumbnail",
		Description: "Half resolution, 64 levels per channel (18 bits per pixel)",
		Params: pipeline.Params{
			Scale:  50,
			Mode:   gradation.RGB,
			Levels: 64,
		},
	},
	"thumbnail": {
		Name:        "Thumbnail",
		Description: "One tenth of the resolution, full colour",
		Params: pipeline.Params{
			Scale:  10,
			Mode:   gradation.None,
			Levels: gradation.DefaultLevels,
		},
	},
}

// Get returns a preset by key. Keys are case-insensitive.
func Get(name string) (Preset, error) {
	key := strings.ToLower(strings.TrimSpace(name))

	if p, exists := presets[key]; exists {
		return p, nil
	}

	return Preset{}, fmt.Errorf("unknown preset '%s'. Available presets: %v", name, Names())
}

// Names returns all preset keys in alphabetical order
func Names() []string {
	names := make([]string, 0, len(presets))
	for key := range presets {
		names = append(names, key)
	}
	sort.Strings(names)
	return names
}

// List returns all presets keyed by name
func List() map[string]Preset {
	out := make(map[string]Preset, len(presets))
	for k, v := range presets {
		out[k] = v
	}
	return out
}
