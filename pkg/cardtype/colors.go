package cardtype

import (
	"fmt"
	"image/color"
	"strings"
)

// Default color values applied when a manifest omits a field. The base
// layers render white text; infill and gears render black so the cutout
// and ornament outlines read against the base glyphs.
const (
	DefaultTitleColor             = "#FFFFFF"
	DefaultTitleInfillColor       = "#000000"
	DefaultTitleGearsColor        = "#000000"
	DefaultEpisodeTextColor       = "#FFFFFF"
	DefaultEpisodeTextInfillColor = "#000000"
	DefaultEpisodeTextGearsColor  = "#000000"
)

// ColorSet holds the six color values of a layered style: one per layer
// for the title text and one per layer for the episode text. Values are
// hex RGB strings like "#FFFFFF".
type ColorSet struct {
	Title             string `yaml:"title"`
	TitleInfill       string `yaml:"title_infill"`
	TitleGears        string `yaml:"title_gears"`
	EpisodeText       string `yaml:"episode_text"`
	EpisodeTextInfill string `yaml:"episode_text_infill"`
	EpisodeTextGears  string `yaml:"episode_text_gears"`
}

// TitleFor returns the title color for a layer.
func (c ColorSet) TitleFor(l Layer) string {
	switch l {
	case LayerInfill:
		return c.TitleInfill
	case LayerGears:
		return c.TitleGears
	default:
		return c.Title
	}
}

// EpisodeTextFor returns the episode text color for a layer.
func (c ColorSet) EpisodeTextFor(l Layer) string {
	switch l {
	case LayerInfill:
		return c.EpisodeTextInfill
	case LayerGears:
		return c.EpisodeTextGears
	default:
		return c.EpisodeText
	}
}

func (c *ColorSet) applyDefaults() {
	if c.Title == "" {
		c.Title = DefaultTitleColor
	}
	if c.TitleInfill == "" {
		c.TitleInfill = DefaultTitleInfillColor
	}
	if c.TitleGears == "" {
		c.TitleGears = DefaultTitleGearsColor
	}
	if c.EpisodeText == "" {
		c.EpisodeText = DefaultEpisodeTextColor
	}
	if c.EpisodeTextInfill == "" {
		c.EpisodeTextInfill = DefaultEpisodeTextInfillColor
	}
	if c.EpisodeTextGears == "" {
		c.EpisodeTextGears = DefaultEpisodeTextGearsColor
	}
}

func (c ColorSet) validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"title", c.Title},
		{"title_infill", c.TitleInfill},
		{"title_gears", c.TitleGears},
		{"episode_text", c.EpisodeText},
		{"episode_text_infill", c.EpisodeTextInfill},
		{"episode_text_gears", c.EpisodeTextGears},
	}
	for _, f := range fields {
		if _, err := ParseHexColor(f.value); err != nil {
			return fmt.Errorf("color %s: %w", f.name, err)
		}
	}
	return nil
}

// ParseHexColor parses a "#RRGGBB" or "#RGB" color string into an opaque
// RGBA value.
func ParseHexColor(s string) (color.RGBA, error) {
	if !strings.HasPrefix(s, "#") {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	hexDigit := func(b byte) (uint8, bool) {
		switch {
		case b >= '0' && b <= '9':
			return b - '0', true
		case b >= 'a' && b <= 'f':
			return b - 'a' + 10, true
		case b >= 'A' && b <= 'F':
			return b - 'A' + 10, true
		}
		return 0, false
	}
	digits := s[1:]
	var vals []uint8
	for i := 0; i < len(digits); i++ {
		v, ok := hexDigit(digits[i])
		if !ok {
			return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
		}
		vals = append(vals, v)
	}
	switch len(vals) {
	case 3:
		return color.RGBA{
			R: vals[0]*16 + vals[0],
			G: vals[1]*16 + vals[1],
			B: vals[2]*16 + vals[2],
			A: 0xFF,
		}, nil
	case 6:
		return color.RGBA{
			R: vals[0]*16 + vals[1],
			G: vals[2]*16 + vals[3],
			B: vals[4]*16 + vals[5],
			A: 0xFF,
		}, nil
	default:
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
}
