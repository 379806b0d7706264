// Package card turns an episode and a layered style into an ImageMagick
// convert plan: source art resized onto the card canvas, gradient
// overlay, then index and title text each drawn three times with the
// style's stacked font layers.
package card

import (
	"fmt"

	"github.com/joeblew999/plat-titlecard/pkg/cardtype"
)

// Card canvas and typography constants. Art is normalized to a 3200x1800
// canvas; title text is drawn at 256pt scaled by the per-card font size,
// index text at a fixed 60pt.
const (
	DefaultCanvasWidth  = 3200
	DefaultCanvasHeight = 1800

	TitlePointSize = 256.0
	IndexPointSize = 60.0

	// BaseVerticalOffset positions text above the bottom edge with
	// south gravity.
	BaseVerticalOffset = 47

	// BaseInterlineSpacing tightens stacked title lines.
	BaseInterlineSpacing = -50

	// IndexSpacingAdjustment pulls the index line toward the title
	// block.
	IndexSpacingAdjustment = -10

	// BlurProfile is the gaussian profile applied to spoiler-safe
	// cards.
	BlurProfile = "0x60"
)

// Card describes one title card to render. Zero values fall back to the
// style's defaults; only SourcePath and Title are required. An empty
// OutputPath means the render engine picks a content-addressed name in
// its output directory.
type Card struct {
	SourcePath string `json:"source_path"`
	OutputPath string `json:"output_path"`

	// Title is the raw episode title. The composer cases and splits it
	// per the style's title characteristics.
	Title string `json:"title"`

	Series  string `json:"series,omitempty"`
	Season  int    `json:"season"`
	Episode int    `json:"episode"`

	// AbsoluteNumber feeds the {absolute_number} placeholder when the
	// style's episode text format uses it.
	AbsoluteNumber int `json:"absolute_number,omitempty"`

	// SeasonText and EpisodeText override the derived index labels.
	SeasonText  string `json:"season_text,omitempty"`
	EpisodeText string `json:"episode_text,omitempty"`

	HideSeasonText  bool `json:"hide_season_text,omitempty"`
	HideEpisodeText bool `json:"hide_episode_text,omitempty"`

	// Font adjustments, applied to the base layer only. Infill and
	// gears always use the style's published values so the layers keep
	// their contrast.
	FontColor            string  `json:"font_color,omitempty"`
	FontSize             float64 `json:"font_size,omitempty"`
	FontInterlineSpacing int     `json:"font_interline_spacing,omitempty"`
	FontVerticalShift    int     `json:"font_vertical_shift,omitempty"`
	EpisodeTextColor     string  `json:"episode_text_color,omitempty"`

	Blur      bool `json:"blur,omitempty"`
	Grayscale bool `json:"grayscale,omitempty"`
}

// Validate checks the card for required fields and well-formed
// overrides.
func (c *Card) Validate() error {
	if c.SourcePath == "" {
		return fmt.Errorf("card missing source path")
	}
	if c.Title == "" {
		return fmt.Errorf("card missing title")
	}
	if c.Season < 0 {
		return fmt.Errorf("season must not be negative")
	}
	if c.Episode < 0 {
		return fmt.Errorf("episode must not be negative")
	}
	if c.FontSize < 0 {
		return fmt.Errorf("font size must not be negative")
	}
	if c.FontColor != "" {
		if _, err := cardtype.ParseHexColor(c.FontColor); err != nil {
			return fmt.Errorf("font color: %w", err)
		}
	}
	if c.EpisodeTextColor != "" {
		if _, err := cardtype.ParseHexColor(c.EpisodeTextColor); err != nil {
			return fmt.Errorf("episode text color: %w", err)
		}
	}
	return nil
}

// fontScale returns the title size multiplier, defaulting to 1.0.
func (c *Card) fontScale() float64 {
	if c.FontSize <= 0 {
		return 1.0
	}
	return c.FontSize
}

// indexText resolves the season and episode labels into the index line,
// honoring the hide flags. Both hidden yields "".
func (c *Card) indexText(style *cardtype.Style) string {
	if c.HideSeasonText && c.HideEpisodeText {
		return ""
	}
	season := c.SeasonText
	if season == "" {
		season = cardtype.SeasonText(c.Season)
	}
	episode := c.EpisodeText
	if episode == "" {
		episode = style.Manifest.EpisodeText(c.Season, c.Episode, c.AbsoluteNumber)
	}
	switch {
	case c.HideSeasonText:
		return episode
	case c.HideEpisodeText:
		return season
	default:
		return season + " • " + episode
	}
}
