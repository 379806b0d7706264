package cardtype

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultEpisodeTextFormat is the episode label applied when a manifest
// omits episode_text_format.
const DefaultEpisodeTextFormat = "EPISODE {episode_number}"

var identifierRe = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Manifest is the parsed style.yaml of a style package. It names the
// style, declares the three layer fonts and six colors, and carries the
// title handling characteristics the renderer needs.
type Manifest struct {
	Name        string   `yaml:"name"`
	Identifier  string   `yaml:"identifier"`
	Description string   `yaml:"description,omitempty"`
	Example     string   `yaml:"example,omitempty"`
	Creators    []string `yaml:"creators,omitempty"`
	Source      string   `yaml:"source,omitempty"`

	SupportsCustomFonts   bool `yaml:"supports_custom_fonts"`
	SupportsCustomSeasons bool `yaml:"supports_custom_seasons"`

	Title  TitleCharacteristics `yaml:"title"`
	Fonts  LayerFonts           `yaml:"fonts"`
	Colors ColorSet             `yaml:"colors"`

	EpisodeTextFormat string `yaml:"episode_text_format,omitempty"`

	// Overlays maps overlay names (for example "gradient") to image
	// assets inside the style package.
	Overlays map[string]string `yaml:"overlays,omitempty"`
}

// LoadManifest reads and validates a style.yaml file. Missing colors,
// title characteristics and the episode text format receive defaults.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	m.ApplyDefaults()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// ApplyDefaults fills the optional fields a manifest may omit.
func (m *Manifest) ApplyDefaults() {
	m.Identifier = strings.ToLower(strings.TrimSpace(m.Identifier))
	m.Title.applyDefaults()
	m.Colors.applyDefaults()
	if m.EpisodeTextFormat == "" {
		m.EpisodeTextFormat = DefaultEpisodeTextFormat
	}
}

// Validate checks the manifest for the fields the renderer cannot work
// without.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("manifest missing name")
	}
	if m.Identifier == "" {
		return fmt.Errorf("manifest %q missing identifier", m.Name)
	}
	if !identifierRe.MatchString(m.Identifier) {
		return fmt.Errorf("invalid identifier %q", m.Identifier)
	}
	if err := m.Fonts.validate(); err != nil {
		return fmt.Errorf("style %q: %w", m.Identifier, err)
	}
	for _, l := range Layers() {
		if filepath.IsAbs(m.Fonts.For(l)) || strings.Contains(m.Fonts.For(l), "..") {
			return fmt.Errorf("style %q: %s font path must stay inside the package", m.Identifier, l)
		}
	}
	if err := m.Colors.validate(); err != nil {
		return fmt.Errorf("style %q: %w", m.Identifier, err)
	}
	if err := m.Title.validate(); err != nil {
		return fmt.Errorf("style %q: %w", m.Identifier, err)
	}
	return nil
}

// Save writes the manifest as YAML.
func (m *Manifest) Save(path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// EpisodeText expands the style's episode text format for an episode.
// Supported placeholders are {episode_number}, {season_number} and
// {absolute_number}; an absolute number below 1 falls back to the
// episode number.
func (m *Manifest) EpisodeText(season, episode, absolute int) string {
	if absolute < 1 {
		absolute = episode
	}
	r := strings.NewReplacer(
		"{episode_number}", strconv.Itoa(episode),
		"{season_number}", strconv.Itoa(season),
		"{absolute_number}", strconv.Itoa(absolute),
	)
	return r.Replace(m.EpisodeTextFormat)
}

// SeasonText returns the default season label: season 0 is the specials
// season, everything else is numbered.
func SeasonText(season int) string {
	if season == 0 {
		return "SPECIALS"
	}
	return fmt.Sprintf("SEASON %d", season)
}
