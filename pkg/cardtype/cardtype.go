// Package cardtype defines the layered card style contract consumed by the
// title card renderer: three stacked font layers plus six per-layer color
// values, packaged with a YAML manifest the host discovers at startup.
package cardtype

import (
	"fmt"
	"path/filepath"
)

// ManifestFilename is the manifest file every style package must contain.
const ManifestFilename = "style.yaml"

// Layer identifies one of the three font variants a layered style stacks.
// The compositing order is fixed so glyph outlines align pixel-for-pixel:
// base first, infill over it, gears on top.
type Layer int

const (
	LayerBase Layer = iota
	LayerInfill
	LayerGears
)

// Layers returns the three layers in compositing order.
func Layers() [3]Layer {
	return [3]Layer{LayerBase, LayerInfill, LayerGears}
}

func (l Layer) String() string {
	switch l {
	case LayerBase:
		return "base"
	case LayerInfill:
		return "infill"
	case LayerGears:
		return "gears"
	default:
		return fmt.Sprintf("layer(%d)", int(l))
	}
}

// LayerFonts holds the font asset path for each layer, relative to the
// style package directory. All three assets must share identical glyph
// metrics by construction.
type LayerFonts struct {
	Base   string `yaml:"base"`
	Infill string `yaml:"infill"`
	Gears  string `yaml:"gears"`
}

// For returns the font path for a layer.
func (f LayerFonts) For(l Layer) string {
	switch l {
	case LayerInfill:
		return f.Infill
	case LayerGears:
		return f.Gears
	default:
		return f.Base
	}
}

// Paths returns the three font paths in compositing order.
func (f LayerFonts) Paths() [3]string {
	return [3]string{f.Base, f.Infill, f.Gears}
}

func (f LayerFonts) validate() error {
	for _, l := range Layers() {
		if f.For(l) == "" {
			return fmt.Errorf("missing %s layer font", l)
		}
	}
	return nil
}

// SplitStyle controls how long titles are broken into lines.
type SplitStyle string

const (
	SplitEven   SplitStyle = "even"   // balance line lengths
	SplitTop    SplitStyle = "top"    // pack lines greedily, shortest line last
	SplitBottom SplitStyle = "bottom" // pack lines greedily, shortest line first
)

// TitleCharacteristics describes how the host splits and cases title text
// for this style.
type TitleCharacteristics struct {
	Case         string     `yaml:"case"`
	MaxLineWidth int        `yaml:"max_line_width"`
	MaxLineCount int        `yaml:"max_line_count"`
	SplitStyle   SplitStyle `yaml:"split_style"`
}

func (t *TitleCharacteristics) applyDefaults() {
	if t.Case == "" {
		t.Case = "source"
	}
	if t.MaxLineWidth <= 0 {
		t.MaxLineWidth = 24
	}
	if t.MaxLineCount <= 0 {
		t.MaxLineCount = 4
	}
	if t.SplitStyle == "" {
		t.SplitStyle = SplitEven
	}
}

func (t TitleCharacteristics) validate() error {
	switch t.SplitStyle {
	case SplitEven, SplitTop, SplitBottom:
	default:
		return fmt.Errorf("unknown split style %q", t.SplitStyle)
	}
	switch t.Case {
	case "source", "upper", "lower", "title":
	default:
		return fmt.Errorf("unknown title case %q", t.Case)
	}
	return nil
}

// Style is a named, selectable card style: the manifest bound to the
// package directory it was loaded from. Font and overlay paths resolve
// against Dir. A Style is immutable once discovered.
type Style struct {
	Manifest

	// Dir is the absolute style package directory.
	Dir string

	// FontWarnings carries metric-compatibility findings from discovery.
	// Empty when the three layer fonts verified identical.
	FontWarnings []string
}

// FontPath returns the absolute path of a layer's font asset.
func (s *Style) FontPath(l Layer) string {
	return filepath.Join(s.Dir, filepath.FromSlash(s.Fonts.For(l)))
}

// FontPaths returns the absolute paths of the three layer fonts in
// compositing order.
func (s *Style) FontPaths() [3]string {
	return [3]string{
		s.FontPath(LayerBase),
		s.FontPath(LayerInfill),
		s.FontPath(LayerGears),
	}
}

// OverlayPath returns the absolute path of a named overlay image, or ""
// when the style does not define it.
func (s *Style) OverlayPath(name string) string {
	rel, ok := s.Overlays[name]
	if !ok || rel == "" {
		return ""
	}
	return filepath.Join(s.Dir, filepath.FromSlash(rel))
}
