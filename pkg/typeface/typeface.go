// Package typeface loads the OpenType assets of a card style and checks
// the property layered styles depend on: all three layer fonts must carry
// identical glyph metrics so stacked passes align pixel-for-pixel.
package typeface

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// Font is a parsed OpenType font asset.
type Font struct {
	sfnt *sfnt.Font
	path string
}

// Load reads and parses a font file.
func Load(path string) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	f.path = path
	return f, nil
}

// Parse parses font data in TTF or OTF form.
func Parse(data []byte) (*Font, error) {
	sf, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &Font{sfnt: sf}, nil
}

// Path returns the file the font was loaded from, or "" for fonts parsed
// from memory.
func (f *Font) Path() string {
	return f.path
}

// Name returns the font's family name, best effort.
func (f *Font) Name() string {
	var buf sfnt.Buffer
	if name, err := f.sfnt.Name(&buf, sfnt.NameIDFamily); err == nil {
		return name
	}
	if name, err := f.sfnt.Name(&buf, sfnt.NameIDFull); err == nil {
		return name
	}
	return ""
}

// UnitsPerEm returns the font's design grid resolution.
func (f *Font) UnitsPerEm() int {
	return int(f.sfnt.UnitsPerEm())
}

// Face creates a rendering face at the given point size.
func (f *Font) Face(pointSize, dpi float64) (font.Face, error) {
	face, err := opentype.NewFace(f.sfnt, &opentype.FaceOptions{
		Size:    pointSize,
		DPI:     dpi,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create face: %w", err)
	}
	return face, nil
}
