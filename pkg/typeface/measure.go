package typeface

import (
	"strings"

	"golang.org/x/image/font"
)

// TextDimensions holds measured pixel dimensions of annotation text.
type TextDimensions struct {
	Width  int
	Height int
}

// MeasureLines measures multi-line annotation text at a point size the
// way convert lays it out at its default 72 DPI: width is the widest
// line, height is the sum of the line heights plus the interline spacing
// applied between lines. Interline spacing may be negative to tighten
// stacked lines.
func (f *Font) MeasureLines(text string, pointSize float64, interline int) (TextDimensions, error) {
	face, err := f.Face(pointSize, 72)
	if err != nil {
		return TextDimensions{}, err
	}

	m := face.Metrics()
	lineHeight := (m.Ascent + m.Descent).Ceil()

	lines := strings.Split(text, "\n")
	var width int
	for _, line := range lines {
		if w := font.MeasureString(face, line).Ceil(); w > width {
			width = w
		}
	}
	height := lineHeight*len(lines) + interline*(len(lines)-1)
	if height < 0 {
		height = 0
	}
	return TextDimensions{Width: width, Height: height}, nil
}
