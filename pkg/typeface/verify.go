package typeface

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// probeRunes are the characters whose metrics are compared across layers.
// They cover the text a title card actually draws: letters, digits and
// the separator glyphs of the index line.
var probeRunes = []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"abcdefghijklmnopqrstuvwxyz" +
	"0123456789 •&-.,:'!?")

// probePPEM is the pixel size metrics are sampled at. Any size works for
// comparison; this matches the title point size cards render with.
const probePPEM = 256

// maxWarnings caps the report so a wholly unrelated font pair does not
// produce hundreds of lines.
const maxWarnings = 8

// VerifyCompatible loads three layer fonts in compositing order and
// reports metric differences between the base layer and the other two.
// It returns an error when a font cannot be read or parsed, and warnings
// when all fonts parse but their glyph metrics drift.
func VerifyCompatible(paths [3]string) ([]string, error) {
	fonts := make([]*Font, 3)
	for i, p := range paths {
		f, err := Load(p)
		if err != nil {
			return nil, err
		}
		fonts[i] = f
	}
	labels := [3]string{"base", "infill", "gears"}

	var warnings []string
	for i := 1; i < 3; i++ {
		w, err := CompareMetrics(fonts[0], fonts[i], labels[0], labels[i])
		if err != nil {
			return nil, err
		}
		warnings = append(warnings, w...)
	}
	if len(warnings) > maxWarnings {
		extra := len(warnings) - maxWarnings
		warnings = append(warnings[:maxWarnings], fmt.Sprintf("and %d more differences", extra))
	}
	return warnings, nil
}

// CompareMetrics compares the glyph metrics of two fonts and describes
// every difference that would misalign stacked rendering passes: em
// grid, vertical metrics, glyph coverage and advance widths.
func CompareMetrics(ref, other *Font, refLabel, otherLabel string) ([]string, error) {
	var warnings []string

	if ref.UnitsPerEm() != other.UnitsPerEm() {
		warnings = append(warnings, fmt.Sprintf("units per em differ: %s=%d %s=%d",
			refLabel, ref.UnitsPerEm(), otherLabel, other.UnitsPerEm()))
	}

	ppem := fixed.I(probePPEM)
	var refBuf, otherBuf sfnt.Buffer

	refMetrics, err := ref.sfnt.Metrics(&refBuf, ppem, font.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("%s layer metrics: %w", refLabel, err)
	}
	otherMetrics, err := other.sfnt.Metrics(&otherBuf, ppem, font.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("%s layer metrics: %w", otherLabel, err)
	}
	if refMetrics.Ascent != otherMetrics.Ascent || refMetrics.Descent != otherMetrics.Descent {
		warnings = append(warnings, fmt.Sprintf(
			"vertical metrics differ between %s and %s: ascent %v vs %v, descent %v vs %v",
			refLabel, otherLabel,
			refMetrics.Ascent, otherMetrics.Ascent,
			refMetrics.Descent, otherMetrics.Descent))
	}

	for _, r := range probeRunes {
		refIdx, err := ref.sfnt.GlyphIndex(&refBuf, r)
		if err != nil {
			return nil, fmt.Errorf("%s layer glyph lookup: %w", refLabel, err)
		}
		otherIdx, err := other.sfnt.GlyphIndex(&otherBuf, r)
		if err != nil {
			return nil, fmt.Errorf("%s layer glyph lookup: %w", otherLabel, err)
		}
		// A rune absent from both layers cannot misalign anything.
		if refIdx == 0 && otherIdx == 0 {
			continue
		}
		if refIdx == 0 || otherIdx == 0 {
			missing := otherLabel
			if refIdx == 0 {
				missing = refLabel
			}
			warnings = append(warnings, fmt.Sprintf("glyph %q missing from %s layer", r, missing))
			continue
		}

		_, refAdv, err := ref.sfnt.GlyphBounds(&refBuf, refIdx, ppem, font.HintingNone)
		if err != nil {
			return nil, fmt.Errorf("%s layer glyph bounds: %w", refLabel, err)
		}
		_, otherAdv, err := other.sfnt.GlyphBounds(&otherBuf, otherIdx, ppem, font.HintingNone)
		if err != nil {
			return nil, fmt.Errorf("%s layer glyph bounds: %w", otherLabel, err)
		}
		if refAdv != otherAdv {
			warnings = append(warnings, fmt.Sprintf("advance width differs for %q: %s=%v %s=%v",
				r, refLabel, refAdv, otherLabel, otherAdv))
		}
	}
	return warnings, nil
}
