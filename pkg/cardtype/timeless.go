package cardtype

import (
	"fmt"
	"os"
	"path/filepath"
)

// Timeless returns the manifest of the bundled Timeless style, a card
// style matching the logo typography of the Timeless (2016) television
// series. The style draws every text element three times with fonts that
// share identical glyph metrics: a solid base, a cutout infill and an
// ornamental gears layer.
func Timeless() *Manifest {
	return &Manifest{
		Name:       "Timeless (2016)",
		Identifier: "timeless",
		Description: `Title card intended for the "Timeless" television series with ` +
			`matching custom font to create the shows text just like the shows logo.`,
		Example:  "https://raw.githubusercontent.com/Supremicus/tcm-images/main/LocalCardTypePreviews/TimelessTitleCard.preview.jpg",
		Creators: []string{"Supremicus"},
		Source:   "local",

		SupportsCustomFonts:   false,
		SupportsCustomSeasons: true,

		Title: TitleCharacteristics{
			Case:         "source",
			MaxLineWidth: 24,
			MaxLineCount: 4,
			SplitStyle:   SplitEven,
		},
		Fonts: LayerFonts{
			Base:   "fonts/Timeless-Main.otf",
			Infill: "fonts/Timeless-Infill.otf",
			Gears:  "fonts/Timeless-Gears.otf",
		},
		Colors: ColorSet{
			Title:             DefaultTitleColor,
			TitleInfill:       DefaultTitleInfillColor,
			TitleGears:        DefaultTitleGearsColor,
			EpisodeText:       DefaultEpisodeTextColor,
			EpisodeTextInfill: DefaultEpisodeTextInfillColor,
			EpisodeTextGears:  DefaultEpisodeTextGearsColor,
		},
		EpisodeTextFormat: DefaultEpisodeTextFormat,
		Overlays: map[string]string{
			"gradient": "overlays/gradient.png",
		},
	}
}

// Scaffold writes the Timeless manifest and empty asset directories into
// the card type directory, so a fresh installation has the built-in style
// on disk. The package registers on the next Discover once the three layer
// fonts are added to its fonts directory. Returns the package directory.
// An existing manifest is left untouched.
func Scaffold(cardTypeDir string) (string, error) {
	m := Timeless()
	pkgDir := filepath.Join(cardTypeDir, m.Identifier)

	for _, sub := range []string{"fonts", "overlays"} {
		if err := os.MkdirAll(filepath.Join(pkgDir, sub), 0755); err != nil {
			return "", fmt.Errorf("failed to create %s directory: %w", sub, err)
		}
	}

	manifestPath := filepath.Join(pkgDir, ManifestFilename)
	if _, err := os.Stat(manifestPath); err == nil {
		return pkgDir, nil
	}
	if err := m.Save(manifestPath); err != nil {
		return "", err
	}
	return pkgDir, nil
}
