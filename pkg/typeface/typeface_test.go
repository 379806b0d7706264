package typeface

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/joeblew999/plat-titlecard/pkg/cardtype"
)

func writeFont(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestParse(t *testing.T) {
	f, err := Parse(goregular.TTF)
	require.NoError(t, err)
	assert.Equal(t, "Go", f.Name())
	assert.Greater(t, f.UnitsPerEm(), 0)

	_, err = Parse([]byte("not a font"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeFont(t, dir, "regular.ttf", goregular.TTF)

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, f.Path())

	_, err = Load(filepath.Join(dir, "missing.ttf"))
	assert.Error(t, err)
}

func TestFace(t *testing.T) {
	f, err := Parse(goregular.TTF)
	require.NoError(t, err)

	face, err := f.Face(96, 72)
	require.NoError(t, err)
	assert.Greater(t, face.Metrics().Ascent.Ceil(), 0)
}

func TestMeasureLines(t *testing.T) {
	f, err := Parse(goregular.TTF)
	require.NoError(t, err)

	one, err := f.MeasureLines("HELLO", 256, -50)
	require.NoError(t, err)
	assert.Greater(t, one.Width, 0)
	assert.Greater(t, one.Height, 0)

	two, err := f.MeasureLines("HELLO\nWORLD", 256, -50)
	require.NoError(t, err)
	assert.Greater(t, two.Height, one.Height, "second line adds height")
	assert.GreaterOrEqual(t, two.Width, one.Width, "width is the widest line")

	loose, err := f.MeasureLines("HELLO\nWORLD", 256, 0)
	require.NoError(t, err)
	assert.Equal(t, two.Height+50, loose.Height, "interline spacing shifts stacked lines")
}

func TestVerifyCompatible(t *testing.T) {
	dir := t.TempDir()
	regular := writeFont(t, dir, "regular.ttf", goregular.TTF)
	bold := writeFont(t, dir, "bold.ttf", gobold.TTF)

	t.Run("identical layers produce no warnings", func(t *testing.T) {
		warnings, err := VerifyCompatible([3]string{regular, regular, regular})
		require.NoError(t, err)
		assert.Empty(t, warnings)
	})

	t.Run("different weights drift", func(t *testing.T) {
		warnings, err := VerifyCompatible([3]string{regular, bold, regular})
		require.NoError(t, err)
		assert.NotEmpty(t, warnings, "bold glyphs are wider than regular ones")
	})

	t.Run("unreadable font is an error", func(t *testing.T) {
		broken := writeFont(t, dir, "broken.ttf", []byte("junk"))
		_, err := VerifyCompatible([3]string{regular, broken, regular})
		assert.Error(t, err)
	})
}

func TestRenderPreview(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "preview")
	for _, name := range []string{"base.ttf", "infill.ttf", "gears.ttf"} {
		writeFont(t, dir, filepath.Join("fonts", name), goregular.TTF)
	}

	m := cardtype.Timeless()
	m.Identifier = "preview"
	m.Fonts = cardtype.LayerFonts{
		Base:   "fonts/base.ttf",
		Infill: "fonts/infill.ttf",
		Gears:  "fonts/gears.ttf",
	}
	style := &cardtype.Style{Manifest: *m, Dir: dir}

	img, err := RenderPreview(style, PreviewOptions{Width: 400, Height: 225})
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 225, img.Bounds().Dy())

	// Some pixels must differ from the background once text is drawn.
	background := img.At(0, 0)
	painted := false
	for y := 0; y < 225 && !painted; y++ {
		for x := 0; x < 400; x++ {
			if img.At(x, y) != background {
				painted = true
				break
			}
		}
	}
	assert.True(t, painted, "preview should contain rendered text")

	data, err := EncodePNG(img)
	require.NoError(t, err)
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 400, cfg.Width)
	assert.Equal(t, 225, cfg.Height)
}

func TestRenderPreviewLayerOrder(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "layered")
	for _, name := range []string{"base.ttf", "infill.ttf", "gears.ttf"} {
		writeFont(t, dir, filepath.Join("fonts", name), goregular.TTF)
	}

	m := cardtype.Timeless()
	m.Identifier = "layered"
	m.Fonts = cardtype.LayerFonts{
		Base:   "fonts/base.ttf",
		Infill: "fonts/infill.ttf",
		Gears:  "fonts/gears.ttf",
	}
	m.Colors.Title = "#FF0000"
	m.Colors.TitleInfill = "#00FF00"
	m.Colors.TitleGears = "#0000FF"
	style := &cardtype.Style{Manifest: *m, Dir: dir}

	img, err := RenderPreview(style, PreviewOptions{Text: "O", Width: 200, Height: 200})
	require.NoError(t, err)

	// The three passes share one coverage mask, so every pixel the base
	// pass filled completely is repainted by the infill and gears passes.
	var red, blue int
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			switch {
			case r == 0xFFFF && g == 0 && b == 0:
				red++
			case r == 0 && g == 0 && b == 0xFFFF:
				blue++
			}
		}
	}
	assert.Zero(t, red, "base color must not survive the later passes")
	assert.Greater(t, blue, 0, "gears layer paints last")
}
