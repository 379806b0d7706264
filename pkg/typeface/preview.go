package typeface

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/joeblew999/plat-titlecard/pkg/cardtype"
)

// PreviewOptions control the sample rendering of a style.
type PreviewOptions struct {
	Text       string      // sample text, defaults to the uppercased identifier
	Width      int         // image width, defaults to 800
	Height     int         // image height, defaults to 450
	PointSize  float64     // defaults to 96
	DPI        float64     // defaults to 72
	Background color.Color // defaults to near-black
}

func (o *PreviewOptions) applyDefaults(style *cardtype.Style) {
	if o.Text == "" {
		o.Text = strings.ToUpper(style.Identifier)
	}
	if o.Width <= 0 {
		o.Width = 800
	}
	if o.Height <= 0 {
		o.Height = 450
	}
	if o.PointSize <= 0 {
		o.PointSize = 96
	}
	if o.DPI <= 0 {
		o.DPI = 72
	}
	if o.Background == nil {
		o.Background = color.RGBA{R: 0x1A, G: 0x1A, B: 0x1A, A: 0xFF}
	}
}

// RenderPreview draws the style's title colors with all three font layers
// stacked in compositing order, centered on a plain background. It is an
// in-process approximation of the full card pipeline, used by the style
// gallery and the preview tooling, and needs no external renderer.
func RenderPreview(style *cardtype.Style, opts PreviewOptions) (image.Image, error) {
	opts.applyDefaults(style)

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	var faces [3]font.Face
	for i, path := range style.FontPaths() {
		f, err := Load(path)
		if err != nil {
			return nil, err
		}
		face, err := f.Face(opts.PointSize, opts.DPI)
		if err != nil {
			return nil, err
		}
		faces[i] = face
	}

	// All layers share the base layer's metrics, so one measurement
	// positions every pass.
	width := font.MeasureString(faces[0], opts.Text)
	metrics := faces[0].Metrics()
	dot := fixed.Point26_6{
		X: (fixed.I(opts.Width) - width) / 2,
		Y: (fixed.I(opts.Height) + metrics.Ascent - metrics.Descent) / 2,
	}

	for _, layer := range cardtype.Layers() {
		rgba, err := cardtype.ParseHexColor(style.Colors.TitleFor(layer))
		if err != nil {
			return nil, fmt.Errorf("%s layer color: %w", layer, err)
		}
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(rgba),
			Face: faces[layer],
			Dot:  dot,
		}
		d.DrawString(opts.Text)
	}
	return img, nil
}

// EncodePNG encodes an image as PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}
