package card

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joeblew999/plat-titlecard/pkg/cardtype"
	"github.com/joeblew999/plat-titlecard/pkg/log"
	"github.com/joeblew999/plat-titlecard/pkg/magick"
	"github.com/joeblew999/plat-titlecard/pkg/typeface"
)

// Plan is a fully assembled convert invocation for one card, plus the
// measurements that positioned its text.
type Plan struct {
	Args []string

	TitleText  string // cased, split, unescaped
	IndexText  string // unescaped, "" when both labels hidden
	TitleLines int

	TitleWidth  int
	TitleHeight int
	IndexOffset int
}

// Fingerprint identifies the rendered output: two plans with the same
// fingerprint produce identical cards. The output path itself is
// excluded so the same request renders to the same key wherever it is
// written.
func (p *Plan) Fingerprint() string {
	h := sha256.New()
	for _, arg := range p.Args[:len(p.Args)-1] {
		h.Write([]byte(arg))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Measurer measures annotation text through ImageMagick itself, the
// way magick.Runner does.
type Measurer interface {
	MeasureText(ctx context.Context, spec magick.TextSpec) (magick.TextDimensions, error)
}

// ComposerOption configures a Composer.
type ComposerOption func(*Composer)

// WithCanvas overrides the working canvas dimensions.
func WithCanvas(w, h int) ComposerOption {
	return func(c *Composer) {
		c.canvasW, c.canvasH = w, h
	}
}

// WithOutputSize scales the finished card down from the canvas, for
// hosts that want 1920x1080 files instead of full-size ones.
func WithOutputSize(w, h int) ComposerOption {
	return func(c *Composer) {
		c.outputW, c.outputH = w, h
	}
}

// WithMeasurer routes title measurement through convert so text offsets
// line up with its glyph layout. Without one, or when measurement
// fails, the composer estimates from the font metrics instead.
func WithMeasurer(m Measurer) ComposerOption {
	return func(c *Composer) {
		c.measurer = m
	}
}

// Composer assembles convert plans. It is stateless apart from its
// dimensions and safe for concurrent use.
type Composer struct {
	canvasW, canvasH int
	outputW, outputH int
	measurer         Measurer
}

// NewComposer creates a Composer on the standard 3200x1800 canvas.
func NewComposer(opts ...ComposerOption) *Composer {
	c := &Composer{
		canvasW: DefaultCanvasWidth,
		canvasH: DefaultCanvasHeight,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose builds the convert plan for a card in a given style. The
// argument order follows the card pipeline: resize and style the source
// art, composite the gradient, draw the index line through all three
// layers, draw the title through all three layers, then write the
// output.
func (c *Composer) Compose(ctx context.Context, style *cardtype.Style, card *Card) (*Plan, error) {
	if style == nil {
		return nil, fmt.Errorf("no style given")
	}
	if err := card.Validate(); err != nil {
		return nil, err
	}
	// Validate leaves the output path open for content addressing, but
	// the argv ends with a concrete file.
	if card.OutputPath == "" {
		return nil, fmt.Errorf("card missing output path")
	}

	titleText := strings.Join(
		SplitTitle(ApplyCase(card.Title, style.Title.Case), style.Title), "\n")
	indexText := card.indexText(style)

	interline := BaseInterlineSpacing + card.FontInterlineSpacing
	titleSize := TitlePointSize * card.fontScale()
	y := BaseVerticalOffset + card.FontVerticalShift

	// The index line sits on top of the title block, so its offset
	// depends on the measured title height.
	dims, err := c.measureTitle(ctx, style, titleText, titleSize, interline)
	if err != nil {
		return nil, err
	}
	indexOffset := y + dims.Height + IndexSpacingAdjustment

	args := []string{card.SourcePath}
	args = append(args, magick.ResizeFill(c.canvasW, c.canvasH)...)
	args = append(args, magick.ExtentCenter(c.canvasW, c.canvasH)...)
	if card.Blur {
		args = append(args, magick.Blur(BlurProfile)...)
	}
	if card.Grayscale {
		args = append(args, magick.Grayscale()...)
	}
	if gradient := style.OverlayPath("gradient"); gradient != "" {
		args = append(args, magick.Composite(gradient)...)
	}

	if indexText != "" {
		escaped := magick.Escape(indexText)
		for _, layer := range cardtype.Layers() {
			fill := style.Colors.EpisodeTextFor(layer)
			if layer == cardtype.LayerBase && card.EpisodeTextColor != "" {
				fill = card.EpisodeTextColor
			}
			args = append(args, indexLayerArgs(style.FontPath(layer), fill, indexOffset, escaped)...)
		}
	}

	escapedTitle := magick.Escape(titleText)
	for _, layer := range cardtype.Layers() {
		fill := style.Colors.TitleFor(layer)
		if layer == cardtype.LayerBase && card.FontColor != "" {
			fill = card.FontColor
		}
		args = append(args, titleLayerArgs(style.FontPath(layer), titleSize, interline, fill, y, escapedTitle)...)
	}

	// A mask image next to the source is composited back over the text
	// so foreground subjects can cover it.
	if mask := maskPath(card.SourcePath); mask != "" {
		args = append(args, magick.Composite(mask)...)
	}

	if c.outputW > 0 && c.outputH > 0 && (c.outputW != c.canvasW || c.outputH != c.canvasH) {
		args = append(args, magick.Resize(c.outputW, c.outputH)...)
	}
	args = append(args, card.OutputPath)

	return &Plan{
		Args:        args,
		TitleText:   titleText,
		IndexText:   indexText,
		TitleLines:  strings.Count(titleText, "\n") + 1,
		TitleWidth:  dims.Width,
		TitleHeight: dims.Height,
		IndexOffset: indexOffset,
	}, nil
}

// measureTitle asks convert for the title block dimensions when a
// measurer is wired, falling back to the base layer font's own metrics
// so plans compose without ImageMagick installed.
func (c *Composer) measureTitle(ctx context.Context, style *cardtype.Style, text string, size float64, interline int) (typeface.TextDimensions, error) {
	fontPath := style.FontPath(cardtype.LayerBase)

	if c.measurer != nil {
		d, err := c.measurer.MeasureText(ctx, magick.TextSpec{
			Font:             fontPath,
			PointSize:        size,
			InterlineSpacing: interline,
			Text:             text,
		})
		if err == nil {
			return typeface.TextDimensions{Width: d.Width, Height: d.Height}, nil
		}
		log.Debug("text measurement fell back to font metrics", "error", err)
	}

	baseFont, err := typeface.Load(fontPath)
	if err != nil {
		return typeface.TextDimensions{}, fmt.Errorf("base layer font: %w", err)
	}
	dims, err := baseFont.MeasureLines(text, size, interline)
	if err != nil {
		return typeface.TextDimensions{}, fmt.Errorf("failed to measure title: %w", err)
	}
	return dims, nil
}

// titleLayerArgs is one south-gravity title pass: transparent background
// so stacked passes only add glyphs.
func titleLayerArgs(font string, size float64, interline int, fill string, y int, text string) []string {
	return []string{
		"-font", font,
		"-gravity", "south",
		"-pointsize", strconv.FormatFloat(size, 'f', -1, 64),
		"-kerning", "0",
		"-interline-spacing", strconv.Itoa(interline),
		"-background", "transparent",
		"-fill", fill,
		"-annotate", magick.Offset(0, y), text,
	}
}

// indexLayerArgs is one south-gravity index pass. The index line never
// wraps, so it carries no interline spacing.
func indexLayerArgs(font, fill string, offset int, text string) []string {
	return []string{
		"-font", font,
		"-gravity", "south",
		"-pointsize", strconv.FormatFloat(IndexPointSize, 'f', -1, 64),
		"-kerning", "0",
		"-fill", fill,
		"-annotate", magick.Offset(0, offset), text,
	}
}

// maskPath returns the "<name>-mask.<ext>" sibling of a source image if
// one exists.
func maskPath(source string) string {
	ext := filepath.Ext(source)
	candidate := strings.TrimSuffix(source, ext) + "-mask" + ext
	if _, err := os.Stat(candidate); err != nil {
		return ""
	}
	return candidate
}
