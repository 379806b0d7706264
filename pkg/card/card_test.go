package card

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/joeblew999/plat-titlecard/pkg/cardtype"
	"github.com/joeblew999/plat-titlecard/pkg/magick"
)

// testStyle writes a usable style package to a temp dir: the Timeless
// manifest bound to real font data so text measurement works.
func testStyle(t *testing.T) *cardtype.Style {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "fonts"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "overlays"), 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"base.ttf", "infill.ttf", "gears.ttf"} {
		if err := os.WriteFile(filepath.Join(dir, "fonts", name), goregular.TTF, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "overlays", "gradient.png"), []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}

	m := cardtype.Timeless()
	m.Fonts = cardtype.LayerFonts{
		Base:   "fonts/base.ttf",
		Infill: "fonts/infill.ttf",
		Gears:  "fonts/gears.ttf",
	}
	return &cardtype.Style{Manifest: *m, Dir: dir}
}

func testCard() *Card {
	return &Card{
		SourcePath: "/tmp/source.jpg",
		OutputPath: "/tmp/card.jpg",
		Title:      "Pilot",
		Series:     "Timeless",
		Season:     1,
		Episode:    1,
	}
}

// indexOf finds the first position of a consecutive argument pair.
func indexOf(args []string, a, b string) int {
	for i := 0; i+1 < len(args); i++ {
		if args[i] == a && args[i+1] == b {
			return i
		}
	}
	return -1
}

func countArg(args []string, want string) int {
	n := 0
	for _, a := range args {
		if a == want {
			n++
		}
	}
	return n
}

func TestComposeArgOrder(t *testing.T) {
	style := testStyle(t)
	plan, err := NewComposer().Compose(context.Background(), style, testCard())
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	args := plan.Args

	if args[0] != "/tmp/source.jpg" {
		t.Errorf("first arg should be the source, got %q", args[0])
	}
	if args[len(args)-1] != "/tmp/card.jpg" {
		t.Errorf("last arg should be the output, got %q", args[len(args)-1])
	}
	if indexOf(args, "-resize", "3200x1800^") < 0 {
		t.Error("missing canvas fill resize")
	}
	if indexOf(args, "-extent", "3200x1800") < 0 {
		t.Error("missing canvas extent")
	}
	gradient := indexOf(args, filepath.Join(style.Dir, "overlays", "gradient.png"), "-composite")
	if gradient < 0 {
		t.Fatal("missing gradient composite")
	}

	// Index text is drawn before the title so the title layers sit on
	// top where the blocks overlap.
	indexPass := indexOf(args, "-pointsize", "60")
	titlePass := indexOf(args, "-pointsize", "256")
	if indexPass < 0 || titlePass < 0 {
		t.Fatalf("missing text passes: index=%d title=%d", indexPass, titlePass)
	}
	if gradient > indexPass || indexPass > titlePass {
		t.Errorf("pipeline order wrong: gradient=%d index=%d title=%d", gradient, indexPass, titlePass)
	}

	// Three layers each for index and title text.
	if got := countArg(args, "-annotate"); got != 6 {
		t.Errorf("expected 6 annotate passes, got %d", got)
	}

	// Layer fonts appear in compositing order for the title passes.
	base := indexOf(args, "-font", style.FontPath(cardtype.LayerBase))
	infill := indexOf(args, "-font", style.FontPath(cardtype.LayerInfill))
	gears := indexOf(args, "-font", style.FontPath(cardtype.LayerGears))
	if base < 0 || infill < 0 || gears < 0 {
		t.Fatal("missing layer font args")
	}
	if !(base < infill && infill < gears) {
		t.Errorf("layer order wrong: base=%d infill=%d gears=%d", base, infill, gears)
	}
}

func TestComposeTextAndOffsets(t *testing.T) {
	style := testStyle(t)
	plan, err := NewComposer().Compose(context.Background(), style, testCard())
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	if plan.TitleText != "Pilot" {
		t.Errorf("title text = %q", plan.TitleText)
	}
	if plan.IndexText != "SEASON 1 • EPISODE 1" {
		t.Errorf("index text = %q", plan.IndexText)
	}
	if indexOf(plan.Args, "-annotate", "+0+47") < 0 {
		t.Error("title should sit at the base vertical offset")
	}
	wantOffset := 47 + plan.TitleHeight - 10
	if plan.IndexOffset != wantOffset {
		t.Errorf("index offset = %d, want %d", plan.IndexOffset, wantOffset)
	}
	if indexOf(plan.Args, "-interline-spacing", "-50") < 0 {
		t.Error("missing base interline spacing")
	}
	if indexOf(plan.Args, "-background", "transparent") < 0 {
		t.Error("title passes must keep the background transparent")
	}
}

func TestComposeAdjustments(t *testing.T) {
	style := testStyle(t)
	c := testCard()
	c.FontSize = 0.5
	c.FontVerticalShift = 13
	c.FontInterlineSpacing = 20
	c.FontColor = "#C62B2B"
	c.EpisodeTextColor = "#AAAAAA"
	c.Blur = true
	c.Grayscale = true

	plan, err := NewComposer().Compose(context.Background(), style, c)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	args := plan.Args

	if indexOf(args, "-pointsize", "128") < 0 {
		t.Error("font size scale should halve the title point size")
	}
	if indexOf(args, "-annotate", "+0+60") < 0 {
		t.Error("vertical shift should move the title offset")
	}
	if indexOf(args, "-interline-spacing", "-30") < 0 {
		t.Error("interline adjustment should be added to the base spacing")
	}
	if indexOf(args, "-blur", "0x60") < 0 {
		t.Error("missing blur profile")
	}
	if indexOf(args, "-colorspace", "gray") < 0 {
		t.Error("missing grayscale")
	}

	// Overrides apply to the base layer only; infill and gears keep the
	// style's published colors.
	if indexOf(args, "-fill", "#C62B2B") < 0 {
		t.Error("custom font color should fill the base title pass")
	}
	if indexOf(args, "-fill", "#AAAAAA") < 0 {
		t.Error("custom episode text color should fill the base index pass")
	}
	if got := countArg(args, "#000000"); got != 4 {
		t.Errorf("infill and gears passes should keep style colors, got %d black fills", got)
	}
}

// Editing one manifest color must change exactly one fill argument in the
// plan; the other five layers keep their colors.
func TestComposeColorIndependence(t *testing.T) {
	style := testStyle(t)
	base, err := NewComposer().Compose(context.Background(), style, testCard())
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*cardtype.ColorSet)
	}{
		{"title", func(c *cardtype.ColorSet) { c.Title = "#123456" }},
		{"title_infill", func(c *cardtype.ColorSet) { c.TitleInfill = "#123456" }},
		{"title_gears", func(c *cardtype.ColorSet) { c.TitleGears = "#123456" }},
		{"episode_text", func(c *cardtype.ColorSet) { c.EpisodeText = "#123456" }},
		{"episode_text_infill", func(c *cardtype.ColorSet) { c.EpisodeTextInfill = "#123456" }},
		{"episode_text_gears", func(c *cardtype.ColorSet) { c.EpisodeTextGears = "#123456" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			edited := *style
			tc.mutate(&edited.Manifest.Colors)
			plan, err := NewComposer().Compose(context.Background(), &edited, testCard())
			if err != nil {
				t.Fatalf("Compose failed: %v", err)
			}
			if len(plan.Args) != len(base.Args) {
				t.Fatalf("arg count changed: %d vs %d", len(plan.Args), len(base.Args))
			}
			var changed []int
			for i := range plan.Args {
				if plan.Args[i] != base.Args[i] {
					changed = append(changed, i)
				}
			}
			if len(changed) != 1 {
				t.Fatalf("expected exactly one changed argument, got %d: %v", len(changed), changed)
			}
			at := changed[0]
			if base.Args[at-1] != "-fill" || plan.Args[at] != "#123456" {
				t.Errorf("changed arg should be the edited fill, got %q %q", base.Args[at-1], plan.Args[at])
			}
		})
	}
}

func TestComposeHiddenIndex(t *testing.T) {
	style := testStyle(t)

	t.Run("both hidden", func(t *testing.T) {
		c := testCard()
		c.HideSeasonText = true
		c.HideEpisodeText = true
		plan, err := NewComposer().Compose(context.Background(), style, c)
		if err != nil {
			t.Fatalf("Compose failed: %v", err)
		}
		if plan.IndexText != "" {
			t.Errorf("index text should be empty, got %q", plan.IndexText)
		}
		if got := countArg(plan.Args, "-annotate"); got != 3 {
			t.Errorf("expected only 3 title passes, got %d annotates", got)
		}
	})

	t.Run("season hidden", func(t *testing.T) {
		c := testCard()
		c.HideSeasonText = true
		plan, err := NewComposer().Compose(context.Background(), style, c)
		if err != nil {
			t.Fatalf("Compose failed: %v", err)
		}
		if plan.IndexText != "EPISODE 1" {
			t.Errorf("index text = %q", plan.IndexText)
		}
	})

	t.Run("episode hidden", func(t *testing.T) {
		c := testCard()
		c.HideEpisodeText = true
		plan, err := NewComposer().Compose(context.Background(), style, c)
		if err != nil {
			t.Fatalf("Compose failed: %v", err)
		}
		if plan.IndexText != "SEASON 1" {
			t.Errorf("index text = %q", plan.IndexText)
		}
	})

	t.Run("specials season", func(t *testing.T) {
		c := testCard()
		c.Season = 0
		plan, err := NewComposer().Compose(context.Background(), style, c)
		if err != nil {
			t.Fatalf("Compose failed: %v", err)
		}
		if plan.IndexText != "SPECIALS • EPISODE 1" {
			t.Errorf("index text = %q", plan.IndexText)
		}
	})
}

func TestComposeEscapesText(t *testing.T) {
	style := testStyle(t)
	c := testCard()
	c.Title = "100% Hotter"

	plan, err := NewComposer().Compose(context.Background(), style, c)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	escaped := false
	for _, arg := range plan.Args {
		if strings.Contains(arg, "100%% Hotter") {
			escaped = true
		}
	}
	if !escaped {
		t.Error("percent in titles must be escaped for convert")
	}
	if plan.TitleText != "100% Hotter" {
		t.Errorf("plan title text should stay unescaped, got %q", plan.TitleText)
	}
}

func TestComposeLongTitleSplits(t *testing.T) {
	style := testStyle(t)
	c := testCard()
	c.Title = "The Assassination of Abraham Lincoln"

	plan, err := NewComposer().Compose(context.Background(), style, c)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if plan.TitleLines != 2 {
		t.Errorf("expected a 2 line title, got %d (%q)", plan.TitleLines, plan.TitleText)
	}
	if !strings.Contains(plan.TitleText, "\n") {
		t.Errorf("split title should contain a newline: %q", plan.TitleText)
	}

	single, err := NewComposer().Compose(context.Background(), style, testCard())
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if plan.IndexOffset <= single.IndexOffset {
		t.Error("taller title block should push the index line up")
	}
}

func TestComposeMaskOverlay(t *testing.T) {
	style := testStyle(t)
	dir := t.TempDir()
	source := filepath.Join(dir, "s1e1.jpg")
	mask := filepath.Join(dir, "s1e1-mask.jpg")
	for _, p := range []string{source, mask} {
		if err := os.WriteFile(p, []byte("img"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	c := testCard()
	c.SourcePath = source
	plan, err := NewComposer().Compose(context.Background(), style, c)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	maskIdx := indexOf(plan.Args, mask, "-composite")
	titleIdx := indexOf(plan.Args, "-pointsize", "256")
	if maskIdx < 0 {
		t.Fatal("mask sibling should be composited")
	}
	if maskIdx < titleIdx {
		t.Error("mask must be composited after the text passes")
	}
}

func TestComposeOutputSize(t *testing.T) {
	style := testStyle(t)
	plan, err := NewComposer(WithOutputSize(1920, 1080)).Compose(context.Background(), style, testCard())
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	resize := indexOf(plan.Args, "-resize", "1920x1080")
	if resize < 0 {
		t.Fatal("missing output resize")
	}
	if resize != len(plan.Args)-3 {
		t.Errorf("output resize should come right before the output path, got index %d of %d", resize, len(plan.Args))
	}
}

// fixedMeasurer stands in for convert-backed measurement.
type fixedMeasurer struct {
	dims magick.TextDimensions
	err  error
	spec magick.TextSpec
}

func (m *fixedMeasurer) MeasureText(_ context.Context, spec magick.TextSpec) (magick.TextDimensions, error) {
	m.spec = spec
	return m.dims, m.err
}

func TestComposeWithMeasurer(t *testing.T) {
	style := testStyle(t)

	m := &fixedMeasurer{dims: magick.TextDimensions{Width: 1500, Height: 300}}
	plan, err := NewComposer(WithMeasurer(m)).Compose(context.Background(), style, testCard())
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if plan.TitleWidth != 1500 || plan.TitleHeight != 300 {
		t.Errorf("plan should carry the measured dimensions, got %dx%d", plan.TitleWidth, plan.TitleHeight)
	}
	if want := 47 + 300 - 10; plan.IndexOffset != want {
		t.Errorf("index offset = %d, want %d", plan.IndexOffset, want)
	}
	if m.spec.Font != style.FontPath(cardtype.LayerBase) {
		t.Errorf("measured the wrong font: %q", m.spec.Font)
	}
	if m.spec.PointSize != 256 || m.spec.InterlineSpacing != -50 {
		t.Errorf("measure spec should mirror the title pass, got %+v", m.spec)
	}

	// A failing measurer falls back to the font metrics estimate.
	broken := &fixedMeasurer{err: errors.New("convert exploded")}
	fallback, err := NewComposer(WithMeasurer(broken)).Compose(context.Background(), style, testCard())
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	plain, err := NewComposer().Compose(context.Background(), style, testCard())
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if fallback.IndexOffset != plain.IndexOffset {
		t.Errorf("fallback offset %d should match the metrics estimate %d", fallback.IndexOffset, plain.IndexOffset)
	}
}

func TestPlanFingerprint(t *testing.T) {
	style := testStyle(t)
	composer := NewComposer()

	a, err := composer.Compose(context.Background(), style, testCard())
	if err != nil {
		t.Fatal(err)
	}
	b, err := composer.Compose(context.Background(), style, testCard())
	if err != nil {
		t.Fatal(err)
	}
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("identical requests must share a fingerprint")
	}

	c := testCard()
	c.OutputPath = "/tmp/elsewhere.jpg"
	moved, err := composer.Compose(context.Background(), style, c)
	if err != nil {
		t.Fatal(err)
	}
	if moved.Fingerprint() != a.Fingerprint() {
		t.Error("output path must not change the fingerprint")
	}

	d := testCard()
	d.Title = "Atomic City"
	changed, err := composer.Compose(context.Background(), style, d)
	if err != nil {
		t.Fatal(err)
	}
	if changed.Fingerprint() == a.Fingerprint() {
		t.Error("different titles must not collide")
	}
}

func TestCardValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Card)
	}{
		{"missing source", func(c *Card) { c.SourcePath = "" }},
		{"missing title", func(c *Card) { c.Title = "" }},
		{"negative season", func(c *Card) { c.Season = -1 }},
		{"negative episode", func(c *Card) { c.Episode = -2 }},
		{"negative font size", func(c *Card) { c.FontSize = -1 }},
		{"bad font color", func(c *Card) { c.FontColor = "red" }},
		{"bad episode text color", func(c *Card) { c.EpisodeTextColor = "#12345" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testCard()
			tt.mutate(c)
			if err := c.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}

	if err := testCard().Validate(); err != nil {
		t.Errorf("valid card rejected: %v", err)
	}

	// An empty output path is valid on the card itself; the render engine
	// fills in a content-addressed name.
	c := testCard()
	c.OutputPath = ""
	if err := c.Validate(); err != nil {
		t.Errorf("empty output path should validate: %v", err)
	}
}

func TestComposeRequiresOutputPath(t *testing.T) {
	style := testStyle(t)
	c := testCard()
	c.OutputPath = ""
	if _, err := NewComposer().Compose(context.Background(), style, c); err == nil {
		t.Error("compose needs a concrete output path for the argv")
	}
}

func TestSampleCards(t *testing.T) {
	samples := SampleCards()
	if len(samples) == 0 {
		t.Fatal("no sample cards")
	}
	for _, s := range samples {
		if err := s.Validate(); err != nil {
			t.Errorf("sample %q invalid: %v", s.Title, err)
		}
	}
}
