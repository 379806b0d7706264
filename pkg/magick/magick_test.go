package magick

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "Pilot", want: "Pilot"},
		{input: "100% Hotter", want: "100%% Hotter"},
		{input: `Back\slash`, want: `Back\\slash`},
		{input: "@midnight", want: `\@midnight`},
		{input: "mid@night", want: "mid@night"},
		{input: "The Murder of Jesse James", want: "The Murder of Jesse James"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Escape(tt.input), "input %q", tt.input)
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, "+0+47", Offset(0, 47))
	assert.Equal(t, "+0-3", Offset(0, -3))
	assert.Equal(t, "-12+0", Offset(-12, 0))
}

func TestGeometryArgs(t *testing.T) {
	assert.Equal(t, []string{"-resize", "3200x1800^"}, ResizeFill(3200, 1800))
	assert.Equal(t, []string{"-resize", "1920x1080"}, Resize(1920, 1080))
	assert.Equal(t, []string{"-gravity", "center", "-extent", "3200x1800"}, ExtentCenter(3200, 1800))
	assert.Equal(t, []string{"-blur", "0x60"}, Blur("0x60"))
	assert.Equal(t, []string{"-colorspace", "gray"}, Grayscale())
	assert.Equal(t, []string{"overlay.png", "-composite"}, Composite("overlay.png"))
}

func TestRunnerAvailable(t *testing.T) {
	assert.True(t, NewRunner(WithBinary("true")).Available())
	assert.False(t, NewRunner(WithBinary("no-such-binary-for-sure")).Available())
}

// annotateDebug is convert stderr with -debug annotate enabled, one
// Metrics entry per rendered text line.
const annotateDebug = `2024-05-02T10:12:03+00:00 0:00.021 0.010u 6.9.12 Annotate convert[4821]: annotate.c/RenderFreetype/1451/Annotate
  Metrics: text: THE ASSASSINATION OF; width: 1892; height: 301; ascent: 240; descent: -61; max advance: 307; bounds: 2.78125,-55 236.5,184; origin: 1893,0; pixels per em: 256,256; underline position: -39.0625; underline thickness: 19.53125
2024-05-02T10:12:03+00:00 0:00.034 0.020u 6.9.12 Annotate convert[4821]: annotate.c/RenderFreetype/1451/Annotate
  Metrics: text: ABRAHAM LINCOLN; width: 1455; height: 301; ascent: 240; descent: -61; max advance: 307; bounds: 2.78125,-55 236.5,184; origin: 1456,0; pixels per em: 256,256; underline position: -39.0625; underline thickness: 19.53125
`

func TestParseAnnotateMetrics(t *testing.T) {
	t.Run("two lines", func(t *testing.T) {
		dims, err := parseAnnotateMetrics(annotateDebug, -50, 2)
		require.NoError(t, err)
		assert.Equal(t, 1892, dims.Width, "width is the widest line")
		assert.Equal(t, 301+301-50, dims.Height, "height sums lines plus one interline gap")
	})

	t.Run("single line ignores interline", func(t *testing.T) {
		single, _, _ := strings.Cut(annotateDebug, "2024-05-02T10:12:03+00:00 0:00.034")
		dims, err := parseAnnotateMetrics(single, -50, 1)
		require.NoError(t, err)
		assert.Equal(t, TextDimensions{Width: 1892, Height: 301}, dims)
	})

	t.Run("no metrics", func(t *testing.T) {
		_, err := parseAnnotateMetrics("convert: unable to read font", -50, 1)
		assert.Error(t, err)
	})
}

func TestMeasureText(t *testing.T) {
	ctx := context.Background()
	spec := TextSpec{Font: "base.ttf", PointSize: 256, InterlineSpacing: -50, Text: "Pilot"}

	t.Run("missing binary", func(t *testing.T) {
		r := NewRunner(WithBinary("no-such-binary-for-sure"))
		_, err := r.MeasureText(ctx, spec)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotAvailable)
	})

	t.Run("silent binary yields no metrics", func(t *testing.T) {
		r := NewRunner(WithBinary("true"), WithTimeout(5*time.Second))
		_, err := r.MeasureText(ctx, spec)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no annotate metrics")
	})
}

func TestRunnerConvert(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		r := NewRunner(WithBinary("true"), WithTimeout(5*time.Second))
		assert.NoError(t, r.Convert(ctx, []string{"arg"}))
	})

	t.Run("failure carries exit error", func(t *testing.T) {
		r := NewRunner(WithBinary("false"))
		assert.Error(t, r.Convert(ctx, []string{"arg"}))
	})

	t.Run("missing binary", func(t *testing.T) {
		r := NewRunner(WithBinary("no-such-binary-for-sure"))
		err := r.Convert(ctx, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotAvailable)
	})
}
