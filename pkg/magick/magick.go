// Package magick assembles and executes ImageMagick convert invocations.
// Card plans are flat argument lists stitched together from the helpers
// here, then handed to a Runner; keeping the fragments as plain argv
// slices makes plans inspectable and testable without ImageMagick
// installed.
package magick

import (
	"fmt"
	"strings"
)

// Escape neutralizes the characters convert expands inside annotation
// text. Arguments are passed straight to exec so shell quoting is not
// involved, but convert itself interprets percent escapes, backslash
// sequences and a leading @ in annotate strings.
func Escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", "%%")
	if strings.HasPrefix(s, "@") {
		s = `\@` + s[1:]
	}
	return s
}

// Offset formats a signed annotate position like "+0+47".
func Offset(x, y int) string {
	return fmt.Sprintf("%+d%+d", x, y)
}

// Geometry formats a "WxH" dimension string.
func Geometry(w, h int) string {
	return fmt.Sprintf("%dx%d", w, h)
}

// ResizeFill scales an image to fill the given dimensions, preserving
// aspect ratio and overflowing the shorter axis.
func ResizeFill(w, h int) []string {
	return []string{"-resize", Geometry(w, h) + "^"}
}

// Resize scales an image to fit within the given dimensions.
func Resize(w, h int) []string {
	return []string{"-resize", Geometry(w, h)}
}

// ExtentCenter crops or pads an image to exact dimensions around its
// center. Combined with ResizeFill this produces an exact canvas.
func ExtentCenter(w, h int) []string {
	return []string{"-gravity", "center", "-extent", Geometry(w, h)}
}

// Blur applies a gaussian blur with a convert profile like "0x60".
func Blur(profile string) []string {
	return []string{"-blur", profile}
}

// Grayscale converts the image to the gray colorspace.
func Grayscale() []string {
	return []string{"-colorspace", "gray"}
}

// Composite overlays an image file onto the current canvas.
func Composite(path string) []string {
	return []string{path, "-composite"}
}
