package magick

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joeblew999/plat-titlecard/pkg/log"
)

// TextSpec describes one annotation to measure. The fields mirror the
// annotate settings a card plan uses, so the measured dimensions match
// what convert draws.
type TextSpec struct {
	Font             string
	PointSize        float64
	InterlineSpacing int
	Text             string
}

// TextDimensions is a measured text extent in pixels.
type TextDimensions struct {
	Width  int
	Height int
}

// metricsPattern matches the width and height fields of the Metrics
// lines the annotate debug channel emits, one per rendered text line.
var metricsPattern = regexp.MustCompile(`Metrics:.*?width:\s*(\d+).*?height:\s*(\d+)`)

// MeasureText renders the text against a null: target with the annotate
// debug channel enabled and parses the metrics convert reports. The
// result reflects convert's own glyph layout, so offsets computed from
// it line up with the final render.
func (r *Runner) MeasureText(ctx context.Context, spec TextSpec) (TextDimensions, error) {
	if _, err := exec.LookPath(r.binary); err != nil {
		return TextDimensions{}, fmt.Errorf("%w: %s", ErrNotAvailable, r.binary)
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	args := []string{
		"-debug", "annotate",
		"xc:",
		"-font", spec.Font,
		"-pointsize", strconv.FormatFloat(spec.PointSize, 'f', -1, 64),
		"-interline-spacing", strconv.Itoa(spec.InterlineSpacing),
		"-annotate", Offset(0, 0), spec.Text,
		"null:",
	}

	start := time.Now()
	cmd := exec.CommandContext(ctx, r.binary, args...)
	var stderr bytes.Buffer
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr // the debug channel writes to stderr

	if err := cmd.Run(); err != nil {
		return TextDimensions{}, fmt.Errorf("convert measure failed: %w", err)
	}

	lines := strings.Count(spec.Text, "\n") + 1
	dims, err := parseAnnotateMetrics(stderr.String(), spec.InterlineSpacing, lines)
	log.Debug("measured text", "lines", lines, "width", dims.Width, "height", dims.Height,
		"duration", time.Since(start), "error", err)
	return dims, err
}

// parseAnnotateMetrics folds the per-line Metrics entries into block
// dimensions: width is the widest line, height the sum of line heights
// plus the interline adjustment between them.
func parseAnnotateMetrics(output string, interline, lines int) (TextDimensions, error) {
	matches := metricsPattern.FindAllStringSubmatch(output, -1)
	if len(matches) == 0 {
		return TextDimensions{}, fmt.Errorf("no annotate metrics in convert output")
	}

	var d TextDimensions
	for _, m := range matches {
		w, _ := strconv.Atoi(m[1])
		h, _ := strconv.Atoi(m[2])
		if w > d.Width {
			d.Width = w
		}
		d.Height += h
	}
	d.Height += interline * (lines - 1)
	if d.Height < 0 {
		d.Height = 0
	}
	return d, nil
}
