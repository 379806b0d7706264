package card

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/joeblew999/plat-titlecard/pkg/cardtype"
)

var titleCaser = cases.Title(language.English)

// ApplyCase transforms title text per a style's case rule. "source"
// leaves the text exactly as provided.
func ApplyCase(s, rule string) string {
	switch rule {
	case "upper":
		return strings.ToUpper(s)
	case "lower":
		return strings.ToLower(s)
	case "title":
		return titleCaser.String(s)
	default:
		return s
	}
}

// SplitTitle breaks a title into at most MaxLineCount lines of roughly
// MaxLineWidth characters. Words are never broken, so a single word
// longer than the width overflows its line; when the text cannot fit the
// line count, the overflow is packed into the last line.
func SplitTitle(title string, c cardtype.TitleCharacteristics) []string {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}
	if utf8.RuneCountInString(title) <= c.MaxLineWidth {
		return []string{title}
	}
	words := strings.Fields(title)

	switch c.SplitStyle {
	case cardtype.SplitTop:
		return capLines(wrapForward(words, c.MaxLineWidth), c.MaxLineCount)
	case cardtype.SplitBottom:
		return capLines(wrapBackward(words, c.MaxLineWidth), c.MaxLineCount)
	default:
		return splitEven(words, c)
	}
}

// splitEven balances line lengths: it looks for the smallest line count
// that fits, then wraps at the average width so no line hoards the text.
func splitEven(words []string, c cardtype.TitleCharacteristics) []string {
	total := joinedLen(words)
	minLines := (total + c.MaxLineWidth - 1) / c.MaxLineWidth
	if minLines < 2 {
		minLines = 2
	}
	for n := minLines; n <= c.MaxLineCount; n++ {
		target := (total + n - 1) / n
		if w := longestWord(words); w > target {
			target = w
		}
		lines := wrapForward(words, target)
		if len(lines) <= n && len(lines) <= c.MaxLineCount && fitsWidth(lines, c.MaxLineWidth) {
			return lines
		}
	}
	return capLines(wrapForward(words, c.MaxLineWidth), c.MaxLineCount)
}

// wrapForward packs words greedily from the first line down, leaving the
// shortest line last.
func wrapForward(words []string, width int) []string {
	var lines []string
	var current []string
	for _, w := range words {
		if len(current) > 0 && joinedLen(current)+1+utf8.RuneCountInString(w) > width {
			lines = append(lines, strings.Join(current, " "))
			current = current[:0]
		}
		current = append(current, w)
	}
	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}
	return lines
}

// wrapBackward packs words greedily from the last line up, leaving the
// shortest line first.
func wrapBackward(words []string, width int) []string {
	var lines []string
	var current []string
	for i := len(words) - 1; i >= 0; i-- {
		w := words[i]
		if len(current) > 0 && joinedLen(current)+1+utf8.RuneCountInString(w) > width {
			lines = append([]string{strings.Join(current, " ")}, lines...)
			current = current[:0]
		}
		current = append([]string{w}, current...)
	}
	if len(current) > 0 {
		lines = append([]string{strings.Join(current, " ")}, lines...)
	}
	return lines
}

// capLines folds any lines beyond max into the final line.
func capLines(lines []string, max int) []string {
	if max < 1 || len(lines) <= max {
		return lines
	}
	capped := make([]string, max)
	copy(capped, lines[:max-1])
	capped[max-1] = strings.Join(lines[max-1:], " ")
	return capped
}

func joinedLen(words []string) int {
	n := 0
	for i, w := range words {
		if i > 0 {
			n++
		}
		n += utf8.RuneCountInString(w)
	}
	return n
}

func longestWord(words []string) int {
	n := 0
	for _, w := range words {
		if l := utf8.RuneCountInString(w); l > n {
			n = l
		}
	}
	return n
}

func fitsWidth(lines []string, width int) bool {
	for _, l := range lines {
		if utf8.RuneCountInString(l) > width {
			return false
		}
	}
	return true
}
