package card

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/joeblew999/plat-titlecard/pkg/cardtype"
)

func TestApplyCase(t *testing.T) {
	tests := []struct {
		rule, in, want string
	}{
		{"source", "The Alamo", "The Alamo"},
		{"upper", "The Alamo", "THE ALAMO"},
		{"lower", "The Alamo", "the alamo"},
		{"title", "party at castle varlar", "Party At Castle Varlar"},
	}
	for _, tt := range tests {
		if got := ApplyCase(tt.in, tt.rule); got != tt.want {
			t.Errorf("ApplyCase(%q, %q) = %q, want %q", tt.in, tt.rule, got, tt.want)
		}
	}
}

func TestSplitTitleShort(t *testing.T) {
	c := cardtype.TitleCharacteristics{MaxLineWidth: 24, MaxLineCount: 4, SplitStyle: cardtype.SplitEven}

	got := SplitTitle("Pilot", c)
	if !reflect.DeepEqual(got, []string{"Pilot"}) {
		t.Errorf("short title should stay on one line, got %v", got)
	}
	if got := SplitTitle("   ", c); got != nil {
		t.Errorf("blank title should produce no lines, got %v", got)
	}
}

func TestSplitTitleEven(t *testing.T) {
	c := cardtype.TitleCharacteristics{MaxLineWidth: 24, MaxLineCount: 4, SplitStyle: cardtype.SplitEven}

	lines := SplitTitle("The Assassination of Abraham Lincoln", c)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %v", len(lines), lines)
	}
	for _, line := range lines {
		if utf8.RuneCountInString(line) > c.MaxLineWidth {
			t.Errorf("line %q exceeds width %d", line, c.MaxLineWidth)
		}
	}
	// Balanced split should not leave one line nearly empty.
	if utf8.RuneCountInString(lines[1]) < 8 {
		t.Errorf("even split left a stub line: %v", lines)
	}
	if joined := strings.Join(lines, " "); joined != "The Assassination of Abraham Lincoln" {
		t.Errorf("split lost words: %q", joined)
	}
}

func TestSplitTitleStyles(t *testing.T) {
	title := "Last Ride of Bonnie and Clyde Across Texas"
	base := cardtype.TitleCharacteristics{MaxLineWidth: 24, MaxLineCount: 4}

	top := base
	top.SplitStyle = cardtype.SplitTop
	topLines := SplitTitle(title, top)
	if len(topLines) < 2 {
		t.Fatalf("expected a split, got %v", topLines)
	}
	if utf8.RuneCountInString(topLines[0]) < utf8.RuneCountInString(topLines[len(topLines)-1]) {
		t.Errorf("top split should pack early lines: %v", topLines)
	}

	bottom := base
	bottom.SplitStyle = cardtype.SplitBottom
	bottomLines := SplitTitle(title, bottom)
	if len(bottomLines) < 2 {
		t.Fatalf("expected a split, got %v", bottomLines)
	}
	if utf8.RuneCountInString(bottomLines[len(bottomLines)-1]) < utf8.RuneCountInString(bottomLines[0]) {
		t.Errorf("bottom split should pack late lines: %v", bottomLines)
	}
}

func TestSplitTitleLineCountCap(t *testing.T) {
	c := cardtype.TitleCharacteristics{MaxLineWidth: 10, MaxLineCount: 2, SplitStyle: cardtype.SplitEven}

	lines := SplitTitle("one two three four five six seven eight nine ten", c)
	if len(lines) > 2 {
		t.Fatalf("line count cap violated: %v", lines)
	}
	if joined := strings.Join(lines, " "); joined != "one two three four five six seven eight nine ten" {
		t.Errorf("split lost words: %q", joined)
	}
}

func TestSplitTitleLongWord(t *testing.T) {
	c := cardtype.TitleCharacteristics{MaxLineWidth: 10, MaxLineCount: 4, SplitStyle: cardtype.SplitEven}

	lines := SplitTitle("saw Llanfairpwllgwyngyll today", c)
	found := false
	for _, line := range lines {
		if strings.Contains(line, "Llanfairpwllgwyngyll") {
			found = true
		}
	}
	if !found {
		t.Errorf("unsplittable word must survive intact: %v", lines)
	}
}
