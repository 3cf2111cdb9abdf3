package layout_test

import (
	"strings"
	"testing"

	"lyricdeck/internal/config"
	"lyricdeck/internal/layout"
)

func testEngine(t *testing.T) *layout.Engine {
	t.Helper()

	cfg := config.Default()
	return layout.NewEngine(layout.OptionsFromConfig(&cfg))
}

func TestInchesRoundsToWholeEMU(t *testing.T) {
	if got := layout.Inches(1); got != 914400 {
		t.Fatalf("Inches(1) = %d, want 914400", got)
	}
	if got := layout.Inches(0.5); got != 457200 {
		t.Fatalf("Inches(0.5) = %d, want 457200", got)
	}
	if got := layout.Inches(13.333); got != 12192715 {
		t.Fatalf("Inches(13.333) = %d, want 12192715", got)
	}
}

func TestFrameCentersActiveLine(t *testing.T) {
	engine := testEngine(t)

	lines := []string{"one", "two", "three", "four", "five"}
	frame := engine.Frame(lines, 2)

	if frame.ActiveIndex != 2 {
		t.Fatalf("ActiveIndex = %d, want 2", frame.ActiveIndex)
	}
	if len(frame.Lines) != len(lines) {
		t.Fatalf("frame has %d lines, want %d", len(frame.Lines), len(lines))
	}

	center := layout.Inches(7.5 / 2)
	spacing := layout.Inches(1.35)

	if got := frame.Lines[2].CenterY; got != center {
		t.Fatalf("active line center = %d, want viewport center %d", got, center)
	}
	if got := frame.Lines[0].CenterY; got != center-2*spacing {
		t.Fatalf("line 0 center = %d, want %d (two units above center)", got, center-2*spacing)
	}
	if got := frame.Lines[4].CenterY; got != center+2*spacing {
		t.Fatalf("line 4 center = %d, want %d (two units below center)", got, center+2*spacing)
	}
}

func TestFrameOffsetsAreUniform(t *testing.T) {
	engine := testEngine(t)

	lines := []string{"a", "b", "c", "d"}
	spacing := layout.Inches(1.35)

	for active := range lines {
		frame := engine.Frame(lines, active)
		for i, line := range frame.Lines {
			want := layout.Inches(7.5/2) + int64(i-active)*spacing
			if line.CenterY != want {
				t.Fatalf("active %d line %d center = %d, want %d", active, i, line.CenterY, want)
			}
		}
	}
}

func TestFrameStyling(t *testing.T) {
	engine := testEngine(t)

	frame := engine.Frame([]string{"short", "context line"}, 0)

	activeLine := frame.Lines[0]
	if !activeLine.Active || !activeLine.Bold {
		t.Fatalf("active line flags = active %v bold %v, want both true", activeLine.Active, activeLine.Bold)
	}
	if activeLine.SizePt != 40 {
		t.Fatalf("short active line size = %d, want 40", activeLine.SizePt)
	}

	contextLine := frame.Lines[1]
	if contextLine.Active || contextLine.Bold {
		t.Fatalf("context line flags = active %v bold %v, want both false", contextLine.Active, contextLine.Bold)
	}
	if contextLine.SizePt != 24 {
		t.Fatalf("short context line size = %d, want 24", contextLine.SizePt)
	}
}

func TestFrameActiveFontTiers(t *testing.T) {
	engine := testEngine(t)

	cases := []struct {
		name string
		text string
		want int
	}{
		{"short", strings.Repeat("a", 18), 40},
		{"medium", strings.Repeat("a", 19), 32},
		{"mediumUpper", strings.Repeat("a", 30), 32},
		{"long", strings.Repeat("a", 31), 28},
	}
	for _, tc := range cases {
		frame := engine.Frame([]string{tc.text}, 0)
		if got := frame.Lines[0].SizePt; got != tc.want {
			t.Fatalf("%s: active size = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestFrameContextFontTiers(t *testing.T) {
	engine := testEngine(t)

	short := strings.Repeat("b", 20)
	long := strings.Repeat("b", 21)

	frame := engine.Frame([]string{"active", short, long}, 0)
	if got := frame.Lines[1].SizePt; got != 24 {
		t.Fatalf("20-rune context size = %d, want 24", got)
	}
	if got := frame.Lines[2].SizePt; got != 20 {
		t.Fatalf("21-rune context size = %d, want 20", got)
	}
}

func TestFrameCountsRunesNotBytes(t *testing.T) {
	engine := testEngine(t)

	// 16 CJK runes is 48 bytes; the tier check must use runes.
	text := strings.Repeat("歌", 16)
	frame := engine.Frame([]string{text}, 0)
	if got := frame.Lines[0].SizePt; got != 40 {
		t.Fatalf("16-rune CJK active size = %d, want 40", got)
	}
}

func TestExpandSoftBreaks(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"plain line", "plain line"},
		{"first half ^ second half", "first half\nsecond half"},
		{"tight^break", "tight\nbreak"},
		{"a ^ b ^ c", "a\nb\nc"},
	}
	for _, tc := range cases {
		if got := layout.ExpandSoftBreaks(tc.in); got != tc.want {
			t.Fatalf("ExpandSoftBreaks(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFrameMeasuresExpandedText(t *testing.T) {
	engine := testEngine(t)

	// 24 runes raw, 21 after expansion ("^" plus spaces fold into one "\n");
	// still past the 18-rune medium threshold.
	text := "aaaaaaaaaaa ^ bbbbbbbbb"
	frame := engine.Frame([]string{text}, 0)

	line := frame.Lines[0]
	if line.Text != "aaaaaaaaaaa\nbbbbbbbbb" {
		t.Fatalf("expanded text = %q", line.Text)
	}
	if line.SizePt != 32 {
		t.Fatalf("size = %d, want 32 for 21 expanded runes", line.SizePt)
	}
}

func TestFrameIsDeterministic(t *testing.T) {
	engine := testEngine(t)

	lines := []string{"alpha", "beta ^ gamma", "delta"}
	first := engine.Frame(lines, 1)
	second := engine.Frame(lines, 1)

	if len(first.Lines) != len(second.Lines) {
		t.Fatalf("line counts differ: %d vs %d", len(first.Lines), len(second.Lines))
	}
	for i := range first.Lines {
		if first.Lines[i] != second.Lines[i] {
			t.Fatalf("line %d differs between identical calls: %+v vs %+v", i, first.Lines[i], second.Lines[i])
		}
	}
}

func TestFrameDoesNotMutateInput(t *testing.T) {
	engine := testEngine(t)

	lines := []string{"keep ^ me"}
	engine.Frame(lines, 0)
	if lines[0] != "keep ^ me" {
		t.Fatalf("input slice mutated: %q", lines[0])
	}
}
