package lyrics_test

import (
	"reflect"
	"testing"

	"lyricdeck/internal/lyrics"
)

func TestParseLinesStripsTimestamps(t *testing.T) {
	text := "[00:12.34]故事的小黄花\n[3:05]从出生那年就飘着\n[120:00.5]long mix line"
	got := lyrics.ParseLines(text)
	want := []string{"故事的小黄花", "从出生那年就飘着", "long mix line"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseLines = %#v, want %#v", got, want)
	}
}

func TestParseLinesStripsRepeatedTimestamps(t *testing.T) {
	got := lyrics.ParseLines("[00:10.00][00:55.00]chorus line")
	want := []string{"chorus line"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseLines = %#v, want %#v", got, want)
	}
}

func TestParseLinesKeepsNonTimestampBrackets(t *testing.T) {
	got := lyrics.ParseLines("[Chorus] sing along\n[12:345] odd token")
	want := []string{"[Chorus] sing along", "[12:345] odd token"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseLines = %#v, want %#v", got, want)
	}
}

func TestParseLinesDropsBlankLines(t *testing.T) {
	got := lyrics.ParseLines("first\n\n   \n[00:01.00]\nsecond\r\nthird")
	want := []string{"first", "second", "third"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseLines = %#v, want %#v", got, want)
	}
}

func TestParseLinesEmptyInput(t *testing.T) {
	if got := lyrics.ParseLines("   \n  "); got != nil {
		t.Fatalf("ParseLines = %#v, want nil", got)
	}
}
