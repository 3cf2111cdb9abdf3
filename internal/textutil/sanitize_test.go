package textutil_test

import (
	"testing"

	"lyricdeck/internal/textutil"
)

func TestSanitizeFileNameReplacesSeparators(t *testing.T) {
	got := textutil.SanitizeFileName("AC/DC: Back\\In*Black")
	want := "AC-DC- Back-In-Black"
	if got != want {
		t.Fatalf("SanitizeFileName() = %q, want %q", got, want)
	}
}

func TestSanitizeFileNameStripsUnsafeRunes(t *testing.T) {
	got := textutil.SanitizeFileName(`What <Is> "Love"?|`)
	want := "What Is Love"
	if got != want {
		t.Fatalf("SanitizeFileName() = %q, want %q", got, want)
	}
}

func TestSanitizeFileNameKeepsUnicode(t *testing.T) {
	got := textutil.SanitizeFileName("  晴天 (Sunny Day)  ")
	want := "晴天 (Sunny Day)"
	if got != want {
		t.Fatalf("SanitizeFileName() = %q, want %q", got, want)
	}
}

func TestSanitizeFileNameEmpty(t *testing.T) {
	if got := textutil.SanitizeFileName("   "); got != "" {
		t.Fatalf("SanitizeFileName(blank) = %q, want empty", got)
	}
}
