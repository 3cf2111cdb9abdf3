package tags

import (
	"os/exec"
	"path/filepath"
	"testing"

	"go.senan.xyz/taglib"
)

func TestBuildTrackPrefersTaggedFields(t *testing.T) {
	props := map[string][]string{
		taglib.Title:  {"《晴天》"},
		taglib.Artist: {"周杰伦"},
		taglib.Lyrics: {"[00:12.00]故事的小黄花"},
	}
	track := buildTrack("/music/anything.flac", props, []byte{0xFF, 0xD8})

	if track.Title != "晴天" {
		t.Fatalf("Title = %q, want brackets stripped", track.Title)
	}
	if track.Artist != "周杰伦" {
		t.Fatalf("Artist = %q", track.Artist)
	}
	if track.RawLyrics != "[00:12.00]故事的小黄花" {
		t.Fatalf("RawLyrics = %q", track.RawLyrics)
	}
	if !track.HasCover() {
		t.Fatal("expected cover bytes to be kept")
	}
}

func TestBuildTrackFallbacks(t *testing.T) {
	props := map[string][]string{
		taglib.AlbumArtist: {"Daft Punk"},
		unsyncedLyricsKey:  {"around the world"},
	}
	track := buildTrack("/music/one_more_time.mp3", props, nil)

	if track.Title != "One More Time" {
		t.Fatalf("Title = %q, want derived from file name", track.Title)
	}
	if track.Artist != "Daft Punk" {
		t.Fatalf("Artist = %q, want album artist fallback", track.Artist)
	}
	if track.RawLyrics != "around the world" {
		t.Fatalf("RawLyrics = %q, want unsynced fallback", track.RawLyrics)
	}
	if track.HasCover() {
		t.Fatal("expected no cover")
	}
}

func TestBuildTrackPlaceholders(t *testing.T) {
	track := buildTrack("/music/---.wav", nil, nil)
	if track.Title != UnknownTitle {
		t.Fatalf("Title = %q, want %q", track.Title, UnknownTitle)
	}
	if track.Artist != UnknownArtist {
		t.Fatalf("Artist = %q, want %q", track.Artist, UnknownArtist)
	}
	if track.RawLyrics != "" {
		t.Fatalf("RawLyrics = %q, want empty", track.RawLyrics)
	}
}

func TestDisplayName(t *testing.T) {
	withTitle := Track{Path: "/music/x.flac", Title: "Yellow"}
	if got := withTitle.DisplayName(); got != "Yellow" {
		t.Fatalf("DisplayName() = %q", got)
	}
	placeholder := Track{Path: "/music/x.flac", Title: UnknownTitle}
	if got := placeholder.DisplayName(); got != "x.flac" {
		t.Fatalf("DisplayName() = %q, want file name", got)
	}
}

func TestIsEligible(t *testing.T) {
	eligible := []string{"a.flac", "b.MP3", "c.wav", "d.m4a"}
	for _, name := range eligible {
		if !IsEligible(name) {
			t.Fatalf("IsEligible(%q) = false, want true", name)
		}
	}
	ineligible := []string{"a.ogg", "b.txt", "c", "d.pptx"}
	for _, name := range ineligible {
		if IsEligible(name) {
			t.Fatalf("IsEligible(%q) = true, want false", name)
		}
	}
}

// createTestAudioFile generates a minimal MP3 using ffmpeg. Skips the test
// if ffmpeg is not available.
func createTestAudioFile(t *testing.T, dir string) string {
	t.Helper()
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not available, skipping container round-trip")
	}

	path := filepath.Join(dir, "fixture.mp3")
	cmd := exec.Command("ffmpeg", "-f", "lavfi", "-i", "anullsrc=r=44100:cl=mono", "-t", "0.1", "-q:a", "9", path)
	if err := cmd.Run(); err != nil {
		t.Fatalf("failed to create test audio file: %v", err)
	}
	return path
}

func TestReadFromContainer(t *testing.T) {
	dir := t.TempDir()
	path := createTestAudioFile(t, dir)

	want := map[string][]string{
		taglib.Title:  {"Fixture Song"},
		taglib.Artist: {"Fixture Artist"},
		taglib.Lyrics: {"[00:01.00]first line\n[00:02.00]second line"},
	}
	if err := taglib.WriteTags(path, want, 0); err != nil {
		t.Fatalf("WriteTags failed: %v", err)
	}

	track, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if track.Title != "Fixture Song" {
		t.Fatalf("Title = %q", track.Title)
	}
	if track.Artist != "Fixture Artist" {
		t.Fatalf("Artist = %q", track.Artist)
	}
	if track.RawLyrics == "" {
		t.Fatal("expected lyrics to round-trip")
	}
	if track.HasCover() {
		t.Fatal("expected no cover art in fresh fixture")
	}
}

func TestReadUnreadableContainer(t *testing.T) {
	dir := t.TempDir()
	if _, err := Read(filepath.Join(dir, "missing.flac")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
