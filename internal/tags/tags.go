package tags

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"go.senan.xyz/taglib"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Placeholder values substituted when a tag is missing entirely.
const (
	UnknownTitle  = "Unknown Title"
	UnknownArtist = "Unknown Artist"
)

// unsyncedLyricsKey is the raw ID3 property name some taggers use instead
// of the standard LYRICS property.
const unsyncedLyricsKey = "UNSYNCEDLYRICS"

// eligibleExtensions lists the audio containers a batch run picks up.
var eligibleExtensions = []string{".flac", ".mp3", ".wav", ".m4a"}

// Track carries everything downstream stages need from one audio file.
type Track struct {
	Path      string
	Title     string
	Artist    string
	RawLyrics string
	Cover     []byte
}

// DisplayName returns the handle used for log lines and progress output:
// the tagged title when present, otherwise the file name.
func (t Track) DisplayName() string {
	if t.Title != "" && t.Title != UnknownTitle {
		return t.Title
	}
	if t.Path == "" {
		return UnknownTitle
	}
	return filepath.Base(t.Path)
}

// HasCover reports whether embedded artwork was found.
func (t Track) HasCover() bool {
	return len(t.Cover) > 0
}

// IsEligible reports whether path carries an audio extension the batch
// scanner accepts.
func IsEligible(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, candidate := range eligibleExtensions {
		if ext == candidate {
			return true
		}
	}
	return false
}

// EligibleExtensions returns the accepted audio extensions.
func EligibleExtensions() []string {
	out := make([]string, len(eligibleExtensions))
	copy(out, eligibleExtensions)
	return out
}

// Read extracts title, artist, raw lyrics, and embedded artwork from the
// audio container at path.
func Read(path string) (Track, error) {
	props, err := taglib.ReadTags(path)
	if err != nil {
		return Track{}, fmt.Errorf("read tags from %s: %w", filepath.Base(path), err)
	}
	cover, err := taglib.ReadImage(path)
	if err != nil {
		cover = nil
	}
	return buildTrack(path, props, cover), nil
}

func buildTrack(path string, props map[string][]string, cover []byte) Track {
	title := stripTitleBrackets(firstTag(props, taglib.Title))
	if title == "" {
		title = titleFromPath(path)
	}
	artist := firstTag(props, taglib.Artist)
	if artist == "" {
		artist = firstTag(props, taglib.AlbumArtist)
	}
	if artist == "" {
		artist = UnknownArtist
	}
	lyrics := firstTag(props, taglib.Lyrics)
	if lyrics == "" {
		lyrics = firstTag(props, unsyncedLyricsKey)
	}
	return Track{
		Path:      path,
		Title:     title,
		Artist:    artist,
		RawLyrics: lyrics,
		Cover:     cover,
	}
}

func firstTag(props map[string][]string, key string) string {
	if vals, ok := props[key]; ok && len(vals) > 0 {
		return strings.TrimSpace(vals[0])
	}
	return ""
}

// stripTitleBrackets drops the CJK title marks some taggers wrap around
// the song name.
func stripTitleBrackets(title string) string {
	title = strings.ReplaceAll(title, "《", "")
	title = strings.ReplaceAll(title, "》", "")
	return strings.TrimSpace(title)
}

// titleFromPath derives a display title from the file name when the
// container carries no title tag.
func titleFromPath(path string) string {
	if path == "" {
		return UnknownTitle
	}
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	cleaned := strings.Builder{}
	prevSpace := false
	for _, r := range base {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	title := strings.TrimSpace(cleaned.String())
	if title == "" {
		return UnknownTitle
	}
	return cases.Title(language.Und).String(title)
}
