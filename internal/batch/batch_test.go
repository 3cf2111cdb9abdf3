package batch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/flock"

	"lyricdeck/internal/config"
	"lyricdeck/internal/deck/pptx"
	"lyricdeck/internal/logging"
	"lyricdeck/internal/lyrics"
	"lyricdeck/internal/notify"
	"lyricdeck/internal/services"
	"lyricdeck/internal/services/lyricsai"
	"lyricdeck/internal/tags"
	"lyricdeck/internal/testsupport"
)

// shrinkRender keeps image compositing cheap in tests.
func shrinkRender(cfg *config.Config) {
	cfg.Render.BackgroundWidth = 64
	cfg.Render.BackgroundHeight = 36
	cfg.Render.BackgroundBlurSigma = 2
	cfg.Render.MaskFadePixels = 4
}

func stubTracks(tracks map[string]tags.Track) func(string) (tags.Track, error) {
	return func(path string) (tags.Track, error) {
		track, ok := tracks[filepath.Base(path)]
		if !ok {
			return tags.Track{}, fmt.Errorf("unexpected track read: %s", path)
		}
		track.Path = path
		return track, nil
	}
}

func newTestOrchestrator(t *testing.T, cfg *config.Config, tracks map[string]tags.Track) *Orchestrator {
	t.Helper()

	shrinkRender(cfg)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	normalizer := lyrics.NewNormalizer(cfg, nil, nil, logging.NewNop())
	o := New(cfg, logging.NewNop(), normalizer, notify.NewService(cfg))
	o.readTrack = stubTracks(tracks)
	return o
}

func writeAudioFile(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("audio"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestRunGeneratesLyricAndPureDecks(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cover := testsupport.CoverJPEG(t, 48, 48)
	o := newTestOrchestrator(t, cfg, map[string]tags.Track{
		"ballad.mp3": {
			Title:     "Ballad",
			Artist:    "Band",
			RawLyrics: "[00:01.00]Hello\n[00:05.00]World",
			Cover:     cover,
		},
		"ambient.flac": {
			Title:  "Ambient",
			Artist: "Band",
			Cover:  cover,
		},
	})
	writeAudioFile(t, cfg.Paths.MusicDir, "ballad.mp3")
	writeAudioFile(t, cfg.Paths.MusicDir, "ambient.flac")

	summary, err := o.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary.Total != 2 || summary.Successes != 2 || summary.Failures != 0 {
		t.Fatalf("summary = %+v, want 2 successes", summary)
	}
	if summary.PureCount != 1 || summary.LyricCount != 1 {
		t.Fatalf("pure/lyric split = %d/%d, want 1/1", summary.PureCount, summary.LyricCount)
	}

	lyricDeck, err := pptx.ReadDeck(filepath.Join(cfg.Paths.OutputDir, "ballad.pptx"))
	if err != nil {
		t.Fatalf("read lyric deck: %v", err)
	}
	// Title, one slide per line, trailing title.
	if len(lyricDeck.Slides) != 4 {
		t.Fatalf("lyric deck has %d slides, want 4", len(lyricDeck.Slides))
	}

	pureDeck, err := pptx.ReadDeck(filepath.Join(cfg.Paths.OutputDir, "ambient.pptx"))
	if err != nil {
		t.Fatalf("read pure deck: %v", err)
	}
	if len(pureDeck.Slides) != 1 {
		t.Fatalf("pure deck has %d slides, want title only", len(pureDeck.Slides))
	}

	for _, r := range summary.Results {
		if r.Output == "" || r.Err != nil {
			t.Fatalf("result %+v missing output", r)
		}
	}
}

func TestRunIsolatesPerTrackFailures(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cover := testsupport.CoverJPEG(t, 48, 48)
	o := newTestOrchestrator(t, cfg, map[string]tags.Track{
		"a.mp3": {Title: "A", Artist: "X", Cover: cover},
		"b.mp3": {Title: "B", Artist: "X", Cover: []byte("not an image")},
		"c.mp3": {Title: "C", Artist: "X", Cover: cover},
	})
	for _, name := range []string{"a.mp3", "b.mp3", "c.mp3"} {
		writeAudioFile(t, cfg.Paths.MusicDir, name)
	}

	summary, err := o.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary.Successes != 2 || summary.Failures != 1 {
		t.Fatalf("summary = %+v, want 2 successes and 1 failure", summary)
	}

	failed := summary.Results[1]
	if failed.Path == "" || !strings.HasSuffix(failed.Path, "b.mp3") {
		t.Fatalf("failure landed in wrong slot: %+v", summary.Results)
	}
	if !errors.Is(failed.Err, services.ErrMissingArtwork) {
		t.Fatalf("failure err = %v, want missing-artwork classification", failed.Err)
	}

	if _, err := os.Stat(filepath.Join(cfg.Paths.OutputDir, "a.pptx")); err != nil {
		t.Fatalf("sibling deck a.pptx missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.OutputDir, "c.pptx")); err != nil {
		t.Fatalf("sibling deck c.pptx missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.OutputDir, "b.pptx")); !os.IsNotExist(err) {
		t.Fatalf("failed track should not publish a deck, stat err = %v", err)
	}
}

func TestRunFailsWithoutInput(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	o := newTestOrchestrator(t, cfg, nil)

	_, err := o.Run(context.Background())
	if !errors.Is(err, services.ErrNoInput) {
		t.Fatalf("err = %v, want ErrNoInput", err)
	}
}

func TestRunRefusesConcurrentBatch(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	o := newTestOrchestrator(t, cfg, map[string]tags.Track{
		"a.mp3": {Title: "A", Artist: "X", Cover: testsupport.CoverJPEG(t, 48, 48)},
	})
	writeAudioFile(t, cfg.Paths.MusicDir, "a.mp3")

	held := flock.New(filepath.Join(cfg.Paths.OutputDir, lockFileName))
	locked, err := held.TryLock()
	if err != nil || !locked {
		t.Fatalf("pre-acquire lock: locked=%v err=%v", locked, err)
	}
	defer held.Unlock()

	_, err = o.Run(context.Background())
	if err == nil {
		t.Fatalf("expected error while output lock is held")
	}
	if kind := services.FailureKind(err); kind != "configuration" {
		t.Fatalf("failure kind = %s, want configuration", kind)
	}
}

func TestRunCleansUpScratch(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	o := newTestOrchestrator(t, cfg, map[string]tags.Track{
		"a.mp3": {Title: "A", Artist: "X", Cover: testsupport.CoverJPEG(t, 48, 48)},
	})
	writeAudioFile(t, cfg.Paths.MusicDir, "a.mp3")

	// A stale run left behind by an interrupted batch is swept at startup.
	stale := filepath.Join(cfg.Paths.ScratchDir, "run-stale")
	if err := os.Mkdir(stale, 0o755); err != nil {
		t.Fatalf("create stale run dir: %v", err)
	}
	old := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(stale, old, old); err != nil {
		t.Fatalf("age stale run dir: %v", err)
	}

	if _, err := o.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	entries, err := os.ReadDir(cfg.Paths.ScratchDir)
	if err != nil {
		t.Fatalf("read scratch root: %v", err)
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), "run-") {
			t.Fatalf("scratch root still contains %s", entry.Name())
		}
	}
}

func TestRunBareMissingCoverPolicy(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithMissingCoverPolicy(config.MissingCoverBare))
	o := newTestOrchestrator(t, cfg, map[string]tags.Track{
		"plain.mp3": {Title: "Plain", Artist: "X", RawLyrics: "[00:01.00]Line"},
	})
	writeAudioFile(t, cfg.Paths.MusicDir, "plain.mp3")

	summary, err := o.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Successes != 1 {
		t.Fatalf("summary = %+v, want 1 success", summary)
	}
	if !summary.Results[0].Skipped {
		t.Fatalf("result = %+v, want Skipped for bare deck", summary.Results[0])
	}

	d, err := pptx.ReadDeck(filepath.Join(cfg.Paths.OutputDir, "plain.pptx"))
	if err != nil {
		t.Fatalf("read bare deck: %v", err)
	}
	if len(d.Slides) != 1 || len(d.Slides[0].Media) != 0 {
		t.Fatalf("bare deck = %d slides / %d media, want a single imageless title slide", len(d.Slides), len(d.Slides[0].Media))
	}
}

func TestRunCleansLyricsThroughConfiguredEndpoint(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		payload := map[string]any{
			"choices": []any{
				map[string]any{
					"message": map[string]any{"content": "Hello\nWorld"},
				},
			},
		}
		_ = json.NewEncoder(w).Encode(payload)
	}))
	defer server.Close()

	// One worker keeps the endpoint serving a single request at a time.
	cfg := testsupport.NewConfig(t,
		testsupport.WithCleaner("test-key", server.URL),
		testsupport.WithWorkers(1),
	)
	shrinkRender(cfg)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}

	cc := cfg.GetCleaner()
	cleaner := lyricsai.NewClient(lyricsai.Config{
		APIKey:  cc.APIKey,
		BaseURL: cc.BaseURL,
		Model:   cc.Model,
	})
	normalizer := lyrics.NewNormalizer(cfg, cleaner, nil, logging.NewNop())
	o := New(cfg, logging.NewNop(), normalizer, notify.NewService(cfg))
	o.readTrack = stubTracks(map[string]tags.Track{
		"mumble.mp3": {
			Title:     "Mumble",
			Artist:    "Band",
			RawLyrics: "hello world sung together with no line breaks at all",
			Cover:     testsupport.CoverJPEG(t, 48, 48),
		},
	})
	writeAudioFile(t, cfg.Paths.MusicDir, "mumble.mp3")

	summary, err := o.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if calls != 1 {
		t.Fatalf("cleaning endpoint received %d calls, want 1", calls)
	}
	if summary.LyricCount != 1 || summary.PureCount != 0 {
		t.Fatalf("pure/lyric split = %d/%d, want 0/1", summary.PureCount, summary.LyricCount)
	}

	d, err := pptx.ReadDeck(filepath.Join(cfg.Paths.OutputDir, "mumble.pptx"))
	if err != nil {
		t.Fatalf("read deck: %v", err)
	}
	// The raw text is a single line; two lyric slides prove the cleaned
	// split shaped the deck.
	if len(d.Slides) != 4 {
		t.Fatalf("deck has %d slides, want 4", len(d.Slides))
	}
	if !strings.Contains(string(d.Slides[1].XML), "Hello") {
		t.Fatalf("first lyric slide missing cleaned text")
	}
}

func TestRunTidiesRootFiles(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	o := newTestOrchestrator(t, cfg, map[string]tags.Track{
		"stray.mp3": {Title: "Stray", Artist: "X", Cover: testsupport.CoverJPEG(t, 48, 48)},
	})
	writeAudioFile(t, testsupport.BaseDir(cfg), "stray.mp3")

	summary, err := o.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Successes != 1 {
		t.Fatalf("summary = %+v, want the tidied file converted", summary)
	}

	if _, err := os.Stat(filepath.Join(cfg.Paths.MusicDir, "stray.mp3")); err != nil {
		t.Fatalf("stray file not moved into music dir: %v", err)
	}
	if _, err := os.Stat(filepath.Join(testsupport.BaseDir(cfg), "stray.mp3")); !os.IsNotExist(err) {
		t.Fatalf("stray file still in root, stat err = %v", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.OutputDir, "stray.pptx")); err != nil {
		t.Fatalf("tidied file not converted: %v", err)
	}
}

func TestDiscoverFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.mp3", "a.flac", "notes.txt", "z.wav", "cover.jpg"} {
		writeAudioFile(t, dir, name)
	}
	if err := os.Mkdir(filepath.Join(dir, "nested.mp3"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	files, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	want := []string{
		filepath.Join(dir, "a.flac"),
		filepath.Join(dir, "b.mp3"),
		filepath.Join(dir, "z.wav"),
	}
	if len(files) != len(want) {
		t.Fatalf("files = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Fatalf("files[%d] = %s, want %s", i, files[i], want[i])
		}
	}
}

func TestSummarizeSplitsPureAndLyric(t *testing.T) {
	results := []Result{
		{Pure: true, Elapsed: 2 * time.Second},
		{Pure: true, Elapsed: 4 * time.Second},
		{Pure: false, Elapsed: 10 * time.Second},
		{Err: errors.New("boom"), Elapsed: time.Second},
	}

	s := summarize(results, time.Minute)

	if s.Total != 4 || s.Successes != 3 || s.Failures != 1 {
		t.Fatalf("summary counts = %+v", s)
	}
	if s.PureCount != 2 || s.LyricCount != 1 {
		t.Fatalf("pure/lyric = %d/%d, want 2/1", s.PureCount, s.LyricCount)
	}
	if got := s.AveragePure(); got != 3*time.Second {
		t.Fatalf("AveragePure = %s, want 3s", got)
	}
	if got := s.AverageLyric(); got != 10*time.Second {
		t.Fatalf("AverageLyric = %s, want 10s", got)
	}
	if s.WallClock != time.Minute {
		t.Fatalf("WallClock = %s", s.WallClock)
	}

	empty := summarize(nil, 0)
	if empty.AveragePure() != 0 || empty.AverageLyric() != 0 {
		t.Fatalf("averages over empty run should be zero")
	}
}
