package main

import (
	"errors"
	"strings"
	"testing"
	"time"

	"lyricdeck/internal/batch"
	"lyricdeck/internal/services"
)

func TestRunFailsWithoutAudio(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, env.configPath, "run")
	if !errors.Is(err, services.ErrNoInput) {
		t.Fatalf("err = %v, want ErrNoInput", err)
	}
	requireContains(t, err.Error(), "no eligible audio files")
}

func TestPrintSummaryListsOutcomes(t *testing.T) {
	artworkErr := services.Wrap(services.ErrMissingArtwork, "artwork", "decode cover",
		"track has no embedded cover art", nil)
	summary := &batch.Summary{
		Total:        3,
		Successes:    2,
		Failures:     1,
		PureCount:    1,
		PureElapsed:  300 * time.Millisecond,
		LyricCount:   1,
		LyricElapsed: 1200 * time.Millisecond,
		WallClock:    2 * time.Second,
		Results: []batch.Result{
			{Title: "Midnight Run", Output: "/decks/Midnight Run.pptx", Elapsed: 1200 * time.Millisecond},
			{Title: "Ocean Drift", Output: "/decks/Ocean Drift.pptx", Pure: true, Elapsed: 300 * time.Millisecond},
			{Title: "Broken", Err: artworkErr, Elapsed: 100 * time.Millisecond},
		},
	}

	var buf strings.Builder
	printSummary(&buf, summary)
	out := buf.String()

	requireContains(t, out, "Track")
	requireContains(t, out, "Midnight Run")
	requireContains(t, out, "lyrics")
	requireContains(t, out, "pure")
	requireContains(t, out, "failed")
	requireContains(t, out, "2 of 3 decks generated")
	requireContains(t, out, "Lyric decks: 1")
	requireContains(t, out, "Pure music decks: 1")
	requireContains(t, out, "Failed: 1")
}

func TestResultKind(t *testing.T) {
	cases := []struct {
		name   string
		result batch.Result
		want   string
	}{
		{"failure", batch.Result{Err: errors.New("boom")}, "failed"},
		{"skipped cover", batch.Result{Skipped: true}, "bare"},
		{"instrumental", batch.Result{Pure: true}, "pure"},
		{"lyrics", batch.Result{}, "lyrics"},
	}
	for _, tc := range cases {
		if got := resultKind(tc.result); got != tc.want {
			t.Fatalf("%s: resultKind = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestResultDetail(t *testing.T) {
	ok := batch.Result{Output: "/decks/Midnight Run.pptx"}
	if got := resultDetail(ok); got != "Midnight Run.pptx" {
		t.Fatalf("resultDetail = %q, want base name", got)
	}

	failed := batch.Result{Err: services.Wrap(services.ErrMissingArtwork, "artwork", "decode cover",
		"track has no embedded cover art", nil)}
	if got := resultDetail(failed); !strings.HasPrefix(got, "artwork: ") {
		t.Fatalf("resultDetail = %q, want artwork failure kind prefix", got)
	}
}
