package main

import (
	"testing"

	"lyricdeck/internal/tags"
)

func TestCoverSummary(t *testing.T) {
	if got := coverSummary(tags.Track{}); got != "no" {
		t.Fatalf("coverSummary(no cover) = %q", got)
	}
	track := tags.Track{Cover: make([]byte, 2048)}
	if got := coverSummary(track); got != "yes (2.0 KiB)" {
		t.Fatalf("coverSummary(with cover) = %q", got)
	}
}
