package main

import (
	"context"
	"testing"

	"lyricdeck/internal/lyriccache"
)

func TestCacheStatsDisabled(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env.configPath, "cache", "stats")
	if err != nil {
		t.Fatalf("cache stats: %v", err)
	}
	requireContains(t, out, "Lyric cache is disabled")
}

func TestCacheClearDisabled(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env.configPath, "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	requireContains(t, out, "nothing to clear")
}

func TestCacheStatsAndClear(t *testing.T) {
	env := setupCLITestEnv(t)
	env.cfg.LyricCache.Enabled = true
	saveTestConfig(t, env.cfg, env.configPath)

	store, err := lyriccache.Open(env.cfg.LyricCache.Path, env.cfg.GetCleaner().Model)
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	if err := store.Save(context.Background(), "raw lyrics", "clean lyrics"); err != nil {
		t.Fatalf("seed cache: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close cache: %v", err)
	}

	out, _, err := runCLI(t, env.configPath, "cache", "stats")
	if err != nil {
		t.Fatalf("cache stats: %v", err)
	}
	requireContains(t, out, "Entries: 1")
	requireContains(t, out, env.cfg.GetCleaner().Model)

	out, _, err = runCLI(t, env.configPath, "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	requireContains(t, out, "Removed 1 cached cleanings")

	out, _, err = runCLI(t, env.configPath, "cache", "stats")
	if err != nil {
		t.Fatalf("cache stats after clear: %v", err)
	}
	requireContains(t, out, "Entries: 0")
}
