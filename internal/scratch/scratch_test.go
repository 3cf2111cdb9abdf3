package scratch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"lyricdeck/internal/logging"
)

func TestNewCreatesRunDirectory(t *testing.T) {
	root := t.TempDir()

	dir, err := New(root)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if !strings.HasPrefix(filepath.Base(dir.Path()), "run-") {
		t.Fatalf("run dir name = %s, want run- prefix", filepath.Base(dir.Path()))
	}
	info, err := os.Stat(dir.Path())
	if err != nil || !info.IsDir() {
		t.Fatalf("run dir not created: %v", err)
	}

	staged := dir.Join("deck.pptx")
	if filepath.Dir(staged) != dir.Path() {
		t.Fatalf("Join resolved outside run dir: %s", staged)
	}
}

func TestNewRequiresRoot(t *testing.T) {
	if _, err := New("   "); err == nil {
		t.Fatalf("expected error for blank root")
	}
}

func TestCloseRemovesRunDirectory(t *testing.T) {
	dir, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	path := dir.Path()
	if err := os.WriteFile(dir.Join("staged.pptx"), []byte("deck"), 0o644); err != nil {
		t.Fatalf("stage file: %v", err)
	}

	if err := dir.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("run dir should be removed, stat err = %v", err)
	}

	// Closing again is a no-op.
	if err := dir.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestCleanStaleInvalidPaths(t *testing.T) {
	for _, root := range []string{"", "   ", "/nonexistent/path/12345"} {
		result := CleanStale(context.Background(), root, time.Hour, logging.NewNop())
		if len(result.Removed) != 0 || len(result.Errors) != 0 {
			t.Errorf("expected empty result for root %q", root)
		}
	}
}

func TestCleanStaleRemovesOldRunDirectories(t *testing.T) {
	root := t.TempDir()

	oldDir := filepath.Join(root, "run-stale")
	if err := os.Mkdir(oldDir, 0o755); err != nil {
		t.Fatalf("create old dir: %v", err)
	}
	oldTime := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(oldDir, oldTime, oldTime); err != nil {
		t.Fatalf("set old time: %v", err)
	}

	recentDir := filepath.Join(root, "run-recent")
	if err := os.Mkdir(recentDir, 0o755); err != nil {
		t.Fatalf("create recent dir: %v", err)
	}

	result := CleanStale(context.Background(), root, time.Hour, logging.NewNop())

	if len(result.Removed) != 1 || result.Removed[0] != oldDir {
		t.Fatalf("removed = %v, want only %s", result.Removed, oldDir)
	}
	if _, err := os.Stat(oldDir); !os.IsNotExist(err) {
		t.Errorf("old run dir should have been removed")
	}
	if _, err := os.Stat(recentDir); err != nil {
		t.Errorf("recent run dir should still exist")
	}
}

func TestCleanStaleSkipsForeignEntries(t *testing.T) {
	root := t.TempDir()
	oldTime := time.Now().Add(-2 * time.Hour)

	foreignDir := filepath.Join(root, "not-a-run")
	if err := os.Mkdir(foreignDir, 0o755); err != nil {
		t.Fatalf("create foreign dir: %v", err)
	}
	if err := os.Chtimes(foreignDir, oldTime, oldTime); err != nil {
		t.Fatalf("set old time: %v", err)
	}

	oldFile := filepath.Join(root, "run-file.txt")
	if err := os.WriteFile(oldFile, []byte("x"), 0o644); err != nil {
		t.Fatalf("create file: %v", err)
	}
	if err := os.Chtimes(oldFile, oldTime, oldTime); err != nil {
		t.Fatalf("set old time: %v", err)
	}

	result := CleanStale(context.Background(), root, time.Hour, logging.NewNop())

	if len(result.Removed) != 0 {
		t.Fatalf("removed = %v, want nothing outside the run namespace", result.Removed)
	}
	if _, err := os.Stat(foreignDir); err != nil {
		t.Errorf("foreign dir should still exist")
	}
	if _, err := os.Stat(oldFile); err != nil {
		t.Errorf("plain file should still exist")
	}
}
