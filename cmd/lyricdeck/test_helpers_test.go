package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"lyricdeck/internal/artwork"
	"lyricdeck/internal/config"
	"lyricdeck/internal/deck"
	"lyricdeck/internal/deck/pptx"
	"lyricdeck/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
}

// setupCLITestEnv seeds a config rooted in a temp tree and persists it so
// commands can load it through --config.
func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}

	configPath := filepath.Join(testsupport.BaseDir(cfg), "config.toml")
	saveTestConfig(t, cfg, configPath)

	return &cliTestEnv{cfg: cfg, configPath: configPath}
}

func saveTestConfig(t *testing.T, cfg *config.Config, path string) {
	t.Helper()
	if err := config.Save(cfg, path); err != nil {
		t.Fatalf("save config: %v", err)
	}
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeDeckFixture drops a minimal presentation into dir so merge commands
// have real packages to combine without exercising the image pipeline.
func writeDeckFixture(t *testing.T, dir, name string, slides int) string {
	t.Helper()
	cfg := config.Default()
	builder := deck.NewBuilder(&cfg)
	assets := &artwork.Assets{
		Background: artwork.Image{Data: []byte("bg"), Format: "jpeg", Width: 4, Height: 2},
		Cover:      artwork.Image{Data: []byte("cover"), Format: "jpeg", Width: 2, Height: 2},
		MaskTop:    artwork.Image{Data: []byte("top"), Format: "png", Width: 4, Height: 1},
		MaskBottom: artwork.Image{Data: []byte("bottom"), Format: "png", Width: 4, Height: 1},
	}
	d := builder.NewDeck(name, assets)
	for i := 0; i < slides; i++ {
		builder.TitleSlide(d, name, "Artist")
	}
	path := filepath.Join(dir, name+".pptx")
	if err := pptx.Write(d, path); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
