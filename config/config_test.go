package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_ExplicitFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clipbrowser.yaml")
	yml := `
data_dir: /srv/clips
table: clips
columns:
  media_id: yt_id
  hidden: [document_name, notes]
server:
  addr: ":9000"
`
	if err := os.WriteFile(path, []byte(yml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.DataDir != "/srv/clips" {
		t.Errorf("DataDir: got %q", cfg.DataDir)
	}
	if cfg.Table != "clips" {
		t.Errorf("Table: got %q", cfg.Table)
	}
	if cfg.Columns.MediaID != "yt_id" {
		t.Errorf("Columns.MediaID: got %q", cfg.Columns.MediaID)
	}
	// Unset keys keep their defaults.
	if cfg.Columns.Start != "start_timecode" {
		t.Errorf("Columns.Start: got %q, want default", cfg.Columns.Start)
	}
	if cfg.Embed.EmbedBase != "https://www.youtube.com/embed" {
		t.Errorf("Embed.EmbedBase: got %q, want default", cfg.Embed.EmbedBase)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("Server.Addr: got %q", cfg.Server.Addr)
	}
	if !cfg.IsHidden("notes") || !cfg.IsHidden("document_name") {
		t.Errorf("Hidden: got %v", cfg.Columns.Hidden)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("table: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := Default()
	cfg.DefaultSource = "clips.db"
	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.DefaultSource != "clips.db" {
		t.Errorf("DefaultSource: got %q", loaded.DefaultSource)
	}
}

func TestFromContext(t *testing.T) {
	if cfg := FromContext(context.Background()); cfg.Table != "descriptions" {
		t.Errorf("expected defaults without stored config, got table %q", cfg.Table)
	}

	custom := Default()
	custom.Table = "other"
	ctx := WithConfig(context.Background(), custom)
	if cfg := FromContext(ctx); cfg != custom {
		t.Error("expected stored config pointer")
	}
}
