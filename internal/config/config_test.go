package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json5"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shelld.json5")
	contents := `{
		// trailing comment, allowed by JSON5
		listen_addr: ":9000",
		max_pipeline_stages: 20,
	}`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ListenAddr != ":9000" {
		t.Errorf("got ListenAddr %q", cfg.ListenAddr)
	}
	if cfg.MaxPipelineStages != 20 {
		t.Errorf("got MaxPipelineStages %d", cfg.MaxPipelineStages)
	}
	if cfg.MaxArgv != Default().MaxArgv {
		t.Errorf("unset field should keep default, got %d", cfg.MaxArgv)
	}
}

func TestLoadInvalidFileErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shelld.json5")
	if err := os.WriteFile(path, []byte("not json5 at all {{{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected an error for invalid config contents")
	}
}
