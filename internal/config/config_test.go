package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func tempConfigPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "config.json")
}

func TestLoadWritesDefaults(t *testing.T) {
	path := tempConfigPath(t)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Listen != ":8000" {
		t.Errorf("unexpected default listen: %s", cfg.Listen)
	}
	if cfg.LLM.Model != "gpt-4o-mini" {
		t.Errorf("unexpected default model: %s", cfg.LLM.Model)
	}
	if cfg.Archive.PruneSchedule != "0 4 * * *" {
		t.Errorf("unexpected prune schedule: %s", cfg.Archive.PruneSchedule)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected defaults written to disk: %v", err)
	}
}

func TestLoadRoundTrip(t *testing.T) {
	path := tempConfigPath(t)

	original, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	original.LogLevel = "debug"
	original.LLM.Model = "gpt-4o"
	original.Archive.MaxFiles = 42
	if err := original.Save(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.LogLevel != "debug" {
		t.Errorf("LogLevel mismatch: %s", loaded.LogLevel)
	}
	if loaded.LLM.Model != "gpt-4o" {
		t.Errorf("LLM.Model mismatch: %s", loaded.LLM.Model)
	}
	if loaded.Archive.MaxFiles != 42 {
		t.Errorf("Archive.MaxFiles mismatch: %d", loaded.Archive.MaxFiles)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := tempConfigPath(t)

	t.Setenv("OPENAI_API_KEY", "sk-from-env")
	t.Setenv("OPENAI_MODEL", "gpt-4o")
	t.Setenv("ADAM_LISTEN", ":9100")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LLM.APIKey != "sk-from-env" {
		t.Errorf("expected env api key, got %q", cfg.LLM.APIKey)
	}
	if cfg.LLM.Model != "gpt-4o" {
		t.Errorf("expected env model, got %q", cfg.LLM.Model)
	}
	if cfg.Listen != ":9100" {
		t.Errorf("expected env listen, got %q", cfg.Listen)
	}
}

func TestSaveAtomicWrite(t *testing.T) {
	path := tempConfigPath(t)

	cfg := defaults()
	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file should not exist after successful save")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Errorf("saved file is not valid JSON: %v", err)
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "config.json")

	cfg := defaults()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save should create parent directory, got: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file should exist: %v", err)
	}
}

func TestTimeout(t *testing.T) {
	cfg := defaults()
	if cfg.Timeout().Seconds() != 60 {
		t.Errorf("unexpected timeout: %v", cfg.Timeout())
	}
}
