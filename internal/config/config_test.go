package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig_RunDefaults(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Defaults.Mode != "consensus" {
		t.Errorf("Defaults.Mode = %q, want %q", cfg.Defaults.Mode, "consensus")
	}
	if cfg.Defaults.Rounds != 2 {
		t.Errorf("Defaults.Rounds = %d, want %d", cfg.Defaults.Rounds, 2)
	}
	if cfg.Defaults.MaxRetries != 2 {
		t.Errorf("Defaults.MaxRetries = %d, want %d", cfg.Defaults.MaxRetries, 2)
	}
	if cfg.Defaults.Output != "tui" {
		t.Errorf("Defaults.Output = %q, want %q", cfg.Defaults.Output, "tui")
	}
	if cfg.StorageDir != ".anyany" {
		t.Errorf("StorageDir = %q, want %q", cfg.StorageDir, ".anyany")
	}
}

func TestDefaultConfig_ProviderEntries(t *testing.T) {
	cfg := DefaultConfig()

	expected := []struct {
		name    string
		model   string
		baseURL string
	}{
		{"anthropic", "claude-sonnet-4-20250514", ""},
		{"openai", "gpt-4o", ""},
		{"gemini", "gemini-2.5-flash", ""},
		{"ollama", "llama3", "http://localhost:11434"},
	}

	for _, tc := range expected {
		t.Run(tc.name, func(t *testing.T) {
			p, ok := cfg.Providers[tc.name]
			if !ok {
				t.Fatalf("provider %q not found in defaults", tc.name)
			}
			if p.Model != tc.model {
				t.Errorf("provider %q model = %q, want %q", tc.name, p.Model, tc.model)
			}
			if p.BaseURL != tc.baseURL {
				t.Errorf("provider %q base URL = %q, want %q", tc.name, p.BaseURL, tc.baseURL)
			}
		})
	}
}

func TestLoad_FromJSONFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "anyany.json")

	jsonData := []byte(`{
		"storage_dir": "/tmp/anyany-data",
		"defaults": {
			"mode": "debate",
			"rounds": 3,
			"max_retries": 5,
			"output": "plain"
		},
		"providers": {
			"openai": {
				"api_key": "sk-test",
				"model": "gpt-4o-mini",
				"base_url": "https://proxy.example.com/v1"
			}
		}
	}`)

	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.StorageDir != "/tmp/anyany-data" {
		t.Errorf("StorageDir = %q, want %q", cfg.StorageDir, "/tmp/anyany-data")
	}
	if cfg.Defaults.Mode != "debate" {
		t.Errorf("Defaults.Mode = %q, want %q", cfg.Defaults.Mode, "debate")
	}
	if cfg.Defaults.Rounds != 3 {
		t.Errorf("Defaults.Rounds = %d, want %d", cfg.Defaults.Rounds, 3)
	}
	if cfg.Defaults.MaxRetries != 5 {
		t.Errorf("Defaults.MaxRetries = %d, want %d", cfg.Defaults.MaxRetries, 5)
	}
	p := cfg.Providers["openai"]
	if p.APIKey != "sk-test" {
		t.Errorf("openai api key = %q, want %q", p.APIKey, "sk-test")
	}
	if p.Model != "gpt-4o-mini" {
		t.Errorf("openai model = %q, want %q", p.Model, "gpt-4o-mini")
	}
	if p.BaseURL != "https://proxy.example.com/v1" {
		t.Errorf("openai base URL = %q, want %q", p.BaseURL, "https://proxy.example.com/v1")
	}
}

func TestLoad_NonexistentFile_ReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "does-not-exist.json")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error for nonexistent file: %v", err)
	}

	defCfg := DefaultConfig()
	if cfg.Defaults.Mode != defCfg.Defaults.Mode {
		t.Errorf("Defaults.Mode = %q, want default %q", cfg.Defaults.Mode, defCfg.Defaults.Mode)
	}
	if cfg.StorageDir != defCfg.StorageDir {
		t.Errorf("StorageDir = %q, want default %q", cfg.StorageDir, defCfg.StorageDir)
	}
	if len(cfg.Providers) != len(defCfg.Providers) {
		t.Errorf("Providers length = %d, want %d", len(cfg.Providers), len(defCfg.Providers))
	}
}

func TestLoad_InvalidJSON_ReturnsError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")

	if err := os.WriteFile(path, []byte(`{invalid json!!!`), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() should return error for invalid JSON, got nil")
	}
}

func TestSaveAndLoad_Roundtrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "roundtrip.json")

	original := DefaultConfig()
	original.StorageDir = "/my/data"
	original.Defaults.Mode = "pipeline"
	original.Defaults.Rounds = 4
	original.Providers["openai"] = ProviderConfig{APIKey: "sk-roundtrip", Model: "gpt-4o"}

	if err := original.Save(path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if loaded.StorageDir != original.StorageDir {
		t.Errorf("StorageDir = %q, want %q", loaded.StorageDir, original.StorageDir)
	}
	if loaded.Defaults.Mode != original.Defaults.Mode {
		t.Errorf("Defaults.Mode = %q, want %q", loaded.Defaults.Mode, original.Defaults.Mode)
	}
	if loaded.Defaults.Rounds != original.Defaults.Rounds {
		t.Errorf("Defaults.Rounds = %d, want %d", loaded.Defaults.Rounds, original.Defaults.Rounds)
	}
	if loaded.Providers["openai"].APIKey != "sk-roundtrip" {
		t.Errorf("openai api key = %q, want %q", loaded.Providers["openai"].APIKey, "sk-roundtrip")
	}
}

func TestStoragePath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StorageDir = "/data/.anyany"

	tests := []struct {
		name  string
		parts []string
		want  string
	}{
		{"no parts", nil, "/data/.anyany"},
		{"single part", []string{"exports"}, "/data/.anyany/exports"},
		{"multiple parts", []string{"exports", "run-1.md"}, "/data/.anyany/exports/run-1.md"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := cfg.StoragePath(tc.parts...)
			if got != tc.want {
				t.Errorf("StoragePath(%v) = %q, want %q", tc.parts, got, tc.want)
			}
		})
	}
}

func TestDBPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StorageDir = "/data/.anyany"
	if got := cfg.DBPath(); got != "/data/.anyany/anyany.db" {
		t.Errorf("DBPath() = %q", got)
	}
}
