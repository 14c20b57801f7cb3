package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

type Config struct {
	// Storage settings
	StorageDir string `json:"storage_dir"`

	// Run defaults
	Defaults DefaultsConfig `json:"defaults"`

	// Provider configs, keyed by provider name
	Providers map[string]ProviderConfig `json:"providers"`
}

type DefaultsConfig struct {
	Mode       string `json:"mode"`
	Rounds     int    `json:"rounds"`
	MaxRetries int    `json:"max_retries"`
	Output     string `json:"output"`
}

type ProviderConfig struct {
	APIKey  string `json:"api_key,omitempty"`
	BaseURL string `json:"base_url,omitempty"`
	Model   string `json:"model,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		StorageDir: ".anyany",
		Defaults: DefaultsConfig{
			Mode:       "consensus",
			Rounds:     2,
			MaxRetries: 2,
			Output:     "tui",
		},
		Providers: map[string]ProviderConfig{
			"anthropic": {
				Model: "claude-sonnet-4-20250514",
			},
			"openai": {
				Model: "gpt-4o",
			},
			"gemini": {
				Model: "gemini-2.5-flash",
			},
			"ollama": {
				Model:   "llama3",
				BaseURL: "http://localhost:11434",
			},
		},
	}
}

// Load reads the config at path over the defaults. A missing file is not
// an error; it yields the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// StoragePath joins parts under the storage directory.
func (c *Config) StoragePath(parts ...string) string {
	elems := append([]string{c.StorageDir}, parts...)
	return filepath.Join(elems...)
}

// DBPath is where the session database lives.
func (c *Config) DBPath() string {
	return c.StoragePath("anyany.db")
}

func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
