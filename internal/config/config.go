// Package config loads server configuration from an optional YAML file with
// environment-variable fallbacks for the AI credentials.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr           string `yaml:"addr"`
	StaticDir      string `yaml:"staticDir"`
	MaxUploadBytes int    `yaml:"maxUploadBytes"`
	AI             AI     `yaml:"ai"`
}

type AI struct {
	BaseURL         string `yaml:"baseUrl"`
	APIKey          string `yaml:"apiKey"`
	ChatModel       string `yaml:"chatModel"`
	TranscribeModel string `yaml:"transcribeModel"`
	TimeoutSec      int    `yaml:"timeoutSec"`
}

func Default() Config {
	return Config{
		Addr:           ":8080",
		StaticDir:      "./static",
		MaxUploadBytes: 10 << 20,
		AI: AI{
			TimeoutSec: 60,
		},
	}
}

// Load reads the YAML file at path over the defaults. An empty path means
// defaults only; env vars OPENAI_API_KEY and OPENAI_BASE_URL fill the AI
// credentials when the file leaves them unset.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	if cfg.AI.APIKey == "" {
		cfg.AI.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.AI.BaseURL == "" {
		cfg.AI.BaseURL = os.Getenv("OPENAI_BASE_URL")
	}

	return cfg, nil
}
