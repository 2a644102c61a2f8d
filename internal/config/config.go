// Package config loads the service configuration from a YAML file with
// environment-variable overrides. The core engine never reads this directly:
// everything it needs is passed in per request.
package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Server struct {
	Addr string `yaml:"addr"`
}

type Model struct {
	BaseURL string `yaml:"base_url"`
	Port    int    `yaml:"port"`
	ID      string `yaml:"id"`
}

type Analyze struct {
	FPS                float64 `yaml:"fps"`
	MaxExplanations    int     `yaml:"max_explanations"`
	OccupancyThreshold float64 `yaml:"occupancy_threshold"`
	Workers            int     `yaml:"workers"`
}

type Config struct {
	Server  Server  `yaml:"server"`
	Model   Model   `yaml:"model"`
	Analyze Analyze `yaml:"analyze"`
}

// Default returns the stock configuration: a local Ollama vision model and
// the engine's documented thresholds.
func Default() *Config {
	return &Config{
		Server: Server{Addr: ":8000"},
		Model: Model{
			BaseURL: "http://localhost",
			Port:    11434,
			ID:      "llama3.2-vision:11b",
		},
		Analyze: Analyze{
			FPS:                30,
			MaxExplanations:    3,
			OccupancyThreshold: 0.35,
			Workers:            4,
		},
	}
}

// Load reads the YAML file at path, falling back to defaults when the file
// does not exist, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if f, err := os.Open(path); err == nil {
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("ROLL_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("ROLL_MODEL_BASE_URL"); v != "" {
		cfg.Model.BaseURL = v
	}
	if v := os.Getenv("ROLL_MODEL_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Model.Port = port
		}
	}
	if v := os.Getenv("ROLL_MODEL_ID"); v != "" {
		cfg.Model.ID = v
	}
	if v := os.Getenv("ROLL_FPS"); v != "" {
		if fps, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Analyze.FPS = fps
		}
	}
	if v := os.Getenv("ROLL_MAX_EXPLANATIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Analyze.MaxExplanations = n
		}
	}
	if v := os.Getenv("ROLL_OCCUPANCY_THRESHOLD"); v != "" {
		if t, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Analyze.OccupancyThreshold = t
		}
	}
	if v := os.Getenv("ROLL_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Analyze.Workers = n
		}
	}
}
