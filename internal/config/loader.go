package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadSnake loads Snake configuration.
// Search order: customPath -> ~/.snake/configs/snake.yaml -> ./configs/snake.yaml -> embedded default
//
// Files are decoded over the defaults, so a file may set only the fields it
// wants to change. A custom path that cannot be read, parsed or validated is
// an error; the other locations are skipped when unusable.
func LoadSnake(customPath string) (SnakeConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return SnakeConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := ParseSnake(data)
		if err != nil {
			return SnakeConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("snake.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseSnake(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/snake.yaml"); err == nil {
		if cfg, err := ParseSnake(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseSnake(defaultSnakeYAML)
	if err != nil {
		return DefaultSnakeConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseSnake decodes YAML over the defaults and validates the result.
// Start positions the data leaves out are moved inside the grid it sets.
func ParseSnake(data []byte) (SnakeConfig, error) {
	cfg := DefaultSnakeConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SnakeConfig{}, err
	}

	var given struct {
		Start struct {
			Head *PointConfig `yaml:"head"`
			Item *PointConfig `yaml:"item"`
		} `yaml:"start"`
	}
	if err := yaml.Unmarshal(data, &given); err != nil {
		return SnakeConfig{}, err
	}
	if given.Start.Head == nil {
		cfg.Start.Head = cfg.Start.Head.fit(cfg.Grid)
	}
	if given.Start.Item == nil {
		cfg.Start.Item = cfg.Start.Item.fit(cfg.Grid)
	}

	if err := cfg.Validate(); err != nil {
		return SnakeConfig{}, err
	}
	return cfg, nil
}

// MarshalSnake encodes the configuration as YAML.
func MarshalSnake(cfg SnakeConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".snake", "configs", filename)
}
