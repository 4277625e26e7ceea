package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/armshift/armshift/internal/domain"
	"gopkg.in/yaml.v3"
)

const fileName = ".armshift.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .armshift.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .armshift.yaml from root.
// Returns DefaultConfig if the file does not exist.
func (l *YAMLLoader) Load(root string) (domain.ProjectConfig, error) {
	data, err := os.ReadFile(filepath.Join(root, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.ProjectConfig{}, err
	}

	var cfg domain.ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("parsing %s: %w", fileName, err)
	}

	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("invalid %s: %w", fileName, err)
	}

	return mergeConfig(domain.DefaultConfig(), cfg), nil
}

// mergeConfig overlays explicit overrides on top of the defaults.
// Explicit (non-zero) values always win; unset fields keep defaults.
func mergeConfig(base, override domain.ProjectConfig) domain.ProjectConfig {
	result := base

	if override.TargetArchitecture != "" {
		result.TargetArchitecture = override.TargetArchitecture
	}

	// Explicit lists replace the defaults entirely.
	if len(override.ScannableExtensions) > 0 {
		result.ScannableExtensions = override.ScannableExtensions
	}
	if len(override.IgnorePathSubstrings) > 0 {
		result.IgnorePathSubstrings = override.IgnorePathSubstrings
	}

	if override.Workers > 0 {
		result.Workers = override.Workers
	}

	return result
}
