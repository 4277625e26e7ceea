package domain

import (
	"fmt"
	"strings"
)

// ValidTargetArchitectures enumerates the migration targets the planner
// knows rewrite rules for.
var ValidTargetArchitectures = []string{"arm64", "arm"}

// DefaultTargetArchitecture is used when the config does not name one.
const DefaultTargetArchitecture = "arm64"

// DefaultScannableExtensions is the file-extension allow-list applied when
// the config does not override it.
var DefaultScannableExtensions = []string{
	".c", ".cpp", ".cc", ".cxx",
	".h", ".hpp", ".hxx",
	".py", ".go", ".rs", ".java", ".cs",
	".js", ".ts", ".jsx", ".tsx",
}

// DefaultIgnoreSubstrings skips version control, dependency caches and
// build output during the walk. The backup copier reuses the same set.
var DefaultIgnoreSubstrings = []string{
	".git", "__pycache__", "node_modules",
	".venv", "venv", "build", "dist",
	".tox", ".pytest_cache",
}

// ProjectConfig holds project-level configuration loaded from .armshift.yaml.
type ProjectConfig struct {
	TargetArchitecture   string   `yaml:"target_architecture"    json:"target_architecture,omitempty"`
	ScannableExtensions  []string `yaml:"scannable_extensions"   json:"scannable_extensions,omitempty"`
	IgnorePathSubstrings []string `yaml:"ignore_path_substrings" json:"ignore_path_substrings,omitempty"`
	Workers              int      `yaml:"workers"                json:"workers,omitempty"`
}

// DefaultConfig returns the fully populated defaults.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{
		TargetArchitecture:   DefaultTargetArchitecture,
		ScannableExtensions:  append([]string(nil), DefaultScannableExtensions...),
		IgnorePathSubstrings: append([]string(nil), DefaultIgnoreSubstrings...),
	}
}

// ExtensionAllowed reports whether a file extension is in the allow-list.
func (c ProjectConfig) ExtensionAllowed(ext string) bool {
	for _, e := range c.ScannableExtensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

// Ignored reports whether a path contains any ignore substring.
func (c ProjectConfig) Ignored(path string) bool {
	for _, sub := range c.IgnorePathSubstrings {
		if sub != "" && strings.Contains(path, sub) {
			return true
		}
	}
	return false
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c ProjectConfig) Validate() error {
	// 1. target_architecture must be known or empty
	if c.TargetArchitecture != "" {
		valid := false
		for _, t := range ValidTargetArchitectures {
			if c.TargetArchitecture == t {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("unknown target_architecture %q (valid: arm64, arm)", c.TargetArchitecture)
		}
	}

	// 2. extensions must start with a dot
	for _, e := range c.ScannableExtensions {
		if !strings.HasPrefix(e, ".") {
			return fmt.Errorf("scannable extension %q must start with a dot", e)
		}
	}

	// 3. ignore substrings must not be empty or path separators
	for _, s := range c.IgnorePathSubstrings {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("ignore_path_substrings must not contain empty entries")
		}
		if s == "/" || s == "\\" {
			return fmt.Errorf("ignore substring %q would skip every path", s)
		}
	}

	// 4. workers must not be negative (0 means use CPU count)
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0 (got %d)", c.Workers)
	}

	return nil
}

// EffectiveTarget returns the configured target architecture, falling back
// to the default when unset.
func (c ProjectConfig) EffectiveTarget() string {
	if c.TargetArchitecture == "" {
		return DefaultTargetArchitecture
	}
	return c.TargetArchitecture
}
