package scanner

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/armshift/armshift/internal/domain"
)

var (
	// goRequireBlock captures the body of a parenthesized require block.
	goRequireBlock = regexp.MustCompile(`(?s)require\s+\((.*?)\)`)

	// cargoInlineVersion pulls the version out of an inline dependency
	// table like `serde = { version = "1.0", features = ["derive"] }`.
	cargoInlineVersion = regexp.MustCompile(`version\s*=\s*"([^"]*)"`)
)

// scanDependencies parses whichever root-level dependency manifests exist.
// Every record is tagged arm_compatible "unknown"; no registry lookups
// happen during a scan. A malformed manifest logs a warning and
// contributes nothing.
func (s *TreeScanner) scanDependencies(absRoot string) []domain.DependencyRecord {
	var deps []domain.DependencyRecord

	if data, err := os.ReadFile(filepath.Join(absRoot, "package.json")); err == nil {
		parsed, perr := parsePackageJSON(data)
		if perr != nil {
			s.logger.Warn("skipping malformed package.json", "error", perr)
		}
		deps = append(deps, parsed...)
	}
	if data, err := os.ReadFile(filepath.Join(absRoot, "requirements.txt")); err == nil {
		deps = append(deps, parseRequirements(string(data))...)
	}
	if data, err := os.ReadFile(filepath.Join(absRoot, "Cargo.toml")); err == nil {
		deps = append(deps, parseCargoTOML(string(data))...)
	}
	if data, err := os.ReadFile(filepath.Join(absRoot, "go.mod")); err == nil {
		deps = append(deps, parseGoMod(string(data))...)
	}

	return deps
}

func record(name, version, depType string) domain.DependencyRecord {
	return domain.DependencyRecord{
		Name:          name,
		Version:       version,
		Type:          depType,
		ArmCompatible: domain.ArmCompatUnknown,
	}
}

// parsePackageJSON merges dependencies and devDependencies, dev versions
// winning on collision, and emits records in name order.
func parsePackageJSON(data []byte) ([]domain.DependencyRecord, error) {
	var manifest struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, err
	}

	merged := make(map[string]string, len(manifest.Dependencies)+len(manifest.DevDependencies))
	for name, version := range manifest.Dependencies {
		merged[name] = version
	}
	for name, version := range manifest.DevDependencies {
		merged[name] = version
	}

	names := make([]string, 0, len(merged))
	for name := range merged {
		names = append(names, name)
	}
	sort.Strings(names)

	deps := make([]domain.DependencyRecord, 0, len(names))
	for _, name := range names {
		deps = append(deps, record(name, merged[name], domain.DependencyTypeNPM))
	}
	return deps, nil
}

// parseRequirements handles the common pinned forms. A line without a
// == or >= pin records version "*".
func parseRequirements(content string) []domain.DependencyRecord {
	var deps []domain.DependencyRecord
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		name, version := line, "*"
		if parts := strings.SplitN(line, "==", 2); len(parts) == 2 {
			name, version = parts[0], parts[1]
		} else if parts := strings.SplitN(line, ">=", 2); len(parts) == 2 {
			name, version = parts[0], parts[1]
		}

		deps = append(deps, record(strings.TrimSpace(name), strings.TrimSpace(version), domain.DependencyTypePython))
	}
	return deps
}

// parseCargoTOML reads only the [dependencies] table, stopping at the
// next section header. Both `name = "1.0"` and the inline table form are
// understood; an inline table without a version key records "*".
func parseCargoTOML(content string) []domain.DependencyRecord {
	var deps []domain.DependencyRecord
	inDeps := false
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)

		if strings.HasPrefix(line, "[") {
			inDeps = line == "[dependencies]"
			continue
		}
		if !inDeps || line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		name := strings.TrimSpace(parts[0])
		deps = append(deps, record(name, cargoVersion(strings.TrimSpace(parts[1])), domain.DependencyTypeCargo))
	}
	return deps
}

func cargoVersion(value string) string {
	if strings.HasPrefix(value, "{") {
		if m := cargoInlineVersion.FindStringSubmatch(value); m != nil {
			return m[1]
		}
		return "*"
	}
	return strings.Trim(value, `"`)
}

// parseGoMod walks parenthesized require blocks. Comment lines are
// skipped; indirect requirements are kept.
func parseGoMod(content string) []domain.DependencyRecord {
	var deps []domain.DependencyRecord
	for _, block := range goRequireBlock.FindAllStringSubmatch(content, -1) {
		for _, line := range strings.Split(block[1], "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "//") {
				continue
			}
			fields := strings.Fields(line)
			if len(fields) < 2 {
				continue
			}
			deps = append(deps, record(fields[0], fields[1], domain.DependencyTypeGo))
		}
	}
	return deps
}
