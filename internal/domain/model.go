package domain

import "time"

// Category classifies one kind of architecture-specific code.
type Category string

const (
	CategoryInlineAssembly       Category = "inline_assembly"
	CategoryInstructionIntrinsic Category = "x86_intrinsics"
	CategoryArchitectureCheck    Category = "architecture_checks"
	CategoryPlatformSpecificAPI  Category = "platform_specific"
)

// ValidCategories enumerates every category the catalog can emit.
var ValidCategories = []Category{
	CategoryInlineAssembly,
	CategoryInstructionIntrinsic,
	CategoryArchitectureCheck,
	CategoryPlatformSpecificAPI,
}

// Severity ranks how disruptive a finding is for the migration.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// SeverityFor returns the policy severity for a category. Assembly and
// intrinsics need real porting work; conditional blocks and platform calls
// usually have a mechanical or well-known fix.
func SeverityFor(c Category) Severity {
	switch c {
	case CategoryInlineAssembly, CategoryInstructionIntrinsic:
		return SeverityHigh
	case CategoryArchitectureCheck, CategoryPlatformSpecificAPI:
		return SeverityMedium
	}
	return SeverityLow
}

// Issue is one located occurrence of architecture-specific code.
// Immutable once created.
type Issue struct {
	File        string   `json:"file"`
	Line        int      `json:"line"`
	Category    Category `json:"category"`
	Pattern     string   `json:"pattern,omitempty"`
	MatchedText string   `json:"matched_text"`
	Severity    Severity `json:"severity"`
	Suggestion  string   `json:"suggestion"`
}

// ArmCompatUnknown marks a dependency whose ARM support has not been
// checked against any registry. The scanner never claims more than this.
const ArmCompatUnknown = "unknown"

// Dependency manifest types.
const (
	DependencyTypeNPM    = "npm"
	DependencyTypePython = "python"
	DependencyTypeCargo  = "cargo"
	DependencyTypeGo     = "go"
)

// DependencyRecord is one name/version pair extracted from a manifest.
type DependencyRecord struct {
	Name          string `json:"name"`
	Version       string `json:"version"`
	Type          string `json:"type"`
	ArmCompatible string `json:"arm_compatible"`
}

// Build system tags recorded during manifest detection.
const (
	BuildCMake     = "cmake"
	BuildMake      = "make"
	BuildGradle    = "gradle"
	BuildMaven     = "maven"
	BuildNPM       = "npm"
	BuildCargo     = "cargo"
	BuildGoModules = "go_modules"
	BuildQMake     = "qmake"
)

// BuildSystemRecord notes a detected build manifest. Detection records
// existence only; the manifest is never opened or validated here.
type BuildSystemRecord struct {
	File        string `json:"file"`
	System      string `json:"system"`
	NeedsReview bool   `json:"needs_review"`
}

// GitContext records the repository state at scan time.
type GitContext struct {
	Commit string `json:"commit,omitempty"`
	Dirty  bool   `json:"dirty,omitempty"`
}

// ScanReport aggregates everything found in one scan of a project tree.
type ScanReport struct {
	Root            string              `json:"root"`
	ScannedAt       time.Time           `json:"scanned_at"`
	TotalFiles      int                 `json:"total_files"`
	ScannedFiles    int                 `json:"scanned_files"`
	Issues          []Issue             `json:"issues"`
	Dependencies    []DependencyRecord  `json:"dependencies"`
	BuildSystems    []BuildSystemRecord `json:"build_systems"`
	Recommendations []string            `json:"recommendations"`
	Git             *GitContext         `json:"git,omitempty"`
}

// HighSeverityCount returns the number of high-severity issues.
func (r ScanReport) HighSeverityCount() int {
	n := 0
	for _, is := range r.Issues {
		if is.Severity == SeverityHigh {
			n++
		}
	}
	return n
}

// IssuesByCategory counts issues per category.
func (r ScanReport) IssuesByCategory() map[Category]int {
	counts := make(map[Category]int)
	for _, is := range r.Issues {
		counts[is.Category]++
	}
	return counts
}

// IssuesByFile groups issues by file, preserving first-seen file order.
func (r ScanReport) IssuesByFile() ([]string, map[string][]Issue) {
	var order []string
	grouped := make(map[string][]Issue)
	for _, is := range r.Issues {
		if _, seen := grouped[is.File]; !seen {
			order = append(order, is.File)
		}
		grouped[is.File] = append(grouped[is.File], is)
	}
	return order, grouped
}

// HasBuildSystem reports whether any detected manifest carries the tag.
func (r ScanReport) HasBuildSystem(system string) bool {
	for _, bs := range r.BuildSystems {
		if bs.System == system {
			return true
		}
	}
	return false
}
