// Package planning converts a scan report into an ordered, risk-tiered
// migration plan toward a target ARM architecture.
package planning

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/armshift/armshift/internal/domain"
)

// Architecture-check rewrites. An AMD64-family conditional gains the
// 64-bit ARM macro, an IA-32-family conditional gains the 32-bit one.
const (
	archCheck64Rewrite = "#if defined(_M_X64) || defined(__x86_64__) || defined(__aarch64__)"
	archCheck32Rewrite = "#if defined(_M_IX86) || defined(__i386__) || defined(__arm__)"
)

// Effort decision table thresholds. Fixed policy values; the boundary
// tests pin them.
const (
	effortLowMaxIssues    = 10
	effortMediumMaxIssues = 50
	effortHighConfRatio   = 0.7
)

// Builder derives migration plans from scan reports. NewBuilder wires the
// static substitution tables once; the builder itself is stateless and
// safe for concurrent use.
type Builder struct {
	intrinsics []intrinsicMapping
}

// NewBuilder returns a Builder backed by the built-in intrinsic table.
func NewBuilder() *Builder {
	return &Builder{intrinsics: intrinsicMappings}
}

// Build turns a scan report into an ordered migration plan. It is a pure
// transformation over already-validated data; it never fails.
func (b *Builder) Build(report *domain.ScanReport, targetArch string) domain.MigrationPlan {
	plan := domain.MigrationPlan{
		ID:                 uuid.NewString(),
		TargetArchitecture: targetArch,
		CreatedAt:          time.Now(),
		TotalIssues:        len(report.Issues),
	}

	// One step per file, in first-seen file order.
	order, grouped := report.IssuesByFile()
	for i, file := range order {
		plan.Steps = append(plan.Steps, b.fileStep(i+1, file, grouped[file]))
	}

	plan.BuildSystemChanges = buildSystemChanges(report.BuildSystems)
	plan.DependencyUpdates = dependencyUpdates(report.Dependencies)
	plan.TestingStrategy = testingStrategy(targetArch)
	plan.EstimatedEffort = estimateEffort(plan.TotalIssues, plan.HighConfidenceChanges())

	return plan
}

// fileStep maps one file's issues to changes, ordered by descending line
// number so applying a change never shifts the line of a later one.
func (b *Builder) fileStep(id int, file string, issues []domain.Issue) domain.MigrationStep {
	step := domain.MigrationStep{
		ID:          id,
		Type:        domain.StepTypeFileMigration,
		File:        file,
		IssuesCount: len(issues),
	}

	sorted := append([]domain.Issue(nil), issues...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Line > sorted[j].Line })

	for _, is := range sorted {
		step.Changes = append(step.Changes, domain.Change{
			Line:        is.Line,
			Category:    is.Category,
			Original:    is.MatchedText,
			Replacement: b.replacementFor(is),
			Confidence:  domain.ConfidenceFor(is.Category),
		})
	}

	return step
}

// replacementFor produces the category-specific replacement text. Only
// intrinsics with a known mapping and architecture checks get executable
// rewrites; everything else gets a review marker.
func (b *Builder) replacementFor(is domain.Issue) string {
	switch is.Category {
	case domain.CategoryInstructionIntrinsic:
		if repl, ok := neonEquivalent(is.MatchedText); ok {
			return repl
		}
		return fmt.Sprintf("/* TODO: Replace %s with ARM NEON equivalent */", is.MatchedText)

	case domain.CategoryInlineAssembly:
		return fmt.Sprintf("/* TODO: Replace inline assembly with portable C code or ARM NEON */\n// Original: %s", is.MatchedText)

	case domain.CategoryArchitectureCheck:
		if strings.Contains(is.MatchedText, "_M_X64") || strings.Contains(is.MatchedText, "__x86_64__") {
			return archCheck64Rewrite
		}
		if strings.Contains(is.MatchedText, "_M_IX86") || strings.Contains(is.MatchedText, "__i386__") {
			return archCheck32Rewrite
		}

	case domain.CategoryPlatformSpecificAPI:
		return fmt.Sprintf("/* TODO: Add ARM-compatible implementation for %s */", is.MatchedText)
	}

	return fmt.Sprintf("/* TODO: Review %s for ARM compatibility */", is.MatchedText)
}

// estimateEffort applies the fixed decision table, evaluated in order.
func estimateEffort(totalIssues, highConfidence int) domain.Effort {
	switch {
	case totalIssues == 0:
		return domain.EffortMinimal
	case totalIssues <= effortLowMaxIssues && float64(highConfidence) >= float64(totalIssues)*effortHighConfRatio:
		return domain.EffortLow
	case totalIssues <= effortMediumMaxIssues:
		return domain.EffortMedium
	default:
		return domain.EffortHigh
	}
}
