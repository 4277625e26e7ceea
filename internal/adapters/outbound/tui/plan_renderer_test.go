package tui_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/armshift/armshift/internal/adapters/outbound/tui"
	"github.com/armshift/armshift/internal/domain"
)

func samplePlan() *domain.MigrationPlan {
	return &domain.MigrationPlan{
		ID:                 "3c9a7d2e-5b14-4f8a-9c21-8de64a0f7b31",
		TargetArchitecture: "arm64",
		CreatedAt:          time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC),
		TotalIssues:        3,
		Steps: []domain.MigrationStep{
			{
				ID: 1, Type: domain.StepTypeFileMigration, File: "src/detect.c", IssuesCount: 1,
				Changes: []domain.Change{
					{Line: 3, Category: domain.CategoryArchitectureCheck, Original: "#ifdef __x86_64__",
						Replacement: "#if defined(__x86_64__) || defined(__aarch64__)", Confidence: domain.ConfidenceHigh},
				},
			},
			{
				ID: 2, Type: domain.StepTypeFileMigration, File: "src/kernels.cpp", IssuesCount: 2,
				Changes: []domain.Change{
					{Line: 88, Category: domain.CategoryInlineAssembly, Original: "__asm__ volatile",
						Replacement: "__asm__ volatile", Confidence: domain.ConfidenceLow},
					{Line: 14, Category: domain.CategoryInstructionIntrinsic, Original: "_mm_add_ps",
						Replacement: "vaddq_f32", Confidence: domain.ConfidenceMedium},
				},
			},
		},
		BuildSystemChanges: []domain.BuildSystemChange{
			{File: "CMakeLists.txt", System: "cmake", Changes: []string{
				"Add ARM64 toolchain configuration",
				"Update compiler flags for target architecture",
			}},
		},
		DependencyUpdates: []domain.DependencyUpdate{
			{Name: "numpy", CurrentVersion: "1.26.0", Type: domain.DependencyTypePython,
				Action: domain.ActionCheckArmWheels, Notes: []string{"Verify ARM wheel availability on PyPI"}},
		},
		TestingStrategy: domain.TestingStrategy{
			UnitTests:          domain.TestConfig{Required: true, Platforms: []string{"arm64", "x86_64"}, FocusAreas: []string{"math operations", "SIMD code"}},
			IntegrationTests:   domain.TestConfig{Required: true, Environments: []string{"native_arm", "emulated_arm"}},
			PerformanceTests:   domain.TestConfig{Required: true, Metrics: []string{"execution_time"}, ComparisonBaseline: "x86_64"},
			CompatibilityTests: domain.TestConfig{Required: true, DataFormats: []string{"endianness", "struct_packing"}},
		},
		EstimatedEffort: domain.EffortLow,
	}
}

func TestRenderPlan_Header(t *testing.T) {
	output := tui.RenderPlan(samplePlan())
	assert.Contains(t, output, "Migration Plan")
	assert.Contains(t, output, "arm64")
	assert.Contains(t, output, "3 issues")
	assert.Contains(t, output, "3 changes")
	assert.Contains(t, output, "low effort")
}

func TestRenderPlan_StepsSection(t *testing.T) {
	output := tui.RenderPlan(samplePlan())
	assert.Contains(t, output, "File Migrations")
	assert.Contains(t, output, "src/detect.c")
	assert.Contains(t, output, "src/kernels.cpp")
}

func TestRenderPlan_ChangeLines(t *testing.T) {
	output := tui.RenderPlan(samplePlan())
	assert.Contains(t, output, "L3")
	assert.Contains(t, output, "#ifdef __x86_64__")
	assert.Contains(t, output, "_mm_add_ps")
}

func TestRenderPlan_ConfidenceTags(t *testing.T) {
	output := tui.RenderPlan(samplePlan())
	assert.Contains(t, output, "auto")
	assert.Contains(t, output, "review")
	assert.Contains(t, output, "manual")
}

func TestRenderPlan_AutoCountPerStep(t *testing.T) {
	output := tui.RenderPlan(samplePlan())
	assert.Contains(t, output, "1 auto")
	assert.Contains(t, output, "manual only")
}

func TestRenderPlan_BuildSystemsSection(t *testing.T) {
	output := tui.RenderPlan(samplePlan())
	assert.Contains(t, output, "Build Systems")
	assert.Contains(t, output, "CMakeLists.txt")
	assert.Contains(t, output, "Add ARM64 toolchain configuration")
}

func TestRenderPlan_DependenciesSection(t *testing.T) {
	output := tui.RenderPlan(samplePlan())
	assert.Contains(t, output, "Dependencies")
	assert.Contains(t, output, "numpy")
	assert.Contains(t, output, "1.26.0")
	assert.Contains(t, output, "check_arm_wheels")
	assert.Contains(t, output, "Verify ARM wheel availability on PyPI")
}

func TestRenderPlan_TestingStrategySection(t *testing.T) {
	output := tui.RenderPlan(samplePlan())
	assert.Contains(t, output, "Testing Strategy")
	assert.Contains(t, output, "unit")
	assert.Contains(t, output, "integration")
	assert.Contains(t, output, "performance")
	assert.Contains(t, output, "compatibility")
	assert.Contains(t, output, "SIMD code")
	assert.Contains(t, output, "baseline x86_64")
}

func TestRenderPlan_FooterHint(t *testing.T) {
	output := tui.RenderPlan(samplePlan())
	assert.Contains(t, output, "armshift migrate --dry-run")
}

func TestRenderPlan_EmptyPlan(t *testing.T) {
	plan := &domain.MigrationPlan{
		ID:                 "empty",
		TargetArchitecture: "arm64",
		EstimatedEffort:    domain.EffortMinimal,
		TestingStrategy: domain.TestingStrategy{
			UnitTests: domain.TestConfig{Required: true},
		},
	}
	output := tui.RenderPlan(plan)
	assert.Contains(t, output, "minimal effort")
	assert.Contains(t, output, "0 issues")
	assert.NotContains(t, output, "File Migrations")
	assert.NotContains(t, output, "Build Systems")
	assert.NotContains(t, output, "Dependencies")
}

func TestRenderPlan_HighEffortStyled(t *testing.T) {
	plan := samplePlan()
	plan.EstimatedEffort = domain.EffortHigh
	output := tui.RenderPlan(plan)
	assert.Contains(t, output, "high effort")
}
