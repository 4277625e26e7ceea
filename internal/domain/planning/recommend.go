package planning

import "github.com/armshift/armshift/internal/domain"

// buildChecklists holds the fixed manual-review checklist per build
// system. Systems without a checklist produce no entry.
var buildChecklists = map[string][]string{
	domain.BuildCMake: {
		"Add ARM64 target support",
		"Set CMAKE_SYSTEM_PROCESSOR for cross-compilation",
		"Add ARM-specific compiler flags",
		"Update architecture detection logic",
	},
	domain.BuildMake: {
		"Add ARM64 target to Makefile",
		"Set CC and CXX for cross-compilation",
		"Update CFLAGS/CXXFLAGS for ARM",
		"Add architecture-specific build rules",
	},
	domain.BuildNPM: {
		"Add ARM64 to supported architectures",
		"Update build scripts for cross-compilation",
		"Check native dependencies for ARM support",
	},
}

// armSensitiveDeps flags libraries that ship architecture-specific
// binaries and routinely need their own ARM builds.
var armSensitiveDeps = map[string]bool{
	"tensorflow": true,
	"pytorch":    true,
	"opencv":     true,
}

func buildSystemChanges(records []domain.BuildSystemRecord) []domain.BuildSystemChange {
	var changes []domain.BuildSystemChange
	for _, r := range records {
		checklist, ok := buildChecklists[r.System]
		if !ok {
			continue
		}
		changes = append(changes, domain.BuildSystemChange{
			File:    r.File,
			System:  r.System,
			Changes: append([]string(nil), checklist...),
		})
	}
	return changes
}

func dependencyUpdates(deps []domain.DependencyRecord) []domain.DependencyUpdate {
	var updates []domain.DependencyUpdate
	for _, d := range deps {
		update := domain.DependencyUpdate{
			Name:           d.Name,
			CurrentVersion: d.Version,
			Type:           d.Type,
			Action:         domain.ActionVerifyArmSupport,
		}
		if armSensitiveDeps[d.Name] {
			update.Action = domain.ActionCheckArmWheels
			update.Notes = append(update.Notes, "May require ARM-specific build")
		}
		updates = append(updates, update)
	}
	return updates
}

// testingStrategy returns the fixed validation checklist. Findings
// never alter it.
func testingStrategy(targetArch string) domain.TestingStrategy {
	return domain.TestingStrategy{
		UnitTests: domain.TestConfig{
			Required:   true,
			Platforms:  []string{targetArch, "x86_64"},
			FocusAreas: []string{"math operations", "memory access", "SIMD code"},
		},
		IntegrationTests: domain.TestConfig{
			Required:     true,
			Environments: []string{"native_arm", "emulated_arm", "cross_platform"},
		},
		PerformanceTests: domain.TestConfig{
			Required:           true,
			Metrics:            []string{"execution_time", "memory_usage", "power_consumption"},
			ComparisonBaseline: "x86_64",
		},
		CompatibilityTests: domain.TestConfig{
			Required:    true,
			DataFormats: []string{"endianness", "struct_packing", "floating_point"},
		},
	}
}
