package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/armshift/armshift/internal/domain"
)

var (
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	warningItemStyle   = lipgloss.NewStyle().Foreground(warning)
	hintStyle          = lipgloss.NewStyle().Foreground(dim).Italic(true)
)

var effortColors = map[domain.Effort]lipgloss.Color{
	domain.EffortMinimal: success,
	domain.EffortLow:     success,
	domain.EffortMedium:  warning,
	domain.EffortHigh:    danger,
}

// RenderPlan renders a migration plan as a styled TUI string.
func RenderPlan(plan *domain.MigrationPlan) string {
	var b strings.Builder

	// Header
	effortStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(effortColors[plan.EstimatedEffort]).
		Render(string(plan.EstimatedEffort) + " effort")

	titleLine := titleStyle.Render("Migration Plan") + "  " + dimStyle.Render("→ "+plan.TargetArchitecture)
	summaryLine := dimStyle.Render(fmt.Sprintf("%d issues  ·  %d changes  ·  ", plan.TotalIssues, plan.TotalChanges())) + effortStyled

	b.WriteString(boxStyle.Render(titleLine + "\n" + summaryLine))
	b.WriteString("\n")

	renderSteps(&b, plan.Steps)
	renderBuildChanges(&b, plan.BuildSystemChanges)
	renderDependencyUpdates(&b, plan.DependencyUpdates)
	renderTestingStrategy(&b, plan.TestingStrategy)

	// Footer
	b.WriteString("\n")
	b.WriteString("  " + hintStyle.Render("Run armshift migrate --dry-run to preview the edits."))
	b.WriteString("\n")

	return b.String()
}

func renderSteps(b *strings.Builder, steps []domain.MigrationStep) {
	if len(steps) == 0 {
		return
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s %s\n",
		sectionHeaderStyle.Render("File Migrations"),
		dimStyle.Render(fmt.Sprintf("(%d)", len(steps))),
	))

	for _, step := range steps {
		auto := 0
		for _, c := range step.Changes {
			if c.Confidence == domain.ConfidenceHigh {
				auto++
			}
		}

		autoNote := faintStyle.Render("manual only")
		if auto > 0 {
			autoNote = passStyle.Render(fmt.Sprintf("%d auto", auto))
		}

		fmt.Fprintf(b, "    %s %s  %s  %s\n",
			dimStyle.Render(fmt.Sprintf("%2d.", step.ID)),
			fileStyle.Render(step.File),
			dimStyle.Render(fmt.Sprintf("%d changes", len(step.Changes))),
			autoNote)

		for _, c := range step.Changes {
			fmt.Fprintf(b, "        %s %s %s\n",
				faintStyle.Render(fmt.Sprintf("L%-4d", c.Line)),
				confidenceTag(c.Confidence),
				dimStyle.Render(truncateOrPad(strings.TrimSpace(c.Original), 44)))
		}
	}
}

func renderBuildChanges(b *strings.Builder, changes []domain.BuildSystemChange) {
	if len(changes) == 0 {
		return
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s %s\n",
		sectionHeaderStyle.Render("Build Systems"),
		dimStyle.Render(fmt.Sprintf("(%d)", len(changes))),
	))

	for _, bc := range changes {
		fmt.Fprintf(b, "    %s %s  %s\n",
			warningItemStyle.Render("●"),
			padRight(bc.System, 10),
			fileStyle.Render(bc.File))
		for _, item := range bc.Changes {
			fmt.Fprintf(b, "        %s\n", dimStyle.Render(item))
		}
	}
}

func renderDependencyUpdates(b *strings.Builder, updates []domain.DependencyUpdate) {
	if len(updates) == 0 {
		return
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s %s\n",
		sectionHeaderStyle.Render("Dependencies"),
		dimStyle.Render(fmt.Sprintf("(%d)", len(updates))),
	))

	for _, u := range updates {
		fmt.Fprintf(b, "    %s %s %s  %s\n",
			warningItemStyle.Render("●"),
			padRight(u.Name, 20),
			dimStyle.Render(padRight(u.CurrentVersion, 12)),
			faintStyle.Render(u.Action))
		for _, note := range u.Notes {
			fmt.Fprintf(b, "        %s\n", dimStyle.Render(note))
		}
	}
}

func renderTestingStrategy(b *strings.Builder, ts domain.TestingStrategy) {
	b.WriteString("\n")
	b.WriteString("  " + sectionHeaderStyle.Render("Testing Strategy") + "\n")

	renderTestLine(b, "unit", ts.UnitTests, strings.Join(ts.UnitTests.FocusAreas, ", "))
	renderTestLine(b, "integration", ts.IntegrationTests, strings.Join(ts.IntegrationTests.Environments, ", "))
	renderTestLine(b, "performance", ts.PerformanceTests, "baseline "+ts.PerformanceTests.ComparisonBaseline)
	renderTestLine(b, "compatibility", ts.CompatibilityTests, strings.Join(ts.CompatibilityTests.DataFormats, ", "))
}

func renderTestLine(b *strings.Builder, name string, cfg domain.TestConfig, detail string) {
	marker := skipStyle.Render("○")
	if cfg.Required {
		marker = passStyle.Render("●")
	}
	fmt.Fprintf(b, "    %s %s %s\n", marker, padRight(name, 14), dimStyle.Render(detail))
}

func confidenceTag(c domain.Confidence) string {
	switch c {
	case domain.ConfidenceHigh:
		return passStyle.Render("auto  ")
	case domain.ConfidenceMedium:
		return warnStyle.Render("review")
	default:
		return infoTagStyle.Render("manual")
	}
}
