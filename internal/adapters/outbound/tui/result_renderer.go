package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/armshift/armshift/internal/domain"
)

// RenderResult produces a terminal-formatted summary of one executor run
// including a header box, per-step outcomes, warnings, and backup location.
func RenderResult(result *domain.ExecutionResult) string {
	var b strings.Builder

	// ── Header box ──
	renderResultHeader(&b, result)

	// ── Steps ──
	if len(result.Steps) > 0 {
		b.WriteString("  " + titleStyle.Render("Steps") + "\n")
		for _, step := range result.Steps {
			renderStepResult(&b, step)
		}
		b.WriteString("\n")
	}

	renderNotesSection(&b, "Build Systems", result.BuildSystems)
	renderNotesSection(&b, "Dependencies", result.Dependencies)
	renderWarningsSection(&b, result)

	if result.BackupPath != "" {
		fmt.Fprintf(&b, "  %s %s\n\n",
			titleStyle.Render("Backup"),
			dimStyle.Render(result.BackupPath))
	}

	if result.Mode == domain.ModeSimulate {
		b.WriteString("  " + hintStyle.Render("No files were modified. Run armshift migrate --apply to make these changes.") + "\n")
	}

	b.WriteString("\n")
	return b.String()
}

func renderResultHeader(b *strings.Builder, result *domain.ExecutionResult) {
	title := headerStyle.Render("Simulation Result")
	if result.Mode == domain.ModeApply {
		title = headerStyle.Render("Apply Result")
	}

	runLine := lipgloss.NewStyle().Bold(true).Foreground(fg).Render("run " + shortRunID(result.RunID))

	outcome := passStyle.Render(fmt.Sprintf("%d completed", result.StepsCompleted))
	if result.StepsFailed > 0 {
		outcome += dimStyle.Render("  ·  ") + failStyle.Render(fmt.Sprintf("%d failed", result.StepsFailed))
	}

	stats := dimStyle.Render(fmt.Sprintf(
		"%d steps  ·  %d changes  ·  ", result.TotalSteps, result.ChangesApplied())) + outcome

	b.WriteString(boxStyle.Render(title + "\n\n" + runLine + "\n" + stats))
	b.WriteString("\n\n")
}

func renderStepResult(b *strings.Builder, step domain.StepResult) {
	marker := passStyle.Render("●")
	if step.Error != "" {
		marker = failStyle.Render("✘")
	}

	detail := dimStyle.Render(fmt.Sprintf("%d changes", step.ChangesApplied))
	if step.Error != "" {
		detail = failStyle.Render(step.Error)
	}

	fmt.Fprintf(b, "    %s %s  %s\n", marker, fileStyle.Render(truncateOrPad(step.File, 40)), detail)

	for _, w := range step.Warnings {
		fmt.Fprintf(b, "        %s\n", warnStyle.Render(w))
	}
}

func renderNotesSection(b *strings.Builder, title string, notes []domain.NoteResult) {
	if len(notes) == 0 {
		return
	}

	b.WriteString("  " + titleStyle.Render(title) + "\n")
	for _, n := range notes {
		fmt.Fprintf(b, "    %s %s  %s\n",
			warnStyle.Render("●"),
			padRight(n.Name, 20),
			dimStyle.Render(n.Note))
	}
	b.WriteString("\n")
}

func renderWarningsSection(b *strings.Builder, result *domain.ExecutionResult) {
	count := result.WarningCount()
	if count == 0 {
		return
	}
	fmt.Fprintf(b, "  %s %s\n\n",
		titleStyle.Render("Warnings"),
		warnStyle.Render(fmt.Sprintf("%d changes need manual review", count)))
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
