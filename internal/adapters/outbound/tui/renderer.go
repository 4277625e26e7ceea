package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/camelcase"

	"github.com/armshift/armshift/internal/domain"
)

// ── warm amber palette ──
var (
	accent    = lipgloss.Color("#D97706") // amber
	fg        = lipgloss.Color("#E8E6E3") // warm light gray
	dim       = lipgloss.Color("#6B7280") // muted gray
	faint     = lipgloss.Color("#3F3F46") // very dim
	success   = lipgloss.Color("#22C55E") // green
	danger    = lipgloss.Color("#EF4444") // red
	warning   = lipgloss.Color("#F59E0B") // amber-yellow
	info      = lipgloss.Color("#8B949E") // soft blue-gray
	skipColor = lipgloss.Color("#4B5563") // dark gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	skipStyle     = lipgloss.NewStyle().Foreground(skipColor)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	infoTagStyle  = lipgloss.NewStyle().Foreground(info)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

const maxIssueRows = 20

var categoryNames = map[domain.Category]string{
	domain.CategoryInlineAssembly:       "inline assembly",
	domain.CategoryInstructionIntrinsic: "x86 intrinsics",
	domain.CategoryArchitectureCheck:    "architecture checks",
	domain.CategoryPlatformSpecificAPI:  "platform APIs",
}

// RenderReport formats a scan report for terminal output.
func RenderReport(report *domain.ScanReport) string {
	var b strings.Builder

	// ── Header ──
	title := headerStyle.Render("armshift")
	subtitle := dimStyle.Render("ARM Compatibility Scan")

	issueCount := len(report.Issues)
	high := report.HighSeverityCount()
	summary := lipgloss.NewStyle().
		Bold(true).
		Foreground(summaryColor(issueCount, high)).
		Render(fmt.Sprintf("%d issues", issueCount))
	if high > 0 {
		summary += "  " + errorTagStyle.Render(fmt.Sprintf("%d high", high))
	}

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + summary))
	b.WriteString("\n\n")

	// ── Scan stats ──
	fmt.Fprintf(&b, "  %s %s\n",
		titleStyle.Render(padRight("Files", 20)),
		dimStyle.Render(fmt.Sprintf("%d scanned of %d candidates", report.ScannedFiles, report.TotalFiles)))
	if report.Git != nil {
		renderGitLine(&b, report.Git)
	}
	b.WriteString("\n")

	// ── Categories ──
	if issueCount > 0 {
		counts := report.IssuesByCategory()
		for _, cat := range domain.ValidCategories {
			n := counts[cat]
			if n == 0 {
				continue
			}
			bar := coloredBar(n*100/issueCount, 20, severityColor(domain.SeverityFor(cat)))
			fmt.Fprintf(&b, "  %s %s  %d\n", padRight(categoryNames[cat], 20), bar, n)
		}
		b.WriteString("\n")
	}

	renderBuildSystems(&b, report.BuildSystems)
	renderDependencies(&b, report.Dependencies)

	b.WriteString("  " + separatorLine)
	b.WriteString("\n\n")

	// ── Issues ──
	if issueCount > 0 {
		b.WriteString("  " + titleStyle.Render("Issues") + "\n\n")
		shown := issueCount
		if shown > maxIssueRows {
			shown = maxIssueRows
		}
		for _, issue := range report.Issues[:shown] {
			renderIssue(&b, issue)
		}
		if remaining := issueCount - shown; remaining > 0 {
			b.WriteString(faintStyle.Render(fmt.Sprintf("    (%d more issues, use --json for the full list)\n", remaining)))
		}
	} else {
		b.WriteString("  " + passStyle.Render("No architecture-specific code found.") + "\n")
	}

	// ── Recommendations ──
	if len(report.Recommendations) > 0 {
		b.WriteString("\n")
		b.WriteString("  " + titleStyle.Render("Recommendations") + "\n")
		for _, rec := range report.Recommendations {
			b.WriteString("    " + dimStyle.Render(rec) + "\n")
		}
	}

	b.WriteString("\n")
	return b.String()
}

func renderGitLine(b *strings.Builder, git *domain.GitContext) {
	hash := git.Commit
	if len(hash) > 7 {
		hash = hash[:7]
	}
	state := passStyle.Render("clean")
	if git.Dirty {
		state = warnStyle.Render("dirty")
	}
	fmt.Fprintf(b, "  %s %s %s\n",
		titleStyle.Render(padRight("Git", 20)),
		faintStyle.Render(hash),
		state)
}

func renderBuildSystems(b *strings.Builder, systems []domain.BuildSystemRecord) {
	if len(systems) == 0 {
		return
	}
	b.WriteString("  " + titleStyle.Render("Build Systems") + "\n")
	for _, bs := range systems {
		marker := "  "
		if bs.NeedsReview {
			marker = warnStyle.Render("● ")
		}
		fmt.Fprintf(b, "    %s%s %s\n", marker, padRight(bs.System, 12), fileStyle.Render(bs.File))
	}
	b.WriteString("\n")
}

func renderDependencies(b *strings.Builder, deps []domain.DependencyRecord) {
	if len(deps) == 0 {
		return
	}
	byType := make(map[string]int)
	for _, d := range deps {
		byType[d.Type]++
	}
	var parts []string
	for _, typ := range []string{domain.DependencyTypeNPM, domain.DependencyTypePython, domain.DependencyTypeCargo, domain.DependencyTypeGo} {
		if n := byType[typ]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, typ))
		}
	}
	fmt.Fprintf(b, "  %s %s\n\n",
		titleStyle.Render(padRight("Dependencies", 20)),
		dimStyle.Render(strings.Join(parts, "  ·  ")))
}

func renderIssue(b *strings.Builder, issue domain.Issue) {
	tag := severityTag(issue.Severity)
	location := fmt.Sprintf("%s:%d", issue.File, issue.Line)

	matched := strings.TrimSpace(issue.MatchedText)
	if issue.Category == domain.CategoryPlatformSpecificAPI {
		matched += "  " + faintStyle.Render("("+humanizeAPI(matched)+")")
	}

	fmt.Fprintf(b, "    %s %s\n", tag, fileStyle.Render(location))
	fmt.Fprintf(b, "          %s\n", titleStyle.Render(matched))
	fmt.Fprintf(b, "          %s\n", dimStyle.Render(issue.Suggestion))
}

// humanizeAPI splits a CamelCase API name into words for readability,
// e.g. IsWow64Process reads as "Is Wow 64 Process".
func humanizeAPI(name string) string {
	return strings.Join(camelcase.Split(name), " ")
}

func severityTag(severity domain.Severity) string {
	switch severity {
	case domain.SeverityHigh:
		return errorTagStyle.Render("high")
	case domain.SeverityMedium:
		return warnTagStyle.Render("med ")
	default:
		return infoTagStyle.Render("low ")
	}
}

func severityColor(severity domain.Severity) lipgloss.Color {
	switch severity {
	case domain.SeverityHigh:
		return danger
	case domain.SeverityMedium:
		return warning
	default:
		return info
	}
}

func summaryColor(issues, high int) lipgloss.Color {
	switch {
	case issues == 0:
		return success
	case high > 0:
		return danger
	default:
		return warning
	}
}

func coloredBar(pct, width int, color lipgloss.Color) string {
	filled := max(0, min(pct*width/100, width))
	empty := width - filled

	filledStr := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	emptyStr := lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("░", empty))
	return filledStr + emptyStr
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func truncateOrPad(s string, width int) string {
	if len(s) > width {
		return s[:width-1] + "…"
	}
	return padRight(s, width)
}

// RenderHistory formats the execution run history for terminal output.
func RenderHistory(entries []domain.HistoryEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No migration runs recorded.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Run History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 58)) + "\n\n")

	for _, e := range entries {
		id := e.RunID
		if len(id) > 8 {
			id = id[:8]
		}

		mode := dimStyle.Render(padRight(string(e.Mode), 8))
		if e.Mode == domain.ModeApply {
			mode = warnTagStyle.Render(padRight(string(e.Mode), 8))
		}

		outcome := passStyle.Render("✔")
		if !e.Success {
			outcome = failStyle.Render("✘")
		}

		fmt.Fprintf(&b, "  %s  %s  %s  %s  %s  %s\n",
			dimStyle.Render(e.Timestamp.Format("2006-01-02")),
			faintStyle.Render(padRight(id, 8)),
			mode,
			dimStyle.Render(fmt.Sprintf("%2d steps", e.StepsCompleted+e.StepsFailed)),
			dimStyle.Render(fmt.Sprintf("%3d changes", e.ChangesApplied)),
			outcome)

		if e.BackupPath != "" {
			fmt.Fprintf(&b, "              %s\n", faintStyle.Render("backup: "+e.BackupPath))
		}
	}

	return b.String()
}
