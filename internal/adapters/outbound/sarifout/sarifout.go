// Package sarifout renders a scan report as SARIF 2.1.0 so findings can
// flow into code-scanning dashboards.
package sarifout

import (
	"fmt"
	"io"
	"os"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/armshift/armshift/internal/domain"
)

const informationURI = "https://github.com/armshift/armshift"

var categoryTitles = map[domain.Category]string{
	domain.CategoryInlineAssembly:       "Inline assembly",
	domain.CategoryInstructionIntrinsic: "x86 intrinsic",
	domain.CategoryArchitectureCheck:    "Architecture check",
	domain.CategoryPlatformSpecificAPI:  "Platform-specific API",
}

// Write renders the report as a single-run SARIF document. One rule per
// finding category, one result per issue.
func Write(w io.Writer, report *domain.ScanReport) error {
	doc, err := sarif.New(sarif.Version210)
	if err != nil {
		return fmt.Errorf("creating SARIF report: %w", err)
	}

	run := sarif.NewRunWithInformationURI("armshift", informationURI)
	for _, issue := range report.Issues {
		rule := run.AddRule(ruleID(issue.Category)).
			WithDescription(issue.Suggestion).
			WithDefaultConfiguration(&sarif.ReportingConfiguration{
				Level: toSarifLevel(issue.Severity),
			})

		location := sarif.NewLocation().WithPhysicalLocation(
			sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewArtifactLocation().WithUri(issue.File)).
				WithRegion(sarif.NewRegion().WithStartLine(issue.Line)),
		)

		message := fmt.Sprintf("%s: %s", categoryTitles[issue.Category], issue.MatchedText)
		result := sarif.NewRuleResult(rule.ID).
			WithMessage(sarif.NewTextMessage(message)).
			WithLevel(toSarifLevel(issue.Severity)).
			WithLocations([]*sarif.Location{location})
		run.AddResult(result)
	}
	doc.AddRun(run)

	return doc.PrettyWrite(w)
}

// WriteFile writes the SARIF document to path.
func WriteFile(path string, report *domain.ScanReport) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("writing SARIF report: %w", err)
	}
	defer func() { _ = file.Close() }()
	return Write(file, report)
}

func ruleID(c domain.Category) string {
	return "armshift/" + string(c)
}

func toSarifLevel(s domain.Severity) string {
	switch s {
	case domain.SeverityHigh:
		return "error"
	case domain.SeverityMedium:
		return "warning"
	default:
		return "note"
	}
}
