package catalog

import (
	"strings"

	"github.com/armshift/armshift/internal/domain"
)

// ScanSource applies every catalog rule to one file's content and returns
// the located issues. Line numbers are 1-based, derived from the newlines
// preceding each match start. Emission order is rule order then textual
// order; callers needing a canonical order re-sort explicitly.
//
// Pure: no I/O, no failure modes. Reading the file and reporting
// unreadable content is the tree walker's job.
func ScanSource(cat *Catalog, file, content string) []domain.Issue {
	var issues []domain.Issue

	for _, rule := range cat.Rules() {
		for _, re := range rule.Patterns {
			for _, loc := range re.FindAllStringIndex(content, -1) {
				issues = append(issues, domain.Issue{
					File:        file,
					Line:        lineAt(content, loc[0]),
					Category:    rule.Category,
					Pattern:     re.String(),
					MatchedText: content[loc[0]:loc[1]],
					Severity:    domain.SeverityFor(rule.Category),
					Suggestion:  rule.Suggestion,
				})
			}
		}
	}

	return issues
}

func lineAt(content string, offset int) int {
	return strings.Count(content[:offset], "\n") + 1
}
