// Package catalog holds the static pattern tables that locate
// architecture-specific code. The tables are pure data: adding a category
// or a pattern never touches scanning logic.
package catalog

import (
	"regexp"

	"github.com/armshift/armshift/internal/domain"
)

// Match is one pattern hit inside a piece of text.
type Match struct {
	Start int
	Text  string
}

// Rule couples one category with its detection patterns and the advisory
// suggestion attached to every hit.
type Rule struct {
	Category   domain.Category
	Patterns   []*regexp.Regexp
	Suggestion string
}

// Catalog is an immutable set of detection rules, built once at startup
// and passed by reference wherever matching is needed.
type Catalog struct {
	rules []Rule
}

// New builds a catalog from explicit rules. The slice is not copied;
// callers hand over ownership.
func New(rules []Rule) *Catalog {
	return &Catalog{rules: rules}
}

// Default returns the built-in x86 detection catalog.
func Default() *Catalog {
	return New([]Rule{
		{
			Category: domain.CategoryInlineAssembly,
			Patterns: compile(
				`__asm__\s*\(`,
				`asm\s*\(`,
				`_asm\s*{`,
			),
			Suggestion: "Replace with portable C/C++ code or use ARM NEON intrinsics",
		},
		{
			Category: domain.CategoryInstructionIntrinsic,
			Patterns: compile(
				`#include\s*<.*mmintrin\.h.*>`,
				`#include\s*<.*xmmintrin\.h.*>`,
				`#include\s*<.*emmintrin\.h.*>`,
				`#include\s*<.*pmmintrin\.h.*>`,
				`#include\s*<.*immintrin\.h.*>`,
				`_mm_\w+`,
				`_mm\d+_\w+`,
			),
			Suggestion: "Replace with ARM NEON equivalents or portable alternatives",
		},
		{
			Category: domain.CategoryArchitectureCheck,
			Patterns: compile(
				`#ifdef\s+_M_X64`,
				`#ifdef\s+__x86_64__`,
				`#ifdef\s+_M_IX86`,
				`#ifdef\s+__i386__`,
			),
			Suggestion: "Add ARM architecture checks or use runtime detection",
		},
		{
			Category: domain.CategoryPlatformSpecificAPI,
			Patterns: compile(
				`GetSystemInfo`,
				`IsWow64Process`,
				`SYSTEM_INFO`,
			),
			Suggestion: "Use cross-platform alternatives or add ARM-specific implementations",
		},
	})
}

// Rules returns the rules in catalog order.
func (c *Catalog) Rules() []Rule {
	return c.rules
}

// Suggestion returns the advisory text for a category, or a generic
// fallback for categories the catalog does not know.
func (c *Catalog) Suggestion(cat domain.Category) string {
	for _, r := range c.rules {
		if r.Category == cat {
			return r.Suggestion
		}
	}
	return "Review for ARM compatibility"
}

// MatchCategory returns every non-overlapping hit of the category's
// patterns in text, in pattern order then textual order. Unknown
// categories yield nil. Deterministic for identical input.
func (c *Catalog) MatchCategory(cat domain.Category, text string) []Match {
	for _, r := range c.rules {
		if r.Category != cat {
			continue
		}
		var matches []Match
		for _, re := range r.Patterns {
			for _, loc := range re.FindAllStringIndex(text, -1) {
				matches = append(matches, Match{Start: loc[0], Text: text[loc[0]:loc[1]]})
			}
		}
		return matches
	}
	return nil
}

func compile(exprs ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		res = append(res, regexp.MustCompile(`(?i)`+e))
	}
	return res
}
