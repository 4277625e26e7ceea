package application

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/armshift/armshift/internal/domain"
	"github.com/armshift/armshift/internal/domain/planning"
)

// PlanService orchestrates the plan pipeline:
// scan → build migration plan → persist draft envelope.
type PlanService struct {
	configLoader domain.ConfigLoader
	scanService  *ScanService
	builder      *planning.Builder
	store        domain.PlanStore
}

func NewPlanService(
	configLoader domain.ConfigLoader,
	scanService *ScanService,
	store domain.PlanStore,
) *PlanService {
	return &PlanService{
		configLoader: configLoader,
		scanService:  scanService,
		builder:      planning.NewBuilder(),
		store:        store,
	}
}

// BuildPlan scans the project and derives a migration plan for the target
// architecture. An empty targetArch falls back to the configured target.
// The plan is persisted as a draft envelope under the project state dir.
func (s *PlanService) BuildPlan(ctx context.Context, root, targetArch string) (*domain.MigrationPlan, error) {
	// 1. Resolve target architecture
	if targetArch == "" {
		cfg, err := s.configLoader.Load(root)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		targetArch = cfg.EffectiveTarget()
	} else if !validTarget(targetArch) {
		return nil, fmt.Errorf("unknown target architecture %q (valid: %s)",
			targetArch, strings.Join(domain.ValidTargetArchitectures, ", "))
	}

	// 2. Scan
	report, err := s.scanService.Scan(ctx, root)
	if err != nil {
		return nil, err
	}

	// 3. Build the plan
	plan := s.builder.Build(report, targetArch)

	// 4. Persist as a draft envelope
	env := &domain.PlanEnvelope{
		State:     domain.PlanStateDraft,
		UpdatedAt: time.Now(),
		Plan:      plan,
	}
	if err := s.store.Save(root, env); err != nil {
		return nil, fmt.Errorf("storing plan: %w", err)
	}

	return &plan, nil
}

func validTarget(arch string) bool {
	for _, t := range domain.ValidTargetArchitectures {
		if arch == t {
			return true
		}
	}
	return false
}

// RenderJSON renders the plan as indented JSON.
func (s *PlanService) RenderJSON(plan *domain.MigrationPlan) ([]byte, error) {
	return json.MarshalIndent(plan, "", "  ")
}

// RenderMarkdown renders the plan as a reviewable Markdown document.
func (s *PlanService) RenderMarkdown(plan *domain.MigrationPlan) string {
	funcMap := template.FuncMap{
		"date":     func(t time.Time) string { return t.Format("2006-01-02") },
		"joinList": func(items []string) string { return strings.Join(items, ", ") },
	}
	tmpl := template.Must(template.New("plan").Funcs(funcMap).Parse(planTemplate))
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, plan)
	return buf.String()
}

const planTemplate = `# Migration Plan: {{.TargetArchitecture}}

Created {{date .CreatedAt}} -- {{.TotalIssues}} issues, estimated effort: **{{.EstimatedEffort}}**.

Only high-confidence changes are applied automatically; everything else
carries a review marker.
{{- if .Steps}}

## File Migrations

{{- range .Steps}}

### Step {{.ID}}: ` + "`" + `{{.File}}` + "`" + `

| Line | Confidence | Original | Replacement |
|------|------------|----------|-------------|
{{- range .Changes}}
| {{.Line}} | {{.Confidence}} | ` + "`" + `{{.Original}}` + "`" + ` | ` + "`" + `{{.Replacement}}` + "`" + ` |
{{- end}}
{{- end}}
{{- end}}
{{- if .BuildSystemChanges}}

## Build Systems

{{- range .BuildSystemChanges}}

**{{.System}}** (` + "`" + `{{.File}}` + "`" + `):
{{- range .Changes}}
- {{.}}
{{- end}}
{{- end}}
{{- end}}
{{- if .DependencyUpdates}}

## Dependencies

| Name | Version | Action |
|------|---------|--------|
{{- range .DependencyUpdates}}
| {{.Name}} | {{.CurrentVersion}} | {{.Action}} |
{{- end}}
{{- end}}

## Testing Strategy

- Unit tests on {{joinList .TestingStrategy.UnitTests.Platforms}}; focus: {{joinList .TestingStrategy.UnitTests.FocusAreas}}
- Integration tests in {{joinList .TestingStrategy.IntegrationTests.Environments}}
- Performance tests ({{joinList .TestingStrategy.PerformanceTests.Metrics}}) against {{.TestingStrategy.PerformanceTests.ComparisonBaseline}}
- Compatibility checks: {{joinList .TestingStrategy.CompatibilityTests.DataFormats}}
`
