package domain

import "time"

// Confidence is the policy-assigned risk tier that governs whether a change
// may be applied automatically. It is a pure function of category, never
// computed per instance.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ConfidenceFor returns the policy confidence for a category. Architecture
// checks are mechanical macro rewrites; intrinsics substitute a single call
// name; assembly and platform calls always need a human.
func ConfidenceFor(c Category) Confidence {
	switch c {
	case CategoryArchitectureCheck:
		return ConfidenceHigh
	case CategoryInstructionIntrinsic:
		return ConfidenceMedium
	case CategoryInlineAssembly, CategoryPlatformSpecificAPI:
		return ConfidenceLow
	}
	return ConfidenceLow
}

// Change is a proposed edit derived from one issue.
type Change struct {
	Line        int        `json:"line"`
	Category    Category   `json:"category"`
	Original    string     `json:"original"`
	Replacement string     `json:"replacement"`
	Confidence  Confidence `json:"confidence"`
}

// StepTypeFileMigration tags steps that rewrite one source file.
const StepTypeFileMigration = "file_migration"

// MigrationStep holds all changes for one file. Changes are ordered by
// descending line number: applying an edit that grows or shrinks a line
// must never invalidate the line index of an edit not yet applied.
type MigrationStep struct {
	ID          int      `json:"id"`
	Type        string   `json:"type"`
	File        string   `json:"file"`
	IssuesCount int      `json:"issues_count"`
	Changes     []Change `json:"changes"`
}

// BuildSystemChange is the manual-review checklist for one detected
// build manifest.
type BuildSystemChange struct {
	File    string   `json:"file"`
	System  string   `json:"system"`
	Changes []string `json:"changes"`
}

// Dependency update actions.
const (
	ActionVerifyArmSupport = "verify_arm_support"
	ActionCheckArmWheels   = "check_arm_wheels"
)

// DependencyUpdate is the review action for one extracted dependency.
type DependencyUpdate struct {
	Name           string   `json:"name"`
	CurrentVersion string   `json:"current_version"`
	Type           string   `json:"type"`
	Action         string   `json:"action"`
	Notes          []string `json:"notes,omitempty"`
}

// TestConfig describes one section of the testing strategy.
type TestConfig struct {
	Required           bool     `json:"required"`
	Platforms          []string `json:"platforms,omitempty"`
	FocusAreas         []string `json:"focus_areas,omitempty"`
	Environments       []string `json:"environments,omitempty"`
	Metrics            []string `json:"metrics,omitempty"`
	ComparisonBaseline string   `json:"comparison_baseline,omitempty"`
	DataFormats        []string `json:"data_formats,omitempty"`
}

// TestingStrategy is the fixed validation checklist attached to every plan.
// Scan findings do not alter it.
type TestingStrategy struct {
	UnitTests          TestConfig `json:"unit_tests"`
	IntegrationTests   TestConfig `json:"integration_tests"`
	PerformanceTests   TestConfig `json:"performance_tests"`
	CompatibilityTests TestConfig `json:"compatibility_tests"`
}

// Effort is the coarse qualitative sizing of a plan's expected manual work.
type Effort string

const (
	EffortMinimal Effort = "minimal"
	EffortLow     Effort = "low"
	EffortMedium  Effort = "medium"
	EffortHigh    Effort = "high"
)

// MigrationPlan is the full ordered rewrite plan for one target
// architecture. Immutable after creation; the executor borrows it
// read-only and never holds a reference afterward.
type MigrationPlan struct {
	ID                 string              `json:"id"`
	TargetArchitecture string              `json:"target_architecture"`
	CreatedAt          time.Time           `json:"created_at"`
	TotalIssues        int                 `json:"total_issues"`
	Steps              []MigrationStep     `json:"steps"`
	BuildSystemChanges []BuildSystemChange `json:"build_system_changes"`
	DependencyUpdates  []DependencyUpdate  `json:"dependency_updates"`
	TestingStrategy    TestingStrategy     `json:"testing_strategy"`
	EstimatedEffort    Effort              `json:"estimated_effort"`
}

// TotalChanges counts every change across all steps.
func (p MigrationPlan) TotalChanges() int {
	n := 0
	for _, s := range p.Steps {
		n += len(s.Changes)
	}
	return n
}

// HighConfidenceChanges counts the changes the executor may apply
// automatically.
func (p MigrationPlan) HighConfidenceChanges() int {
	n := 0
	for _, s := range p.Steps {
		for _, c := range s.Changes {
			if c.Confidence == ConfidenceHigh {
				n++
			}
		}
	}
	return n
}

// Mode selects between computing what would change and mutating the tree.
type Mode string

const (
	ModeSimulate Mode = "simulate"
	ModeApply    Mode = "apply"
)

// PlanState tracks a persisted plan through the simulate→review→apply
// workflow. Transitions are caller discipline; the executor never reads it.
type PlanState string

const (
	PlanStateDraft            PlanState = "draft"
	PlanStateSimulated        PlanState = "simulated"
	PlanStateApplied          PlanState = "applied"
	PlanStatePartiallyApplied PlanState = "partially_applied"
)

// NextState returns the state a plan enters after a run in the given mode.
func NextState(mode Mode, stepsFailed int) PlanState {
	if mode == ModeSimulate {
		return PlanStateSimulated
	}
	if stepsFailed > 0 {
		return PlanStatePartiallyApplied
	}
	return PlanStateApplied
}

// StepResult records the outcome of executing one migration step.
type StepResult struct {
	StepID         int      `json:"step_id"`
	File           string   `json:"file"`
	ChangesApplied int      `json:"changes_applied"`
	Warnings       []string `json:"warnings,omitempty"`
	Error          string   `json:"error,omitempty"`
}

// NoteResult is the bookkeeping record for a build-system or dependency
// entry. These are never executed automatically; they always succeed with
// an explanatory note.
type NoteResult struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Note   string `json:"note"`
}

// ExecutionResult is the per-run record produced by the executor. Created
// fresh per invocation; persisting it is the history store's concern.
type ExecutionResult struct {
	RunID          string       `json:"run_id"`
	Mode           Mode         `json:"mode"`
	StartedAt      time.Time    `json:"started_at"`
	TotalSteps     int          `json:"total_steps"`
	StepsCompleted int          `json:"steps_completed"`
	StepsFailed    int          `json:"steps_failed"`
	Steps          []StepResult `json:"steps"`
	BuildSystems   []NoteResult `json:"build_systems,omitempty"`
	Dependencies   []NoteResult `json:"dependencies,omitempty"`
	BackupPath     string       `json:"backup_path,omitempty"`
	Success        bool         `json:"success"`
}

// ChangesApplied sums applied changes across all steps.
func (r ExecutionResult) ChangesApplied() int {
	n := 0
	for _, s := range r.Steps {
		n += s.ChangesApplied
	}
	return n
}

// WarningCount sums warnings across all steps.
func (r ExecutionResult) WarningCount() int {
	n := 0
	for _, s := range r.Steps {
		n += len(s.Warnings)
	}
	return n
}
