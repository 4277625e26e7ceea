package application

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/armshift/armshift/internal/domain"
)

// Executor runs a migration plan against the project tree. Apply mode
// copies the whole tree to a backup before the first mutation; simulate
// counts the same changes without touching a file. The executor never
// reads plan lifecycle state; sequencing simulate before apply is the
// caller's discipline.
type Executor struct {
	backup domain.BackupCreator
	logger hclog.Logger
}

func NewExecutor(backup domain.BackupCreator, logger hclog.Logger) *Executor {
	return &Executor{backup: backup, logger: logger}
}

// Execute runs every step of the plan in order. Backup failure is the
// single fatal precondition; any per-step failure is recorded in the
// result and the remaining steps still run.
func (e *Executor) Execute(ctx context.Context, root string, plan domain.MigrationPlan, mode domain.Mode) (*domain.ExecutionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &domain.ExecutionResult{
		RunID:      uuid.NewString(),
		Mode:       mode,
		StartedAt:  time.Now(),
		TotalSteps: len(plan.Steps),
	}

	// Backup before any mutation.
	if mode == domain.ModeApply {
		backupPath, err := e.backup.Create(root)
		if err != nil {
			return nil, fmt.Errorf("creating backup: %w", err)
		}
		result.BackupPath = backupPath
	}

	for _, step := range plan.Steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var res domain.StepResult
		if mode == domain.ModeApply {
			res = e.applyStep(root, step)
		} else {
			res = simulateStep(step)
		}

		if res.Error == "" {
			result.StepsCompleted++
		} else {
			result.StepsFailed++
			e.logger.Warn("step failed", "file", step.File, "error", res.Error)
		}
		result.Steps = append(result.Steps, res)
	}

	for _, bc := range plan.BuildSystemChanges {
		result.BuildSystems = append(result.BuildSystems, domain.NoteResult{
			Name:   bc.File,
			Status: "completed",
			Note:   "Build system changes require manual review",
		})
	}
	for _, dep := range plan.DependencyUpdates {
		result.Dependencies = append(result.Dependencies, domain.NoteResult{
			Name:   dep.Name,
			Status: "completed",
			Note:   "Dependency compatibility needs verification",
		})
	}

	result.Success = result.StepsFailed == 0
	e.logger.Debug("execution finished",
		"mode", mode,
		"completed", result.StepsCompleted,
		"failed", result.StepsFailed,
		"changes", result.ChangesApplied())

	return result, nil
}

// simulateStep counts what apply would do, with zero file I/O.
func simulateStep(step domain.MigrationStep) domain.StepResult {
	res := domain.StepResult{StepID: step.ID, File: step.File}
	for _, c := range step.Changes {
		if c.Confidence != domain.ConfidenceHigh {
			res.Warnings = append(res.Warnings, fmt.Sprintf("Low confidence change skipped at line %d", c.Line))
			continue
		}
		res.ChangesApplied++
	}
	return res
}

// applyStep rewrites one file. Changes arrive ordered by descending line
// number, so an applied edit never shifts the line index of a pending one.
// The file is written back once, after every change has been considered.
func (e *Executor) applyStep(root string, step domain.MigrationStep) domain.StepResult {
	res := domain.StepResult{StepID: step.ID, File: step.File}

	path := filepath.Join(root, step.File)
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			res.Error = "File not found"
		} else {
			res.Error = err.Error()
		}
		return res
	}

	lines := strings.Split(string(content), "\n")

	for _, c := range step.Changes {
		if c.Confidence != domain.ConfidenceHigh {
			res.Warnings = append(res.Warnings, fmt.Sprintf("Low confidence change skipped at line %d", c.Line))
			continue
		}
		idx := c.Line - 1
		if idx < 0 || idx >= len(lines) {
			continue
		}
		lines[idx] = strings.ReplaceAll(lines[idx], c.Original, c.Replacement)
		res.ChangesApplied++
	}

	if res.ChangesApplied > 0 {
		if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644); err != nil {
			res.Error = err.Error()
			res.ChangesApplied = 0
			return res
		}
		e.logger.Debug("rewrote file", "file", step.File, "changes", res.ChangesApplied)
	}

	return res
}
