package domain

import "time"

// PlanEnvelope wraps a persisted plan with its lifecycle state. The state
// advances after each executor run; the plan inside is never modified.
type PlanEnvelope struct {
	State     PlanState     `json:"state"`
	UpdatedAt time.Time     `json:"updated_at"`
	Plan      MigrationPlan `json:"plan"`
}

// Advance records the state transition after a run in the given mode.
// A simulated plan stays re-runnable; apply is terminal.
func (e *PlanEnvelope) Advance(mode Mode, stepsFailed int, at time.Time) {
	e.State = NextState(mode, stepsFailed)
	e.UpdatedAt = at
}

// Terminal reports whether the plan has been applied and must not be
// executed again.
func (e *PlanEnvelope) Terminal() bool {
	return e.State == PlanStateApplied || e.State == PlanStatePartiallyApplied
}

// HistoryEntry is the summary of one execution run kept in the run history.
type HistoryEntry struct {
	RunID          string    `json:"run_id"`
	Timestamp      time.Time `json:"timestamp"`
	Mode           Mode      `json:"mode"`
	PlanID         string    `json:"plan_id"`
	Target         string    `json:"target"`
	StepsCompleted int       `json:"steps_completed"`
	StepsFailed    int       `json:"steps_failed"`
	ChangesApplied int       `json:"changes_applied"`
	BackupPath     string    `json:"backup_path,omitempty"`
	Success        bool      `json:"success"`
}

// SummarizeRun builds the history entry for a finished execution.
func SummarizeRun(plan MigrationPlan, res ExecutionResult) HistoryEntry {
	return HistoryEntry{
		RunID:          res.RunID,
		Timestamp:      res.StartedAt,
		Mode:           res.Mode,
		PlanID:         plan.ID,
		Target:         plan.TargetArchitecture,
		StepsCompleted: res.StepsCompleted,
		StepsFailed:    res.StepsFailed,
		ChangesApplied: res.ChangesApplied(),
		BackupPath:     res.BackupPath,
		Success:        res.Success,
	}
}
