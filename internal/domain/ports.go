package domain

import "context"

// ConfigLoader reads project configuration from a project root.
type ConfigLoader interface {
	Load(root string) (ProjectConfig, error)
}

// TreeScanner walks a project tree and aggregates a scan report.
type TreeScanner interface {
	Scan(ctx context.Context, root string, cfg ProjectConfig) (*ScanReport, error)
}

// BackupCreator copies a project tree to a sibling directory before any
// mutation. It returns the backup path.
type BackupCreator interface {
	Create(root string) (string, error)
}

// PlanStore persists the current migration plan between invocations.
// Load returns (nil, nil) when no plan has been stored.
type PlanStore interface {
	Save(root string, env *PlanEnvelope) error
	Load(root string) (*PlanEnvelope, error)
}

// HistoryStore appends execution summaries for later review.
type HistoryStore interface {
	Append(root string, entry HistoryEntry) error
	Load(root string) ([]HistoryEntry, error)
}

// GitInspector reports repository context for a path. A path outside any
// repository yields (nil, nil).
type GitInspector interface {
	Context(root string) (*GitContext, error)
}
