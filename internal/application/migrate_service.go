package application

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/armshift/armshift/internal/domain"
)

// MigrateService orchestrates plan execution:
// resolve plan → execute → advance lifecycle → record history.
type MigrateService struct {
	planService *PlanService
	executor    *Executor
	store       domain.PlanStore
	history     domain.HistoryStore
	git         domain.GitInspector
	logger      hclog.Logger
}

func NewMigrateService(
	planService *PlanService,
	executor *Executor,
	store domain.PlanStore,
	history domain.HistoryStore,
	git domain.GitInspector,
	logger hclog.Logger,
) *MigrateService {
	return &MigrateService{
		planService: planService,
		executor:    executor,
		store:       store,
		history:     history,
		git:         git,
		logger:      logger,
	}
}

// Run executes the stored plan in the given mode, building a fresh plan
// first when none is stored. An applied plan is never executed again.
func (s *MigrateService) Run(ctx context.Context, root string, mode domain.Mode) (*domain.ExecutionResult, error) {
	// 1. Resolve the plan
	env, err := s.store.Load(root)
	if err != nil {
		return nil, fmt.Errorf("loading stored plan: %w", err)
	}
	if env == nil {
		plan, err := s.planService.BuildPlan(ctx, root, "")
		if err != nil {
			return nil, err
		}
		env = &domain.PlanEnvelope{
			State:     domain.PlanStateDraft,
			UpdatedAt: time.Now(),
			Plan:      *plan,
		}
	}
	if env.Terminal() {
		return nil, fmt.Errorf("plan %s was already applied; run armshift plan to build a new one", env.Plan.ID)
	}

	// 2. Warn before mutating a dirty work tree
	if mode == domain.ModeApply {
		if gitCtx, gitErr := s.git.Context(root); gitErr == nil && gitCtx != nil && gitCtx.Dirty {
			s.logger.Warn("work tree has uncommitted changes", "commit", gitCtx.Commit)
		}
	}

	// 3. Execute
	result, err := s.executor.Execute(ctx, root, env.Plan, mode)
	if err != nil {
		return nil, fmt.Errorf("executing plan: %w", err)
	}

	// 4. Advance the plan lifecycle
	env.Advance(mode, result.StepsFailed, time.Now())
	if err := s.store.Save(root, env); err != nil {
		return nil, fmt.Errorf("storing plan state: %w", err)
	}

	// 5. Record the run
	if err := s.history.Append(root, domain.SummarizeRun(env.Plan, *result)); err != nil {
		return nil, fmt.Errorf("recording history: %w", err)
	}

	return result, nil
}
