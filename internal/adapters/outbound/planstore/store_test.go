package planstore_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/armshift/armshift/internal/adapters/outbound/planstore"
	"github.com/armshift/armshift/internal/domain"
)

func samplePlan() domain.MigrationPlan {
	return domain.MigrationPlan{
		ID:                 "plan-1",
		TargetArchitecture: "arm64",
		CreatedAt:          time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		TotalIssues:        2,
		Steps: []domain.MigrationStep{
			{
				ID:          1,
				Type:        domain.StepTypeFileMigration,
				File:        "simd.cpp",
				IssuesCount: 2,
				Changes: []domain.Change{
					{Line: 10, Category: domain.CategoryInstructionIntrinsic, Original: "_mm_add_ps", Replacement: "vaddq_f32", Confidence: domain.ConfidenceMedium},
				},
			},
		},
		EstimatedEffort: domain.EffortLow,
	}
}

func TestStore_SaveAndLoad(t *testing.T) {
	store := planstore.New()
	root := t.TempDir()

	original := &domain.PlanEnvelope{
		State:     domain.PlanStateDraft,
		UpdatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Plan:      samplePlan(),
	}

	require.NoError(t, store.Save(root, original))

	loaded, err := store.Load(root)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, domain.PlanStateDraft, loaded.State)
	assert.Equal(t, "plan-1", loaded.Plan.ID)
	assert.Equal(t, "arm64", loaded.Plan.TargetArchitecture)
	require.Len(t, loaded.Plan.Steps, 1)
	assert.Equal(t, "simd.cpp", loaded.Plan.Steps[0].File)
	assert.Equal(t, domain.ConfidenceMedium, loaded.Plan.Steps[0].Changes[0].Confidence)
}

func TestStore_LoadNonExistent(t *testing.T) {
	store := planstore.New()
	root := t.TempDir()

	loaded, err := store.Load(root)
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestStore_SaveOverwrites(t *testing.T) {
	store := planstore.New()
	root := t.TempDir()

	env := &domain.PlanEnvelope{State: domain.PlanStateDraft, Plan: samplePlan()}
	require.NoError(t, store.Save(root, env))

	env.State = domain.PlanStateSimulated
	require.NoError(t, store.Save(root, env))

	loaded, err := store.Load(root)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, domain.PlanStateSimulated, loaded.State)
}

func TestStore_WritesUnderStateDir(t *testing.T) {
	store := planstore.New()
	root := t.TempDir()

	require.NoError(t, store.Save(root, &domain.PlanEnvelope{Plan: samplePlan()}))

	_, err := os.Stat(filepath.Join(root, ".armshift", "plan.json"))
	assert.NoError(t, err)
}

func TestStore_CorruptFileErrors(t *testing.T) {
	store := planstore.New()
	root := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(root, ".armshift"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".armshift", "plan.json"), []byte("{broken"), 0644))

	_, err := store.Load(root)
	assert.Error(t, err)
}
