// Package planstore persists the current migration plan under .armshift/.
package planstore

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/armshift/armshift/internal/domain"
)

// Store is a file-based implementation of domain.PlanStore.
type Store struct{}

// New creates a new file-based plan store.
func New() *Store {
	return &Store{}
}

// Load reads the persisted plan envelope. Returns (nil, nil) if no plan
// has been stored.
func (s *Store) Load(root string) (*domain.PlanEnvelope, error) {
	data, err := os.ReadFile(planPath(root))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // no stored plan is not an error
		}
		return nil, err
	}

	var env domain.PlanEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// Save writes the plan envelope to disk, creating the state directory
// as needed.
func (s *Store) Save(root string, env *domain.PlanEnvelope) error {
	if err := os.MkdirAll(stateDir(root), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(planPath(root), data, 0644)
}

func stateDir(root string) string {
	return filepath.Join(root, ".armshift")
}

func planPath(root string) string {
	return filepath.Join(root, ".armshift", "plan.json")
}
