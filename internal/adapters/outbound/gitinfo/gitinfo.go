package gitinfo

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/armshift/armshift/internal/domain"
)

// Inspector implements domain.GitInspector using go-git.
type Inspector struct{}

func New() *Inspector {
	return &Inspector{}
}

// Context reports the repository state for root. A path outside any
// repository, or a repository without commits, yields (nil, nil).
func (i *Inspector) Context(root string) (*domain.GitContext, error) {
	repo, err := git.PlainOpen(root)
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening git repo: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting HEAD: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, err
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("reading worktree status: %w", err)
	}

	return &domain.GitContext{
		Commit: head.Hash().String(),
		Dirty:  !status.IsClean(),
	}, nil
}
