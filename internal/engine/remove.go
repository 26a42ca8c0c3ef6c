package engine

import (
	"context"
	"fmt"

	"github.com/paddock-dev/paddock/internal/audit"
	"github.com/paddock-dev/paddock/internal/errors"
	"github.com/paddock-dev/paddock/internal/registry"
)

// Remove untracks a sandbox. Destructive git operations run first so the
// registry entry, the only record of the branch name, is not lost before a
// failed deletion; Force inverts that and drops the entry regardless.
func (e *Engine) Remove(ctx context.Context, opts RemoveOptions) (*RemoveResult, error) {
	rec, err := e.lookup(opts.Name)
	if err != nil {
		return nil, err
	}

	deletePath := opts.DeletePath || opts.Purge
	deleteBranch := opts.DeleteBranch || opts.Purge

	result := &RemoveResult{Name: opts.Name}

	if deletePath {
		if e.fs.Exists(rec.Path) {
			if err := e.git.WorktreeRemove(ctx, e.repo.Root, rec.Path, true); err != nil {
				if !opts.Force {
					return nil, err
				}
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("failed to remove worktree at %s, continuing (--force): %v", rec.Path, err))
			} else {
				result.PathRemoved = true
			}
		} else {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("worktree path %s already missing, skipping removal", rec.Path))
		}
	}

	if deleteBranch && rec.Branch != "" {
		if e.git.BranchExists(ctx, e.repo.Root, rec.Branch) {
			if err := e.git.BranchDelete(ctx, e.repo.Root, rec.Branch, true); err != nil {
				if !opts.Force {
					return nil, err
				}
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("failed to delete branch %s, continuing (--force): %v", rec.Branch, err))
			} else {
				result.BranchDeleted = true
			}
		} else {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("branch %s already missing, skipping deletion", rec.Branch))
		}
	}

	err = e.store.Update(func(reg *registry.Registry) error {
		if reg.Get(opts.Name) == nil {
			return errors.NotTracked(opts.Name)
		}
		reg.Delete(opts.Name)
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logEvent(audit.EventRemove, opts.Name,
		fmt.Sprintf("deletePath=%t deleteBranch=%t", deletePath, deleteBranch))
	return result, nil
}

// Prune sweeps the registry: entries whose worktree path is gone are
// dropped, plus entries whose branch vanished when OrphanedBranch is set.
// A dry run only reports the candidates.
func (e *Engine) Prune(ctx context.Context, opts PruneOptions) (*PruneResult, error) {
	reg, err := e.store.Load()
	if err != nil {
		return nil, err
	}

	result := &PruneResult{
		Removed: []PruneCandidate{},
		Kept:    []string{},
		DryRun:  opts.DryRun,
	}

	for _, name := range reg.Names() {
		rec := reg.Get(name)
		missingPath := rec.Path == "" || !e.fs.Exists(rec.Path)
		missingBranch := rec.Branch != "" && !e.git.BranchExists(ctx, e.repo.Root, rec.Branch)

		if missingPath || (opts.OrphanedBranch && missingBranch) {
			result.Removed = append(result.Removed, PruneCandidate{
				Name:          name,
				Branch:        rec.Branch,
				MissingPath:   missingPath,
				MissingBranch: missingBranch,
			})
		} else {
			result.Kept = append(result.Kept, name)
		}
	}

	if opts.DryRun || len(result.Removed) == 0 {
		return result, nil
	}

	for _, candidate := range result.Removed {
		if !opts.DeleteBranch || candidate.Branch == "" {
			continue
		}
		if !e.git.BranchExists(ctx, e.repo.Root, candidate.Branch) {
			continue
		}
		if err := e.git.BranchDelete(ctx, e.repo.Root, candidate.Branch, true); err != nil && !opts.Force {
			return nil, err
		}
	}

	err = e.store.Update(func(reg *registry.Registry) error {
		for _, candidate := range result.Removed {
			reg.Delete(candidate.Name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logEvent(audit.EventPrune, "", fmt.Sprintf("removed=%d kept=%d", len(result.Removed), len(result.Kept)))
	return result, nil
}
