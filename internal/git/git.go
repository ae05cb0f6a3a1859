// Package git provides git repository management for the firmware
// source tree.
package git

import (
	"fmt"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/mpy-ops/mpy-ops/internal/log"
)

// Repository represents the firmware source repository with its local
// path, remote URL, and pinned reference.
type Repository struct {
	Path      string
	URL       string
	Reference string

	repo   *git.Repository
	logger log.Logger
}

// NewRepository creates a new Repository instance. The repository is not
// touched on disk until Sync is called.
func NewRepository(path, url, reference string, logger log.Logger) *Repository {
	return &Repository{
		Path:      path,
		URL:       url,
		Reference: reference,
		logger:    logger,
	}
}

// Sync clones the remote repository (submodules included) to the local
// path if it doesn't exist, or opens the existing clone. Afterwards the
// pinned reference is checked out and submodules are initialized.
func (r *Repository) Sync() error {
	r.logger.Info("Syncing firmware repository", "path", r.Path, "url", r.URL)

	repo, err := git.PlainClone(r.Path, false, &git.CloneOptions{
		URL:               r.URL,
		RecurseSubmodules: git.DefaultSubmoduleRecursionDepth,
		Progress:          os.Stdout,
	})

	if err != nil {
		if err != git.ErrRepositoryAlreadyExists {
			return fmt.Errorf("failed to clone %s: %w", r.URL, err)
		}

		r.logger.Debug("Repository already exists, opening", "path", r.Path)
		repo, err = git.PlainOpen(r.Path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", r.Path, err)
		}
	}

	r.repo = repo

	if r.Reference != "" {
		r.logger.Debug("Checking out pinned reference", "ref", r.Reference)
		if err := r.checkoutReference(); err != nil {
			return err
		}
	}

	return r.updateSubmodules()
}

// checkoutReference checks out the pinned reference, which can be a
// commit hash, tag, or branch.
func (r *Repository) checkoutReference() error {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return err
	}

	// Only a full hex hash may take the hash path. NewHash maps any
	// other string to the zero hash, which Checkout treats as a plain
	// HEAD checkout and succeeds without moving anything.
	if plumbing.IsHash(r.Reference) {
		r.logger.Debug("Checking out reference as commit hash", "hash", r.Reference)
		return worktree.Checkout(&git.CheckoutOptions{
			Hash: plumbing.NewHash(r.Reference),
		})
	}

	// Tags and branches resolve through the clone's refs. Remote
	// branches are fetched under refs/remotes/origin and do not exist
	// as local branches, so they are tried last.
	candidates := []plumbing.ReferenceName{
		plumbing.NewTagReferenceName(r.Reference),
		plumbing.NewBranchReferenceName(r.Reference),
		plumbing.NewRemoteReferenceName("origin", r.Reference),
	}

	for _, name := range candidates {
		ref, err := r.repo.Reference(name, true)
		if err != nil {
			continue
		}
		r.logger.Debug("Checking out reference", "ref", name.String(), "hash", ref.Hash().String())
		return worktree.Checkout(&git.CheckoutOptions{
			Hash: ref.Hash(),
		})
	}

	return fmt.Errorf("reference %q not found in %s", r.Reference, r.URL)
}

// updateSubmodules initializes and updates every submodule of the clone.
// The checkout of the pinned reference can move submodule pins, so this
// runs after checkoutReference.
func (r *Repository) updateSubmodules() error {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return err
	}

	submodules, err := worktree.Submodules()
	if err != nil {
		return fmt.Errorf("failed to enumerate submodules: %w", err)
	}

	if len(submodules) == 0 {
		r.logger.Debug("No submodules to update")
		return nil
	}

	r.logger.Info("Updating submodules", "count", len(submodules))
	return submodules.Update(&git.SubmoduleUpdateOptions{
		Init: true,
	})
}
