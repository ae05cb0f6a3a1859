package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpy-ops/mpy-ops/internal/testutil"
)

// createTestRepo creates a local git repository with an initial commit
// and returns the repository plus the commit hash.
func createTestRepo(t *testing.T, repoDir string) (*gogit.Repository, string) {
	t.Helper()

	repo, err := gogit.PlainInit(repoDir, false)
	require.NoError(t, err)

	worktree, err := repo.Worktree()
	require.NoError(t, err)

	err = os.WriteFile(filepath.Join(repoDir, "README.md"), []byte("firmware sources"), 0600)
	require.NoError(t, err)

	_, err = worktree.Add("README.md")
	require.NoError(t, err)

	hash, err := worktree.Commit("initial commit", &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  "test",
			Email: "test@example.com",
			When:  time.Now(),
		},
	})
	require.NoError(t, err)

	return repo, hash.String()
}

func TestSync_ClonesFreshRepository(t *testing.T) {
	srcDir := t.TempDir()
	createTestRepo(t, srcDir)

	destDir := filepath.Join(t.TempDir(), "micropython")
	repo := NewRepository(destDir, srcDir, "", testutil.NewTestLogger(t))

	require.NoError(t, repo.Sync())
	assert.FileExists(t, filepath.Join(destDir, "README.md"))
}

func TestSync_OpensExistingClone(t *testing.T) {
	srcDir := t.TempDir()
	createTestRepo(t, srcDir)

	destDir := filepath.Join(t.TempDir(), "micropython")
	repo := NewRepository(destDir, srcDir, "", testutil.NewTestLogger(t))

	require.NoError(t, repo.Sync())
	// Second sync must open the existing clone instead of failing on
	// the already-cloned path.
	require.NoError(t, repo.Sync())
}

func TestSync_ChecksOutPinnedCommit(t *testing.T) {
	srcDir := t.TempDir()
	src, firstHash := createTestRepo(t, srcDir)

	// Add a second commit so HEAD moves past the pin.
	worktree, err := src.Worktree()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "second.txt"), []byte("later"), 0600))
	_, err = worktree.Add("second.txt")
	require.NoError(t, err)
	_, err = worktree.Commit("second commit", &gogit.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	destDir := filepath.Join(t.TempDir(), "micropython")
	repo := NewRepository(destDir, srcDir, firstHash, testutil.NewTestLogger(t))

	require.NoError(t, repo.Sync())
	assert.FileExists(t, filepath.Join(destDir, "README.md"))
	assert.NoFileExists(t, filepath.Join(destDir, "second.txt"))
}

// TestSync_ChecksOutPinnedBranch pins a release branch that is not the
// source repository's HEAD and verifies the clone ends up on it.
func TestSync_ChecksOutPinnedBranch(t *testing.T) {
	srcDir := t.TempDir()
	src, _ := createTestRepo(t, srcDir)

	worktree, err := src.Worktree()
	require.NoError(t, err)

	// Branch off, commit the release marker, then move HEAD back so the
	// clone's default branch does not contain it.
	require.NoError(t, worktree.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName("v1.22-release"),
		Create: true,
	}))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "release.txt"), []byte("pinned"), 0600))
	_, err = worktree.Add("release.txt")
	require.NoError(t, err)
	_, err = worktree.Commit("release commit", &gogit.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	require.NoError(t, worktree.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName("master"),
	}))

	destDir := filepath.Join(t.TempDir(), "micropython")
	repo := NewRepository(destDir, srcDir, "v1.22-release", testutil.NewTestLogger(t))

	require.NoError(t, repo.Sync())
	assert.FileExists(t, filepath.Join(destDir, "release.txt"))
}

// TestSync_UnknownReferenceFails verifies a pin that matches nothing in
// the clone is reported instead of silently left on the default branch.
func TestSync_UnknownReferenceFails(t *testing.T) {
	srcDir := t.TempDir()
	createTestRepo(t, srcDir)

	destDir := filepath.Join(t.TempDir(), "micropython")
	repo := NewRepository(destDir, srcDir, "no-such-release", testutil.NewTestLogger(t))

	err := repo.Sync()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-release")
}

func TestSync_BadRemote(t *testing.T) {
	destDir := filepath.Join(t.TempDir(), "micropython")
	repo := NewRepository(destDir, filepath.Join(t.TempDir(), "nope"), "", testutil.NewTestLogger(t))

	assert.Error(t, repo.Sync())
}
