package scaffold

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-git/go-billy/v5"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/filesystem"
)

// storerCacheSize bounds the git object LRU used during bootstrap. The
// initial commit of a generated tree is small.
const storerCacheSize = 100

const initialCommitMessage = "Initial scaffold"

// InitRepository initializes a git repository at the root of fsys, stages
// the given paths and commits them with the provided signature. It
// returns the commit hash, or an empty string when a repository already
// exists and nothing was done.
func InitRepository(fsys billy.Filesystem, name, email, message string, paths []string) (string, error) {
	dotGitFS, err := fsys.Chroot(".git")
	if err != nil {
		return "", fmt.Errorf("scaffold: create .git directory: %w", err)
	}

	storage := filesystem.NewStorage(dotGitFS, cache.NewObjectLRU(cache.FileSize(storerCacheSize)))

	repo, err := gogit.Init(storage, fsys)
	if errors.Is(err, gogit.ErrRepositoryAlreadyExists) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("scaffold: init repository: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("scaffold: open worktree: %w", err)
	}

	for _, p := range paths {
		if _, addErr := worktree.Add(p); addErr != nil {
			return "", fmt.Errorf("scaffold: stage %s: %w", p, addErr)
		}
	}

	who := &object.Signature{
		Name:  name,
		Email: email,
		When:  time.Now().UTC(),
	}
	hash, err := worktree.Commit(message, &gogit.CommitOptions{
		Author:    who,
		Committer: who,
	})
	if err != nil {
		return "", fmt.Errorf("scaffold: commit: %w", err)
	}

	return hash.String(), nil
}

// bootstrapGit records the written tree as the initial commit. A
// repository that already exists is left untouched so re-runs stay
// idempotent.
func (s *Scaffolder) bootstrapGit(paths []string) error {
	hash, err := InitRepository(s.fs, s.opts.GitName, s.opts.GitEmail, initialCommitMessage, paths)
	if err != nil {
		return err
	}
	if hash == "" {
		s.logger.Debug("git repository already present, skipping bootstrap")
		return nil
	}
	s.logger.Info("initialized git repository", "commit", hash)
	return nil
}
