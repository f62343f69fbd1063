// Package gitrepo builds repository snapshots from a local clone, so a
// scan can run without touching the hosting service at all.
package gitrepo

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/repotriage/repotriage/internal/domain"
	"github.com/repotriage/repotriage/internal/domain/sampler"
)

// Loader reads snapshots from local git working copies.
type Loader struct{}

func New() *Loader { return &Loader{} }

// IsGitRepo reports whether path is inside a git repository.
func (l *Loader) IsGitRepo(path string) bool {
	_, err := git.PlainOpen(path)
	return err == nil
}

// Snapshot reads the HEAD tree of the repository at path. The snapshot ID
// comes from the origin remote when one exists, otherwise from the
// directory name.
func (l *Loader) Snapshot(path string, opts domain.FetchOptions) (*domain.Snapshot, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("opening git repo at %s: %w", path, err)
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolving HEAD: %w", err)
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("reading HEAD commit: %w", err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("reading HEAD tree: %w", err)
	}

	snap := &domain.Snapshot{
		ID:            l.repoID(repo, path),
		DefaultBranch: head.Name().Short(),
	}
	for _, entry := range tree.Entries {
		snap.TopLevel = append(snap.TopLevel, entry.Name)
	}

	maxFiles := opts.MaxFiles
	if maxFiles <= 0 {
		maxFiles = domain.DefaultMaxFiles
	}
	maxBytes := opts.MaxFileBytes
	if maxBytes <= 0 {
		maxBytes = domain.DefaultMaxFileBytes
	}

	err = tree.Files().ForEach(func(f *object.File) error {
		if len(snap.Files) >= maxFiles {
			return errors.New("done")
		}
		if !sampler.Eligible(f.Name) || f.Size > maxBytes {
			return nil
		}
		content, err := f.Contents()
		if err != nil {
			return nil // unreadable blob, skip
		}
		snap.Files = append(snap.Files, domain.FileEntry{
			Path:    f.Name,
			Size:    f.Size,
			Content: content,
		})
		return nil
	})
	if err != nil && err.Error() != "done" {
		return nil, fmt.Errorf("walking HEAD tree: %w", err)
	}

	return snap, nil
}

// repoID derives owner/name from the origin remote URL, falling back to
// the directory base name.
func (l *Loader) repoID(repo *git.Repository, path string) string {
	if remote, err := repo.Remote("origin"); err == nil {
		urls := remote.Config().URLs
		if len(urls) > 0 {
			if ref, err := domain.ParseRepoRef(normalizeRemote(urls[0])); err == nil {
				return ref.String()
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Base(path)
	}
	return filepath.Base(abs)
}

// normalizeRemote rewrites scp-like git URLs (git@github.com:owner/repo)
// into a shape ParseRepoRef understands.
func normalizeRemote(url string) string {
	return strings.Replace(url, "github.com:", "github.com/", 1)
}
