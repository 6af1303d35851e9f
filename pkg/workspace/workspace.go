// Package workspace computes the changed-file set between two revisions
// (or between HEAD and the working tree) of a git-backed project, the
// host-side mechanism that drives incremental re-analysis: which files
// get re-walked, and which declaration paths get dropped from dangling
// methods in the process.
package workspace

import (
	"fmt"
	"sort"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"
)

// ChangedFiles partitions one comparison's results by kind of change,
// each list sorted for deterministic output.
type ChangedFiles struct {
	Added    []string
	Modified []string
	Deleted  []string
}

// Stale returns every path whose prior analysis is no longer valid and
// should have its declarations dropped before the next walk: modified
// and deleted files both count, added files have no prior declarations
// to drop.
func (c *ChangedFiles) Stale() []string {
	out := make([]string, 0, len(c.Modified)+len(c.Deleted))
	out = append(out, c.Modified...)
	out = append(out, c.Deleted...)
	sort.Strings(out)
	return out
}

// ToWalk returns every path that needs a fresh walk: added and modified
// files. Deleted files are dropped from bookkeeping but never walked.
func (c *ChangedFiles) ToWalk() []string {
	out := make([]string, 0, len(c.Added)+len(c.Modified))
	out = append(out, c.Added...)
	out = append(out, c.Modified...)
	sort.Strings(out)
	return out
}

// ChangedSinceHEAD reports the working tree's uncommitted changes
// relative to HEAD, the common case of "re-analyze what I just edited".
func ChangedSinceHEAD(repoRoot string) (*ChangedFiles, error) {
	repo, err := git.PlainOpen(repoRoot)
	if err != nil {
		return nil, fmt.Errorf("workspace: open %s: %w", repoRoot, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("workspace: worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("workspace: status: %w", err)
	}

	out := &ChangedFiles{}
	for path, fileStatus := range status {
		if fileStatus == nil {
			continue
		}
		code := fileStatus.Worktree
		if code == git.Unmodified {
			// Unchanged against the index: report a staged change, if any.
			code = fileStatus.Staging
		}
		switch code {
		case git.Untracked, git.Added:
			out.Added = append(out.Added, path)
		case git.Deleted:
			out.Deleted = append(out.Deleted, path)
		case git.Modified, git.Renamed, git.Copied, git.UpdatedButUnmerged:
			out.Modified = append(out.Modified, path)
		}
	}
	sort.Strings(out.Added)
	sort.Strings(out.Modified)
	sort.Strings(out.Deleted)
	return out, nil
}

// ChangedBetweenCommits reports the file-level diff between two
// revisions (branch names, tags, or commit hashes), the mechanism behind
// re-analyzing only what a CI run's merge base touched.
func ChangedBetweenCommits(repoRoot, fromRev, toRev string) (*ChangedFiles, error) {
	repo, err := git.PlainOpen(repoRoot)
	if err != nil {
		return nil, fmt.Errorf("workspace: open %s: %w", repoRoot, err)
	}

	fromCommit, err := resolveCommit(repo, fromRev)
	if err != nil {
		return nil, fmt.Errorf("workspace: resolve %s: %w", fromRev, err)
	}
	toCommit, err := resolveCommit(repo, toRev)
	if err != nil {
		return nil, fmt.Errorf("workspace: resolve %s: %w", toRev, err)
	}

	fromTree, err := fromCommit.Tree()
	if err != nil {
		return nil, fmt.Errorf("workspace: tree for %s: %w", fromRev, err)
	}
	toTree, err := toCommit.Tree()
	if err != nil {
		return nil, fmt.Errorf("workspace: tree for %s: %w", toRev, err)
	}

	changes, err := fromTree.Diff(toTree)
	if err != nil {
		return nil, fmt.Errorf("workspace: diff %s..%s: %w", fromRev, toRev, err)
	}

	out := &ChangedFiles{}
	for _, change := range changes {
		action, err := change.Action()
		if err != nil {
			continue
		}
		switch action {
		case merkletrie.Insert:
			out.Added = append(out.Added, change.To.Name)
		case merkletrie.Delete:
			out.Deleted = append(out.Deleted, change.From.Name)
		case merkletrie.Modify:
			out.Modified = append(out.Modified, change.To.Name)
		}
	}
	sort.Strings(out.Added)
	sort.Strings(out.Modified)
	sort.Strings(out.Deleted)
	return out, nil
}

func resolveCommit(repo *git.Repository, rev string) (*object.Commit, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, err
	}
	return repo.CommitObject(*hash)
}
