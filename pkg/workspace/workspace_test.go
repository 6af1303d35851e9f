package workspace

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write file %s: %v", path, err)
	}
}

func stageAll(t *testing.T, dir string, worktree *git.Worktree) {
	t.Helper()
	if err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == filepath.Join(dir, ".git") {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if strings.HasPrefix(rel, ".git/") {
			return nil
		}
		_, err = worktree.Add(rel)
		return err
	}); err != nil {
		t.Fatalf("stage files: %v", err)
	}
}

func commitAll(t *testing.T, dir, message string) (*git.Repository, string) {
	t.Helper()
	repo, err := git.PlainOpen(dir)
	if err != nil {
		t.Fatalf("PlainOpen: %v", err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	stageAll(t, dir, worktree)
	hash, err := worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "hifriend",
			Email: "hifriend@example.com",
			When:  time.Now(),
		},
	})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	return repo, hash.String()
}

func initGitRepo(t *testing.T, dir string) (*git.Repository, string) {
	t.Helper()
	if _, err := git.PlainInit(dir, false); err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	return commitAll(t, dir, "init")
}

func TestChangedSinceHEADClassifiesByStatus(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "kept.rb"), "a = 1\n")
	writeFile(t, filepath.Join(dir, "removed.rb"), "b = 2\n")
	initGitRepo(t, dir)

	writeFile(t, filepath.Join(dir, "kept.rb"), "a = 2\n")
	writeFile(t, filepath.Join(dir, "new.rb"), "c = 3\n")
	if err := os.Remove(filepath.Join(dir, "removed.rb")); err != nil {
		t.Fatalf("remove: %v", err)
	}

	changed, err := ChangedSinceHEAD(dir)
	if err != nil {
		t.Fatalf("ChangedSinceHEAD: %v", err)
	}
	if len(changed.Added) != 1 || changed.Added[0] != "new.rb" {
		t.Fatalf("expected new.rb added, got %v", changed.Added)
	}
	if len(changed.Modified) != 1 || changed.Modified[0] != "kept.rb" {
		t.Fatalf("expected kept.rb modified, got %v", changed.Modified)
	}
	if len(changed.Deleted) != 1 || changed.Deleted[0] != "removed.rb" {
		t.Fatalf("expected removed.rb deleted, got %v", changed.Deleted)
	}
}

func TestChangedFilesStaleAndToWalk(t *testing.T) {
	c := &ChangedFiles{
		Added:    []string{"new.rb"},
		Modified: []string{"kept.rb"},
		Deleted:  []string{"gone.rb"},
	}
	stale := c.Stale()
	if len(stale) != 2 || stale[0] != "gone.rb" || stale[1] != "kept.rb" {
		t.Fatalf("unexpected Stale() result: %v", stale)
	}
	toWalk := c.ToWalk()
	if len(toWalk) != 2 || toWalk[0] != "kept.rb" || toWalk[1] != "new.rb" {
		t.Fatalf("unexpected ToWalk() result: %v", toWalk)
	}
}

func TestChangedBetweenCommitsDiffsTwoRevisions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.rb"), "x = 1\n")
	_, fromRev := initGitRepo(t, dir)

	writeFile(t, filepath.Join(dir, "a.rb"), "x = 2\n")
	writeFile(t, filepath.Join(dir, "b.rb"), "y = 1\n")
	_, toRev := commitAll(t, dir, "second")

	changed, err := ChangedBetweenCommits(dir, fromRev, toRev)
	if err != nil {
		t.Fatalf("ChangedBetweenCommits: %v", err)
	}
	if len(changed.Added) != 1 || changed.Added[0] != "b.rb" {
		t.Fatalf("expected b.rb added, got %v", changed.Added)
	}
	if len(changed.Modified) != 1 || changed.Modified[0] != "a.rb" {
		t.Fatalf("expected a.rb modified, got %v", changed.Modified)
	}
}
