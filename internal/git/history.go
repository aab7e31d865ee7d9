package git

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/leakscout/leakscout/internal/scan"
)

// Filters limits which files of a commit become scannables. They apply only
// during content materialization, never during batching.
type Filters struct {
	MaxBytes int64                  // skip files larger than this (0 = no limit)
	Allow    func(path string) bool // nil = allow everything
}

// validateRoot validates and normalizes a git repository root path.
// Returns the cleaned absolute path or an error if invalid.
func validateRoot(root string) (string, error) {
	// Check for null bytes (potential injection)
	if strings.ContainsRune(root, 0) {
		return "", fmt.Errorf("invalid path: contains null byte")
	}

	cleaned := filepath.Clean(root)
	abs, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", root, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("cannot access path %q: %w", root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("path is not a directory: %s", root)
	}

	return abs, nil
}

// RepoMetadata returns (repo, commit, branch) best-effort for the given root.
// Empty strings are returned on failure. It avoids heavy git calls and uses
// simple plumbing to remain fast in CI.
func RepoMetadata(root string) (string, string, string) {
	validRoot, err := validateRoot(root)
	if err != nil {
		return "", "", ""
	}

	repo := ""
	if out, err := exec.Command("git", "-C", validRoot, "config", "--get", "remote.origin.url").Output(); err == nil {
		s := strings.TrimSpace(string(out))
		s = strings.TrimSuffix(s, ".git")
		if i := strings.LastIndex(s, ":"); i >= 0 {
			s = s[i+1:]
		}
		if i := strings.Index(s, "github.com/"); i >= 0 {
			s = s[i+len("github.com/"):]
		}
		repo = s
	}
	commit := ""
	if out, err := exec.Command("git", "-C", validRoot, "rev-parse", "HEAD").Output(); err == nil {
		commit = strings.TrimSpace(string(out))
	}
	branch := ""
	if out, err := exec.Command("git", "-C", validRoot, "rev-parse", "--abbrev-ref", "HEAD").Output(); err == nil {
		branch = strings.TrimSpace(string(out))
	}
	return repo, commit, branch
}

// RevList resolves a revision range spec (e.g. "abc123~1...") into an
// ordered list of commit SHAs, oldest first. An empty list with a nil error
// means the range resolved to no commits.
func RevList(root, rangeSpec string) ([]string, error) {
	validRoot, err := validateRoot(root)
	if err != nil {
		return nil, err
	}
	out, err := exec.Command("git", "-C", validRoot, "rev-list", "--reverse", rangeSpec).Output()
	if err != nil {
		return nil, fmt.Errorf("rev-list %s: %w", rangeSpec, err)
	}
	return strings.Fields(string(out)), nil
}

// LastCommits returns the SHAs of the last n commits reachable from HEAD,
// oldest first.
func LastCommits(root string, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	validRoot, err := validateRoot(root)
	if err != nil {
		return nil, err
	}
	out, err := exec.Command("git", "-C", validRoot, "rev-list", "--reverse",
		"--max-count", fmt.Sprintf("%d", n), "HEAD").Output()
	if err != nil {
		return nil, fmt.Errorf("rev-list HEAD: %w", err)
	}
	return strings.Fields(string(out)), nil
}

// Repository reads commit metadata and content out of a local repository.
// Metadata (author, changed paths) is loaded eagerly per commit; file
// contents are only read when the returned commit's patch parser runs.
type Repository struct {
	root    string
	repo    *gogit.Repository
	filters Filters
}

func Open(root string, filters Filters) (*Repository, error) {
	validRoot, err := validateRoot(root)
	if err != nil {
		return nil, err
	}
	repo, err := gogit.PlainOpen(validRoot)
	if err != nil {
		return nil, fmt.Errorf("open repository %s: %w", validRoot, err)
	}
	return &Repository{root: validRoot, repo: repo, filters: filters}, nil
}

// Commit builds a scan.Commit for the given SHA. Changed paths come from a
// tree diff against the first parent (the full tree for a root commit);
// blob contents are deferred to the patch parser.
func (r *Repository) Commit(sha string) (*scan.Commit, error) {
	c, err := r.repo.CommitObject(plumbing.NewHash(sha))
	if err != nil {
		return nil, fmt.Errorf("commit %s: %w", sha, err)
	}
	tree, err := c.Tree()
	if err != nil {
		return nil, fmt.Errorf("commit %s tree: %w", sha, err)
	}
	var parentTree *object.Tree
	if c.NumParents() > 0 {
		parent, err := c.Parent(0)
		if err != nil {
			return nil, fmt.Errorf("commit %s parent: %w", sha, err)
		}
		parentTree, err = parent.Tree()
		if err != nil {
			return nil, fmt.Errorf("commit %s parent tree: %w", sha, err)
		}
	}
	changes, err := object.DiffTree(parentTree, tree)
	if err != nil {
		return nil, fmt.Errorf("commit %s diff: %w", sha, err)
	}

	info := scan.CommitInfo{
		Author: c.Author.Name,
		Email:  c.Author.Email,
		Date:   c.Author.When.Format(time.RFC3339),
	}
	for _, ch := range changes {
		name := ch.To.Name
		if name == "" {
			name = ch.From.Name
		}
		info.Paths = append(info.Paths, name)
	}

	parser := func(commit *scan.Commit) ([]scan.Scannable, error) {
		var files []scan.Scannable
		for _, ch := range changes {
			if ch.To.Name == "" {
				continue // deletion, nothing to scan
			}
			if r.filters.Allow != nil && !r.filters.Allow(ch.To.Name) {
				continue
			}
			f, err := tree.File(ch.To.Name)
			if err != nil {
				return nil, fmt.Errorf("commit %s file %s: %w", commit.SHA, ch.To.Name, err)
			}
			if r.filters.MaxBytes > 0 && f.Size > r.filters.MaxBytes {
				continue
			}
			if bin, err := f.IsBinary(); err != nil || bin {
				continue
			}
			content, err := f.Contents()
			if err != nil {
				return nil, fmt.Errorf("commit %s file %s: %w", commit.SHA, ch.To.Name, err)
			}
			files = append(files, scan.Scannable{OwnerSHA: commit.SHA, Path: ch.To.Name, Content: content})
		}
		return files, nil
	}
	return scan.NewCommit(sha, info, parser), nil
}

// Commits builds scan.Commits for the given SHAs, preserving order.
func (r *Repository) Commits(shas []string) ([]*scan.Commit, error) {
	commits := make([]*scan.Commit, 0, len(shas))
	for _, sha := range shas {
		c, err := r.Commit(sha)
		if err != nil {
			return nil, err
		}
		commits = append(commits, c)
	}
	return commits, nil
}
