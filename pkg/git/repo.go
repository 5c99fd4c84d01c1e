package git

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Repo answers questions about the repository a project lives in. deploy.sh
// runs `git pull` and Bitbucket runs the pipelines, so both need a checkout
// with a remote.
type Repo struct {
	root string
}

func NewRepo(root string) *Repo {
	return &Repo{root: root}
}

func (r *Repo) Root() string {
	return r.root
}

// HasGitRepo reports whether root is inside a work tree.
func (r *Repo) HasGitRepo() bool {
	if _, err := os.Stat(filepath.Join(r.root, ".git")); err == nil {
		return true
	}
	out, err := r.git("rev-parse", "--is-inside-work-tree")
	return err == nil && out == "true"
}

// CurrentBranch returns the checked out branch, or an error on a detached
// HEAD or an unborn branch.
func (r *Repo) CurrentBranch() (string, error) {
	branch, err := r.git("symbolic-ref", "--short", "-q", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to resolve current branch: %w", err)
	}
	if branch == "" {
		return "", fmt.Errorf("HEAD is detached")
	}
	return branch, nil
}

func (r *Repo) RemoteURL(name string) (string, error) {
	url, err := r.git("remote", "get-url", name)
	if err != nil {
		return "", fmt.Errorf("remote %q not configured: %w", name, err)
	}
	return url, nil
}

func (r *Repo) git(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.root
	output, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(output)), nil
}

// IsBitbucketRemote matches https and ssh remotes on bitbucket.org.
func IsBitbucketRemote(url string) bool {
	url = strings.ToLower(url)
	return strings.Contains(url, "bitbucket.org:") || strings.Contains(url, "bitbucket.org/")
}
