package git

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// IsRepoURL reports whether source looks like a clonable GitHub address rather
// than a local path.
func IsRepoURL(source string) bool {
	return strings.HasPrefix(source, "https://github.com/") ||
		strings.HasPrefix(source, "http://github.com/") ||
		strings.HasPrefix(source, "git@github.com:")
}

// Clone performs a shallow clone of url into a fresh temporary directory and
// returns the checkout path. The caller owns the directory and must remove it.
func Clone(ctx context.Context, url string) (string, error) {
	if _, err := exec.LookPath("git"); err != nil {
		return "", fmt.Errorf("git is not installed: %w", err)
	}

	dir, err := os.MkdirTemp("", "comprehend-"+RepoName(url)+"-")
	if err != nil {
		return "", fmt.Errorf("cannot create temp directory: %w", err)
	}

	cmd := exec.CommandContext(ctx, "git", "clone", "--depth", "1", url, dir)
	if out, err := cmd.CombinedOutput(); err != nil {
		os.RemoveAll(dir)
		msg := strings.TrimSpace(string(out))
		if strings.Contains(msg, "not found") || strings.Contains(msg, "Repository not found") {
			return "", fmt.Errorf("repository not found: %s", url)
		}
		return "", fmt.Errorf("git clone failed: %v: %s", err, msg)
	}
	return dir, nil
}

// RepoName extracts the repository name from a GitHub URL.
func RepoName(url string) string {
	name := strings.TrimSuffix(url, "/")
	name = strings.TrimSuffix(name, ".git")
	if i := strings.LastIndexAny(name, "/:"); i >= 0 {
		name = name[i+1:]
	}
	if name == "" {
		return "repo"
	}
	return name
}
