package vcs

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// GitClient implements Client by invoking the git binary.
type GitClient struct {
	// GitPath is the binary to invoke; defaults to "git" on PATH.
	GitPath string
}

// NewGitClient creates a client that invokes git from PATH.
func NewGitClient() *GitClient {
	return &GitClient{GitPath: "git"}
}

// IsRepository reports whether dir contains git metadata. Both a .git
// directory and a .git file (worktrees, submodules) count.
func (c *GitClient) IsRepository(dir string) bool {
	if dir == "" {
		return false
	}
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// Describe runs `git describe --tags --long` and parses its output.
func (c *GitClient) Describe(ctx context.Context, dir string) (Description, error) {
	out, err := c.run(ctx, dir, "describe", "--tags", "--long", "--abbrev=7")
	if err != nil {
		return Description{}, err
	}
	return parseDescribe(out)
}

// CurrentBranch runs `git rev-parse --abbrev-ref HEAD`. A detached head
// yields the literal marker "HEAD".
func (c *GitClient) CurrentBranch(ctx context.Context, dir string) (string, error) {
	return c.run(ctx, dir, "rev-parse", "--abbrev-ref", "HEAD")
}

// Head runs `git rev-parse HEAD`.
func (c *GitClient) Head(ctx context.Context, dir string) (string, error) {
	return c.run(ctx, dir, "rev-parse", "HEAD")
}

func (c *GitClient) run(ctx context.Context, dir string, args ...string) (string, error) {
	gitPath := c.GitPath
	if gitPath == "" {
		gitPath = "git"
	}
	cmd := exec.CommandContext(ctx, gitPath, append([]string{"-C", dir}, args...)...)
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git %s failed: %w", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(out)), nil
}

// parseDescribe splits `<tag>-<distance>-g<hash>`. The tag itself may contain
// dashes, so the output is split from the right.
func parseDescribe(out string) (Description, error) {
	hashSep := strings.LastIndex(out, "-g")
	if hashSep < 0 {
		return Description{}, fmt.Errorf("unexpected describe output %q", out)
	}
	hash := out[hashSep+2:]

	rest := out[:hashSep]
	distSep := strings.LastIndex(rest, "-")
	if distSep < 0 {
		return Description{}, fmt.Errorf("unexpected describe output %q", out)
	}
	distance, err := strconv.Atoi(rest[distSep+1:])
	if err != nil {
		return Description{}, fmt.Errorf("unexpected describe output %q: %w", out, err)
	}

	return Description{
		Tag:        rest[:distSep],
		Distance:   distance,
		CommitHash: hash,
	}, nil
}
