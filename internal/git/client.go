package git

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Client provides git operations for a repository. Worktree-mutating and
// plumbing operations shell out to the git binary; remote configuration is
// managed through go-git (see remote.go).
type Client struct {
	gitRoot string
}

// NewClient creates a new git client for the current directory. It fails if
// the current directory is not inside a git working copy.
func NewClient() (*Client, error) {
	return NewClientAt("")
}

// NewClientAt creates a git client rooted at the repository containing dir.
func NewClientAt(dir string) (*Client, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	if dir != "" {
		cmd.Dir = dir
	}
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("not in a git repository: %w", err)
	}
	return &Client{gitRoot: strings.TrimSpace(string(output))}, nil
}

// GitRoot returns the root directory of the git repository
func (c *Client) GitRoot() string {
	return c.gitRoot
}

// CurrentBranch returns the name of the current git branch
func (c *Client) CurrentBranch() (string, error) {
	output, err := c.output("rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}
	return output, nil
}

// HasUncommittedChanges checks if there are any uncommitted changes in the
// working directory, staged or not.
func (c *Client) HasUncommittedChanges() (bool, error) {
	output, err := c.output("status", "--porcelain")
	if err != nil {
		return false, fmt.Errorf("failed to check git status: %w", err)
	}
	return output != "", nil
}

// Fetch retrieves the latest refs for a single branch from the remote.
func (c *Client) Fetch(ctx context.Context, remote, branch string) error {
	cmd := exec.CommandContext(ctx, "git", "fetch", remote, branch)
	cmd.Dir = c.gitRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to fetch %s from %s: %w\nOutput: %s", branch, remote, err, string(output))
	}
	return nil
}

// FetchAll retrieves the latest refs for every branch on the remote.
func (c *Client) FetchAll(ctx context.Context, remote string) error {
	cmd := exec.CommandContext(ctx, "git", "fetch", remote)
	cmd.Dir = c.gitRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to fetch from %s: %w\nOutput: %s", remote, err, string(output))
	}
	return nil
}

// RemoteBranches lists the branch names known for a remote, without the
// remote prefix. The symbolic HEAD entry is skipped.
func (c *Client) RemoteBranches(remote string) ([]string, error) {
	output, err := c.output("for-each-ref", "--format=%(refname:short)", "refs/remotes/"+remote)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches of remote %s: %w", remote, err)
	}
	if output == "" {
		return nil, nil
	}

	prefix := remote + "/"
	var branches []string
	for _, ref := range strings.Split(output, "\n") {
		name := strings.TrimPrefix(strings.TrimSpace(ref), prefix)
		if name == "HEAD" || name == "" {
			continue
		}
		branches = append(branches, name)
	}
	return branches, nil
}

// RemoteRefExists checks whether the remote-tracking ref for branch exists.
func (c *Client) RemoteRefExists(remote, branch string) bool {
	cmd := exec.Command("git", "rev-parse", "--verify", "--quiet", "refs/remotes/"+remote+"/"+branch)
	cmd.Dir = c.gitRoot
	return cmd.Run() == nil
}

// AheadBehind returns how many commits local has that upstream does not,
// and vice versa.
func (c *Client) AheadBehind(local, upstream string) (ahead, behind int, err error) {
	output, err := c.output("rev-list", "--left-right", "--count", local+"..."+upstream)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count divergence between %s and %s: %w", local, upstream, err)
	}
	if _, err := fmt.Sscanf(output, "%d\t%d", &ahead, &behind); err != nil {
		return 0, 0, fmt.Errorf("unexpected rev-list output %q: %w", output, err)
	}
	return ahead, behind, nil
}

// Merge merges ref into the current branch with the given commit message,
// never opening an editor. A conflicted merge is left in place for the user
// to resolve.
func (c *Client) Merge(ctx context.Context, ref, message string) error {
	cmd := exec.CommandContext(ctx, "git", "merge", "--no-edit", "-m", message, ref)
	cmd.Dir = c.gitRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to merge %s: %w\nOutput: %s", ref, err, string(output))
	}
	return nil
}

// Rebase replays the current branch's local commits onto ref. A conflicted
// rebase is left paused for the user to continue or abort.
func (c *Client) Rebase(ctx context.Context, ref string) error {
	cmd := exec.CommandContext(ctx, "git", "rebase", ref)
	cmd.Dir = c.gitRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to rebase onto %s: %w\nOutput: %s", ref, err, string(output))
	}
	return nil
}

// GetCommitHash returns the commit hash for a given ref
func (c *Client) GetCommitHash(ref string) (string, error) {
	output, err := c.output("rev-parse", ref)
	if err != nil {
		return "", fmt.Errorf("failed to get commit hash for %s: %w", ref, err)
	}
	return output, nil
}

// ParentHashes returns the parent commit hashes of a commit.
func (c *Client) ParentHashes(ref string) ([]string, error) {
	output, err := c.output("rev-list", "--parents", "-n", "1", ref)
	if err != nil {
		return nil, fmt.Errorf("failed to get parents of %s: %w", ref, err)
	}
	fields := strings.Fields(output)
	if len(fields) < 1 {
		return nil, fmt.Errorf("unexpected rev-list output %q", output)
	}
	return fields[1:], nil
}

// output runs a git command in the repository and returns trimmed stdout.
func (c *Client) output(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = c.gitRoot
	output, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(output)), nil
}
