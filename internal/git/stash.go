package git

import (
	"fmt"
	"os/exec"
	"strings"
)

// StashPush saves all uncommitted changes, untracked files included, in a
// stash entry carrying the given label.
func (c *Client) StashPush(label string) error {
	cmd := exec.Command("git", "stash", "push", "--include-untracked", "-m", label)
	cmd.Dir = c.gitRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to stash changes: %w\nOutput: %s", err, string(output))
	}
	return nil
}

// StashPop reapplies and drops the stash entry carrying label. Other stash
// entries are left untouched. If reapplying conflicts, git keeps the entry
// and the error is returned for the caller to report.
func (c *Client) StashPop(label string) error {
	ref, err := c.findStash(label)
	if err != nil {
		return err
	}
	cmd := exec.Command("git", "stash", "pop", ref)
	cmd.Dir = c.gitRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to pop stash %s: %w\nOutput: %s", ref, err, string(output))
	}
	return nil
}

// StashCount returns the number of stash entries.
func (c *Client) StashCount() (int, error) {
	output, err := c.output("stash", "list")
	if err != nil {
		return 0, fmt.Errorf("failed to list stashes: %w", err)
	}
	if output == "" {
		return 0, nil
	}
	return len(strings.Split(output, "\n")), nil
}

// findStash locates the stash ref whose message contains label.
func (c *Client) findStash(label string) (string, error) {
	output, err := c.output("stash", "list", "--format=%gd %gs")
	if err != nil {
		return "", fmt.Errorf("failed to list stashes: %w", err)
	}
	for _, line := range strings.Split(output, "\n") {
		ref, message, found := strings.Cut(line, " ")
		if found && strings.Contains(message, label) {
			return ref, nil
		}
	}
	return "", fmt.Errorf("no stash entry labeled %q", label)
}
