package syncer

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDirtyWorkingCopy is returned when the working copy has uncommitted
// changes and force mode is not active. Nothing has been touched at that
// point, so there is no state to clean up.
var ErrDirtyWorkingCopy = errors.New(
	"uncommitted changes detected: commit or stash them first, or re-run with --force to auto-stash")

// MissingUpstreamBranchError is returned when the requested branch does not
// exist on the upstream remote after fetching. Available lists the branches
// the remote does have, as a diagnostic aid.
type MissingUpstreamBranchError struct {
	Remote    string
	Branch    string
	Available []string
}

func (e *MissingUpstreamBranchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "branch %q does not exist on remote %q", e.Branch, e.Remote)
	if len(e.Available) > 0 {
		b.WriteString("\n\nAvailable upstream branches:\n")
		for _, name := range e.Available {
			fmt.Fprintf(&b, "  %s\n", name)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// ConflictError is returned when merge or rebase stops on content conflicts.
// The working copy is left in git's native conflicted state so the user can
// resolve and continue, or abort.
type ConflictError struct {
	Strategy Strategy
	Err      error
}

func (e *ConflictError) Error() string {
	switch e.Strategy {
	case StrategyRebase:
		return fmt.Sprintf("rebase stopped on conflicts.\n\n"+
			"To resolve:\n"+
			"  1. Fix the conflicted files\n"+
			"  2. git add <resolved-files>\n"+
			"  3. git rebase --continue\n\n"+
			"To give up:\n"+
			"  git rebase --abort\n\n"+
			"Error: %v", e.Err)
	default:
		return fmt.Sprintf("merge stopped on conflicts.\n\n"+
			"To resolve:\n"+
			"  1. Inspect conflict markers with: git diff\n"+
			"  2. git add <resolved-files>\n"+
			"  3. git commit\n\n"+
			"To give up:\n"+
			"  git merge --abort\n\n"+
			"Error: %v", e.Err)
	}
}

func (e *ConflictError) Unwrap() error { return e.Err }
