package syncer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GitClient is the narrow set of repository capabilities the sync sequence
// needs. internal/git provides the real implementation; tests use a mock.
type GitClient interface {
	GitRoot() string
	CurrentBranch() (string, error)
	HasUncommittedChanges() (bool, error)

	Remotes() ([]string, error)
	RemoteURL(name string) (string, error)
	AddRemote(name, url string) error
	SetRemoteURL(name, url string) error

	Fetch(ctx context.Context, remote, branch string) error
	FetchAll(ctx context.Context, remote string) error
	RemoteBranches(remote string) ([]string, error)
	RemoteRefExists(remote, branch string) bool

	AheadBehind(local, upstream string) (ahead, behind int, err error)

	Merge(ctx context.Context, ref, message string) error
	Rebase(ctx context.Context, ref string) error

	StashPush(label string) error
	StashPop(label string) error
}

// Events receives progress notifications as the sync advances. The engine
// reports through it so commands can print sequentially while the run is
// still in flight.
type Events interface {
	Info(msg string)
	Success(msg string)
	Warning(msg string)
}

// NopEvents discards all notifications.
type NopEvents struct{}

func (NopEvents) Info(string)    {}
func (NopEvents) Success(string) {}
func (NopEvents) Warning(string) {}

// Options configures a single sync run.
type Options struct {
	Branch      string   // branch to synchronize
	Strategy    Strategy // merge or rebase
	Force       bool     // auto-stash uncommitted changes
	Remote      string   // upstream remote name
	UpstreamURL string   // canonical upstream URL
	FetchAll    bool     // fetch every branch instead of just Branch
}

func (o Options) validate() error {
	if _, err := ParseStrategy(string(o.Strategy)); err != nil {
		return err
	}
	if o.Branch == "" {
		return fmt.Errorf("branch name must not be empty")
	}
	if o.Remote == "" {
		return fmt.Errorf("remote name must not be empty")
	}
	if o.UpstreamURL == "" {
		return fmt.Errorf("upstream URL is not configured: add it to .forksync.yaml or set FORKSYNC_UPSTREAM_URL")
	}
	return nil
}

// Result describes what a run did. It is returned even on error so callers
// can tell the user about partially applied state (e.g. a stash that was
// created but not restored).
type Result struct {
	Branch          string
	Strategy        Strategy
	Ahead           int
	Behind          int
	DivergenceKnown bool
	RemoteCreated   bool
	RemoteRepaired  bool
	Stashed         bool
	StashLabel      string
	StashRestored   bool
	StashConflict   bool
}

// Syncer sequences a fork synchronization run against a GitClient.
type Syncer struct {
	git    GitClient
	events Events
}

// New creates a Syncer. A nil events sink is replaced with NopEvents.
func New(git GitClient, events Events) *Syncer {
	if events == nil {
		events = NopEvents{}
	}
	return &Syncer{git: git, events: events}
}

// Run executes the full sequence: cleanliness gate (with optional
// auto-stash), remote setup/repair, fetch, divergence report, integration,
// and stash restore. Mutating steps only start once options validate and
// the working copy is clean or stashed.
func (s *Syncer) Run(ctx context.Context, opts Options) (*Result, error) {
	res := &Result{Branch: opts.Branch, Strategy: opts.Strategy}

	if err := opts.validate(); err != nil {
		return res, err
	}

	dirty, err := s.git.HasUncommittedChanges()
	if err != nil {
		return res, fmt.Errorf("failed to check working copy state: %w", err)
	}
	if dirty {
		if !opts.Force {
			return res, ErrDirtyWorkingCopy
		}
		label := stashLabel()
		if err := s.git.StashPush(label); err != nil {
			return res, fmt.Errorf("failed to stash uncommitted changes: %w", err)
		}
		res.Stashed = true
		res.StashLabel = label
		s.events.Info(fmt.Sprintf("Stashed uncommitted changes as %q", label))
	}

	if err := s.ensureRemote(opts, res); err != nil {
		return res, err
	}

	if opts.FetchAll {
		s.events.Info(fmt.Sprintf("Fetching all branches from %s", opts.Remote))
		if err := s.git.FetchAll(ctx, opts.Remote); err != nil {
			return res, fmt.Errorf("failed to fetch from %s: %w", opts.Remote, err)
		}
	} else {
		s.events.Info(fmt.Sprintf("Fetching %s from %s", opts.Branch, opts.Remote))
		if err := s.git.Fetch(ctx, opts.Remote, opts.Branch); err != nil {
			// A branch-scoped fetch fails both when the remote is
			// unreachable and when the branch does not exist on it. A full
			// fetch tells the two apart and refreshes the branch listing
			// for the diagnostic below.
			if allErr := s.git.FetchAll(ctx, opts.Remote); allErr != nil {
				return res, fmt.Errorf("failed to fetch from %s: %w", opts.Remote, err)
			}
		}
	}

	upstreamRef := opts.Remote + "/" + opts.Branch
	s.reportDivergence(opts, upstreamRef, res)

	if !s.git.RemoteRefExists(opts.Remote, opts.Branch) {
		available, _ := s.git.RemoteBranches(opts.Remote)
		return res, &MissingUpstreamBranchError{
			Remote:    opts.Remote,
			Branch:    opts.Branch,
			Available: available,
		}
	}

	if err := s.integrate(ctx, opts, upstreamRef); err != nil {
		return res, err
	}
	s.events.Success(fmt.Sprintf("Synchronized with %s using %s", upstreamRef, opts.Strategy))

	if res.Stashed {
		s.RestoreStash(res)
	}
	return res, nil
}

// ensureRemote makes the upstream remote exist with the canonical URL:
// created if absent, URL rewritten in place if drifted, untouched otherwise.
func (s *Syncer) ensureRemote(opts Options, res *Result) error {
	remotes, err := s.git.Remotes()
	if err != nil {
		return fmt.Errorf("failed to list remotes: %w", err)
	}

	exists := false
	for _, name := range remotes {
		if name == opts.Remote {
			exists = true
			break
		}
	}

	if !exists {
		if err := s.git.AddRemote(opts.Remote, opts.UpstreamURL); err != nil {
			return fmt.Errorf("failed to add remote %s: %w", opts.Remote, err)
		}
		res.RemoteCreated = true
		s.events.Success(fmt.Sprintf("Added remote %q pointing at %s", opts.Remote, opts.UpstreamURL))
		return nil
	}

	url, err := s.git.RemoteURL(opts.Remote)
	if err != nil {
		return fmt.Errorf("failed to read URL of remote %s: %w", opts.Remote, err)
	}
	if url != opts.UpstreamURL {
		if err := s.git.SetRemoteURL(opts.Remote, opts.UpstreamURL); err != nil {
			return fmt.Errorf("failed to update URL of remote %s: %w", opts.Remote, err)
		}
		res.RemoteRepaired = true
		s.events.Warning(fmt.Sprintf("Remote %q pointed at %s, updated to %s", opts.Remote, url, opts.UpstreamURL))
	}
	return nil
}

// reportDivergence is purely informational: a missing upstream ref or a
// failed count is reported as unavailable, never treated as fatal.
func (s *Syncer) reportDivergence(opts Options, upstreamRef string, res *Result) {
	if !s.git.RemoteRefExists(opts.Remote, opts.Branch) {
		s.events.Info(fmt.Sprintf("Divergence from %s: unavailable", upstreamRef))
		return
	}
	ahead, behind, err := s.git.AheadBehind("HEAD", upstreamRef)
	if err != nil {
		s.events.Info(fmt.Sprintf("Divergence from %s: unavailable", upstreamRef))
		return
	}
	res.Ahead = ahead
	res.Behind = behind
	res.DivergenceKnown = true
	s.events.Info(fmt.Sprintf("Your branch is %d commit(s) ahead of and %d commit(s) behind %s", ahead, behind, upstreamRef))
}

func (s *Syncer) integrate(ctx context.Context, opts Options, upstreamRef string) error {
	switch opts.Strategy {
	case StrategyRebase:
		s.events.Info(fmt.Sprintf("Rebasing onto %s", upstreamRef))
		if err := s.git.Rebase(ctx, upstreamRef); err != nil {
			return &ConflictError{Strategy: StrategyRebase, Err: err}
		}
	default:
		branch, err := s.git.CurrentBranch()
		if err != nil {
			return fmt.Errorf("failed to resolve current branch: %w", err)
		}
		s.events.Info(fmt.Sprintf("Merging %s into %s", upstreamRef, branch))
		message := fmt.Sprintf("Merge remote-tracking branch '%s' into %s", upstreamRef, branch)
		if err := s.git.Merge(ctx, upstreamRef, message); err != nil {
			return &ConflictError{Strategy: StrategyMerge, Err: err}
		}
	}
	return nil
}

// RestoreStash reapplies the auto-stash recorded in res and updates its
// stash fields. A conflict here is a warning, not a failure: the integration
// itself already completed, and git keeps the stash entry for manual
// recovery. Run calls it automatically; callers that retry a run after a
// stash was created use it to settle the stash themselves.
func (s *Syncer) RestoreStash(res *Result) {
	if err := s.git.StashPop(res.StashLabel); err != nil {
		res.StashConflict = true
		s.events.Warning(fmt.Sprintf("Could not cleanly restore stashed changes (%v)", err))
		s.events.Warning(fmt.Sprintf("Your changes are kept in the stash %q: resolve with 'git stash pop' manually", res.StashLabel))
		return
	}
	res.StashRestored = true
	s.events.Success("Restored stashed changes")
}

func stashLabel() string {
	return fmt.Sprintf("forksync auto-stash %s %s",
		time.Now().Format(time.RFC3339), uuid.NewString()[:8])
}
