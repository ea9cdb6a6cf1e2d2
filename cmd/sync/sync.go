package sync

import (
	"context"
	"errors"
	"os"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/forksync/forksync/internal/common"
	"github.com/forksync/forksync/internal/git"
	"github.com/forksync/forksync/internal/syncer"
	"github.com/forksync/forksync/internal/ui"
)

// Command synchronizes the current branch with upstream using a
// configurable strategy
type Command struct {
	// Flags
	Branch   string
	Strategy string
	Force    bool
	Pick     bool

	// Clients (can be injected in tests)
	Git    syncer.GitClient
	Events syncer.Events

	// Interaction hooks for --pick (can be injected in tests)
	isTerminal func() bool
	pickBranch func(branches []string) (string, bool)
}

// Register registers the command with cobra
func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "sync [branch]",
		Short: "Sync with upstream using merge or rebase",
		Long: `Fetch the upstream branch and integrate it into the current branch.

The integration strategy is configurable: "merge" creates a merge commit,
"rebase" replays your local commits on top of the upstream tip. With
--force, uncommitted changes are stashed before the sync and restored
afterwards. A positional branch argument takes precedence over --branch.

Example:
  forksync sync                       # merge upstream/main
  forksync sync -s rebase -b develop  # rebase onto upstream/develop
  forksync sync -f                    # auto-stash dirty working copy
  forksync sync --pick                # choose the branch interactively
                                      # if the requested one is missing`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				c.Branch = args[0]
			}
			return c.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&c.Branch, "branch", "b", "", "Upstream branch to sync with (default from config, then \"main\")")
	cmd.Flags().StringVarP(&c.Strategy, "strategy", "s", "", "Integration strategy: merge or rebase (default from config, then \"merge\")")
	cmd.Flags().BoolVarP(&c.Force, "force", "f", false, "Stash uncommitted changes before syncing and restore them after")
	cmd.Flags().BoolVar(&c.Pick, "pick", false, "Pick from available upstream branches if the requested one is missing")

	parent.AddCommand(cmd)
}

// Run executes the command
func (c *Command) Run(ctx context.Context) error {
	// Reject a bad strategy value before touching the repository at all.
	if c.Strategy != "" {
		if _, err := syncer.ParseStrategy(c.Strategy); err != nil {
			return err
		}
	}

	if c.Git == nil {
		gitClient, err := git.NewClient()
		if err != nil {
			return err
		}
		c.Git = gitClient
	}
	if c.Events == nil {
		c.Events = ui.Progress{}
	}
	if c.isTerminal == nil {
		c.isTerminal = stdoutIsTerminal
	}
	if c.pickBranch == nil {
		c.pickBranch = fuzzyPickBranch
	}

	cfg, err := common.LoadConfig(c.Git)
	if err != nil {
		return err
	}

	strategy, err := syncer.ParseStrategy(cfg.StrategyOr(c.Strategy))
	if err != nil {
		return err
	}

	opts := syncer.Options{
		Branch:      cfg.BranchOr(c.Branch),
		Strategy:    strategy,
		Force:       c.Force,
		Remote:      cfg.RemoteName(),
		UpstreamURL: cfg.UpstreamURL(),
	}

	res, err := c.runSync(ctx, opts)
	if err != nil {
		common.ReportLeftoverStash(res)
		return err
	}

	printNextSteps(res)
	return nil
}

// runSync performs the sync, optionally retrying with an interactively
// picked branch when the requested upstream branch does not exist. A stash
// created by the first attempt is carried into the retry result so it is
// restored (or reported as leftover) exactly once.
func (c *Command) runSync(ctx context.Context, opts syncer.Options) (*syncer.Result, error) {
	s := syncer.New(c.Git, c.Events)

	res, err := s.Run(ctx, opts)
	if err == nil {
		return res, nil
	}

	var missing *syncer.MissingUpstreamBranchError
	if !c.Pick || !errors.As(err, &missing) || len(missing.Available) == 0 {
		return res, err
	}
	if !c.isTerminal() {
		return res, err
	}

	branch, ok := c.pickBranch(missing.Available)
	if !ok {
		return res, err
	}

	opts.Branch = branch
	retry, retryErr := s.Run(ctx, opts)

	// The first attempt stashed before failing, so the retry saw a clean
	// working copy and never learned about the stash. Settle it here.
	if res.Stashed && !retry.Stashed {
		retry.Stashed = true
		retry.StashLabel = res.StashLabel
		if retryErr == nil {
			s.RestoreStash(retry)
		}
	}
	return retry, retryErr
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// fuzzyPickBranch presents a fuzzy finder over the available upstream
// branches. Returns false if the user cancelled.
func fuzzyPickBranch(branches []string) (string, bool) {
	idx, err := fuzzyfinder.Find(
		branches,
		func(i int) string { return branches[i] },
	)
	if err != nil {
		// User cancelled (Ctrl+C or ESC)
		return "", false
	}
	return branches[idx], true
}

// printNextSteps prints follow-up guidance after a successful run.
func printNextSteps(res *syncer.Result) {
	ui.Print("")
	ui.Print("Next steps:")
	ui.Printf("  git log --oneline -10    %s\n", ui.Dim("review the integrated history"))
	if res.Strategy == syncer.StrategyRebase {
		ui.Printf("  git push --force-with-lease origin %s    %s\n", res.Branch, ui.Dim("update your fork (history was rewritten)"))
	} else {
		ui.Printf("  git push origin %s    %s\n", res.Branch, ui.Dim("update your fork"))
	}
	ui.Printf("  git diff @{1}            %s\n", ui.Dim("inspect what the sync changed"))
}
