package pull

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/forksync/forksync/internal/common"
	"github.com/forksync/forksync/internal/git"
	"github.com/forksync/forksync/internal/syncer"
	"github.com/forksync/forksync/internal/ui"
)

// Command pulls upstream changes into the current branch with a merge
type Command struct {
	// Arguments
	Branch string

	// Clients (can be injected in tests)
	Git    syncer.GitClient
	Events syncer.Events
}

// Register registers the command with cobra
func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "pull [branch]",
		Short: "Merge the upstream branch into the current branch",
		Long: `Fetch the upstream repository and merge the given upstream branch
(default "main") into the current branch.

The upstream remote is created or repaired as needed, all upstream
branches are fetched, and the integration always uses a merge commit.
Use 'forksync sync' for rebase and auto-stash support.

Example:
  forksync pull             # merge upstream/main
  forksync pull develop     # merge upstream/develop`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				c.Branch = args[0]
			}
			return c.Run(cmd.Context())
		},
	}

	parent.AddCommand(cmd)
}

// Run executes the command
func (c *Command) Run(ctx context.Context) error {
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

	cfg, err := common.LoadConfig(c.Git)
	if err != nil {
		return err
	}

	opts := syncer.Options{
		Branch:      cfg.BranchOr(c.Branch),
		Strategy:    syncer.StrategyMerge,
		Remote:      cfg.RemoteName(),
		UpstreamURL: cfg.UpstreamURL(),
		FetchAll:    true,
	}

	res, err := syncer.New(c.Git, c.Events).Run(ctx, opts)
	if err != nil {
		common.ReportLeftoverStash(res)
		return err
	}

	printNextSteps(res)
	return nil
}

// printNextSteps prints follow-up guidance after a successful run.
func printNextSteps(res *syncer.Result) {
	ui.Print("")
	ui.Print("Next steps:")
	ui.Printf("  git log --oneline -10    %s\n", ui.Dim("review the integrated history"))
	ui.Printf("  git diff @{1}            %s\n", ui.Dim("inspect what the sync changed"))
	ui.Printf("  git push origin %s     %s\n", res.Branch, ui.Dim("update your fork"))
}
