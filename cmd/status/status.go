package status

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/forksync/forksync/internal/common"
	"github.com/forksync/forksync/internal/git"
	"github.com/forksync/forksync/internal/syncer"
	"github.com/forksync/forksync/internal/ui"
)

// Command reports the upstream remote configuration and branch divergence
// without changing anything
type Command struct {
	// Flags
	Branch string

	// Clients (can be injected in tests)
	Git syncer.GitClient
}

// Register registers the command with cobra
func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show upstream remote state and divergence",
		Long: `Show whether the upstream remote is configured with the expected URL
and how far the current branch has diverged from the upstream branch.

This command never mutates the repository: it does not fetch, so the
divergence counts reflect the last fetch. Run 'forksync pull' or
'forksync sync' to update them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&c.Branch, "branch", "b", "", "Upstream branch to compare against (default from config, then \"main\")")

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

	cfg, err := common.LoadConfig(c.Git)
	if err != nil {
		return err
	}

	remote := cfg.RemoteName()
	branch := cfg.BranchOr(c.Branch)
	wantURL := cfg.UpstreamURL()

	c.reportRemote(remote, wantURL)
	c.reportWorkingCopy()
	c.reportDivergence(remote, branch)
	return nil
}

func (c *Command) reportRemote(remote, wantURL string) {
	remotes, err := c.Git.Remotes()
	if err != nil {
		ui.Warningf("Could not list remotes: %v", err)
		return
	}

	for _, name := range remotes {
		if name != remote {
			continue
		}
		url, err := c.Git.RemoteURL(remote)
		if err != nil {
			ui.Warningf("Remote %q exists but its URL could not be read: %v", remote, err)
			return
		}
		switch {
		case wantURL == "":
			ui.Infof("Remote %q points at %s (no canonical URL configured to compare)", remote, url)
		case url == wantURL:
			ui.Successf("Remote %q points at %s", remote, url)
		default:
			ui.Warningf("Remote %q points at %s, expected %s (a sync will repair it)", remote, url, wantURL)
		}
		return
	}

	ui.Warningf("Remote %q is not configured (a sync will create it)", remote)
}

func (c *Command) reportWorkingCopy() {
	dirty, err := c.Git.HasUncommittedChanges()
	if err != nil {
		ui.Warningf("Could not check working copy state: %v", err)
		return
	}
	if dirty {
		ui.Warning("Working copy has uncommitted changes")
	} else {
		ui.Success("Working copy is clean")
	}
}

func (c *Command) reportDivergence(remote, branch string) {
	upstreamRef := remote + "/" + branch
	if !c.Git.RemoteRefExists(remote, branch) {
		ui.Infof("Divergence from %s: unavailable (not fetched yet)", upstreamRef)
		return
	}
	ahead, behind, err := c.Git.AheadBehind("HEAD", upstreamRef)
	if err != nil {
		ui.Infof("Divergence from %s: unavailable", upstreamRef)
		return
	}
	ui.Infof("Your branch is %d commit(s) ahead of and %d commit(s) behind %s", ahead, behind, upstreamRef)
}
