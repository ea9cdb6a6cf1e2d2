package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/forksync/forksync/cmd/pull"
	"github.com/forksync/forksync/cmd/status"
	synccmd "github.com/forksync/forksync/cmd/sync"
	"github.com/forksync/forksync/internal/ui"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "forksync",
	Short: "Keep a forked repository in sync with its upstream",
	Long: `Forksync keeps a forked git repository in sync with the upstream
repository it was forked from.

It sets up (or repairs) the upstream remote, fetches the latest refs,
reports how far your branch has diverged, and integrates upstream changes
via merge or rebase. The upstream URL is read from .forksync.yaml at the
repository root, or from the FORKSYNC_UPSTREAM_URL environment variable.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		ui.Error(err.Error())
		os.Exit(1)
	}
}

func init() {
	// Register all commands
	commands := []Command{
		&pull.Command{},
		&synccmd.Command{},
		&status.Command{},
	}

	for _, cmd := range commands {
		cmd.Register(rootCmd)
	}
}
