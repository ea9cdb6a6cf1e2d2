package common

import (
	"github.com/forksync/forksync/internal/config"
	"github.com/forksync/forksync/internal/syncer"
	"github.com/forksync/forksync/internal/ui"
)

// LoadConfig reads the per-repository configuration from the client's
// repository root.
func LoadConfig(client syncer.GitClient) (*config.Config, error) {
	return config.Load(client.GitRoot())
}

// ReportLeftoverStash warns when a run failed after auto-stashing, so the
// user knows where their uncommitted changes went.
func ReportLeftoverStash(res *syncer.Result) {
	if res != nil && res.Stashed && !res.StashRestored && !res.StashConflict {
		ui.Warningf("Your uncommitted changes are stashed as %q: restore them with 'git stash pop'", res.StashLabel)
	}
}
