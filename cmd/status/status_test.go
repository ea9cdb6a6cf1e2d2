package status

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forksync/forksync/internal/config"
	"github.com/forksync/forksync/internal/testutil"
)

func TestStatusDoesNotMutateRepository(t *testing.T) {
	upstream := testutil.NewTestRepo(t)
	fork := testutil.CloneRepo(t, upstream)

	head := testutil.RunGit(t, fork.GitRoot(), "rev-parse", "HEAD")
	t.Setenv(config.EnvUpstreamURL, upstream.GitRoot())

	cmd := &Command{Git: fork}
	require.NoError(t, cmd.Run(context.Background()))

	// No remote created, no fetch, no commit: status only reports.
	remotes, err := fork.Remotes()
	require.NoError(t, err)
	assert.NotContains(t, remotes, "upstream")
	assert.False(t, fork.RemoteRefExists("upstream", "main"))
	assert.Equal(t, head, testutil.RunGit(t, fork.GitRoot(), "rev-parse", "HEAD"))
}

func TestStatusWithConfiguredRemote(t *testing.T) {
	upstream := testutil.NewTestRepo(t)
	fork := testutil.CloneRepo(t, upstream)
	require.NoError(t, fork.AddRemote("upstream", upstream.GitRoot()))
	require.NoError(t, fork.FetchAll(context.Background(), "upstream"))

	t.Setenv(config.EnvUpstreamURL, upstream.GitRoot())

	cmd := &Command{Git: fork}
	require.NoError(t, cmd.Run(context.Background()))
}
