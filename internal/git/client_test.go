package git_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forksync/forksync/internal/git"
	"github.com/forksync/forksync/internal/testutil"
)

func TestNewClientAtFailsOutsideRepository(t *testing.T) {
	_, err := git.NewClientAt(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not in a git repository")
}

func TestCurrentBranch(t *testing.T) {
	client := testutil.NewTestRepo(t)

	branch, err := client.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, "main", branch)

	testutil.RunGit(t, client.GitRoot(), "checkout", "-b", "feature")
	branch, err = client.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, "feature", branch)
}

func TestHasUncommittedChanges(t *testing.T) {
	client := testutil.NewTestRepo(t)

	dirty, err := client.HasUncommittedChanges()
	require.NoError(t, err)
	assert.False(t, dirty)

	testutil.WriteFile(t, client.GitRoot(), "scratch.txt", "work in progress\n")
	dirty, err = client.HasUncommittedChanges()
	require.NoError(t, err)
	assert.True(t, dirty, "untracked files count as uncommitted changes")
}

func TestRemoteManagement(t *testing.T) {
	upstream := testutil.NewTestRepo(t)
	client := testutil.NewTestRepo(t)

	remotes, err := client.Remotes()
	require.NoError(t, err)
	assert.Empty(t, remotes)

	require.NoError(t, client.AddRemote("upstream", upstream.GitRoot()))

	remotes, err = client.Remotes()
	require.NoError(t, err)
	assert.Equal(t, []string{"upstream"}, remotes)

	url, err := client.RemoteURL("upstream")
	require.NoError(t, err)
	assert.Equal(t, upstream.GitRoot(), url)

	require.NoError(t, client.SetRemoteURL("upstream", "https://example.com/new.git"))
	url, err = client.RemoteURL("upstream")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/new.git", url)

	_, err = client.RemoteURL("nonexistent")
	require.Error(t, err)
}

func TestFetchAndRemoteBranches(t *testing.T) {
	upstream := testutil.NewTestRepo(t)
	testutil.RunGit(t, upstream.GitRoot(), "branch", "develop")

	client := testutil.NewTestRepo(t)
	require.NoError(t, client.AddRemote("upstream", upstream.GitRoot()))

	assert.False(t, client.RemoteRefExists("upstream", "main"))

	require.NoError(t, client.FetchAll(context.Background(), "upstream"))

	assert.True(t, client.RemoteRefExists("upstream", "main"))
	assert.True(t, client.RemoteRefExists("upstream", "develop"))
	assert.False(t, client.RemoteRefExists("upstream", "missing"))

	branches, err := client.RemoteBranches("upstream")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"main", "develop"}, branches)
}

func TestFetchSingleBranch(t *testing.T) {
	upstream := testutil.NewTestRepo(t)
	testutil.RunGit(t, upstream.GitRoot(), "branch", "develop")

	client := testutil.NewTestRepo(t)
	require.NoError(t, client.AddRemote("upstream", upstream.GitRoot()))
	require.NoError(t, client.Fetch(context.Background(), "upstream", "develop"))

	assert.True(t, client.RemoteRefExists("upstream", "develop"))
	assert.False(t, client.RemoteRefExists("upstream", "main"))
}

func TestAheadBehind(t *testing.T) {
	upstream := testutil.NewTestRepo(t)
	fork := testutil.CloneRepo(t, upstream)

	// One upstream-only commit, two fork-only commits.
	testutil.CommitFile(t, upstream, "upstream.txt", "upstream\n", "Upstream change")
	testutil.CommitFile(t, fork, "local1.txt", "one\n", "Local change one")
	testutil.CommitFile(t, fork, "local2.txt", "two\n", "Local change two")

	require.NoError(t, fork.AddRemote("upstream", upstream.GitRoot()))
	require.NoError(t, fork.Fetch(context.Background(), "upstream", "main"))

	ahead, behind, err := fork.AheadBehind("HEAD", "upstream/main")
	require.NoError(t, err)
	assert.Equal(t, 2, ahead)
	assert.Equal(t, 1, behind)
}

func TestMergeCreatesMergeCommit(t *testing.T) {
	upstream := testutil.NewTestRepo(t)
	fork := testutil.CloneRepo(t, upstream)

	upstreamTip := testutil.CommitFile(t, upstream, "upstream.txt", "upstream\n", "Upstream change")
	localTip := testutil.CommitFile(t, fork, "local.txt", "local\n", "Local change")

	require.NoError(t, fork.AddRemote("upstream", upstream.GitRoot()))
	require.NoError(t, fork.Fetch(context.Background(), "upstream", "main"))
	require.NoError(t, fork.Merge(context.Background(), "upstream/main", "Merge upstream/main into main"))

	parents, err := fork.ParentHashes("HEAD")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{localTip, upstreamTip}, parents,
		"merge commit parents must be the prior local tip and the upstream tip")
}

func TestRebaseReplaysLocalCommits(t *testing.T) {
	upstream := testutil.NewTestRepo(t)
	fork := testutil.CloneRepo(t, upstream)

	upstreamTip := testutil.CommitFile(t, upstream, "upstream.txt", "upstream\n", "Upstream change")
	testutil.CommitFile(t, fork, "local.txt", "local\n", "Local change")

	require.NoError(t, fork.AddRemote("upstream", upstream.GitRoot()))
	require.NoError(t, fork.Fetch(context.Background(), "upstream", "main"))
	require.NoError(t, fork.Rebase(context.Background(), "upstream/main"))

	// Linear history: the rebased commit's parent is the upstream tip.
	parents, err := fork.ParentHashes("HEAD")
	require.NoError(t, err)
	assert.Equal(t, []string{upstreamTip}, parents)

	assert.Equal(t, "upstream\n", testutil.ReadFile(t, fork.GitRoot(), "upstream.txt"))
	assert.Equal(t, "local\n", testutil.ReadFile(t, fork.GitRoot(), "local.txt"))
}

func TestStashPushAndPop(t *testing.T) {
	client := testutil.NewTestRepo(t)
	testutil.WriteFile(t, client.GitRoot(), "dirty.txt", "uncommitted\n")

	require.NoError(t, client.StashPush("forksync auto-stash test abc12345"))

	count, err := client.StashCount()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	dirty, err := client.HasUncommittedChanges()
	require.NoError(t, err)
	assert.False(t, dirty)

	require.NoError(t, client.StashPop("abc12345"))

	count, err = client.StashCount()
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Equal(t, "uncommitted\n", testutil.ReadFile(t, client.GitRoot(), "dirty.txt"))
}

func TestStashPopTargetsLabeledEntry(t *testing.T) {
	client := testutil.NewTestRepo(t)

	testutil.WriteFile(t, client.GitRoot(), "first.txt", "first\n")
	require.NoError(t, client.StashPush("forksync auto-stash test first111"))
	testutil.WriteFile(t, client.GitRoot(), "second.txt", "second\n")
	require.NoError(t, client.StashPush("forksync auto-stash test second22"))

	// Pop the older entry even though it is not on top of the stash stack.
	require.NoError(t, client.StashPop("first111"))
	assert.Equal(t, "first\n", testutil.ReadFile(t, client.GitRoot(), "first.txt"))

	count, err := client.StashCount()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestStashPopFailsForUnknownLabel(t *testing.T) {
	client := testutil.NewTestRepo(t)
	err := client.StashPop("not-a-real-label")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no stash entry")
}
