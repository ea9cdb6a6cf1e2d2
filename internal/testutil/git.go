package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forksync/forksync/internal/git"
)

// NewTestRepo creates a git repository in a temporary directory with an
// initial commit on main and returns a client for it.
func NewTestRepo(t *testing.T) *git.Client {
	t.Helper()
	dir := t.TempDir()

	RunGit(t, dir, "init", "--initial-branch=main")
	RunGit(t, dir, "config", "user.email", "test@example.com")
	RunGit(t, dir, "config", "user.name", "Test User")

	client, err := git.NewClientAt(dir)
	require.NoError(t, err)

	CommitFile(t, client, "README.md", "initial\n", "Initial commit")
	return client
}

// CloneRepo clones an existing test repository into a fresh temporary
// directory. The clone gets an "origin" remote pointing at the source,
// mirroring how a fork starts out.
func CloneRepo(t *testing.T, source *git.Client) *git.Client {
	t.Helper()
	dir := t.TempDir()

	RunGit(t, dir, "clone", source.GitRoot(), ".")
	RunGit(t, dir, "config", "user.email", "test@example.com")
	RunGit(t, dir, "config", "user.name", "Test User")

	client, err := git.NewClientAt(dir)
	require.NoError(t, err)
	return client
}

// CommitFile writes a file and commits it, returning the commit hash.
func CommitFile(t *testing.T, client *git.Client, name, content, message string) string {
	t.Helper()
	WriteFile(t, client.GitRoot(), name, content)
	RunGit(t, client.GitRoot(), "add", ".")
	RunGit(t, client.GitRoot(), "commit", "-m", message)
	return RunGit(t, client.GitRoot(), "rev-parse", "HEAD")
}

// WriteFile writes a file under root without staging or committing it.
func WriteFile(t *testing.T, root, name, content string) {
	t.Helper()
	path := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// ReadFile returns the content of a file under root.
func ReadFile(t *testing.T, root, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, name))
	require.NoError(t, err)
	return string(data)
}

// RunGit runs a git command in dir and returns its trimmed output, failing
// the test on error.
func RunGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v failed: %s", args, string(output))
	return strings.TrimSpace(string(output))
}
