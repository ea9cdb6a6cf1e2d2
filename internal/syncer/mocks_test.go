package syncer

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockGitClient struct {
	mock.Mock
}

// GitRoot implements GitClient.
func (m *MockGitClient) GitRoot() string {
	args := m.Called()
	return args.String(0)
}

// CurrentBranch implements GitClient.
func (m *MockGitClient) CurrentBranch() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

// HasUncommittedChanges implements GitClient.
func (m *MockGitClient) HasUncommittedChanges() (bool, error) {
	args := m.Called()
	return args.Bool(0), args.Error(1)
}

// Remotes implements GitClient.
func (m *MockGitClient) Remotes() ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// RemoteURL implements GitClient.
func (m *MockGitClient) RemoteURL(name string) (string, error) {
	args := m.Called(name)
	return args.String(0), args.Error(1)
}

// AddRemote implements GitClient.
func (m *MockGitClient) AddRemote(name, url string) error {
	args := m.Called(name, url)
	return args.Error(0)
}

// SetRemoteURL implements GitClient.
func (m *MockGitClient) SetRemoteURL(name, url string) error {
	args := m.Called(name, url)
	return args.Error(0)
}

// Fetch implements GitClient.
func (m *MockGitClient) Fetch(ctx context.Context, remote, branch string) error {
	args := m.Called(remote, branch)
	return args.Error(0)
}

// FetchAll implements GitClient.
func (m *MockGitClient) FetchAll(ctx context.Context, remote string) error {
	args := m.Called(remote)
	return args.Error(0)
}

// RemoteBranches implements GitClient.
func (m *MockGitClient) RemoteBranches(remote string) ([]string, error) {
	args := m.Called(remote)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// RemoteRefExists implements GitClient.
func (m *MockGitClient) RemoteRefExists(remote, branch string) bool {
	args := m.Called(remote, branch)
	return args.Bool(0)
}

// AheadBehind implements GitClient.
func (m *MockGitClient) AheadBehind(local, upstream string) (int, int, error) {
	args := m.Called(local, upstream)
	return args.Int(0), args.Int(1), args.Error(2)
}

// Merge implements GitClient.
func (m *MockGitClient) Merge(ctx context.Context, ref, message string) error {
	args := m.Called(ref, message)
	return args.Error(0)
}

// Rebase implements GitClient.
func (m *MockGitClient) Rebase(ctx context.Context, ref string) error {
	args := m.Called(ref)
	return args.Error(0)
}

// StashPush implements GitClient.
func (m *MockGitClient) StashPush(label string) error {
	args := m.Called(label)
	return args.Error(0)
}

// StashPop implements GitClient.
func (m *MockGitClient) StashPop(label string) error {
	args := m.Called(label)
	return args.Error(0)
}
