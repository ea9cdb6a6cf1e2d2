package git

import (
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
)

// Remote configuration is read and written through go-git rather than the
// git binary: it edits .git/config in place, which matches the repair
// semantics (never delete and recreate a remote).

func (c *Client) repo() (*gogit.Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(c.gitRoot, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository at %s: %w", c.gitRoot, err)
	}
	return repo, nil
}

// Remotes returns the names of all configured remotes.
func (c *Client) Remotes() ([]string, error) {
	repo, err := c.repo()
	if err != nil {
		return nil, err
	}
	remotes, err := repo.Remotes()
	if err != nil {
		return nil, fmt.Errorf("failed to list remotes: %w", err)
	}
	names := make([]string, 0, len(remotes))
	for _, r := range remotes {
		names = append(names, r.Config().Name)
	}
	return names, nil
}

// RemoteURL returns the first URL configured for the named remote.
func (c *Client) RemoteURL(name string) (string, error) {
	repo, err := c.repo()
	if err != nil {
		return "", err
	}
	remote, err := repo.Remote(name)
	if err != nil {
		return "", fmt.Errorf("failed to look up remote %s: %w", name, err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %s has no URL configured", name)
	}
	return urls[0], nil
}

// AddRemote creates a new remote with the given URL and the default fetch
// refspec.
func (c *Client) AddRemote(name, url string) error {
	repo, err := c.repo()
	if err != nil {
		return err
	}
	if _, err := repo.CreateRemote(&gitconfig.RemoteConfig{
		Name: name,
		URLs: []string{url},
	}); err != nil {
		return fmt.Errorf("failed to create remote %s: %w", name, err)
	}
	return nil
}

// SetRemoteURL rewrites the URL of an existing remote in place, keeping its
// refspecs and any other settings.
func (c *Client) SetRemoteURL(name, url string) error {
	repo, err := c.repo()
	if err != nil {
		return err
	}
	cfg, err := repo.Config()
	if err != nil {
		return fmt.Errorf("failed to read repository config: %w", err)
	}
	remote, ok := cfg.Remotes[name]
	if !ok {
		return fmt.Errorf("remote %s does not exist", name)
	}
	remote.URLs = []string{url}
	if err := repo.SetConfig(cfg); err != nil {
		return fmt.Errorf("failed to update remote %s: %w", name, err)
	}
	return nil
}
