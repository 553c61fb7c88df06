package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v74/github"
	"golang.org/x/oauth2"

	"github.com/remoroo/shipit/internal/config"
)

// githubPublisher publishes releases through the GitHub API.
type githubPublisher struct {
	client *github.Client
	owner  string
	repo   string
}

// NewGithubPublisher creates a ReleasePublisher backed by the GitHub API.
func NewGithubPublisher(token, owner, repo string) (ReleasePublisher, error) {
	if err := config.ValidateGitHubToken(token); err != nil {
		return nil, fmt.Errorf("invalid GitHub token: %w", err)
	}
	if err := config.ValidateGitHubOwnerRepo(owner, repo); err != nil {
		return nil, fmt.Errorf("invalid repository configuration: %w", err)
	}
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: strings.TrimSpace(token)},
	)
	tc := oauth2.NewClient(context.Background(), ts)
	return &githubPublisher{
		client: github.NewClient(tc),
		owner:  owner,
		repo:   repo,
	}, nil
}

// PublishRelease creates a GitHub release for an already-pushed tag and
// returns its HTML URL.
func (p *githubPublisher) PublishRelease(ctx context.Context, tag, name, notes string) (string, error) {
	rel, _, err := p.client.Repositories.CreateRelease(ctx, p.owner, p.repo, &github.RepositoryRelease{
		TagName: &tag,
		Name:    &name,
		Body:    &notes,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create release for %s: %w", tag, err)
	}
	return rel.GetHTMLURL(), nil
}

func (p *githubPublisher) Enabled() bool {
	return true
}
