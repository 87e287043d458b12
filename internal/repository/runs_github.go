package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v74/github"
	"golang.org/x/oauth2"

	"github.com/terrazul-ai/stage-release/internal/config"
	"github.com/terrazul-ai/stage-release/internal/domain"
)

// githubRunRepository lists workflow runs through the GitHub Actions API.
// It serves environments that carry a token but no gh binary.
type githubRunRepository struct {
	client *github.Client
}

// NewGithubRunRepository creates a WorkflowRunRepository backed by the
// GitHub API, with token validation.
func NewGithubRunRepository(token string) (WorkflowRunRepository, error) {
	// Validate token format using the consolidated validator from config package
	if err := config.ValidateGitHubToken(token); err != nil {
		return nil, fmt.Errorf("invalid GitHub token: %w", err)
	}

	// Create OAuth2 client with the validated token
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: strings.TrimSpace(token)},
	)
	tc := oauth2.NewClient(context.Background(), ts)
	client := github.NewClient(tc)

	return &githubRunRepository{client: client}, nil
}

// ListRuns projects the API response into the same entry shape the CLI
// listing produces, in the API's most-recent-first order.
func (r *githubRunRepository) ListRuns(
	ctx context.Context,
	repository, workflow string,
	limit int,
) ([]domain.RunListEntry, error) {
	owner, name, err := config.SplitRepository(repository)
	if err != nil {
		return nil, err
	}
	runs, _, err := r.client.Actions.ListWorkflowRunsByFileName(
		ctx, owner, name, workflow,
		&github.ListWorkflowRunsOptions{
			ListOptions: github.ListOptions{PerPage: limit},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list workflow runs: %w", err)
	}
	entries := make([]domain.RunListEntry, 0, len(runs.WorkflowRuns))
	for _, run := range runs.WorkflowRuns {
		entries = append(entries, domain.RunListEntry{
			DatabaseID: run.GetID(),
			HeadBranch: run.GetHeadBranch(),
			URL:        run.GetHTMLURL(),
		})
	}
	return entries, nil
}
