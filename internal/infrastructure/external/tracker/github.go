package tracker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"

	"github.com/notegraph-dev/notegraph/internal/domain/repositories"
	"github.com/notegraph-dev/notegraph/pkg/config"
)

const issueTitleLimit = 50

// Client files GitHub issues for extracted action items.
type Client struct {
	gh    *github.Client
	owner string
	repo  string
}

// NewClient creates a tracker client authenticated with a personal access
// token.
func NewClient(cfg *config.TrackerConfig) *Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
	httpClient := oauth2.NewClient(context.Background(), ts)

	return &Client{
		gh:    github.NewClient(httpClient),
		owner: cfg.Owner,
		repo:  cfg.Repo,
	}
}

// CreateIssues files one issue per action item and returns the created issue
// URLs. Each create is retried with exponential backoff; the first action that
// exhausts its retries aborts the batch, leaving earlier issues in place.
func (c *Client) CreateIssues(ctx context.Context, actions []repositories.PendingAction) ([]string, error) {
	var urls []string
	for _, action := range actions {
		issue, err := c.createIssue(ctx, action)
		if err != nil {
			return urls, fmt.Errorf("failed to create issue for %q: %w", action.Description, err)
		}
		urls = append(urls, issue.GetHTMLURL())
	}
	return urls, nil
}

func (c *Client) createIssue(ctx context.Context, action repositories.PendingAction) (*github.Issue, error) {
	request := &github.IssueRequest{
		Title:  github.String(issueTitle(action.Description)),
		Body:   github.String(issueBody(action)),
		Labels: &[]string{"meeting-action", "priority:" + action.Priority},
	}

	var issue *github.Issue
	operation := func() error {
		created, resp, err := c.gh.Issues.Create(ctx, c.owner, c.repo, request)
		if err != nil {
			// Client errors other than rate limiting will not succeed on
			// retry.
			if resp != nil && resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != 429 {
				return backoff.Permanent(err)
			}
			return err
		}
		issue = created
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = 30 * time.Second
	if err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(policy, 3), ctx)); err != nil {
		return nil, err
	}
	return issue, nil
}

func issueTitle(description string) string {
	// Truncate on runes so a multi-byte character is never split.
	if runes := []rune(description); len(runes) > issueTitleLimit {
		description = string(runes[:issueTitleLimit])
	}
	return "Action Item: " + description
}

func issueBody(action repositories.PendingAction) string {
	var b strings.Builder
	b.WriteString("Created from a meeting action item.\n\n")
	fmt.Fprintf(&b, "**Description:** %s\n", action.Description)
	fmt.Fprintf(&b, "**Assignee:** %s\n", action.Assignee)
	fmt.Fprintf(&b, "**Priority:** %s\n", action.Priority)
	return b.String()
}
