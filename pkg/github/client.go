package github

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/go-github/v60/github"
	"github.com/ksysoev/todo-scan/pkg/core"
	"golang.org/x/oauth2"
)

// Client publishes findings as issues of a single GitHub repository
type Client struct {
	client *github.Client
	owner  string
	repo   string
	config core.Config
}

// PublishedFinding is a finding together with the issue created for it
type PublishedFinding struct {
	Finding  core.Finding
	IssueURL string
}

// Option customizes a Client
type Option func(*Client) error

// WithBaseURL points the client at a different API endpoint, such as the one
// exposed by GitHub Enterprise Server in GITHUB_API_URL.
func WithBaseURL(apiURL string) Option {
	return func(c *Client) error {
		if !strings.HasSuffix(apiURL, "/") {
			apiURL += "/"
		}
		u, err := url.Parse(apiURL)
		if err != nil {
			return fmt.Errorf("invalid api url %q: %w", apiURL, err)
		}
		c.client.BaseURL = u
		return nil
	}
}

// NewClient creates a new GitHub client for the repository given as owner/name
func NewClient(token, repoFullName string, config core.Config, opts ...Option) (*Client, error) {
	parts := strings.Split(repoFullName, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("invalid repository %q, expected owner/name", repoFullName)
	}

	c := &Client{
		client: NewRawClient(token),
		owner:  parts[0],
		repo:   parts[1],
		config: config,
	}

	for _, o := range opts {
		if err := o(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// NewRawClient creates a new raw GitHub client
func NewRawClient(token string) *github.Client {
	ctx := context.Background()
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	return github.NewClient(tc)
}

// IssueTitle returns the title of the issue tracking a finding
func (c *Client) IssueTitle(f core.Finding) string {
	title := fmt.Sprintf("%s: %s", f.Kind, f.Text)
	if c.config.IssueTitlePrefix != "" {
		title = fmt.Sprintf("%s %s", c.config.IssueTitlePrefix, title)
	}
	return title
}

// ExistingIssueTitles returns the titles of all issues of the repository, open or closed
func (c *Client) ExistingIssueTitles(ctx context.Context) (map[string]bool, error) {
	titles := make(map[string]bool)
	opts := &github.IssueListByRepoOptions{
		State:       "all",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	for {
		issues, resp, err := c.client.Issues.ListByRepo(ctx, c.owner, c.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list issues of %s/%s: %w", c.owner, c.repo, err)
		}

		for _, issue := range issues {
			titles[issue.GetTitle()] = true
		}

		if resp.NextPage == 0 {
			return titles, nil
		}
		opts.Page = resp.NextPage
	}
}

// CreateIssuesFromFindings creates one issue per finding whose title is not
// already used by an issue of the repository
func (c *Client) CreateIssuesFromFindings(ctx context.Context, findings []core.Finding) ([]PublishedFinding, error) {
	existing, err := c.ExistingIssueTitles(ctx)
	if err != nil {
		return nil, err
	}

	var published []PublishedFinding

	for _, f := range findings {
		title := c.IssueTitle(f)
		if existing[title] {
			continue
		}

		body := fmt.Sprintf("Created from %s comment in `%s` (line %d)", f.Kind, f.FilePath, f.Line)
		labels := []string{strings.ToLower(string(f.Kind))}

		issue, _, err := c.client.Issues.Create(ctx, c.owner, c.repo, &github.IssueRequest{
			Title:  &title,
			Body:   &body,
			Labels: &labels,
		})
		if err != nil {
			return published, fmt.Errorf("failed to create issue for comment in %s (line %d): %w",
				f.FilePath, f.Line, err)
		}

		existing[title] = true
		published = append(published, PublishedFinding{
			Finding:  f,
			IssueURL: issue.GetHTMLURL(),
		})
	}

	return published, nil
}
