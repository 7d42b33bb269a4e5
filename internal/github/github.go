// Package github looks up pull requests and their comments through the GitHub
// REST API.
package github

import (
	"context"
	"fmt"
	"strings"

	gh "github.com/google/go-github/v66/github"
	"github.com/samber/lo"

	"github.com/ariel-frischer/autochangelog/internal/command"
	"github.com/ariel-frischer/autochangelog/internal/engine"
)

const commentsPerPage = 100

// Client implements engine.PRSource for one repository.
type Client struct {
	api   *gh.Client
	owner string
	repo  string
}

// New creates a client for "owner/name". baseURL selects a GitHub Enterprise
// API endpoint; empty means github.com.
func New(repository, token, baseURL string) (*Client, error) {
	owner, repo, ok := strings.Cut(repository, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return nil, fmt.Errorf("invalid repository %q (expected owner/name)", repository)
	}

	api := gh.NewClient(nil)
	if token != "" {
		api = api.WithAuthToken(token)
	}
	if baseURL != "" {
		var err error
		api, err = api.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, fmt.Errorf("configuring API URL %s: %w", baseURL, err)
		}
	}

	return &Client{api: api, owner: owner, repo: repo}, nil
}

// PullRequest fetches a pull request.
func (c *Client) PullRequest(ctx context.Context, number int) (*engine.PullRequest, error) {
	pr, _, err := c.api.PullRequests.Get(ctx, c.owner, c.repo, number)
	if err != nil {
		return nil, fmt.Errorf("getting pull request %s/%s#%d: %w", c.owner, c.repo, number, err)
	}

	return &engine.PullRequest{
		Number:  pr.GetNumber(),
		Title:   pr.GetTitle(),
		Body:    pr.GetBody(),
		HTMLURL: pr.GetHTMLURL(),
		Author:  pr.GetUser().GetLogin(),
		Labels: lo.Map(pr.Labels, func(l *gh.Label, _ int) string {
			return l.GetName()
		}),
		HeadRef: pr.GetHead().GetRef(),
	}, nil
}

// Comments fetches every issue comment of a pull request, following pagination.
func (c *Client) Comments(ctx context.Context, number int) ([]command.Comment, error) {
	opts := &gh.IssueListCommentsOptions{
		ListOptions: gh.ListOptions{PerPage: commentsPerPage},
	}

	var comments []command.Comment
	for {
		page, resp, err := c.api.Issues.ListComments(ctx, c.owner, c.repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("listing comments of %s/%s#%d: %w", c.owner, c.repo, number, err)
		}
		for _, ic := range page {
			comments = append(comments, command.Comment{
				Body:      ic.GetBody(),
				CreatedAt: ic.GetCreatedAt().Time,
			})
		}
		if resp.NextPage == 0 {
			return comments, nil
		}
		opts.Page = resp.NextPage
	}
}
