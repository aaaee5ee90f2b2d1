// Package github implements the DeploymentClient port using the go-github library.
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"

	"github.com/ericfisherdev/waitfordeploy/internal/domain/model"
	"github.com/ericfisherdev/waitfordeploy/internal/domain/port/driven"
)

// DefaultAPIURL is the public GitHub REST endpoint.
const DefaultAPIURL = "https://api.github.com"

// Compile-time interface satisfaction check.
var _ driven.DeploymentClient = (*Client)(nil)

// Client implements the driven.DeploymentClient port using the go-github library.
type Client struct {
	gh *gh.Client
}

// NewClient creates a new GitHub API client with the following transport stack:
//  1. httpcache (ETag-based conditional request caching, keeps repeated status polls cheap)
//  2. revalidateTransport (every request goes upstream; cache hits become 304s)
//  3. go-github-ratelimit (secondary rate limit middleware, sleeps on 429)
//  4. go-github (GitHub REST API client with token auth)
//
// apiURL selects a GitHub Enterprise Server endpoint; empty or DefaultAPIURL
// targets github.com. An empty token yields an unauthenticated client.
func NewClient(token, apiURL string) (*Client, error) {
	cacheTransport := httpcache.NewMemoryCacheTransport()
	rateLimitClient := github_ratelimit.NewClient(&revalidateTransport{next: cacheTransport})
	client := gh.NewClient(rateLimitClient)
	if token != "" {
		client = client.WithAuthToken(token)
	}

	if apiURL != "" && strings.TrimSuffix(apiURL, "/") != DefaultAPIURL {
		enterprise, err := client.WithEnterpriseURLs(apiURL, apiURL)
		if err != nil {
			return nil, fmt.Errorf("configuring enterprise API URL %q: %w", apiURL, err)
		}
		client = enterprise
	}

	return &Client{gh: client}, nil
}

// revalidateTransport marks every request as unwilling to accept a cached
// response of any age. GitHub answers with max-age=60, which would otherwise
// let httpcache serve the same status list for a minute. With max-age=0 the
// cached entry is stale, so httpcache sends If-None-Match and a 304 still
// reuses the cached body.
type revalidateTransport struct {
	next http.RoundTripper
}

// RoundTrip sets Cache-Control on a clone of req and delegates.
func (t *revalidateTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set("Cache-Control", "max-age=0")
	return t.next.RoundTrip(r)
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL, token string) (*Client, error) {
	client := gh.NewClient(httpClient)
	if token != "" {
		client = client.WithAuthToken(token)
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	client.BaseURL = u

	return &Client{gh: client}, nil
}

// GetPullRequest fetches a single pull request. The returned lookup carries the
// HTTP status so the caller can apply its own acceptance rule.
func (c *Client) GetPullRequest(ctx context.Context, owner, repo string, number int) (*model.PullRequestLookup, error) {
	pr, resp, err := c.gh.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, fmt.Errorf("fetching pull request %s/%s#%d: %w", owner, repo, number, err)
	}

	logRateLimit(resp, owner+"/"+repo+"/pulls", 1)

	return &model.PullRequestLookup{
		StatusCode: resp.StatusCode,
		HeadSHA:    pr.GetHead().GetSHA(),
	}, nil
}

// ListDeployments returns the first page of deployments for the given commit.
// Only the newest deployment is ever used, so pagination is not followed.
func (c *Client) ListDeployments(ctx context.Context, owner, repo, sha string) ([]model.Deployment, error) {
	opts := &gh.DeploymentsListOptions{SHA: sha}

	deployments, resp, err := c.gh.Repositories.ListDeployments(ctx, owner, repo, opts)
	if err != nil {
		return nil, fmt.Errorf("listing deployments for %s/%s@%s: %w", owner, repo, sha, err)
	}

	logRateLimit(resp, owner+"/"+repo+"/deployments", len(deployments))

	result := make([]model.Deployment, 0, len(deployments))
	for _, d := range deployments {
		result = append(result, mapDeployment(d))
	}

	return result, nil
}

// ListDeploymentStatuses returns the first page of statuses for a deployment.
func (c *Client) ListDeploymentStatuses(ctx context.Context, owner, repo string, deploymentID int64) ([]model.DeploymentStatus, error) {
	statuses, resp, err := c.gh.Repositories.ListDeploymentStatuses(ctx, owner, repo, deploymentID, nil)
	if err != nil {
		return nil, fmt.Errorf("listing statuses for deployment %d in %s/%s: %w", deploymentID, owner, repo, err)
	}

	logRateLimit(resp, owner+"/"+repo+"/deployments/statuses", len(statuses))

	result := make([]model.DeploymentStatus, 0, len(statuses))
	for _, s := range statuses {
		result = append(result, mapDeploymentStatus(s))
	}

	return result, nil
}

// mapDeployment converts a go-github Deployment to a domain model Deployment.
func mapDeployment(d *gh.Deployment) model.Deployment {
	return model.Deployment{
		ID:  d.GetID(),
		SHA: d.GetSHA(),
	}
}

// mapDeploymentStatus converts a go-github DeploymentStatus to a domain model
// DeploymentStatus. A missing target_url stays nil.
func mapDeploymentStatus(s *gh.DeploymentStatus) model.DeploymentStatus {
	var targetURL *string
	if s.TargetURL != nil {
		val := s.GetTargetURL()
		targetURL = &val
	}

	return model.DeploymentStatus{
		State:     model.DeploymentState(s.GetState()),
		TargetURL: targetURL,
	}
}

// logRateLimit logs the GitHub API rate limit status after each call.
func logRateLimit(resp *gh.Response, endpoint string, count int) {
	if resp == nil {
		return
	}

	slog.Debug("github api call",
		"endpoint", endpoint,
		"count", count,
		"rate_remaining", resp.Rate.Remaining,
		"rate_limit", resp.Rate.Limit,
	)

	if resp.Rate.Limit > 0 && resp.Rate.Remaining < 100 {
		slog.Warn("github rate limit low",
			"remaining", resp.Rate.Remaining,
			"reset_in", time.Until(resp.Rate.Reset.Time).Round(time.Second),
		)
	}
}
