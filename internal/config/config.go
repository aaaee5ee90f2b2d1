// Package config loads run configuration from the GitHub Actions runtime.
package config

import (
	"fmt"
	"time"

	"github.com/sethvargo/go-githubactions"

	"github.com/ericfisherdev/waitfordeploy/internal/domain/model"
)

// TokenInput is the name of the action input carrying the API credential.
const TokenInput = "GITHUB_TOKEN"

const (
	// Timeout is the budget given to each waiter independently.
	Timeout = 10 * time.Minute
	// PollInterval is the fixed delay between probe attempts.
	PollInterval = 2 * time.Second
)

// Config holds the invocation parameters and the pull request context of one run.
type Config struct {
	GitHubToken  string
	APIURL       string
	PullRequest  model.PullRequestRef
	Timeout      time.Duration
	PollInterval time.Duration
	// FailFast stops the run on a missing credential or a non-200 pull
	// request lookup instead of reporting and continuing.
	FailFast bool
}

// Load reads the token input and the event context from the Actions runtime.
// A missing token is not an error here; the orchestrator reports it.
// A missing pull request number leaves PullRequest.Number at zero.
func Load(a *githubactions.Action) (*Config, error) {
	ghctx, err := a.Context()
	if err != nil {
		return nil, fmt.Errorf("reading actions context: %w", err)
	}

	owner, repo := ghctx.Repo()

	return &Config{
		GitHubToken: a.GetInput(TokenInput),
		APIURL:      ghctx.APIURL,
		PullRequest: model.PullRequestRef{
			Owner:  owner,
			Repo:   repo,
			Number: pullRequestNumber(ghctx.Event),
		},
		Timeout:      Timeout,
		PollInterval: PollInterval,
	}, nil
}

// pullRequestNumber extracts pull_request.number from the event payload.
// JSON numbers decode as float64.
func pullRequestNumber(event map[string]any) int {
	pr, ok := event["pull_request"].(map[string]any)
	if !ok {
		return 0
	}
	n, ok := pr["number"].(float64)
	if !ok {
		return 0
	}
	return int(n)
}
