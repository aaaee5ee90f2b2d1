package application_test

import (
	"context"
	"errors"
	"time"

	"github.com/ericfisherdev/waitfordeploy/internal/domain/model"
)

// --- Mock implementations ---

type mockDeploymentClient struct {
	getPR        func(ctx context.Context, owner, repo string, number int) (*model.PullRequestLookup, error)
	listDeploys  func(ctx context.Context, owner, repo, sha string) ([]model.Deployment, error)
	listStatuses func(ctx context.Context, owner, repo string, id int64) ([]model.DeploymentStatus, error)

	getPRCalls        int
	listDeploysCalls  int
	listStatusesCalls int
	lastSHA           string
	lastDeploymentID  int64
}

func (m *mockDeploymentClient) GetPullRequest(ctx context.Context, owner, repo string, number int) (*model.PullRequestLookup, error) {
	m.getPRCalls++
	if m.getPR == nil {
		return &model.PullRequestLookup{StatusCode: 200, HeadSHA: "deadbeef"}, nil
	}
	return m.getPR(ctx, owner, repo, number)
}

func (m *mockDeploymentClient) ListDeployments(ctx context.Context, owner, repo, sha string) ([]model.Deployment, error) {
	m.listDeploysCalls++
	m.lastSHA = sha
	if m.listDeploys == nil {
		return []model.Deployment{{ID: 7, SHA: sha}}, nil
	}
	return m.listDeploys(ctx, owner, repo, sha)
}

func (m *mockDeploymentClient) ListDeploymentStatuses(ctx context.Context, owner, repo string, id int64) ([]model.DeploymentStatus, error) {
	m.listStatusesCalls++
	m.lastDeploymentID = id
	return m.listStatuses(ctx, owner, repo, id)
}

type mockProber struct {
	probe func(url string) error
	urls  []string
}

func (m *mockProber) Probe(_ context.Context, url string) error {
	m.urls = append(m.urls, url)
	if m.probe == nil {
		return nil
	}
	return m.probe(url)
}

type mockReporter struct {
	outputs  map[string]string
	failures []string
}

func newMockReporter() *mockReporter {
	return &mockReporter{outputs: map[string]string{}}
}

func (m *mockReporter) SetOutput(name, value string) {
	m.outputs[name] = value
}

func (m *mockReporter) Fail(message string) {
	m.failures = append(m.failures, message)
}

// recordingSleep records requested sleeps without waiting.
type recordingSleep struct {
	calls []time.Duration
}

func (r *recordingSleep) Sleep(_ context.Context, d time.Duration) error {
	r.calls = append(r.calls, d)
	return nil
}

func (r *recordingSleep) total() time.Duration {
	var sum time.Duration
	for _, d := range r.calls {
		sum += d
	}
	return sum
}

var errUnreachable = errors.New("connection refused")

func strPtr(s string) *string { return &s }
