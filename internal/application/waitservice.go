package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ericfisherdev/waitfordeploy/internal/domain/model"
	"github.com/ericfisherdev/waitfordeploy/internal/domain/port/driven"
)

// OutputTargetURL is the name of the output carrying the preview URL.
const OutputTargetURL = "target_url"

// Failure messages reported to the host.
const (
	MsgMissingToken       = "Required field `GITHUB_TOKEN` was not provided"
	MsgMissingPRNumber    = "No pull request number was found"
	MsgPRLookupFailed     = "Could not get information about the current pull request"
	MsgNoDeployment       = "No development data was found"
	MsgStatusTimeout      = "Timeout reached: Unable to wait for an deployment to be successful"
	MsgNoTargetURL        = "No target url was found"
	msgURLTimeoutTemplate = "Timeout reached: Unable to connect to %s"
)

// URLTimeoutMessage returns the failure reported when the preview URL never answers.
func URLTimeoutMessage(url string) string {
	return fmt.Sprintf(msgURLTimeoutTemplate, url)
}

// RunInput carries the invocation parameters of one run.
type RunInput struct {
	Token       string
	PullRequest model.PullRequestRef
	// FailFast turns the credential and lookup checks into stopping failures.
	FailFast bool
}

// WaitService resolves a pull request's newest deployment, waits for it to
// succeed, publishes its target URL and waits for that URL to answer.
type WaitService struct {
	client       driven.DeploymentClient
	reporter     driven.RunReporter
	statusWaiter *StatusWaiter
	urlWaiter    *URLWaiter
}

// NewWaitService creates a WaitService. Each waiter should carry its own
// Poller so the two stages get independent budgets.
func NewWaitService(
	client driven.DeploymentClient,
	reporter driven.RunReporter,
	statusWaiter *StatusWaiter,
	urlWaiter *URLWaiter,
) *WaitService {
	return &WaitService{
		client:       client,
		reporter:     reporter,
		statusWaiter: statusWaiter,
		urlWaiter:    urlWaiter,
	}
}

// Run executes one pass. Every failure is delivered to the reporter; an
// unexpected error from a collaborator is logged and reported once.
func (s *WaitService) Run(ctx context.Context, in RunInput) {
	if err := s.run(ctx, in); err != nil {
		slog.Error("wait for deployment failed", "error", err)
		s.reporter.Fail(err.Error())
	}
}

func (s *WaitService) run(ctx context.Context, in RunInput) error {
	if in.Token == "" {
		s.reporter.Fail(MsgMissingToken)
		if in.FailFast {
			return nil
		}
	}

	pr := in.PullRequest
	if !pr.HasNumber() {
		s.reporter.Fail(MsgMissingPRNumber)
		return nil
	}

	lookup, err := s.client.GetPullRequest(ctx, pr.Owner, pr.Repo, pr.Number)
	if err != nil {
		return err
	}
	if !lookup.OK() {
		s.reporter.Fail(MsgPRLookupFailed)
		if in.FailFast {
			return nil
		}
	}
	slog.Info("resolved pull request", "pull_request", pr.String(), "head_sha", lookup.HeadSHA)

	deployments, err := s.client.ListDeployments(ctx, pr.Owner, pr.Repo, lookup.HeadSHA)
	if err != nil {
		return err
	}
	deployment, ok := model.MostRecent(deployments)
	if !ok {
		s.reporter.Fail(MsgNoDeployment)
		return nil
	}
	slog.Info("resolved deployment", "deployment_id", deployment.ID, "sha", deployment.SHA)

	status, err := s.statusWaiter.Wait(ctx, pr.Owner, pr.Repo, deployment.ID)
	if errors.Is(err, ErrPollTimeout) {
		s.reporter.Fail(MsgStatusTimeout)
		return nil
	}
	if err != nil {
		return err
	}

	if status.TargetURL == nil {
		s.reporter.Fail(MsgNoTargetURL)
		return nil
	}
	targetURL := *status.TargetURL

	slog.Info("target url » " + targetURL)
	s.reporter.SetOutput(OutputTargetURL, targetURL)

	slog.Info("Waiting for a status code 200 from: " + targetURL)
	err = s.urlWaiter.Wait(ctx, targetURL)
	if errors.Is(err, ErrPollTimeout) {
		s.reporter.Fail(URLTimeoutMessage(targetURL))
		return nil
	}
	return err
}
