package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/ericfisherdev/waitfordeploy/internal/domain/model"
	"github.com/ericfisherdev/waitfordeploy/internal/domain/port/driven"
)

// Per-attempt failures of the status probe. All of them cause a retry.
var (
	ErrNoStatus         = errors.New("no status was available")
	ErrStatusNotSuccess = errors.New(`no status with state "success" was available`)
	ErrUnknownStatus    = errors.New("unknown status error")
)

// StatusWaiter polls a deployment's status list until its newest entry is successful.
type StatusWaiter struct {
	client driven.DeploymentClient
	poller *Poller
}

// NewStatusWaiter creates a StatusWaiter.
func NewStatusWaiter(client driven.DeploymentClient, poller *Poller) *StatusWaiter {
	return &StatusWaiter{client: client, poller: poller}
}

// Wait returns the newest status once it is "success". It never returns a
// status in any other state. Returns ErrPollTimeout when the budget runs out.
func (w *StatusWaiter) Wait(ctx context.Context, owner, repo string, deploymentID int64) (model.DeploymentStatus, error) {
	return Poll(ctx, w.poller, "deployment unavailable or not successful, retrying...", func(ctx context.Context) (model.DeploymentStatus, error) {
		statuses, err := w.client.ListDeploymentStatuses(ctx, owner, repo, deploymentID)
		if err != nil {
			return model.DeploymentStatus{}, err
		}
		return latestSuccessful(statuses)
	})
}

// latestSuccessful checks the newest status of a listing.
func latestSuccessful(statuses []model.DeploymentStatus) (model.DeploymentStatus, error) {
	status, ok := model.MostRecent(statuses)

	switch {
	case !ok:
		return model.DeploymentStatus{}, ErrNoStatus
	case !status.IsSuccess():
		return model.DeploymentStatus{}, fmt.Errorf("%w (latest state %q)", ErrStatusNotSuccess, status.State)
	case status.IsSuccess():
		return status, nil
	default:
		// Unreachable while the cases above are exhaustive.
		return model.DeploymentStatus{}, ErrUnknownStatus
	}
}
