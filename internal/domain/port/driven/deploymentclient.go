package driven

import (
	"context"

	"github.com/ericfisherdev/waitfordeploy/internal/domain/model"
)

// DeploymentClient defines the driven port for the hosting platform's
// pull request and deployment endpoints.
type DeploymentClient interface {
	// GetPullRequest fetches a single pull request and reports the lookup's
	// HTTP status alongside its head commit.
	GetPullRequest(ctx context.Context, owner, repo string, number int) (*model.PullRequestLookup, error)

	// ListDeployments returns the deployments created for the given commit,
	// in the order the platform returned them (newest first).
	ListDeployments(ctx context.Context, owner, repo, sha string) ([]model.Deployment, error)

	// ListDeploymentStatuses returns the status history of a deployment,
	// in the order the platform returned them (newest first).
	ListDeploymentStatuses(ctx context.Context, owner, repo string, deploymentID int64) ([]model.DeploymentStatus, error)
}
