package model

// DeploymentState is the state reported by a deployment status entry.
type DeploymentState string

const (
	DeploymentStateSuccess    DeploymentState = "success"
	DeploymentStatePending    DeploymentState = "pending"
	DeploymentStateInProgress DeploymentState = "in_progress"
	DeploymentStateQueued     DeploymentState = "queued"
	DeploymentStateFailure    DeploymentState = "failure"
	DeploymentStateError      DeploymentState = "error"
	DeploymentStateInactive   DeploymentState = "inactive"
)

// Deployment is a single deployment created for a commit.
type Deployment struct {
	ID  int64
	SHA string
}

// DeploymentStatus is one entry of a deployment's status history.
type DeploymentStatus struct {
	State DeploymentState
	// TargetURL is nil when the platform did not report one.
	TargetURL *string
}

// IsSuccess reports whether the status is in the terminal successful state.
func (s DeploymentStatus) IsSuccess() bool {
	return s.State == DeploymentStateSuccess
}
