package model

import (
	"fmt"
	"net/http"
)

// PullRequestRef identifies the pull request that triggered the run.
// Number is zero when the triggering event carried no pull request.
type PullRequestRef struct {
	Owner  string
	Repo   string
	Number int
}

// HasNumber returns true when the event context supplied a pull request number.
func (r PullRequestRef) HasNumber() bool {
	return r.Number > 0
}

// String renders the ref as owner/repo#number for logging.
func (r PullRequestRef) String() string {
	return fmt.Sprintf("%s/%s#%d", r.Owner, r.Repo, r.Number)
}

// PullRequestLookup is the result of fetching a single pull request.
type PullRequestLookup struct {
	StatusCode int    // HTTP status of the lookup call.
	HeadSHA    string // Head commit of the pull request.
}

// OK returns true when the lookup was answered with 200.
func (l PullRequestLookup) OK() bool {
	return l.StatusCode == http.StatusOK
}
