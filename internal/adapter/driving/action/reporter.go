// Package action adapts the GitHub Actions runtime to the RunReporter port.
package action

import (
	"sync"

	"github.com/sethvargo/go-githubactions"

	"github.com/ericfisherdev/waitfordeploy/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.RunReporter = (*Reporter)(nil)

// Reporter writes outputs and error annotations through the workflow-command
// protocol and remembers every failure so the process can exit non-zero.
type Reporter struct {
	action *githubactions.Action

	mu       sync.Mutex
	failures []string
}

// NewReporter wraps an Action.
func NewReporter(a *githubactions.Action) *Reporter {
	return &Reporter{action: a}
}

// SetOutput publishes a step output.
func (r *Reporter) SetOutput(name, value string) {
	r.action.SetOutput(name, value)
}

// Fail emits an error annotation and records the message.
func (r *Reporter) Fail(message string) {
	r.mu.Lock()
	r.failures = append(r.failures, message)
	r.mu.Unlock()

	r.action.Errorf("%s", message)
}

// Failed returns true if Fail was called at least once.
func (r *Reporter) Failed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.failures) > 0
}

// LastFailure returns the effective failure message, or "" when none was reported.
func (r *Reporter) LastFailure() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.failures) == 0 {
		return ""
	}
	return r.failures[len(r.failures)-1]
}
