// Package moderation implements the report lifecycle: the status
// machine itself plus the admin-side operations that move reports
// through it and keep the list and detail views in step.
package moderation

import (
	"context"
	"fmt"
	"sync"

	"github.com/lumen-social/cli/pkg/api"
)

// Report statuses.
const (
	StatusPending   = "pending"
	StatusReviewed  = "reviewed"
	StatusResolved  = "resolved"
	StatusDismissed = "dismissed"
)

// transitions lists every legal status move. Self-transitions are
// illegal, and closed reports (resolved/dismissed) can only be reopened
// to pending, never moved directly between closed states.
var transitions = map[string][]string{
	StatusPending:   {StatusReviewed, StatusResolved, StatusDismissed},
	StatusReviewed:  {StatusResolved, StatusDismissed},
	StatusResolved:  {StatusPending},
	StatusDismissed: {StatusPending},
}

// ValidStatus reports whether s names a report status.
func ValidStatus(s string) bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition reports whether a report may move from one status to
// another in a single step.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStatuses returns the statuses reachable from the given one in a
// single step.
func NextStatuses(from string) []string {
	return append([]string(nil), transitions[from]...)
}

// Updater is the remote call that persists a transition. Defaults to
// the api package; tests substitute a fake.
type Updater interface {
	UpdateReportStatus(ctx context.Context, reportID, status, note string) (*api.Report, error)
}

type apiUpdater struct{}

func (apiUpdater) UpdateReportStatus(ctx context.Context, reportID, status, note string) (*api.Report, error) {
	return api.UpdateReportStatus(ctx, reportID, status, note)
}

// Queue is the admin's working set of reports: the list plus an
// optionally open detail view. A successful transition updates both.
type Queue struct {
	mu      sync.Mutex
	updater Updater
	reports []api.Report
	current *api.Report
}

// NewQueue builds a queue with an explicit updater.
func NewQueue(u Updater) *Queue {
	return &Queue{updater: u}
}

// DefaultQueue builds a queue wired to the real API.
func DefaultQueue() *Queue {
	return NewQueue(apiUpdater{})
}

// SetReports replaces the list, e.g. after fetching a page.
func (q *Queue) SetReports(reports []api.Report) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.reports = append([]api.Report(nil), reports...)
}

// Reports returns a copy of the list.
func (q *Queue) Reports() []api.Report {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]api.Report(nil), q.reports...)
}

// Open sets the detail view to one report.
func (q *Queue) Open(report api.Report) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.current = &report
}

// Current returns the open detail view, nil when none.
func (q *Queue) Current() *api.Report {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.current == nil {
		return nil
	}
	r := *q.current
	return &r
}

// Close clears the detail view.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.current = nil
}

// Transition validates the move locally, persists it remotely, and on
// success updates both the list entry and the open detail view. Illegal
// moves are rejected before any network call.
func (q *Queue) Transition(ctx context.Context, reportID, to, note string) (*api.Report, error) {
	if !ValidStatus(to) {
		return nil, fmt.Errorf("unknown report status %q", to)
	}

	from, ok := q.statusOf(reportID)
	if !ok {
		return nil, fmt.Errorf("report %s not loaded", reportID)
	}
	if !CanTransition(from, to) {
		return nil, fmt.Errorf("report cannot move from %s to %s", from, to)
	}

	updated, err := q.updater.UpdateReportStatus(ctx, reportID, to, note)
	if err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	for i := range q.reports {
		if q.reports[i].ID == reportID {
			q.reports[i] = *updated
		}
	}
	if q.current != nil && q.current.ID == reportID {
		r := *updated
		q.current = &r
	}
	return updated, nil
}

func (q *Queue) statusOf(reportID string) (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.current != nil && q.current.ID == reportID {
		return q.current.Status, true
	}
	for i := range q.reports {
		if q.reports[i].ID == reportID {
			return q.reports[i].Status, true
		}
	}
	return "", false
}
