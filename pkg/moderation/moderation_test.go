package moderation

import (
	"context"
	"errors"
	"testing"

	"github.com/lumen-social/cli/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUpdater struct {
	calls   int
	lastTo  string
	fail    error
	updated *api.Report
}

func (f *fakeUpdater) UpdateReportStatus(ctx context.Context, reportID, status, note string) (*api.Report, error) {
	f.calls++
	f.lastTo = status
	if f.fail != nil {
		return nil, f.fail
	}
	if f.updated != nil {
		return f.updated, nil
	}
	return &api.Report{ID: reportID, Status: status, AdminNote: note}, nil
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{StatusPending, StatusReviewed, true},
		{StatusPending, StatusResolved, true},
		{StatusPending, StatusDismissed, true},
		{StatusReviewed, StatusResolved, true},
		{StatusReviewed, StatusDismissed, true},
		{StatusResolved, StatusPending, true},
		{StatusDismissed, StatusPending, true},

		{StatusPending, StatusPending, false},
		{StatusReviewed, StatusPending, false},
		{StatusReviewed, StatusReviewed, false},
		{StatusResolved, StatusResolved, false},
		{StatusResolved, StatusReviewed, false},
		{StatusResolved, StatusDismissed, false},
		{StatusDismissed, StatusResolved, false},
		{StatusDismissed, StatusReviewed, false},
		{"bogus", StatusPending, false},
	}

	for _, c := range cases {
		assert.Equal(t, c.ok, CanTransition(c.from, c.to), "%s -> %s", c.from, c.to)
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusPending, StatusReviewed, StatusResolved, StatusDismissed} {
		assert.True(t, ValidStatus(s))
	}
	assert.False(t, ValidStatus("open"))
	assert.False(t, ValidStatus(""))
}

func TestNextStatuses(t *testing.T) {
	assert.ElementsMatch(t, []string{StatusReviewed, StatusResolved, StatusDismissed}, NextStatuses(StatusPending))
	assert.ElementsMatch(t, []string{StatusPending}, NextStatuses(StatusResolved))
	assert.Empty(t, NextStatuses("bogus"))
}

func TestQueueTransitionUpdatesListAndDetail(t *testing.T) {
	u := &fakeUpdater{}
	q := NewQueue(u)
	q.SetReports([]api.Report{
		{ID: "r1", Status: StatusPending},
		{ID: "r2", Status: StatusPending},
	})
	q.Open(api.Report{ID: "r1", Status: StatusPending})

	updated, err := q.Transition(context.Background(), "r1", StatusReviewed, "looking into it")
	require.NoError(t, err)
	assert.Equal(t, StatusReviewed, updated.Status)
	assert.Equal(t, 1, u.calls)

	// Both the list entry and the detail view reflect the new status.
	reports := q.Reports()
	assert.Equal(t, StatusReviewed, reports[0].Status)
	assert.Equal(t, StatusPending, reports[1].Status, "other reports untouched")
	require.NotNil(t, q.Current())
	assert.Equal(t, StatusReviewed, q.Current().Status)
}

func TestQueueTransitionRejectsIllegalMoveLocally(t *testing.T) {
	u := &fakeUpdater{}
	q := NewQueue(u)
	q.SetReports([]api.Report{{ID: "r1", Status: StatusDismissed}})

	_, err := q.Transition(context.Background(), "r1", StatusResolved, "")
	require.Error(t, err)
	assert.Equal(t, 0, u.calls, "illegal moves must not reach the network")

	// Reopening a dismissed report is the one legal way out.
	_, err = q.Transition(context.Background(), "r1", StatusPending, "")
	require.NoError(t, err)
	assert.Equal(t, 1, u.calls)
}

func TestQueueTransitionUnknownStatus(t *testing.T) {
	u := &fakeUpdater{}
	q := NewQueue(u)
	q.SetReports([]api.Report{{ID: "r1", Status: StatusPending}})

	_, err := q.Transition(context.Background(), "r1", "archived", "")
	require.Error(t, err)
	assert.Equal(t, 0, u.calls)
}

func TestQueueTransitionUnloadedReport(t *testing.T) {
	u := &fakeUpdater{}
	q := NewQueue(u)

	_, err := q.Transition(context.Background(), "missing", StatusReviewed, "")
	require.Error(t, err)
	assert.Equal(t, 0, u.calls)
}

func TestQueueTransitionRemoteFailureKeepsState(t *testing.T) {
	u := &fakeUpdater{fail: errors.New("server error")}
	q := NewQueue(u)
	q.SetReports([]api.Report{{ID: "r1", Status: StatusPending}})

	_, err := q.Transition(context.Background(), "r1", StatusReviewed, "")
	require.Error(t, err)
	assert.Equal(t, StatusPending, q.Reports()[0].Status, "failed transitions must not move the report")
}

func TestQueueOpenClose(t *testing.T) {
	q := NewQueue(&fakeUpdater{})
	assert.Nil(t, q.Current())

	q.Open(api.Report{ID: "r1", Status: StatusPending})
	require.NotNil(t, q.Current())
	assert.Equal(t, "r1", q.Current().ID)

	q.Close()
	assert.Nil(t, q.Current())
}

func TestQueueTransitionUsesDetailStatus(t *testing.T) {
	// The detail view can be fresher than the list; its status wins.
	u := &fakeUpdater{}
	q := NewQueue(u)
	q.SetReports([]api.Report{{ID: "r1", Status: StatusPending}})
	q.Open(api.Report{ID: "r1", Status: StatusResolved})

	_, err := q.Transition(context.Background(), "r1", StatusReviewed, "")
	require.Error(t, err, "resolved cannot move to reviewed")
	assert.Equal(t, 0, u.calls)
}
