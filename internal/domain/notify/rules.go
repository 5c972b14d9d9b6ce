// Package notify decides who must hear about a successful transition. It
// only computes recipients; delivery belongs to the external notification
// subsystem behind the Enqueuer contract.
package notify

import (
	"context"

	"report-approval-service/internal/domain/report"
)

type EventType string

const (
	EventSubmitted       EventType = "report.submitted"
	EventManagerApproved EventType = "report.manager_approved"
	EventCompleted       EventType = "report.completed"
	EventRejected        EventType = "report.rejected"
)

// Audience names a class of recipients to be resolved against the user
// directory at trigger time.
type Audience struct {
	Owner        bool
	DeptManagers bool // line managers of the report's department
	GMPool       bool // all general managers
}

func (a Audience) Empty() bool { return !a.Owner && !a.DeptManagers && !a.GMPool }

// AudienceFor maps (action, resulting status) to the audience and event
// type. Unlisted combinations notify nobody.
func AudienceFor(action report.Action, result report.Status) (Audience, EventType) {
	switch {
	case action == report.ActionSubmit && result == report.StatusManagerReview:
		return Audience{DeptManagers: true}, EventSubmitted
	case action == report.ActionApprove && result == report.StatusManagerApproved:
		return Audience{Owner: true, GMPool: true}, EventManagerApproved
	case action == report.ActionApprove && result == report.StatusCompleted:
		return Audience{Owner: true}, EventCompleted
	case action == report.ActionReject &&
		(result == report.StatusManagerRejected || result == report.StatusFinalRejected):
		return Audience{Owner: true}, EventRejected
	}
	return Audience{}, ""
}

// Enqueuer hands one (recipient, event, report) triple to the delivery
// subsystem. Fire-and-forget from the engine's viewpoint.
type Enqueuer interface {
	Enqueue(ctx context.Context, recipientID string, event EventType, reportID string) error
}
