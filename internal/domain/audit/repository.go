package audit

import "context"

// Repository is append-only. There is deliberately no update or delete.
type Repository interface {
	Append(ctx context.Context, e *Entry) error
	// ListByReportID returns entries in append order, oldest first.
	ListByReportID(ctx context.Context, reportID uint64) ([]Entry, error)
	// ExistsSuccessfulByActor reports whether actorID has at least one
	// successful entry on the report. Backs the sticky manager access rule.
	ExistsSuccessfulByActor(ctx context.Context, reportID uint64, actorID string) (bool, error)
	// ListReportIDsByActor returns distinct report ids the actor has
	// successfully acted on.
	ListReportIDsByActor(ctx context.Context, actorID string) ([]uint64, error)
}
