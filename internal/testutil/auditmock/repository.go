package auditmock

import (
	"context"

	domain "report-approval-service/internal/domain/audit"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	AppendFn                  func(ctx context.Context, e *domain.Entry) error
	ListByReportIDFn          func(ctx context.Context, reportID uint64) ([]domain.Entry, error)
	ExistsSuccessfulByActorFn func(ctx context.Context, reportID uint64, actorID string) (bool, error)
	ListReportIDsByActorFn    func(ctx context.Context, actorID string) ([]uint64, error)
}

func (m *Repo) Append(ctx context.Context, e *domain.Entry) error {
	if m.AppendFn != nil {
		return m.AppendFn(ctx, e)
	}
	return nil
}

func (m *Repo) ListByReportID(ctx context.Context, reportID uint64) ([]domain.Entry, error) {
	if m.ListByReportIDFn != nil {
		return m.ListByReportIDFn(ctx, reportID)
	}
	return nil, nil
}

func (m *Repo) ExistsSuccessfulByActor(ctx context.Context, reportID uint64, actorID string) (bool, error) {
	if m.ExistsSuccessfulByActorFn != nil {
		return m.ExistsSuccessfulByActorFn(ctx, reportID, actorID)
	}
	return false, nil
}

func (m *Repo) ListReportIDsByActor(ctx context.Context, actorID string) ([]uint64, error) {
	if m.ListReportIDsByActorFn != nil {
		return m.ListReportIDsByActorFn(ctx, actorID)
	}
	return nil, nil
}
