package uow

import (
	"context"

	"report-approval-service/internal/domain/audit"
	"report-approval-service/internal/domain/report"
	"report-approval-service/internal/domain/user"
)

type Repos struct {
	Reports report.Repository
	Audits  audit.Repository
	Users   user.Repository
}

// UnitOfWork binds repositories to one transaction so a transition's
// read-decide-write and its audit append commit or roll back together.
type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the report row first, then pass it in
	WithinReportTx(ctx context.Context, reportID string, fn func(r Repos, rep *report.Report) error) error
}
