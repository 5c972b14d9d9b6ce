package uowmock

import (
	"context"
	"errors"

	"report-approval-service/internal/domain/report"
	"report-approval-service/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn       func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinReportTxFn func(ctx context.Context, reportID string, fn func(r uow.Repos, rep *report.Report) error) error
}

func New() *UoW { return &UoW{} }

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinReportTx(ctx context.Context, reportID string, fn func(r uow.Repos, rep *report.Report) error) error {
	if m.WithinReportTxFn != nil {
		return m.WithinReportTxFn(ctx, reportID, fn)
	}
	return errUnimplemented
}
