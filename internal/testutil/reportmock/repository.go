package reportmock

import (
	"context"

	domain "report-approval-service/internal/domain/report"

	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Only fill in the methods a test needs; unfilled getters report not-found.
type Repo struct {
	CreateFn                 func(ctx context.Context, r *domain.Report) error
	SaveFn                   func(ctx context.Context, r *domain.Report) error
	SoftDeleteFn             func(ctx context.Context, r *domain.Report, deletedBy string) error
	GetByReportIDFn          func(ctx context.Context, reportID string) (*domain.Report, error)
	GetByReportIDForUpdateFn func(ctx context.Context, reportID string) (*domain.Report, error)
	CountByCodePrefixFn      func(ctx context.Context, prefix string) (int64, error)
	ListByOwnerFn            func(ctx context.Context, ownerID string) ([]domain.Report, error)
	ListByDepartmentFn       func(ctx context.Context, department string) ([]domain.Report, error)
	ListAllFn                func(ctx context.Context) ([]domain.Report, error)
	ListByIDsFn              func(ctx context.Context, ids []uint64) ([]domain.Report, error)
}

func (m *Repo) Create(ctx context.Context, r *domain.Report) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, r *domain.Report) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	return nil
}

func (m *Repo) SoftDelete(ctx context.Context, r *domain.Report, deletedBy string) error {
	if m.SoftDeleteFn != nil {
		return m.SoftDeleteFn(ctx, r, deletedBy)
	}
	return nil
}

func (m *Repo) GetByReportID(ctx context.Context, reportID string) (*domain.Report, error) {
	if m.GetByReportIDFn != nil {
		return m.GetByReportIDFn(ctx, reportID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByReportIDForUpdate(ctx context.Context, reportID string) (*domain.Report, error) {
	if m.GetByReportIDForUpdateFn != nil {
		return m.GetByReportIDForUpdateFn(ctx, reportID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) CountByCodePrefix(ctx context.Context, prefix string) (int64, error) {
	if m.CountByCodePrefixFn != nil {
		return m.CountByCodePrefixFn(ctx, prefix)
	}
	return 0, nil
}

func (m *Repo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Report, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, ownerID)
	}
	return nil, nil
}

func (m *Repo) ListByDepartment(ctx context.Context, department string) ([]domain.Report, error) {
	if m.ListByDepartmentFn != nil {
		return m.ListByDepartmentFn(ctx, department)
	}
	return nil, nil
}

func (m *Repo) ListAll(ctx context.Context) ([]domain.Report, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx)
	}
	return nil, nil
}

func (m *Repo) ListByIDs(ctx context.Context, ids []uint64) ([]domain.Report, error) {
	if m.ListByIDsFn != nil {
		return m.ListByIDsFn(ctx, ids)
	}
	return nil, nil
}
