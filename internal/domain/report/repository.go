package report

import "context"

type Repository interface {
	Create(ctx context.Context, r *Report) error
	GetByReportID(ctx context.Context, reportID string) (*Report, error)
	// GetByReportIDForUpdate locks the row for the duration of the
	// surrounding transaction (SELECT ... FOR UPDATE).
	GetByReportIDForUpdate(ctx context.Context, reportID string) (*Report, error)
	Save(ctx context.Context, r *Report) error
	SoftDelete(ctx context.Context, r *Report, deletedBy string) error

	// CountByCodePrefix counts existing codes for a department+year prefix,
	// soft-deleted rows included so numbers are never reissued.
	CountByCodePrefix(ctx context.Context, prefix string) (int64, error)

	ListByOwner(ctx context.Context, ownerID string) ([]Report, error)
	ListByDepartment(ctx context.Context, department string) ([]Report, error)
	ListAll(ctx context.Context) ([]Report, error)
	// ListByIDs resolves numeric primary keys to reports, creation order.
	ListByIDs(ctx context.Context, ids []uint64) ([]Report, error)
}
