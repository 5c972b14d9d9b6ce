package mysql

import (
	"context"
	"time"

	reportDomain "report-approval-service/internal/domain/report"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReportRepository struct{ db *gorm.DB }

func NewReportRepository(db *gorm.DB) *ReportRepository { return &ReportRepository{db: db} }

func (r *ReportRepository) Create(ctx context.Context, rep *reportDomain.Report) error {
	return r.db.WithContext(ctx).Create(rep).Error
}

func (r *ReportRepository) Save(ctx context.Context, rep *reportDomain.Report) error {
	return r.db.WithContext(ctx).Save(rep).Error
}

func (r *ReportRepository) SoftDelete(ctx context.Context, rep *reportDomain.Report, deletedBy string) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(rep).Updates(map[string]any{
		"deleted_at": now,
		"deleted_by": deletedBy,
	}).Error
}

func (r *ReportRepository) GetByReportID(ctx context.Context, reportID string) (*reportDomain.Report, error) {
	var out reportDomain.Report
	res := r.db.WithContext(ctx).Where("report_id = ?", reportID).First(&out)
	return &out, res.Error
}

// GetByReportIDForUpdate takes the row lock that serializes concurrent
// transitions against the same report. Must run inside a transaction.
func (r *ReportRepository) GetByReportIDForUpdate(ctx context.Context, reportID string) (*reportDomain.Report, error) {
	var out reportDomain.Report
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("report_id = ?", reportID).
		First(&out)
	return &out, res.Error
}

// CountByCodePrefix includes soft-deleted rows: a deleted report keeps its
// number so codes are never reissued.
func (r *ReportRepository) CountByCodePrefix(ctx context.Context, prefix string) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Unscoped().
		Model(&reportDomain.Report{}).
		Where("code LIKE ?", prefix+"%").
		Count(&n)
	return n, res.Error
}

func (r *ReportRepository) ListByOwner(ctx context.Context, ownerID string) ([]reportDomain.Report, error) {
	var out []reportDomain.Report
	res := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

func (r *ReportRepository) ListByDepartment(ctx context.Context, department string) ([]reportDomain.Report, error) {
	var out []reportDomain.Report
	res := r.db.WithContext(ctx).
		Where("department = ?", department).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

func (r *ReportRepository) ListAll(ctx context.Context) ([]reportDomain.Report, error) {
	var out []reportDomain.Report
	res := r.db.WithContext(ctx).Order("id ASC").Find(&out)
	return out, res.Error
}

func (r *ReportRepository) ListByIDs(ctx context.Context, ids []uint64) ([]reportDomain.Report, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var out []reportDomain.Report
	res := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}
