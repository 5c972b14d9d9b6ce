package mysql

import (
	"context"

	auditDomain "report-approval-service/internal/domain/audit"

	"gorm.io/gorm"
)

// AuditRepository is append-only by construction: it exposes no update or
// delete path, and entries are read back in insert order.
type AuditRepository struct{ db *gorm.DB }

func NewAuditRepository(db *gorm.DB) *AuditRepository { return &AuditRepository{db: db} }

func (r *AuditRepository) Append(ctx context.Context, e *auditDomain.Entry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *AuditRepository) ListByReportID(ctx context.Context, reportID uint64) ([]auditDomain.Entry, error) {
	var out []auditDomain.Entry
	res := r.db.WithContext(ctx).
		Where("report_id = ?", reportID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

func (r *AuditRepository) ExistsSuccessfulByActor(ctx context.Context, reportID uint64, actorID string) (bool, error) {
	var n int64
	res := r.db.WithContext(ctx).
		Model(&auditDomain.Entry{}).
		Where("report_id = ? AND actor_id = ? AND success = ?", reportID, actorID, true).
		Count(&n)
	return n > 0, res.Error
}

func (r *AuditRepository) ListReportIDsByActor(ctx context.Context, actorID string) ([]uint64, error) {
	var ids []uint64
	res := r.db.WithContext(ctx).
		Model(&auditDomain.Entry{}).
		Where("actor_id = ? AND success = ?", actorID, true).
		Distinct().
		Pluck("report_id", &ids)
	return ids, res.Error
}
