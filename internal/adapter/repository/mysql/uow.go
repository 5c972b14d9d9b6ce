package mysql

import (
	"context"

	"report-approval-service/internal/domain/report"
	"report-approval-service/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func txRepos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Reports: &ReportRepository{db: tx},
		Audits:  &AuditRepository{db: tx},
		Users:   &UserRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(txRepos(tx))
	})
}

func (u *GormUoW) WithinReportTx(ctx context.Context, reportID string, fn func(r uow.Repos, rep *report.Report) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := txRepos(tx)
		// lock the report row up-front so concurrent transitions serialize
		rep, err := r.Reports.GetByReportIDForUpdate(ctx, reportID)
		if err != nil {
			return err
		}
		return fn(r, rep)
	})
}
