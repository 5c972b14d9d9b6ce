package report

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"report-approval-service/internal/domain/audit"
	"report-approval-service/internal/domain/authz"
	domain "report-approval-service/internal/domain/report"
	"report-approval-service/internal/domain/uow"
	"report-approval-service/internal/domain/user"
	"report-approval-service/pkg/id"
)

// codeAttempts bounds the retry loop on code uniqueness collisions.
const codeAttempts = 3

type Usecase struct {
	reports domain.Repository
	audits  audit.Repository
	users   user.Repository
	uow     uow.UnitOfWork
	log     *zap.Logger
}

func NewUsecase(reports domain.Repository, audits audit.Repository, users user.Repository, tx uow.UnitOfWork, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{reports: reports, audits: audits, users: users, uow: tx, log: log}
}

// Create allocates identity and code atomically and writes the Create
// audit entry in the same transaction. The code's sequence number comes
// from a count of the department+year prefix; a concurrent creation that
// takes the same number trips the unique index and the whole transaction
// is retried with a fresh count.
func (u *Usecase) Create(ctx context.Context, in CreateInput) (*ReportDTO, error) {
	if in.OwnerID == "" || in.Title == "" {
		return nil, errors.New("invalid input")
	}

	owner, err := u.users.GetByUserID(ctx, in.OwnerID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotAuthorized
		}
		return nil, err
	}
	if !owner.Active {
		return nil, domain.ErrNotAuthorized
	}

	dept := in.Department
	if dept == "" {
		dept = owner.Department
	}
	year := time.Now().UTC().Year()

	var dto *ReportDTO
	for attempt := 1; attempt <= codeAttempts; attempt++ {
		err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
			n, cerr := r.Reports.CountByCodePrefix(ctx, domain.CodePrefix(dept, year))
			if cerr != nil {
				return cerr
			}
			rep := &domain.Report{
				ReportID:        id.NewID32(),
				Code:            domain.BuildCode(dept, year, n+1),
				Title:           in.Title,
				Body:            in.Body,
				OwnerID:         owner.UserID,
				Department:      dept,
				Status:          domain.StatusDraft,
				StatusUpdatedAt: time.Now().UTC(),
			}
			if cerr := r.Reports.Create(ctx, rep); cerr != nil {
				return cerr
			}
			entry := &audit.Entry{
				AuditID:    id.NewID32(),
				ReportID:   rep.ID,
				ActorID:    owner.UserID,
				Action:     string(domain.ActionCreate),
				FromStatus: "",
				ToStatus:   string(domain.StatusDraft),
				Detail:     rep.Code,
				Success:    true,
			}
			if cerr := r.Audits.Append(ctx, entry); cerr != nil {
				return cerr
			}
			dto = toDTO(rep)
			return nil
		})
		if err == nil {
			return dto, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		u.log.Info("report code collision, retrying",
			zap.String("department", dept),
			zap.Int("attempt", attempt))
	}
	return nil, domain.ErrCodeConflict
}

// Get returns the report if the actor's read rules allow it.
func (u *Usecase) Get(ctx context.Context, actorID, reportID string) (*ReportDTO, error) {
	rep, actor, err := u.loadWithActor(ctx, actorID, reportID)
	if err != nil {
		return nil, err
	}
	if err := u.checkRead(ctx, actor, rep); err != nil {
		return nil, err
	}
	return toDTO(rep), nil
}

// ListAccessible returns every report the actor may read: staff see their
// own, line managers additionally their department and anything they have
// signed, general managers see everything.
func (u *Usecase) ListAccessible(ctx context.Context, actorID string) ([]ReportDTO, error) {
	actor, err := u.resolveActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	var (
		reports []domain.Report
		lerr    error
	)
	switch actor.Role {
	case user.RoleGeneralManager:
		reports, lerr = u.reports.ListAll(ctx)
	case user.RoleLineManager:
		reports, lerr = u.listForManager(ctx, actor)
	default:
		reports, lerr = u.reports.ListByOwner(ctx, actor.UserID)
	}
	if lerr != nil {
		return nil, lerr
	}

	out := make([]ReportDTO, 0, len(reports))
	for i := range reports {
		out = append(out, *toDTO(&reports[i]))
	}
	return out, nil
}

// AuditTrail returns a report's entries oldest first, gated by the same
// read rules as the report itself.
func (u *Usecase) AuditTrail(ctx context.Context, actorID, reportID string) ([]AuditEntryDTO, error) {
	rep, actor, err := u.loadWithActor(ctx, actorID, reportID)
	if err != nil {
		return nil, err
	}
	if err := u.checkRead(ctx, actor, rep); err != nil {
		return nil, err
	}

	entries, err := u.audits.ListByReportID(ctx, rep.ID)
	if err != nil {
		return nil, err
	}
	out := make([]AuditEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, AuditEntryDTO{
			AuditID:    e.AuditID,
			ActorID:    e.ActorID,
			Action:     e.Action,
			FromStatus: e.FromStatus,
			ToStatus:   e.ToStatus,
			Detail:     e.Detail,
			Success:    e.Success,
			At:         e.CreatedAt,
		})
	}
	return out, nil
}

func (u *Usecase) resolveActor(ctx context.Context, actorID string) (*user.User, error) {
	actor, err := u.users.GetByUserID(ctx, actorID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotAuthorized
		}
		return nil, err
	}
	if !actor.Active {
		return nil, domain.ErrNotAuthorized
	}
	return actor, nil
}

func (u *Usecase) loadWithActor(ctx context.Context, actorID, reportID string) (*domain.Report, *user.User, error) {
	actor, err := u.resolveActor(ctx, actorID)
	if err != nil {
		return nil, nil, err
	}
	rep, err := u.reports.GetByReportID(ctx, reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, err
	}
	return rep, actor, nil
}

func (u *Usecase) checkRead(ctx context.Context, actor *user.User, rep *domain.Report) error {
	hasSigned := false
	if actor.Role == user.RoleLineManager {
		ok, err := u.audits.ExistsSuccessfulByActor(ctx, rep.ID, actor.UserID)
		if err != nil {
			return err
		}
		hasSigned = ok
	}
	if !authz.CanRead(actor.Role, rep.OwnerID == actor.UserID, actor.Department, rep.Department, hasSigned) {
		return domain.ErrNotAuthorized
	}
	return nil
}

// listForManager merges department reports, authored reports and signed
// reports, deduplicated, creation order.
func (u *Usecase) listForManager(ctx context.Context, actor *user.User) ([]domain.Report, error) {
	byID := map[uint64]domain.Report{}

	dept, err := u.reports.ListByDepartment(ctx, actor.Department)
	if err != nil {
		return nil, err
	}
	for _, r := range dept {
		byID[r.ID] = r
	}

	own, err := u.reports.ListByOwner(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	for _, r := range own {
		byID[r.ID] = r
	}

	signedIDs, err := u.audits.ListReportIDsByActor(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	missing := make([]uint64, 0, len(signedIDs))
	for _, sid := range signedIDs {
		if _, ok := byID[sid]; !ok {
			missing = append(missing, sid)
		}
	}
	if len(missing) > 0 {
		signed, err := u.reports.ListByIDs(ctx, missing)
		if err != nil {
			return nil, err
		}
		for _, r := range signed {
			byID[r.ID] = r
		}
	}

	out := make([]domain.Report, 0, len(byID))
	for _, r := range byID {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
