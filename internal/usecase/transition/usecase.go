package transition

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"report-approval-service/internal/domain/audit"
	"report-approval-service/internal/domain/authz"
	"report-approval-service/internal/domain/notify"
	"report-approval-service/internal/domain/report"
	"report-approval-service/internal/domain/uow"
	"report-approval-service/internal/domain/user"
	"report-approval-service/pkg/id"
)

// How long a transition may wait on the report row lock before failing
// with report.ErrContention.
const defaultLockTimeout = 3 * time.Second

// Usecase is the transition engine: the only code path that changes a
// report's status. Each attempt runs read-decide-write under the report's
// row lock, with the audit append in the same transaction.
type Usecase struct {
	users       user.Repository
	uow         uow.UnitOfWork
	enq         notify.Enqueuer
	log         *zap.Logger
	lockTimeout time.Duration
}

func NewUsecase(users user.Repository, tx uow.UnitOfWork, enq notify.Enqueuer, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{users: users, uow: tx, enq: enq, log: log, lockTimeout: defaultLockTimeout}
}

type Input struct {
	ReportID string
	ActorID  string
	Action   report.Action
	Reason   string
	// Draft edits only; nil fields keep current values.
	Title *string
	Body  *string
}

type ResultDTO struct {
	ReportID  string        `json:"report_id"`
	Code      string        `json:"code"`
	Action    report.Action `json:"action"`
	NewStatus report.Status `json:"new_status"`
	At        time.Time     `json:"at"`
}

// snapshot of fields needed after commit for notification fan-out.
type postCommit struct {
	ownerID    string
	department string
	newStatus  report.Status
}

func (u *Usecase) Attempt(ctx context.Context, in Input) (*ResultDTO, error) {
	if u.uow == nil {
		return nil, report.ErrInvalidTransition
	}
	if !in.Action.IsValid() || in.Action == report.ActionCreate {
		return nil, report.ErrInvalidTransition
	}

	// Bound the lock acquisition so a stuck row surfaces as contention
	// instead of blocking the caller indefinitely.
	lockCtx, cancel := context.WithTimeout(ctx, u.lockTimeout)
	defer cancel()

	var (
		dto    *ResultDTO
		post   *postCommit
		denial error
	)

	err := u.uow.WithinReportTx(lockCtx, in.ReportID, func(r uow.Repos, rep *report.Report) error {
		now := time.Now().UTC()

		actor, aerr := r.Users.GetByUserID(lockCtx, in.ActorID)
		if aerr != nil || !actor.Active {
			if aerr != nil && !errors.Is(aerr, user.ErrNotFound) && !errors.Is(aerr, gorm.ErrRecordNotFound) {
				return aerr
			}
			denial = report.ErrNotAuthorized
			return r.Audits.Append(lockCtx, failedEntry(rep, in, "actor unknown or inactive"))
		}

		authzIn := authz.Input{
			Role:             actor.Role,
			IsOwner:          rep.OwnerID == actor.UserID,
			ActorDepartment:  actor.Department,
			ReportDepartment: rep.Department,
			Status:           rep.Status,
			Action:           in.Action,
		}
		dec := authz.Decide(authzIn)
		if !dec.Allowed {
			denial = classifyDenial(authzIn)
			return r.Audits.Append(lockCtx, failedEntry(rep, in, denialDetail(denial, in.Reason)))
		}

		from := rep.Status
		applyTransition(rep, dec.Next, actor.UserID, in, now)

		if in.Action == report.ActionDelete {
			if err := r.Reports.SoftDelete(lockCtx, rep, actor.UserID); err != nil {
				return err
			}
		} else {
			if err := r.Reports.Save(lockCtx, rep); err != nil {
				return err
			}
		}

		// Audit is part of the atomic unit: if this append fails the state
		// write above rolls back with it.
		entry := &audit.Entry{
			AuditID:    id.NewID32(),
			ReportID:   rep.ID,
			ActorID:    actor.UserID,
			Action:     string(in.Action),
			FromStatus: string(from),
			ToStatus:   string(rep.Status),
			Detail:     in.Reason,
			Success:    true,
		}
		if err := r.Audits.Append(lockCtx, entry); err != nil {
			return err
		}

		dto = &ResultDTO{
			ReportID:  rep.ReportID,
			Code:      rep.Code,
			Action:    in.Action,
			NewStatus: rep.Status,
			At:        now,
		}
		post = &postCommit{ownerID: rep.OwnerID, department: rep.Department, newStatus: rep.Status}
		return nil
	})

	if err != nil {
		return nil, u.mapTxError(err, in)
	}
	if denial != nil {
		return nil, denial
	}

	u.fanout(ctx, in.Action, dto, post)
	return dto, nil
}

func (u *Usecase) mapTxError(err error, in Input) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, report.ErrNotFound):
		return report.ErrNotFound
	case errors.Is(err, context.DeadlineExceeded):
		// Lock wait exhausted the budget: a concurrent transition holds
		// the row. Transient, caller may retry.
		u.log.Warn("transition contention",
			zap.String("report_id", in.ReportID),
			zap.String("actor_id", in.ActorID),
			zap.String("action", string(in.Action)))
		return report.ErrContention
	}
	return err
}

var allStatuses = []report.Status{
	report.StatusDraft, report.StatusSubmitted, report.StatusManagerReview,
	report.StatusManagerApproved, report.StatusFinalReview, report.StatusCompleted,
	report.StatusManagerRejected, report.StatusFinalRejected,
}

// classifyDenial distinguishes a wrong-status denial from a wrong-actor
// one. If this actor could perform the action at some other status, the
// status is the problem (InvalidTransition: e.g. re-approving an already
// approved report). If no status would permit it, the actor is the problem
// (NotAuthorized: wrong role, department or ownership).
func classifyDenial(in authz.Input) error {
	for _, s := range allStatuses {
		probe := in
		probe.Status = s
		if authz.Decide(probe).Allowed {
			return report.ErrInvalidTransition
		}
	}
	return report.ErrNotAuthorized
}

func denialDetail(denial error, reason string) string {
	kind := "not authorized"
	if errors.Is(denial, report.ErrInvalidTransition) {
		kind = "invalid transition"
	}
	if reason == "" {
		return "denied: " + kind
	}
	return fmt.Sprintf("denied: %s (%s)", kind, reason)
}

// failedEntry records a denied attempt. CreatedAt is left for the store to
// assign, the same as on the success path.
func failedEntry(rep *report.Report, in Input, detail string) *audit.Entry {
	return &audit.Entry{
		AuditID:    id.NewID32(),
		ReportID:   rep.ID,
		ActorID:    in.ActorID,
		Action:     string(in.Action),
		FromStatus: string(rep.Status),
		ToStatus:   string(rep.Status),
		Detail:     detail,
		Success:    false,
	}
}

// applyTransition writes the new status and its milestone stamp. Rejection
// metadata is set only on the rejected variants.
func applyTransition(rep *report.Report, next report.Status, actorID string, in Input, now time.Time) {
	if in.Action == report.ActionEdit {
		if in.Title != nil {
			rep.Title = *in.Title
		}
		if in.Body != nil {
			rep.Body = *in.Body
		}
		return
	}
	if in.Action == report.ActionDelete {
		return
	}

	rep.Status = next
	rep.StatusUpdatedAt = now
	switch next {
	case report.StatusManagerReview:
		rep.SubmittedAt = &now
	case report.StatusManagerApproved:
		rep.ManagerApprovedAt = &now
	case report.StatusCompleted:
		rep.FinalApprovedAt = &now
		rep.CompletedAt = &now
	case report.StatusManagerRejected, report.StatusFinalRejected:
		rep.RejectedAt = &now
		rep.RejectedBy = &actorID
		if in.Reason != "" {
			reason := in.Reason
			rep.RejectReason = &reason
		}
	}
}

// fanout resolves the audience table against the user directory and hands
// each recipient to the enqueuer. Failures are logged, never surfaced: the
// transition already committed.
func (u *Usecase) fanout(ctx context.Context, action report.Action, dto *ResultDTO, post *postCommit) {
	if u.enq == nil || post == nil {
		return
	}
	aud, event := notify.AudienceFor(action, post.newStatus)
	if aud.Empty() {
		return
	}

	recipients := make([]string, 0, 4)
	seen := map[string]bool{}
	add := func(userID string) {
		if userID != "" && !seen[userID] {
			seen[userID] = true
			recipients = append(recipients, userID)
		}
	}

	if aud.Owner {
		add(post.ownerID)
	}
	if aud.DeptManagers {
		managers, err := u.users.ListByRoleAndDepartment(ctx, user.RoleLineManager, post.department)
		if err != nil {
			u.log.Warn("notify: list department managers", zap.Error(err))
		}
		for _, m := range managers {
			add(m.UserID)
		}
	}
	if aud.GMPool {
		gms, err := u.users.ListByRole(ctx, user.RoleGeneralManager)
		if err != nil {
			u.log.Warn("notify: list general managers", zap.Error(err))
		}
		for _, g := range gms {
			add(g.UserID)
		}
	}

	for _, rid := range recipients {
		if err := u.enq.Enqueue(ctx, rid, event, dto.ReportID); err != nil {
			u.log.Warn("notify: enqueue failed",
				zap.String("recipient_id", rid),
				zap.String("event", string(event)),
				zap.String("report_id", dto.ReportID),
				zap.Error(err))
		}
	}
}
