// Package memstore is an in-memory UnitOfWork with real transaction
// semantics for engine tests: one mutex serializes report transactions the
// way a row lock would, writes buffer until the callback returns nil, and
// an error rolls everything back.
package memstore

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	"report-approval-service/internal/domain/audit"
	"report-approval-service/internal/domain/report"
	"report-approval-service/internal/domain/uow"
	"report-approval-service/internal/domain/user"
)

type Store struct {
	mu            sync.Mutex
	nextID        uint64
	reports       map[string]*report.Report // by public ReportID
	audits        []audit.Entry
	users         map[string]*user.User
	failNextAudit error
}

var _ uow.UnitOfWork = (*Store)(nil)

func New() *Store {
	return &Store{
		reports: map[string]*report.Report{},
		users:   map[string]*user.User{},
	}
}

func (s *Store) AddUser(u *user.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.UserID] = u
}

func (s *Store) AddReport(r *report.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == 0 {
		s.nextID++
		r.ID = s.nextID
	}
	s.reports[r.ReportID] = r
}

func (s *Store) Report(reportID string) report.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.reports[reportID]
}

// AuditEntries returns entries for one report in append order.
func (s *Store) AuditEntries(reportNumericID uint64) []audit.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []audit.Entry
	for _, e := range s.audits {
		if e.ReportID == reportNumericID {
			out = append(out, e)
		}
	}
	return out
}

// FailNextAudit makes audit appends in the next transaction fail, for
// exercising the rollback contract.
func (s *Store) FailNextAudit(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNextAudit = err
}

// Users returns a standalone repository view for use outside transactions
// (actor resolution, notification fan-out).
func (s *Store) Users() user.Repository { return &memUsers{s: s, lock: true} }

// Reports returns a standalone repository view for read paths.
func (s *Store) Reports() report.Repository {
	return &txReports{t: &tx{store: s}, lock: true}
}

// Audits returns a standalone repository view for read paths.
func (s *Store) Audits() audit.Repository {
	return &txAudits{t: &tx{store: s}, lock: true}
}

func (s *Store) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.beginLocked()
	if err := fn(t.repos()); err != nil {
		return err
	}
	t.commit()
	return nil
}

func (s *Store) WithinReportTx(ctx context.Context, reportID string, fn func(r uow.Repos, rep *report.Report) error) error {
	// The mutex plays the role of the row lock: while one transition holds
	// it, a concurrent attempt blocks, exactly like SELECT ... FOR UPDATE.
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}

	orig, ok := s.reports[reportID]
	if !ok || orig.DeletedAt.Valid {
		return gorm.ErrRecordNotFound
	}
	cp := *orig

	t := s.beginLocked()
	if err := fn(t.repos(), &cp); err != nil {
		return err
	}
	t.commit()
	return nil
}

// tx buffers writes until commit. Callers hold the store mutex.
type tx struct {
	store        *Store
	savedReports []report.Report
	pendingAudit []audit.Entry
	failAppend   error
}

func (s *Store) beginLocked() *tx {
	t := &tx{store: s, failAppend: s.failNextAudit}
	s.failNextAudit = nil
	return t
}

func (t *tx) repos() uow.Repos {
	return uow.Repos{
		Reports: &txReports{t: t},
		Audits:  &txAudits{t: t},
		Users:   &memUsers{s: t.store},
	}
}

func (t *tx) commit() {
	for i := range t.savedReports {
		saved := t.savedReports[i]
		if cur, ok := t.store.reports[saved.ReportID]; ok {
			*cur = saved
		}
	}
	t.store.audits = append(t.store.audits, t.pendingAudit...)
}

type txReports struct {
	t    *tx
	lock bool // standalone view: take the store mutex per call
}

func (r *txReports) enter() func() {
	if r.lock {
		r.t.store.mu.Lock()
		return r.t.store.mu.Unlock
	}
	return func() {}
}

func (r *txReports) Create(ctx context.Context, rep *report.Report) error {
	defer r.enter()()
	r.t.store.nextID++
	rep.ID = r.t.store.nextID
	cp := *rep
	r.t.store.reports[rep.ReportID] = &cp
	return nil
}

func (r *txReports) Save(ctx context.Context, rep *report.Report) error {
	defer r.enter()()
	r.t.savedReports = append(r.t.savedReports, *rep)
	if r.lock {
		r.t.commit()
	}
	return nil
}

func (r *txReports) SoftDelete(ctx context.Context, rep *report.Report, deletedBy string) error {
	defer r.enter()()
	cp := *rep
	cp.DeletedAt.Valid = true
	by := deletedBy
	cp.DeletedBy = &by
	r.t.savedReports = append(r.t.savedReports, cp)
	if r.lock {
		r.t.commit()
	}
	return nil
}

func (r *txReports) GetByReportID(ctx context.Context, reportID string) (*report.Report, error) {
	defer r.enter()()
	rep, ok := r.t.store.reports[reportID]
	if !ok || rep.DeletedAt.Valid {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *rep
	return &cp, nil
}

func (r *txReports) GetByReportIDForUpdate(ctx context.Context, reportID string) (*report.Report, error) {
	return r.GetByReportID(ctx, reportID)
}

func (r *txReports) CountByCodePrefix(ctx context.Context, prefix string) (int64, error) {
	defer r.enter()()
	var n int64
	for _, rep := range r.t.store.reports {
		if len(rep.Code) >= len(prefix) && rep.Code[:len(prefix)] == prefix {
			n++
		}
	}
	return n, nil
}

func (r *txReports) ListByOwner(ctx context.Context, ownerID string) ([]report.Report, error) {
	defer r.enter()()
	var out []report.Report
	for _, rep := range r.t.store.reports {
		if rep.OwnerID == ownerID && !rep.DeletedAt.Valid {
			out = append(out, *rep)
		}
	}
	return out, nil
}

func (r *txReports) ListByDepartment(ctx context.Context, department string) ([]report.Report, error) {
	defer r.enter()()
	var out []report.Report
	for _, rep := range r.t.store.reports {
		if rep.Department == department && !rep.DeletedAt.Valid {
			out = append(out, *rep)
		}
	}
	return out, nil
}

func (r *txReports) ListAll(ctx context.Context) ([]report.Report, error) {
	defer r.enter()()
	var out []report.Report
	for _, rep := range r.t.store.reports {
		if !rep.DeletedAt.Valid {
			out = append(out, *rep)
		}
	}
	return out, nil
}

func (r *txReports) ListByIDs(ctx context.Context, ids []uint64) ([]report.Report, error) {
	defer r.enter()()
	want := map[uint64]bool{}
	for _, id := range ids {
		want[id] = true
	}
	var out []report.Report
	for _, rep := range r.t.store.reports {
		if want[rep.ID] && !rep.DeletedAt.Valid {
			out = append(out, *rep)
		}
	}
	return out, nil
}

type txAudits struct {
	t    *tx
	lock bool
}

func (a *txAudits) enter() func() {
	if a.lock {
		a.t.store.mu.Lock()
		return a.t.store.mu.Unlock
	}
	return func() {}
}

func (a *txAudits) Append(ctx context.Context, e *audit.Entry) error {
	defer a.enter()()
	if a.t.failAppend != nil {
		return a.t.failAppend
	}
	// the store assigns the timestamp, as autoCreateTime does in mysql
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	a.t.pendingAudit = append(a.t.pendingAudit, *e)
	if a.lock {
		a.t.commit()
	}
	return nil
}

func (a *txAudits) ListByReportID(ctx context.Context, reportID uint64) ([]audit.Entry, error) {
	defer a.enter()()
	var out []audit.Entry
	for _, e := range a.t.store.audits {
		if e.ReportID == reportID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (a *txAudits) ExistsSuccessfulByActor(ctx context.Context, reportID uint64, actorID string) (bool, error) {
	defer a.enter()()
	for _, e := range a.t.store.audits {
		if e.ReportID == reportID && e.ActorID == actorID && e.Success {
			return true, nil
		}
	}
	return false, nil
}

func (a *txAudits) ListReportIDsByActor(ctx context.Context, actorID string) ([]uint64, error) {
	defer a.enter()()
	seen := map[uint64]bool{}
	var out []uint64
	for _, e := range a.t.store.audits {
		if e.ActorID == actorID && e.Success && !seen[e.ReportID] {
			seen[e.ReportID] = true
			out = append(out, e.ReportID)
		}
	}
	return out, nil
}

type memUsers struct {
	s    *Store
	lock bool
}

func (m *memUsers) enter() func() {
	if m.lock {
		m.s.mu.Lock()
		return m.s.mu.Unlock
	}
	return func() {}
}

func (m *memUsers) GetByUserID(ctx context.Context, userID string) (*user.User, error) {
	defer m.enter()()
	if u, ok := m.s.users[userID]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, user.ErrNotFound
}

func (m *memUsers) ListByRoleAndDepartment(ctx context.Context, role user.Role, department string) ([]user.User, error) {
	defer m.enter()()
	var out []user.User
	for _, u := range m.s.users {
		if u.Role == role && u.Department == department && u.Active {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *memUsers) ListByRole(ctx context.Context, role user.Role) ([]user.User, error) {
	defer m.enter()()
	var out []user.User
	for _, u := range m.s.users {
		if u.Role == role && u.Active {
			out = append(out, *u)
		}
	}
	return out, nil
}
