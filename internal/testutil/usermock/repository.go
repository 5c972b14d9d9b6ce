package usermock

import (
	"context"

	domain "report-approval-service/internal/domain/user"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository. The
// Users convenience map serves simple lookups without wiring GetByUserIDFn.
type Repo struct {
	Users map[string]*domain.User

	GetByUserIDFn             func(ctx context.Context, userID string) (*domain.User, error)
	ListByRoleAndDepartmentFn func(ctx context.Context, role domain.Role, department string) ([]domain.User, error)
	ListByRoleFn              func(ctx context.Context, role domain.Role) ([]domain.User, error)
}

func (m *Repo) GetByUserID(ctx context.Context, userID string) (*domain.User, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	if u, ok := m.Users[userID]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) ListByRoleAndDepartment(ctx context.Context, role domain.Role, department string) ([]domain.User, error) {
	if m.ListByRoleAndDepartmentFn != nil {
		return m.ListByRoleAndDepartmentFn(ctx, role, department)
	}
	var out []domain.User
	for _, u := range m.Users {
		if u.Role == role && u.Department == department && u.Active {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *Repo) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	if m.ListByRoleFn != nil {
		return m.ListByRoleFn(ctx, role)
	}
	var out []domain.User
	for _, u := range m.Users {
		if u.Role == role && u.Active {
			out = append(out, *u)
		}
	}
	return out, nil
}
