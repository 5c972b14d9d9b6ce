package user

import "context"

type Repository interface {
	GetByUserID(ctx context.Context, userID string) (*User, error)
	// Active users only for both list methods; notifications never target
	// deactivated accounts.
	ListByRoleAndDepartment(ctx context.Context, role Role, department string) ([]User, error)
	ListByRole(ctx context.Context, role Role) ([]User, error)
}
