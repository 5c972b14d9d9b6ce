package mysql

import (
	"context"
	"errors"

	userDomain "report-approval-service/internal/domain/user"

	"gorm.io/gorm"
)

// UserRepository is read-only; user administration is another system's job.
type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) GetByUserID(ctx context.Context, userID string) (*userDomain.User, error) {
	var out userDomain.User
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, userDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *UserRepository) ListByRoleAndDepartment(ctx context.Context, role userDomain.Role, department string) ([]userDomain.User, error) {
	var out []userDomain.User
	res := r.db.WithContext(ctx).
		Where("role = ? AND department = ? AND active = ?", role, department, true).
		Find(&out)
	return out, res.Error
}

func (r *UserRepository) ListByRole(ctx context.Context, role userDomain.Role) ([]userDomain.User, error) {
	var out []userDomain.User
	res := r.db.WithContext(ctx).
		Where("role = ? AND active = ?", role, true).
		Find(&out)
	return out, res.Error
}
