package user

import (
	"errors"
	"time"
)

type Role string

const (
	RoleGeneralStaff   Role = "general_staff"
	RoleLineManager    Role = "line_manager"
	RoleGeneralManager Role = "general_manager"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleGeneralStaff, RoleLineManager, RoleGeneralManager:
		return true
	}
	return false
}

var ErrNotFound = errors.New("user not found")

// User is read-only from this service's perspective; account management
// lives elsewhere.
type User struct {
	ID         uint64    `gorm:"primaryKey;column:id" json:"-"`
	UserID     string    `gorm:"size:32;uniqueIndex:ux_users_user_id" json:"user_id"`
	Name       string    `gorm:"size:128" json:"name"`
	Role       Role      `gorm:"size:24" json:"role"`
	Department string    `gorm:"size:64;index:idx_users_department" json:"department"`
	Active     bool      `gorm:"default:true" json:"active"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }
