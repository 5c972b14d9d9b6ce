package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	userDomain "report-approval-service/internal/domain/user"
	"report-approval-service/pkg/id"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type userSQLite struct {
	ID         uint64 `gorm:"primaryKey;column:id"`
	UserID     string `gorm:"size:32;uniqueIndex;column:user_id"`
	Name       string `gorm:"column:name"`
	Role       string `gorm:"column:role"`
	Department string `gorm:"column:department"`
	Active     bool   `gorm:"column:active"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (userSQLite) TableName() string { return "users" }

func openUserTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&userSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role userDomain.Role, dept string, active bool) string {
	t.Helper()
	uid := id.NewID32()
	u := &userDomain.User{UserID: uid, Name: "u-" + uid[:6], Role: role, Department: dept, Active: active}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return uid
}

func TestUser_GetByUserID(t *testing.T) {
	db := openUserTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	uid := seedUser(t, db, userDomain.RoleLineManager, "planning", true)

	got, err := repo.GetByUserID(ctx, uid)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if got.Role != userDomain.RoleLineManager || got.Department != "planning" {
		t.Fatalf("unexpected row: %+v", got)
	}

	if _, err := repo.GetByUserID(ctx, id.NewID32()); !errors.Is(err, userDomain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestUser_ListsFilterInactive(t *testing.T) {
	db := openUserTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	active := seedUser(t, db, userDomain.RoleLineManager, "planning", true)
	seedUser(t, db, userDomain.RoleLineManager, "planning", false)
	seedUser(t, db, userDomain.RoleLineManager, "finance", true)
	gm := seedUser(t, db, userDomain.RoleGeneralManager, "planning", true)

	mgrs, err := repo.ListByRoleAndDepartment(ctx, userDomain.RoleLineManager, "planning")
	if err != nil {
		t.Fatalf("ListByRoleAndDepartment: %v", err)
	}
	if len(mgrs) != 1 || mgrs[0].UserID != active {
		t.Fatalf("managers = %+v, want only the active planning manager", mgrs)
	}

	gms, err := repo.ListByRole(ctx, userDomain.RoleGeneralManager)
	if err != nil {
		t.Fatalf("ListByRole: %v", err)
	}
	if len(gms) != 1 || gms[0].UserID != gm {
		t.Fatalf("gms = %+v", gms)
	}
}
