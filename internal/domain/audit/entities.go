package audit

import (
	"time"
)

// Entry is one immutable record of a transition attempt, successful or not.
// Entries are never updated or deleted; a report's entries outlive the
// report's active lifetime.
type Entry struct {
	ID uint64 `gorm:"primaryKey;column:id" json:"-"`
	// Public identifier (32-char lowercase hex)
	AuditID string `gorm:"size:32;uniqueIndex:ux_audits_audit_id" json:"audit_id"`
	// FK to reports.id (numeric)
	ReportID   uint64    `gorm:"not null;index:idx_audits_report" json:"-"`
	ActorID    string    `gorm:"size:32;index:idx_audits_actor" json:"actor_id"`
	Action     string    `gorm:"size:16;not null" json:"action"`
	FromStatus string    `gorm:"size:24" json:"from_status"`
	ToStatus   string    `gorm:"size:24" json:"to_status"`
	Detail     string    `gorm:"type:text" json:"detail"`
	Success    bool      `gorm:"not null" json:"success"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (Entry) TableName() string { return "audit_entries" }
