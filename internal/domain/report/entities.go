package report

import (
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusDraft           Status = "draft"
	StatusSubmitted       Status = "submitted"
	StatusManagerReview   Status = "manager_review"
	StatusManagerApproved Status = "manager_approved"
	StatusFinalReview     Status = "final_review"
	StatusCompleted       Status = "completed"
	StatusManagerRejected Status = "manager_rejected"
	StatusFinalRejected   Status = "final_rejected"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusManagerReview, StatusManagerApproved,
		StatusFinalReview, StatusCompleted, StatusManagerRejected, StatusFinalRejected:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is defined from s.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusManagerRejected, StatusFinalRejected:
		return true
	}
	return false
}

// Action is a requested lifecycle operation. Approve and Reject are
// role-resolved: a line manager's approve means the manager stage, a
// general manager's approve means final sign-off.
type Action string

const (
	ActionCreate  Action = "create"
	ActionSubmit  Action = "submit"
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionEdit    Action = "edit"
	ActionDelete  Action = "delete"
)

func (a Action) IsValid() bool {
	switch a {
	case ActionCreate, ActionSubmit, ActionApprove, ActionReject, ActionEdit, ActionDelete:
		return true
	}
	return false
}

type Report struct {
	ID uint64 `gorm:"primaryKey;column:id" json:"-"`
	// Public identifier (32-char lowercase hex)
	ReportID string `gorm:"size:32;uniqueIndex:ux_reports_report_id" json:"report_id"`
	// Human-readable code, e.g. PS-2025-0007. Unique; assigned once at creation.
	Code       string `gorm:"size:16;uniqueIndex:ux_reports_code" json:"code"`
	Title      string `gorm:"size:255" json:"title"`
	Body       string `gorm:"type:text" json:"body"`
	OwnerID    string `gorm:"size:32;index:idx_reports_owner" json:"owner_id"`
	Department string `gorm:"size:64;index:idx_reports_department" json:"department"`
	Status     Status `gorm:"size:24;default:'draft'" json:"status"`

	// Milestone timestamps; nil until the milestone is reached.
	SubmittedAt       *time.Time `json:"submitted_at,omitempty"`
	ManagerApprovedAt *time.Time `json:"manager_approved_at,omitempty"`
	FinalApprovedAt   *time.Time `json:"final_approved_at,omitempty"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
	RejectedAt        *time.Time `json:"rejected_at,omitempty"`

	// Rejection metadata; set only when status is a rejected variant.
	RejectReason *string `gorm:"type:text" json:"reject_reason,omitempty"`
	RejectedBy   *string `gorm:"size:32" json:"rejected_by,omitempty"`

	StatusUpdatedAt time.Time      `gorm:"autoCreateTime" json:"status_updated_at"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
	DeletedBy       *string        `gorm:"size:32" json:"-"`
}

func (Report) TableName() string { return "reports" }
