package report

import (
	"time"

	domain "report-approval-service/internal/domain/report"
)

type CreateInput struct {
	OwnerID string
	Title   string
	Body    string
	// Department the report belongs to. Empty means the owner's home
	// department at creation time.
	Department string
}

type ReportDTO struct {
	ReportID   string        `json:"report_id"`
	Code       string        `json:"code"`
	Title      string        `json:"title"`
	Body       string        `json:"body"`
	OwnerID    string        `json:"owner_id"`
	Department string        `json:"department"`
	Status     domain.Status `json:"status"`

	SubmittedAt       *time.Time `json:"submitted_at,omitempty"`
	ManagerApprovedAt *time.Time `json:"manager_approved_at,omitempty"`
	FinalApprovedAt   *time.Time `json:"final_approved_at,omitempty"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
	RejectedAt        *time.Time `json:"rejected_at,omitempty"`
	RejectReason      *string    `json:"reject_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func toDTO(r *domain.Report) *ReportDTO {
	return &ReportDTO{
		ReportID:          r.ReportID,
		Code:              r.Code,
		Title:             r.Title,
		Body:              r.Body,
		OwnerID:           r.OwnerID,
		Department:        r.Department,
		Status:            r.Status,
		SubmittedAt:       r.SubmittedAt,
		ManagerApprovedAt: r.ManagerApprovedAt,
		FinalApprovedAt:   r.FinalApprovedAt,
		CompletedAt:       r.CompletedAt,
		RejectedAt:        r.RejectedAt,
		RejectReason:      r.RejectReason,
		CreatedAt:         r.CreatedAt,
	}
}

type AuditEntryDTO struct {
	AuditID    string    `json:"audit_id"`
	ActorID    string    `json:"actor_id"`
	Action     string    `json:"action"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	Detail     string    `json:"detail,omitempty"`
	Success    bool      `json:"success"`
	At         time.Time `json:"at"`
}
