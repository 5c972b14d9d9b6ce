// Package authz is the single source of truth for who may do what to a
// report, and what status results. It is a pure decision table: no I/O, no
// clock, fully enumerable in tests. Nothing else in the codebase may decide
// authorization or compute a target status.
package authz

import (
	"report-approval-service/internal/domain/report"
	"report-approval-service/internal/domain/user"
)

type Input struct {
	Role             user.Role
	IsOwner          bool
	ActorDepartment  string
	ReportDepartment string
	Status           report.Status
	Action           report.Action
}

type Decision struct {
	Allowed bool
	// Next is the resulting status when Allowed. For edit it is the
	// unchanged draft status; for delete the caller soft-deletes instead
	// of writing a status.
	Next report.Status
}

var denied = Decision{}

func allow(next report.Status) Decision { return Decision{Allowed: true, Next: next} }

// Decide resolves a requested action against the authorization matrix.
// Anything not explicitly allowed is denied: the matrix is a strict
// allow-list, so terminal statuses and unknown combinations fall through
// to denied without special-casing.
func Decide(in Input) Decision {
	switch in.Role {
	case user.RoleGeneralManager:
		return decideGeneralManager(in)
	case user.RoleLineManager:
		return decideLineManager(in)
	case user.RoleGeneralStaff:
		return decideStaff(in)
	}
	return denied
}

// General managers give final sign-off on any department's reports, and
// keep draft rights over reports they authored themselves.
func decideGeneralManager(in Input) Decision {
	switch in.Action {
	case report.ActionApprove:
		if finalStage(in.Status) {
			return allow(report.StatusCompleted)
		}
	case report.ActionReject:
		if finalStage(in.Status) {
			return allow(report.StatusFinalRejected)
		}
	case report.ActionSubmit, report.ActionEdit, report.ActionDelete:
		return decideOwnDraft(in)
	}
	return denied
}

// Line managers decide the manager stage for their own department only.
// Their draft rights cover reports they authored themselves.
func decideLineManager(in Input) Decision {
	switch in.Action {
	case report.ActionApprove:
		if managerStage(in.Status) && in.ActorDepartment == in.ReportDepartment {
			return allow(report.StatusManagerApproved)
		}
	case report.ActionReject:
		if managerStage(in.Status) && in.ActorDepartment == in.ReportDepartment {
			return allow(report.StatusManagerRejected)
		}
	case report.ActionSubmit, report.ActionEdit, report.ActionDelete:
		return decideOwnDraft(in)
	}
	return denied
}

func decideStaff(in Input) Decision {
	switch in.Action {
	case report.ActionSubmit, report.ActionEdit, report.ActionDelete:
		return decideOwnDraft(in)
	}
	return denied
}

// Draft actions are owner-only regardless of role.
func decideOwnDraft(in Input) Decision {
	if !in.IsOwner || in.Status != report.StatusDraft {
		return denied
	}
	switch in.Action {
	case report.ActionSubmit:
		// A submitted report lands directly on the line manager's desk.
		return allow(report.StatusManagerReview)
	case report.ActionEdit, report.ActionDelete:
		return allow(report.StatusDraft)
	}
	return denied
}

// managerStage covers both spellings of "awaiting manager decision".
func managerStage(s report.Status) bool {
	return s == report.StatusSubmitted || s == report.StatusManagerReview
}

// finalStage covers both spellings of "awaiting final decision".
func finalStage(s report.Status) bool {
	return s == report.StatusManagerApproved || s == report.StatusFinalReview
}

// CanRead resolves read access. hasSigned is whether the actor has a
// successful audit record on the report; once a manager has signed, access
// sticks to them even across a later department change.
func CanRead(role user.Role, isOwner bool, actorDept, reportDept string, hasSigned bool) bool {
	switch role {
	case user.RoleGeneralManager:
		return true
	case user.RoleLineManager:
		return isOwner || actorDept == reportDept || hasSigned
	case user.RoleGeneralStaff:
		return isOwner
	}
	return false
}
