package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	reportDomain "report-approval-service/internal/domain/report"
	"report-approval-service/internal/domain/uow"
	"report-approval-service/internal/testutil/memstore"
	"report-approval-service/internal/testutil/notifymock"
	"report-approval-service/internal/testutil/uowmock"
	"report-approval-service/internal/usecase/transition"
)

func newActionHandler(st *memstore.Store) (*ActionHandler, *notifymock.Enqueuer) {
	enq := &notifymock.Enqueuer{}
	uc := transition.NewUsecase(st.Users(), st, enq, nil)
	return NewActionHandler(uc), enq
}

func seedDraft(st *memstore.Store) {
	st.AddReport(&reportDomain.Report{
		ReportID: tReportID, Code: "FN-2025-0001",
		Title: "t", OwnerID: tStaffID, Department: "finance",
		Status: reportDomain.StatusDraft,
	})
}

func TestPerformAction_SubmitMovesToManagerReview(t *testing.T) {
	st := seedStore()
	seedDraft(st)
	h, enq := newActionHandler(st)

	c, rec := doJSON(t, http.MethodPost, "/reports/"+tReportID+"/actions", tStaffID,
		`{"action":"submit"}`)
	c.SetParamNames("report_id")
	c.SetParamValues(tReportID)
	if err := h.PerformAction(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var dto transition.ResultDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if dto.NewStatus != reportDomain.StatusManagerReview {
		t.Fatalf("expected manager_review, got %s", dto.NewStatus)
	}
	if got := st.Report(tReportID).Status; got != reportDomain.StatusManagerReview {
		t.Fatalf("stored status %s", got)
	}
	if len(enq.Recorded()) == 0 {
		t.Fatalf("expected submit notification fan-out")
	}
}

func TestPerformAction_MissingActorHeader(t *testing.T) {
	st := seedStore()
	seedDraft(st)
	h, _ := newActionHandler(st)

	c, rec := doJSON(t, http.MethodPost, "/reports/"+tReportID+"/actions", "",
		`{"action":"submit"}`)
	c.SetParamNames("report_id")
	c.SetParamValues(tReportID)
	if err := h.PerformAction(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestPerformAction_UnknownActionRejected(t *testing.T) {
	st := seedStore()
	seedDraft(st)
	h, _ := newActionHandler(st)

	c, rec := doJSON(t, http.MethodPost, "/reports/"+tReportID+"/actions", tStaffID,
		`{"action":"escalate"}`)
	c.SetParamNames("report_id")
	c.SetParamValues(tReportID)
	if err := h.PerformAction(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !containsFieldMsg(resp.Details, "Action", "must be one of") {
		t.Fatalf("expected oneof detail, got %+v", resp.Details)
	}
}

func TestPerformAction_NotFound(t *testing.T) {
	st := seedStore()
	h, _ := newActionHandler(st)

	c, rec := doJSON(t, http.MethodPost, "/reports/"+tReportID+"/actions", tStaffID,
		`{"action":"submit"}`)
	c.SetParamNames("report_id")
	c.SetParamValues(tReportID)
	if err := h.PerformAction(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestPerformAction_StaffApproveForbidden(t *testing.T) {
	st := seedStore()
	st.AddReport(&reportDomain.Report{
		ReportID: tReportID, Code: "FN-2025-0001",
		Title: "t", OwnerID: tStaffID, Department: "finance",
		Status: reportDomain.StatusManagerReview,
	})
	h, _ := newActionHandler(st)

	c, rec := doJSON(t, http.MethodPost, "/reports/"+tReportID+"/actions", tOtherID,
		`{"action":"approve"}`)
	c.SetParamNames("report_id")
	c.SetParamValues(tReportID)
	if err := h.PerformAction(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestPerformAction_ApproveDraftConflicts(t *testing.T) {
	st := seedStore()
	seedDraft(st)
	h, _ := newActionHandler(st)

	c, rec := doJSON(t, http.MethodPost, "/reports/"+tReportID+"/actions", tManagerID,
		`{"action":"approve"}`)
	c.SetParamNames("report_id")
	c.SetParamValues(tReportID)
	if err := h.PerformAction(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Retryable {
		t.Fatalf("invalid transition must not advertise retry: %+v", resp)
	}
}

// Lock-wait contention surfaces as 409 with the retryable hint, unlike an
// invalid transition which is 409 without it.
func TestPerformAction_ContentionIsRetryable(t *testing.T) {
	st := seedStore()
	held := &uowmock.UoW{
		WithinReportTxFn: func(ctx context.Context, reportID string, fn func(r uow.Repos, rep *reportDomain.Report) error) error {
			return context.DeadlineExceeded
		},
	}
	uc := transition.NewUsecase(st.Users(), held, &notifymock.Enqueuer{}, nil)
	h := NewActionHandler(uc)

	c, rec := doJSON(t, http.MethodPost, "/reports/"+tReportID+"/actions", tManagerID,
		`{"action":"approve"}`)
	c.SetParamNames("report_id")
	c.SetParamValues(tReportID)
	if err := h.PerformAction(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !resp.Retryable {
		t.Fatalf("contention must advertise retry: %+v", resp)
	}
}

func TestPerformAction_RejectCarriesReason(t *testing.T) {
	st := seedStore()
	st.AddReport(&reportDomain.Report{
		ReportID: tReportID, Code: "FN-2025-0001",
		Title: "t", OwnerID: tStaffID, Department: "finance",
		Status: reportDomain.StatusManagerReview,
	})
	h, _ := newActionHandler(st)

	c, rec := doJSON(t, http.MethodPost, "/reports/"+tReportID+"/actions", tManagerID,
		`{"action":"reject","reason":"missing attachments"}`)
	c.SetParamNames("report_id")
	c.SetParamValues(tReportID)
	if err := h.PerformAction(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	stored := st.Report(tReportID)
	if stored.Status != reportDomain.StatusManagerRejected {
		t.Fatalf("expected manager_rejected, got %s", stored.Status)
	}
	if stored.RejectReason == nil || *stored.RejectReason != "missing attachments" {
		t.Fatalf("reason not recorded: %+v", stored.RejectReason)
	}
}
