package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	reportDomain "report-approval-service/internal/domain/report"
	"report-approval-service/internal/usecase/transition"
)

type ActionHandler struct{ uc *transition.Usecase }

func NewActionHandler(uc *transition.Usecase) *ActionHandler { return &ActionHandler{uc: uc} }

type actionReq struct {
	Action string  `json:"action" validate:"required,oneof=submit approve reject edit delete"`
	Reason string  `json:"reason" validate:"omitempty,max=1000"`
	Title  *string `json:"title"  validate:"omitempty,max=255"`
	Body   *string `json:"body"`
}

// PerformAction is the single transition endpoint. The caller names an
// action, never a target status; the engine derives the result.
func (h *ActionHandler) PerformAction(c echo.Context) error {
	actorID, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-Actor-Id"})
	}
	reportID := c.Param("report_id")
	if reportID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing report_id path param"})
	}

	var req actionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.Attempt(c.Request().Context(), transition.Input{
		ReportID: reportID,
		ActorID:  actorID,
		Action:   reportDomain.Action(req.Action),
		Reason:   req.Reason,
		Title:    req.Title,
		Body:     req.Body,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
