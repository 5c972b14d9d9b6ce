package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	reportUC "report-approval-service/internal/usecase/report"
)

type ReportHandler struct{ uc *reportUC.Usecase }

func NewReportHandler(uc *reportUC.Usecase) *ReportHandler { return &ReportHandler{uc: uc} }

type createReportReq struct {
	Title      string `json:"title"      validate:"required,max=255"`
	Body       string `json:"body"`
	Department string `json:"department" validate:"omitempty,max=64"`
}

func (h *ReportHandler) CreateReport(c echo.Context) error {
	actorID, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-Actor-Id"})
	}
	var req createReportReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.Create(c.Request().Context(), reportUC.CreateInput{
		OwnerID:    actorID,
		Title:      req.Title,
		Body:       req.Body,
		Department: req.Department,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ReportHandler) GetReport(c echo.Context) error {
	actorID, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-Actor-Id"})
	}
	reportID := c.Param("report_id")
	if reportID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing report_id path param"})
	}
	dto, err := h.uc.Get(c.Request().Context(), actorID, reportID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ReportHandler) ListReports(c echo.Context) error {
	actorID, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-Actor-Id"})
	}
	dtos, err := h.uc.ListAccessible(c.Request().Context(), actorID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *ReportHandler) GetAuditTrail(c echo.Context) error {
	actorID, ok := actorFrom(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid Ax-Actor-Id"})
	}
	reportID := c.Param("report_id")
	if reportID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing report_id path param"})
	}
	entries, err := h.uc.AuditTrail(c.Request().Context(), actorID, reportID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, entries)
}
