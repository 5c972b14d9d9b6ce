package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	reportDomain "report-approval-service/internal/domain/report"
)

// actorFrom reads the authenticated actor id from the Ax-Actor-Id header.
// Real authentication sits in front of this service; here we only require
// the well-formed id it injects.
func actorFrom(c echo.Context) (string, bool) {
	id := strings.TrimSpace(c.Request().Header.Get("Ax-Actor-Id"))
	if !reHex32.MatchString(id) {
		return "", false
	}
	return id, true
}

// writeDomainError translates domain sentinel errors to HTTP exactly once.
func writeDomainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, reportDomain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "report not found"})
	case errors.Is(err, reportDomain.ErrNotAuthorized):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "not authorized"})
	case errors.Is(err, reportDomain.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "action not valid for current status"})
	case errors.Is(err, reportDomain.ErrContention):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "concurrent modification, retry", Retryable: true})
	case errors.Is(err, reportDomain.ErrCodeConflict):
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "could not allocate report code"})
	}
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
}

// ---- test helpers ----

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
