package http

import (
	"errors"
	"net/http"

	domain "cfc-deblocages/internal/domain/alert"
	"cfc-deblocages/internal/usecase/alert"

	"github.com/labstack/echo/v4"
)

type AlertHandler struct{ uc *alert.Usecase }

func NewAlertHandler(uc *alert.Usecase) *AlertHandler { return &AlertHandler{uc: uc} }

func (h *AlertHandler) ListAlerts(c echo.Context) error {
	f := domain.Filter{
		Type:     domain.Type(c.QueryParam("type")),
		Status:   domain.Status(c.QueryParam("status")),
		Severity: domain.Severity(c.QueryParam("severity")),
		Offset:   queryInt(c, "skip", 0),
		Limit:    queryInt(c, "limit", 50),
	}
	if raw := c.QueryParam("loan_id"); raw != "" {
		id, ok := parseUint(raw)
		if !ok {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id"})
		}
		f.LoanID = id
	}
	dtos, err := h.uc.List(c.Request().Context(), f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *AlertHandler) GetAlert(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	dto, err := h.uc.Get(c.Request().Context(), id)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, dto)
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

func (h *AlertHandler) Summary(c echo.Context) error {
	dto, err := h.uc.Summary(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AlertHandler) Acknowledge(c echo.Context) error {
	return h.transition(c, func(c echo.Context, id uint64) (*alert.AlertDTO, error) {
		operatorID, _ := operatorFromContext(c)
		return h.uc.Acknowledge(c.Request().Context(), id, operatorID)
	})
}

func (h *AlertHandler) Resolve(c echo.Context) error {
	return h.transition(c, func(c echo.Context, id uint64) (*alert.AlertDTO, error) {
		return h.uc.Resolve(c.Request().Context(), id)
	})
}

func (h *AlertHandler) Escalate(c echo.Context) error {
	return h.transition(c, func(c echo.Context, id uint64) (*alert.AlertDTO, error) {
		return h.uc.Escalate(c.Request().Context(), id)
	})
}

func (h *AlertHandler) transition(c echo.Context, fn func(echo.Context, uint64) (*alert.AlertDTO, error)) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	dto, err := fn(c, id)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, dto)
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, domain.ErrAlreadyResolved):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
