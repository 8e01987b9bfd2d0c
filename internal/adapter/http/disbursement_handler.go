package http

import (
	"errors"
	"net/http"
	"time"

	domain "cfc-deblocages/internal/domain/disbursement"
	domainLoan "cfc-deblocages/internal/domain/loan"
	"cfc-deblocages/internal/usecase/disbursement"

	"github.com/labstack/echo/v4"
)

type DisbursementHandler struct{ uc *disbursement.Usecase }

func NewDisbursementHandler(uc *disbursement.Usecase) *DisbursementHandler {
	return &DisbursementHandler{uc: uc}
}

type requestDisbursementReq struct {
	LoanNumber      string  `json:"loan_number" validate:"required"`
	RequestedAmount float64 `json:"requested_amount" validate:"required,gt=0,dec2"`
	WorkDescription string  `json:"work_description"`
	BETName         string  `json:"bet_name"`
}

func (h *DisbursementHandler) RequestDisbursement(c echo.Context) error {
	var req requestDisbursementReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.Request(c.Request().Context(), disbursement.RequestInput(req))
	switch {
	case err == nil:
		return c.JSON(http.StatusCreated, dto)
	case errors.Is(err, domainLoan.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "loan not found"})
	case errors.Is(err, domain.ErrLoanNotDisbursing):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
}

type approveDisbursementReq struct {
	ApprovedAmount float64 `json:"approved_amount" validate:"required,gt=0,dec2"`
}

func (h *DisbursementHandler) ApproveDisbursement(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	var req approveDisbursementReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.Approve(c.Request().Context(), id, req.ApprovedAmount)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, dto)
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, disbursement.ErrBETReportMissing), errors.Is(err, domainLoan.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

func (h *DisbursementHandler) StartDisbursement(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	dto, err := h.uc.Start(c.Request().Context(), id)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, dto)
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, domainLoan.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

type betReportReq struct {
	Report    string    `json:"report" validate:"required"`
	VisitedAt time.Time `json:"visited_at" validate:"required"`
}

func (h *DisbursementHandler) RecordBETReport(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	var req betReportReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.RecordBETReport(c.Request().Context(), id, req.Report, req.VisitedAt)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, dto)
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

type progressReq struct {
	WorkCompletionPercentage *int `json:"work_completion_percentage" validate:"required"`
}

func (h *DisbursementHandler) UpdateProgress(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	var req progressReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.UpdateProgress(c.Request().Context(), id, *req.WorkCompletionPercentage)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, dto)
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, domain.ErrInvalidProgress), errors.Is(err, domainLoan.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

func (h *DisbursementHandler) ListByLoan(c echo.Context) error {
	dtos, err := h.uc.ListByLoan(c.Request().Context(), loanNumberParam(c))
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, dtos)
	case errors.Is(err, domainLoan.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "loan not found"})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
