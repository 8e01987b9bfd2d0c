package http

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	domain "cfc-deblocages/internal/domain/loan"
	"cfc-deblocages/internal/usecase/loan"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type createLoanReq struct {
	ClientID          uint64  `json:"client_id" validate:"required"`
	Type              string  `json:"loan_type" validate:"required,loantype"`
	Amount            float64 `json:"amount" validate:"required,gt=0,dec2"`
	DurationMonths    int     `json:"duration_months" validate:"required,gt=0,lte=360"`
	GracePeriodMonths int     `json:"grace_period_months" validate:"gte=0,lte=24"`
	InterestRate      float64 `json:"interest_rate" validate:"gte=0,lte=100"`

	MortgageAmount      float64 `json:"mortgage_amount" validate:"gte=0"`
	PropertyTitleNumber string  `json:"property_title_number"`
	PropertyLocation    string  `json:"property_location"`
}

// loanNumberParam returns the :loan_number path segment. Loan numbers
// contain slashes, so clients send them percent-encoded.
func loanNumberParam(c echo.Context) string {
	raw := c.Param("loan_number")
	if dec, err := url.PathUnescape(raw); err == nil {
		return dec
	}
	return raw
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	var req createLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	dto, err := h.uc.Create(c.Request().Context(), loan.CreateLoanInput{
		ClientID:            req.ClientID,
		Type:                req.Type,
		Amount:              req.Amount,
		DurationMonths:      req.DurationMonths,
		GracePeriodMonths:   req.GracePeriodMonths,
		InterestRate:        req.InterestRate,
		MortgageAmount:      req.MortgageAmount,
		PropertyTitleNumber: req.PropertyTitleNumber,
		PropertyLocation:    req.PropertyLocation,
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), loanNumberParam(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, domain.ErrNotFound) {
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) ListLoans(c echo.Context) error {
	offset := queryInt(c, "skip", 0)
	limit := queryInt(c, "limit", 100)
	if limit < 1 || limit > 100 {
		limit = 100
	}
	dtos, err := h.uc.List(c.Request().Context(), offset, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *LoanHandler) ApproveLoan(c echo.Context) error {
	return h.runTransition(c, h.uc.Approve)
}

func (h *LoanHandler) SignLoan(c echo.Context) error {
	return h.runTransition(c, h.uc.Sign)
}

func (h *LoanHandler) StartDisbursing(c echo.Context) error {
	return h.runTransition(c, h.uc.StartDisbursing)
}

func (h *LoanHandler) runTransition(c echo.Context, fn func(ctx context.Context, loanNumber string) (*loan.LoanDTO, error)) error {
	dto, err := fn(c.Request().Context(), loanNumberParam(c))
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, dto)
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

func (h *LoanHandler) CheckValidity(c echo.Context) error {
	dto, err := h.uc.CheckValidity(c.Request().Context(), loanNumberParam(c), time.Now().UTC())
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, dto)
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
