package http

import (
	"errors"
	"net/http"

	domain "cfc-deblocages/internal/domain/document"
	"cfc-deblocages/internal/usecase/document"

	"github.com/labstack/echo/v4"
)

type DocumentHandler struct{ uc *document.Usecase }

func NewDocumentHandler(uc *document.Usecase) *DocumentHandler { return &DocumentHandler{uc: uc} }

type createDocumentReq struct {
	ClientID       uint64  `json:"client_id" validate:"required"`
	LoanID         *uint64 `json:"loan_id,omitempty"`
	DisbursementID *uint64 `json:"disbursement_id,omitempty"`
	Type           string  `json:"document_type" validate:"required"`
	FileName       string  `json:"file_name" validate:"required"`
	FilePath       string  `json:"file_path" validate:"required"`
	FileSize       int64   `json:"file_size" validate:"gte=0"`
	MimeType       string  `json:"mime_type"`
	Description    string  `json:"description"`
}

func (h *DocumentHandler) CreateDocument(c echo.Context) error {
	var req createDocumentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	in := document.CreateDocumentInput{
		ClientID:       req.ClientID,
		LoanID:         req.LoanID,
		DisbursementID: req.DisbursementID,
		Type:           req.Type,
		FileName:       req.FileName,
		FilePath:       req.FilePath,
		FileSize:       req.FileSize,
		MimeType:       req.MimeType,
		Description:    req.Description,
	}
	if id, ok := operatorFromContext(c); ok {
		in.UploadedBy = &id
	}
	dto, err := h.uc.Create(c.Request().Context(), in)
	switch {
	case err == nil:
		return c.JSON(http.StatusCreated, dto)
	case errors.Is(err, domain.ErrUnknownType):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

func (h *DocumentHandler) GetDocument(c echo.Context) error {
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

func (h *DocumentHandler) ListByLoan(c echo.Context) error {
	id, ok := pathID(c, "loan_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan id"})
	}
	dtos, err := h.uc.ListByLoan(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *DocumentHandler) ListByClient(c echo.Context) error {
	id, ok := pathID(c, "client_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid client id"})
	}
	dtos, err := h.uc.ListByClient(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *DocumentHandler) DeleteDocument(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	err := h.uc.Delete(c.Request().Context(), id)
	switch {
	case err == nil:
		return c.NoContent(http.StatusNoContent)
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
