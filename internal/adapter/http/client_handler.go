package http

import (
	"errors"
	"net/http"

	domain "cfc-deblocages/internal/domain/client"
	"cfc-deblocages/internal/usecase/client"

	"github.com/labstack/echo/v4"
)

type ClientHandler struct{ uc *client.Usecase }

func NewClientHandler(uc *client.Usecase) *ClientHandler { return &ClientHandler{uc: uc} }

type createClientReq struct {
	Name         string `json:"name" validate:"required"`
	CompanyName  string `json:"company_name"`
	Address      string `json:"address" validate:"required"`
	Phone        string `json:"phone" validate:"required,phone"`
	Email        string `json:"email" validate:"omitempty,email"`
	IDCardNumber string `json:"id_card_number"`
}

func (h *ClientHandler) CreateClient(c echo.Context) error {
	var req createClientReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.Create(c.Request().Context(), client.CreateClientInput(req))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ClientHandler) GetClient(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("client_number"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ClientHandler) ListClients(c echo.Context) error {
	offset := queryInt(c, "skip", 0)
	limit := queryInt(c, "limit", 100)
	dtos, err := h.uc.List(c.Request().Context(), offset, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *ClientHandler) UpdateClient(c echo.Context) error {
	var req client.UpdateClientInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	dto, err := h.uc.Update(c.Request().Context(), c.Param("client_number"), req)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, dto)
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

func (h *ClientHandler) DeactivateClient(c echo.Context) error {
	err := h.uc.Deactivate(c.Request().Context(), c.Param("client_number"))
	switch {
	case err == nil:
		return c.NoContent(http.StatusNoContent)
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
