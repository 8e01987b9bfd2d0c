package http

import (
	"errors"
	"net/http"

	domain "cfc-deblocages/internal/domain/user"
	"cfc-deblocages/internal/usecase/auth"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct{ uc *auth.Usecase }

func NewAuthHandler(uc *auth.Usecase) *AuthHandler { return &AuthHandler{uc: uc} }

type loginReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.uc.Login(c.Request().Context(), auth.LoginInput(req))
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, dto)
	case errors.Is(err, domain.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: domain.ErrInvalidCredentials.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
