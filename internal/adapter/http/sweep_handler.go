package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// SweepRunner is the threshold evaluation pass, normally fired by cron.
type SweepRunner interface {
	Run(ctx context.Context, now time.Time) error
}

// SweepHandler exposes a manual trigger so operators can force a pass
// without waiting for the next tick.
type SweepHandler struct{ runner SweepRunner }

func NewSweepHandler(runner SweepRunner) *SweepHandler { return &SweepHandler{runner: runner} }

func (h *SweepHandler) TriggerSweep(c echo.Context) error {
	if err := h.runner.Run(c.Request().Context(), time.Now().UTC()); err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "completed"})
}
