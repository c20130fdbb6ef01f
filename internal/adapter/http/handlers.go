package http

import (
	"net/http"
	"time"

	"loan-service/internal/usecase/balance"
	"loan-service/internal/usecase/loantype"

	"github.com/labstack/echo/v4"
)

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}

type BalanceHandler struct{ uc *balance.Usecase }

func NewBalanceHandler(uc *balance.Usecase) *BalanceHandler { return &BalanceHandler{uc: uc} }

func (h *BalanceHandler) GetBalance(c echo.Context) error {
	out, err := h.uc.Get(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type LoanTypeHandler struct{ uc *loantype.Usecase }

func NewLoanTypeHandler(uc *loantype.Usecase) *LoanTypeHandler { return &LoanTypeHandler{uc: uc} }

func (h *LoanTypeHandler) List(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
