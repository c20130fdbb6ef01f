package http

import (
	"net/http"
	"time"

	"loan-service/internal/usecase/payment"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type PaymentHandler struct{ uc *payment.Usecase }

func NewPaymentHandler(uc *payment.Usecase) *PaymentHandler { return &PaymentHandler{uc: uc} }

type makePaymentReq struct {
	Amount float64 `json:"amount" validate:"dec2"`
}

type manualPaymentReq struct {
	CapitalPayment float64 `json:"capital_payment" validate:"dec2"`
	PaymentDate    string  `json:"payment_date" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

func (h *PaymentHandler) MakePayment(c echo.Context) error {
	var req makePaymentReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	out, err := h.uc.MakePayment(c.Request().Context(), c.Param("loan_id"), decimal.NewFromFloat(req.Amount))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *PaymentHandler) MakeManualPayment(c echo.Context) error {
	var req manualPaymentReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	// validated above
	date, _ := time.Parse(time.RFC3339, req.PaymentDate)
	out, err := h.uc.MakeManualPayment(c.Request().Context(), c.Param("loan_id"),
		decimal.NewFromFloat(req.CapitalPayment), date.UTC())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *PaymentHandler) ListByLoan(c echo.Context) error {
	out, err := h.uc.ListByLoan(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
