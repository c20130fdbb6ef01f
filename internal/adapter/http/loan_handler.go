package http

import (
	"net/http"

	"loan-service/internal/usecase/loan"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type requestLoanReq struct {
	UserID string  `json:"user_id" validate:"required,userid"`
	Amount float64 `json:"amount" validate:"dec2"`
	Type   string  `json:"loan_type" validate:"required,loantype"`
}

// Installment fields are all-or-nothing; the usecase enforces that.
type approveLoanReq struct {
	InterestRate     float64  `json:"interest_rate" validate:"dec2"`
	TermMonths       *int     `json:"term_months"`
	InstallmentValue *float64 `json:"installment_value" validate:"omitempty,dec2"`
	PaymentFrequency *string  `json:"payment_frequency" validate:"omitempty,frequency"`
}

func (r approveLoanReq) input() loan.ApproveInput {
	in := loan.ApproveInput{
		InterestRate:     decimal.NewFromFloat(r.InterestRate),
		TermMonths:       r.TermMonths,
		PaymentFrequency: r.PaymentFrequency,
	}
	if r.InstallmentValue != nil {
		v := decimal.NewFromFloat(*r.InstallmentValue)
		in.InstallmentValue = &v
	}
	return in
}

func (h *LoanHandler) RequestLoan(c echo.Context) error {
	var req requestLoanReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Request(c.Request().Context(), loan.RequestInput{
		UserID: req.UserID,
		Amount: decimal.NewFromFloat(req.Amount),
		Type:   req.Type,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) ApproveLoan(c echo.Context) error {
	var req approveLoanReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Approve(c.Request().Context(), c.Param("loan_id"), req.input())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) RejectLoan(c echo.Context) error {
	dto, err := h.uc.Reject(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) ListByUser(c echo.Context) error {
	out, err := h.uc.ListByUser(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LoanHandler) ListAll(c echo.Context) error {
	out, err := h.uc.ListAll(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// ListPending reads ?page and ?limit. Missing values take the usecase defaults.
func (h *LoanHandler) ListPending(c echo.Context) error {
	page, limit := 1, loan.DefaultPageLimit
	if err := echo.QueryParamsBinder(c).
		Int("page", &page).
		Int("limit", &limit).
		BindError(); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "page and limit must be integers"})
	}
	out, err := h.uc.ListPending(c.Request().Context(), page, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LoanHandler) SearchPendingByDocument(c echo.Context) error {
	out, err := h.uc.SearchPendingByDocument(c.Request().Context(), c.Param("document_number"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
