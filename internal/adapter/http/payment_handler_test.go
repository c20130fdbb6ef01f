package http

import (
	stdhttp "net/http"
	"testing"
	"time"

	domain "loan-service/internal/domain/loan"
	"loan-service/internal/testutil/usermock"
	"loan-service/internal/usecase/balance"
	paymentUC "loan-service/internal/usecase/payment"

	"github.com/labstack/echo/v4"
)

// activeServer returns a server holding LN-1: 1000 at 10%, already approved.
func activeServer(t *testing.T) (*store, *echo.Echo) {
	t.Helper()
	s := newStore(requested("LN-1", "u-1", "1000", domain.TypeInterestOnBalance, time.Hour))
	e := newServer(s, usermock.Clients())
	if rec := call(t, e, stdhttp.MethodPut, "/loans/LN-1/approve", map[string]any{"interest_rate": 10}); rec.Code != stdhttp.StatusOK {
		t.Fatalf("approve = %d (%s)", rec.Code, rec.Body.String())
	}
	return s, e
}

func TestMakePayment_PaysDownThenOff(t *testing.T) {
	_, e := activeServer(t)

	rec := call(t, e, stdhttp.MethodPost, "/loans/LN-1/payments", map[string]any{"amount": 300})
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("pay 300 = %d (%s)", rec.Code, rec.Body.String())
	}
	first := decode[paymentUC.RecordedDTO](t, rec)
	if first.Payment.InterestPayment != 100 || first.Payment.CapitalPayment != 200 || first.Payment.RemainingBalance != 800 {
		t.Fatalf("first payment = %+v", first.Payment)
	}
	if first.LoanStatus != string(domain.StatusActive) || first.Payment.Manual {
		t.Fatalf("first recorded = %+v", first)
	}

	rec = call(t, e, stdhttp.MethodPost, "/loans/LN-1/payments", map[string]any{"amount": 900})
	second := decode[paymentUC.RecordedDTO](t, rec)
	if second.Payment.InterestPayment != 80 || second.Payment.CapitalPayment != 800 || second.Payment.RemainingBalance != 0 {
		t.Fatalf("second payment = %+v", second.Payment)
	}
	if second.LoanStatus != string(domain.StatusPaid) || second.Unapplied != 20 || second.Payment.AmountTendered != 900 {
		t.Fatalf("second recorded = %+v", second)
	}

	if rec := call(t, e, stdhttp.MethodPost, "/loans/LN-1/payments", map[string]any{"amount": 10}); rec.Code != stdhttp.StatusConflict {
		t.Fatalf("pay a paid loan => want 409, got %d", rec.Code)
	}

	list := call(t, e, stdhttp.MethodGet, "/loans/LN-1/payments", nil)
	got := decode[[]paymentUC.PaymentDTO](t, list)
	if len(got) != 2 || got[0].CapitalPayment != 200 || got[1].CapitalPayment != 800 {
		t.Fatalf("payments = %+v", got)
	}

	bal := decode[balance.LoanBalance](t, call(t, e, stdhttp.MethodGet, "/loans/balance/u-1", nil))
	if bal.TotalLoans != 1 || bal.ActiveLoans != 0 || bal.TotalPaid != 1000 || bal.TotalPending != 0 {
		t.Fatalf("balance = %+v", bal)
	}
}

func TestMakePayment_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		body     any
		wantCode int
	}{
		{"zero", "/loans/LN-1/payments", map[string]any{"amount": 0}, stdhttp.StatusBadRequest},
		{"negative", "/loans/LN-1/payments", map[string]any{"amount": -1}, stdhttp.StatusBadRequest},
		{"three decimals", "/loans/LN-1/payments", map[string]any{"amount": 1.005}, stdhttp.StatusUnprocessableEntity},
		{"broken json", "/loans/LN-1/payments", `{"amount"`, stdhttp.StatusBadRequest},
		{"unknown loan", "/loans/LN-404/payments", map[string]any{"amount": 10}, stdhttp.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, e := activeServer(t)
			rec := call(t, e, stdhttp.MethodPost, tt.path, tt.body)
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantCode, rec.Body.String())
			}
			if len(s.payments) != 0 {
				t.Fatalf("no payment should be stored")
			}
		})
	}
}

func TestMakePayment_RequestedLoanIsConflict(t *testing.T) {
	s := newStore(requested("LN-1", "u-1", "1000", domain.TypeInterestOnBalance, time.Hour))
	e := newServer(s, usermock.Clients())
	if rec := call(t, e, stdhttp.MethodPost, "/loans/LN-1/payments", map[string]any{"amount": 10}); rec.Code != stdhttp.StatusConflict {
		t.Fatalf("pay requested loan => want 409, got %d", rec.Code)
	}
}

func TestMakeManualPayment(t *testing.T) {
	_, e := activeServer(t)

	rec := call(t, e, stdhttp.MethodPost, "/loans/LN-1/payments/manual", map[string]any{
		"capital_payment": 500,
		"payment_date":    "2025-01-15T10:30:00Z",
	})
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("manual = %d (%s)", rec.Code, rec.Body.String())
	}
	got := decode[paymentUC.RecordedDTO](t, rec)
	p := got.Payment
	if !p.Manual || p.CapitalPayment != 500 || p.InterestPayment != 100 || p.AmountPaid != 600 || p.RemainingBalance != 500 {
		t.Fatalf("manual payment = %+v", p)
	}
	if want := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC); !p.PaymentDate.Equal(want) {
		t.Fatalf("payment_date = %v, want %v", p.PaymentDate, want)
	}

	tests := []struct {
		name     string
		body     map[string]any
		wantCode int
	}{
		{"missing date", map[string]any{"capital_payment": 10}, stdhttp.StatusUnprocessableEntity},
		{"bad date", map[string]any{"capital_payment": 10, "payment_date": "15/01/2025"}, stdhttp.StatusUnprocessableEntity},
		{"over balance", map[string]any{"capital_payment": 500.01, "payment_date": "2025-01-16T00:00:00Z"}, stdhttp.StatusBadRequest},
		{"zero capital", map[string]any{"capital_payment": 0, "payment_date": "2025-01-16T00:00:00Z"}, stdhttp.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(t, e, stdhttp.MethodPost, "/loans/LN-1/payments/manual", tt.body)
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantCode, rec.Body.String())
			}
		})
	}
}

func TestListPayments_UnknownLoan(t *testing.T) {
	e := newServer(newStore(), usermock.Clients())
	if rec := call(t, e, stdhttp.MethodGet, "/loans/LN-404/payments", nil); rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("want 404, got %d", rec.Code)
	}
}

func TestBalance_NoLoans(t *testing.T) {
	e := newServer(newStore(), usermock.Clients())
	rec := call(t, e, stdhttp.MethodGet, "/loans/balance/u-none", nil)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	bal := decode[balance.LoanBalance](t, rec)
	if bal.TotalLoans != 0 || bal.TotalBorrowed != 0 || bal.Loans == nil || len(bal.Loans) != 0 {
		t.Fatalf("empty balance = %+v", bal)
	}
}
