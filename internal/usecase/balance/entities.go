package balance

import (
	"time"

	paymentUC "loan-service/internal/usecase/payment"
)

type LoanDetail struct {
	LoanID           string                 `json:"loan_id"`
	Amount           float64                `json:"amount"`
	InterestRate     float64                `json:"interest_rate"`
	Status           string                 `json:"status"`
	Type             string                 `json:"loan_type"`
	RemainingBalance float64                `json:"remaining_balance"`
	TotalPaid        float64                `json:"total_paid"`
	CreatedAt        time.Time              `json:"created_at"`
	ApprovedAt       *time.Time             `json:"approved_at,omitempty"`
	Payments         []paymentUC.PaymentDTO `json:"payments"`
}

// LoanBalance is the per-user roll-up. TotalPaid counts capital only.
type LoanBalance struct {
	UserID        string       `json:"user_id"`
	TotalLoans    int          `json:"total_loans"`
	ActiveLoans   int          `json:"active_loans"`
	TotalBorrowed float64      `json:"total_borrowed"`
	TotalPaid     float64      `json:"total_paid"`
	TotalPending  float64      `json:"total_pending"`
	Loans         []LoanDetail `json:"loans"`
}
