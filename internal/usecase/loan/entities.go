package loan

import (
	"time"

	domain "loan-service/internal/domain/loan"
	"loan-service/internal/domain/user"
	paymentUC "loan-service/internal/usecase/payment"
	"loan-service/pkg/money"

	"github.com/shopspring/decimal"
)

type RequestInput struct {
	UserID string
	Amount decimal.Decimal
	Type   string
}

// ApproveInput carries the decision terms. The installment fields go together
// and only on fixed-installment loans.
type ApproveInput struct {
	InterestRate     decimal.Decimal
	TermMonths       *int
	InstallmentValue *decimal.Decimal
	PaymentFrequency *string
}

type LoanDTO struct {
	LoanID           string                 `json:"loan_id"`
	UserID           string                 `json:"user_id"`
	Amount           float64                `json:"amount"`
	InterestRate     float64                `json:"interest_rate"`
	Status           string                 `json:"status"`
	Type             string                 `json:"loan_type"`
	TermMonths       *int                   `json:"term_months,omitempty"`
	InstallmentValue *float64               `json:"installment_value,omitempty"`
	PaymentFrequency *string                `json:"payment_frequency,omitempty"`
	RemainingBalance float64                `json:"remaining_balance"`
	InterestArrears  float64                `json:"interest_arrears"`
	CreatedAt        time.Time              `json:"created_at"`
	ApprovedAt       *time.Time             `json:"approved_at,omitempty"`
	Payments         []paymentUC.PaymentDTO `json:"payments"`
}

type PendingLoanDTO struct {
	LoanDTO
	User user.Profile `json:"user"`
}

type PendingPage struct {
	Items      []PendingLoanDTO `json:"items"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
}

func ToDTO(l domain.Loan) LoanDTO {
	dto := LoanDTO{
		LoanID:           l.LoanID,
		UserID:           l.UserID,
		Amount:           money.Float(l.Amount),
		InterestRate:     money.Float(l.InterestRate),
		Status:           string(l.Status),
		Type:             string(l.Type),
		RemainingBalance: money.Float(l.RemainingBalance),
		InterestArrears:  money.Float(l.InterestArrears),
		CreatedAt:        l.CreatedAt,
		ApprovedAt:       l.ApprovedAt,
		Payments:         []paymentUC.PaymentDTO{},
	}
	if t, ok := l.Installment(); ok {
		months, value, freq := t.TermMonths, money.Float(t.Value), string(t.Frequency)
		dto.TermMonths = &months
		dto.InstallmentValue = &value
		dto.PaymentFrequency = &freq
	}
	return dto
}
