package payment

import (
	"time"

	"loan-service/internal/domain/loan"

	"github.com/shopspring/decimal"
)

// Payment is an immutable record of one repayment event.
// LoanID is the loan's public id; the row never embeds the loan itself.
type Payment struct {
	ID                uint64          `gorm:"primaryKey;column:id" json:"-"`
	PaymentID         string          `gorm:"size:32;uniqueIndex:ux_payments_payment_id" json:"payment_id"`
	LoanID            string          `gorm:"size:32;not null;index:idx_payments_loan_date,priority:1" json:"loan_id"`
	Date              time.Time       `gorm:"column:payment_date;not null;index:idx_payments_loan_date,priority:2" json:"date"`
	Manual            bool            `gorm:"not null;default:false" json:"manual"`
	AmountTendered    decimal.Decimal `gorm:"type:decimal(20,6);not null" json:"amount_tendered"`
	AmountPaid        decimal.Decimal `gorm:"type:decimal(20,6);not null" json:"amount_paid"`
	InterestCharged   decimal.Decimal `gorm:"type:decimal(20,6);not null" json:"interest_charged"`
	CapitalPayment    decimal.Decimal `gorm:"type:decimal(20,6);not null" json:"capital_payment"`
	InterestShortfall decimal.Decimal `gorm:"type:decimal(20,6);not null" json:"interest_shortfall"`
	RemainingBalance  decimal.Decimal `gorm:"type:decimal(20,6);not null" json:"remaining_balance"`
	CreatedAt         time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (Payment) TableName() string { return "payments" }

// FromAllocation snapshots an allocation as a payment record.
func FromAllocation(paymentID, loanID string, date time.Time, manual bool, a loan.Allocation) *Payment {
	return &Payment{
		PaymentID:         paymentID,
		LoanID:            loanID,
		Date:              date.UTC(),
		Manual:            manual,
		AmountTendered:    a.AmountTendered,
		AmountPaid:        a.AmountPaid(),
		InterestCharged:   a.InterestCharged,
		CapitalPayment:    a.CapitalPayment,
		InterestShortfall: a.InterestShortfall,
		RemainingBalance:  a.RemainingBalance,
	}
}
