package loan

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusRequested       Status = "requested"
	StatusPendingApproval Status = "pending_approval"
	StatusApproved        Status = "approved"
	StatusRejected        Status = "rejected"
	StatusActive          Status = "active"
	StatusPaid            Status = "paid"
)

// Approvable reports whether an approve/reject decision may still be taken.
func (s Status) Approvable() bool {
	return s == StatusRequested || s == StatusPendingApproval
}

// IsActive reports whether the loan accepts payments. Approved counts as active.
func (s Status) IsActive() bool {
	return s == StatusActive || s == StatusApproved
}

func (s Status) Terminal() bool {
	return s == StatusRejected || s == StatusPaid
}

// PendingStatuses are the states listed as awaiting a decision.
var PendingStatuses = []Status{StatusRequested, StatusPendingApproval}

// Type is the closed catalog of loan variants.
type Type string

const (
	TypeInterestOnBalance Type = "monthly_interest"
	TypeFixedInstallment  Type = "fixed_installments"
)

var Types = []Type{TypeInterestOnBalance, TypeFixedInstallment}

func ParseType(s string) (Type, error) {
	switch t := Type(strings.TrimSpace(s)); t {
	case TypeInterestOnBalance, TypeFixedInstallment:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidLoanType, s)
}

type Frequency string

const (
	FrequencyDaily    Frequency = "daily"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
)

func ParseFrequency(s string) (Frequency, error) {
	switch f := Frequency(strings.TrimSpace(s)); f {
	case FrequencyDaily, FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly:
		return f, nil
	}
	return "", fmt.Errorf("%w: unknown payment frequency %q", ErrInvalidTerms, s)
}

// InstallmentTerms only exist on TypeFixedInstallment loans.
type InstallmentTerms struct {
	TermMonths int
	Value      decimal.Decimal
	Frequency  Frequency
}

func (t InstallmentTerms) validate() error {
	if t.TermMonths <= 0 {
		return fmt.Errorf("%w: term months must be > 0", ErrInvalidAmount)
	}
	if !t.Value.IsPositive() {
		return fmt.Errorf("%w: installment value must be > 0", ErrInvalidAmount)
	}
	if _, err := ParseFrequency(string(t.Frequency)); err != nil {
		return err
	}
	return nil
}

type ApprovalTerms struct {
	InterestRate decimal.Decimal // percent per period
	Installment  *InstallmentTerms
}

type Loan struct {
	ID               uint64              `gorm:"primaryKey;column:id" json:"-"`
	LoanID           string              `gorm:"size:32;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	UserID           string              `gorm:"size:64;not null;index:idx_loans_user" json:"user_id"`
	Amount           decimal.Decimal     `gorm:"type:decimal(20,6);not null" json:"amount"`
	InterestRate     decimal.Decimal     `gorm:"type:decimal(7,4);not null" json:"interest_rate"`
	Status           Status              `gorm:"size:32;not null;index:idx_loans_status;default:'requested'" json:"status"`
	Type             Type                `gorm:"column:loan_type;size:32;not null" json:"type"`
	TermMonths       *int                `gorm:"column:term_months" json:"term_months,omitempty"`
	InstallmentValue decimal.NullDecimal `gorm:"type:decimal(20,6)" json:"installment_value"`
	PaymentFrequency *Frequency          `gorm:"size:16" json:"payment_frequency,omitempty"`
	RemainingBalance decimal.Decimal     `gorm:"type:decimal(20,6);not null" json:"remaining_balance"`
	InterestArrears  decimal.Decimal     `gorm:"type:decimal(20,6);not null" json:"interest_arrears"`
	CreatedAt        time.Time           `gorm:"autoCreateTime" json:"created_at"`
	ApprovedAt       *time.Time          `json:"approved_at,omitempty"`
	UpdatedAt        time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }

// New builds a freshly requested loan. Rate stays zero until approval.
func New(loanID, userID string, amount decimal.Decimal, t Type, now time.Time) (*Loan, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be > 0", ErrInvalidAmount)
	}
	if _, err := ParseType(string(t)); err != nil {
		return nil, err
	}
	return &Loan{
		LoanID:           loanID,
		UserID:           userID,
		Amount:           amount,
		InterestRate:     decimal.Zero,
		Status:           StatusRequested,
		Type:             t,
		RemainingBalance: amount,
		InterestArrears:  decimal.Zero,
		CreatedAt:        now,
	}, nil
}

// Approve moves a requested loan to active and fixes its terms.
func (l *Loan) Approve(terms ApprovalTerms, at time.Time) error {
	if !l.Status.Approvable() {
		if l.Status.IsActive() {
			return fmt.Errorf("%w: loan %s already approved", ErrInvalidState, l.LoanID)
		}
		return fmt.Errorf("%w: cannot approve loan in status %s", ErrInvalidState, l.Status)
	}
	if terms.InterestRate.IsNegative() {
		return fmt.Errorf("%w: interest rate must be >= 0", ErrInvalidAmount)
	}
	if terms.Installment != nil {
		if l.Type != TypeFixedInstallment {
			return fmt.Errorf("%w: installment terms only apply to %s loans", ErrInvalidTerms, TypeFixedInstallment)
		}
		if err := terms.Installment.validate(); err != nil {
			return err
		}
		months, freq := terms.Installment.TermMonths, terms.Installment.Frequency
		l.TermMonths = &months
		l.InstallmentValue = decimal.NewNullDecimal(terms.Installment.Value)
		l.PaymentFrequency = &freq
	}

	approvedAt := at.UTC()
	l.InterestRate = terms.InterestRate
	l.Status = StatusActive
	l.ApprovedAt = &approvedAt
	return nil
}

func (l *Loan) Reject() error {
	if !l.Status.Approvable() {
		return fmt.Errorf("%w: cannot reject loan in status %s", ErrInvalidState, l.Status)
	}
	l.Status = StatusRejected
	return nil
}

// Installment returns the fixed-installment terms, if the loan has them.
func (l *Loan) Installment() (InstallmentTerms, bool) {
	if l.Type != TypeFixedInstallment || l.TermMonths == nil || !l.InstallmentValue.Valid || l.PaymentFrequency == nil {
		return InstallmentTerms{}, false
	}
	return InstallmentTerms{
		TermMonths: *l.TermMonths,
		Value:      l.InstallmentValue.Decimal,
		Frequency:  *l.PaymentFrequency,
	}, true
}
