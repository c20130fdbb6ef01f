package loan

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ShortfallPolicy decides what happens to interest a payment did not cover.
type ShortfallPolicy string

const (
	// ShortfallForgive drops uncovered interest after recording it on the payment.
	ShortfallForgive ShortfallPolicy = "forgive"
	// ShortfallAccrue carries uncovered interest into the next payment's interest due.
	ShortfallAccrue ShortfallPolicy = "accrue"
)

func ParseShortfallPolicy(s string) (ShortfallPolicy, error) {
	switch p := ShortfallPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return ShortfallForgive, nil
	case ShortfallForgive, ShortfallAccrue:
		return p, nil
	}
	return "", fmt.Errorf("unknown interest shortfall policy %q", s)
}

// Allocation is the interest/capital split of one payment.
// InterestCharged + CapitalPayment is what was actually applied.
type Allocation struct {
	AmountTendered    decimal.Decimal
	InterestDue       decimal.Decimal
	InterestCharged   decimal.Decimal
	CapitalPayment    decimal.Decimal
	InterestShortfall decimal.Decimal
	BalanceBefore     decimal.Decimal
	RemainingBalance  decimal.Decimal
}

func (a Allocation) AmountPaid() decimal.Decimal { return a.InterestCharged.Add(a.CapitalPayment) }

// Unapplied is the part of the tendered amount beyond what was owed.
func (a Allocation) Unapplied() decimal.Decimal { return a.AmountTendered.Sub(a.AmountPaid()) }

func (a Allocation) PaysOff() bool { return !a.RemainingBalance.IsPositive() }

// InterestDue is the current balance at the loan rate plus any carried arrears.
// No rounding is applied here.
func (l *Loan) InterestDue() decimal.Decimal {
	return l.RemainingBalance.Mul(l.InterestRate).Shift(-2).Add(l.InterestArrears)
}

// AllocatePayment splits a gross payment interest-first.
func (l *Loan) AllocatePayment(amount decimal.Decimal) (Allocation, error) {
	if !l.Status.IsActive() {
		return Allocation{}, fmt.Errorf("%w: loan %s is %s", ErrInvalidState, l.LoanID, l.Status)
	}
	if !amount.IsPositive() {
		return Allocation{}, fmt.Errorf("%w: payment must be > 0", ErrInvalidAmount)
	}

	due := l.InterestDue()
	interest := decimal.Min(amount, due)
	capital := decimal.Max(decimal.Zero, amount.Sub(due))
	capital = decimal.Min(capital, l.RemainingBalance)

	return Allocation{
		AmountTendered:    amount,
		InterestDue:       due,
		InterestCharged:   interest,
		CapitalPayment:    capital,
		InterestShortfall: due.Sub(interest),
		BalanceBefore:     l.RemainingBalance,
		RemainingBalance:  l.RemainingBalance.Sub(capital),
	}, nil
}

// AllocateCapital handles the administrative variant where the capital portion
// is given directly and interest due is taken as settled alongside it.
func (l *Loan) AllocateCapital(capital decimal.Decimal) (Allocation, error) {
	if !l.Status.IsActive() {
		return Allocation{}, fmt.Errorf("%w: loan %s is %s", ErrInvalidState, l.LoanID, l.Status)
	}
	if !capital.IsPositive() {
		return Allocation{}, fmt.Errorf("%w: capital payment must be > 0", ErrInvalidAmount)
	}
	if capital.GreaterThan(l.RemainingBalance) {
		return Allocation{}, fmt.Errorf("%w: capital payment %s exceeds remaining balance %s",
			ErrInvalidAmount, capital.StringFixed(2), l.RemainingBalance.StringFixed(2))
	}

	due := l.InterestDue()
	return Allocation{
		AmountTendered:    due.Add(capital),
		InterestDue:       due,
		InterestCharged:   due,
		CapitalPayment:    capital,
		InterestShortfall: decimal.Zero,
		BalanceBefore:     l.RemainingBalance,
		RemainingBalance:  l.RemainingBalance.Sub(capital),
	}, nil
}

// Apply commits an allocation to the loan's running state.
func (l *Loan) Apply(a Allocation, policy ShortfallPolicy) {
	l.RemainingBalance = a.RemainingBalance
	if policy == ShortfallAccrue {
		l.InterestArrears = a.InterestShortfall
	} else {
		l.InterestArrears = decimal.Zero
	}
	if a.PaysOff() {
		l.RemainingBalance = decimal.Zero
		l.Status = StatusPaid
	}
}
