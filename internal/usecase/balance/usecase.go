package balance

import (
	"context"

	"loan-service/internal/domain/loan"
	"loan-service/internal/domain/payment"
	loanUC "loan-service/internal/usecase/loan"
	paymentUC "loan-service/internal/usecase/payment"
	"loan-service/pkg/money"

	"github.com/shopspring/decimal"
)

type Usecase struct {
	loans    loan.Repository
	payments payment.Repository
}

func NewUsecase(loans loan.Repository, payments payment.Repository) *Usecase {
	return &Usecase{loans: loans, payments: payments}
}

// Get folds every loan of userID. A user with no loans gets zero totals.
func (u *Usecase) Get(ctx context.Context, userID string) (*LoanBalance, error) {
	ls, err := u.loans.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	byLoan, err := loanUC.PaymentsByLoan(ctx, u.payments, ls)
	if err != nil {
		return nil, err
	}
	b := Summarize(userID, ls, byLoan)
	return &b, nil
}

// Summarize sums unrounded and rounds each total once at the end.
func Summarize(userID string, loans []loan.Loan, paymentsByLoan map[string][]payment.Payment) LoanBalance {
	var (
		active                  int
		borrowed, paid, pending = decimal.Zero, decimal.Zero, decimal.Zero
		details                 = make([]LoanDetail, 0, len(loans))
	)
	for _, l := range loans {
		ps := paymentsByLoan[l.LoanID]
		loanPaid := decimal.Zero
		for _, p := range ps {
			loanPaid = loanPaid.Add(p.CapitalPayment)
		}

		if l.Status.IsActive() {
			active++
		}
		borrowed = borrowed.Add(l.Amount)
		paid = paid.Add(loanPaid)
		pending = pending.Add(l.RemainingBalance)

		details = append(details, LoanDetail{
			LoanID:           l.LoanID,
			Amount:           money.Float(l.Amount),
			InterestRate:     money.Float(l.InterestRate),
			Status:           string(l.Status),
			Type:             string(l.Type),
			RemainingBalance: money.Float(l.RemainingBalance),
			TotalPaid:        money.Float(loanPaid),
			CreatedAt:        l.CreatedAt,
			ApprovedAt:       l.ApprovedAt,
			Payments:         paymentUC.ToDTOs(ps),
		})
	}

	return LoanBalance{
		UserID:        userID,
		TotalLoans:    len(loans),
		ActiveLoans:   active,
		TotalBorrowed: money.Float(borrowed),
		TotalPaid:     money.Float(paid),
		TotalPending:  money.Float(pending),
		Loans:         details,
	}
}
