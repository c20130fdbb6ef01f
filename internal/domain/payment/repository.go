package payment

import "context"

type Repository interface {
	// Create appends a payment; there is no update path.
	Create(ctx context.Context, p *Payment) error

	// Chronological order: payment_date ASC, id ASC.
	ListByLoanID(ctx context.Context, loanID string) ([]Payment, error)
	ListByLoanIDs(ctx context.Context, loanIDs []string) ([]Payment, error)
}
