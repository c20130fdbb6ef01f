package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	Save(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate locks the row until the surrounding tx ends.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)

	// Listings are newest first.
	ListByUserID(ctx context.Context, userID string) ([]Loan, error)
	ListAll(ctx context.Context) ([]Loan, error)
	ListPending(ctx context.Context, offset, limit int) ([]Loan, int64, error)
	ListPendingByUserID(ctx context.Context, userID string) ([]Loan, error)
}
