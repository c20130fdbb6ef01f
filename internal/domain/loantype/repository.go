package loantype

import "context"

type Repository interface {
	List(ctx context.Context) ([]LoanType, error)
	Count(ctx context.Context) (int64, error)
	CreateBatch(ctx context.Context, types []LoanType) error
}
