package loantypemock

import (
	"context"

	domain "loan-service/internal/domain/loantype"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	ListFn        func(ctx context.Context) ([]domain.LoanType, error)
	CountFn       func(ctx context.Context) (int64, error)
	CreateBatchFn func(ctx context.Context, types []domain.LoanType) error
}

func (m *Repo) List(ctx context.Context) ([]domain.LoanType, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Repo) Count(ctx context.Context) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	return 0, context.Canceled
}

func (m *Repo) CreateBatch(ctx context.Context, types []domain.LoanType) error {
	if m.CreateBatchFn != nil {
		return m.CreateBatchFn(ctx, types)
	}
	return nil
}
