package loanmock

import (
	"context"
	"errors"
	"testing"

	domain "loan-service/internal/domain/loan"
)

func TestRepo_Create(t *testing.T) {
	ctx := context.Background()
	l := &domain.Loan{LoanID: "LN-1"}

	// Uses provided func
	called := false
	wantErr := errors.New("boom")
	m := &Repo{
		CreateFn: func(gotCtx context.Context, got *domain.Loan) error {
			called = true
			if gotCtx != ctx {
				t.Fatalf("Create ctx mismatch")
			}
			if got != l {
				t.Fatalf("Create arg mismatch")
			}
			return wantErr
		},
	}
	if err := m.Create(ctx, l); !errors.Is(err, wantErr) {
		t.Fatalf("Create: want %v, got %v", wantErr, err)
	}
	if !called {
		t.Fatalf("CreateFn not called")
	}

	// Default (nil func) → no-op, nil error
	m = &Repo{}
	if err := m.Create(ctx, l); err != nil {
		t.Fatalf("Create default: want nil, got %v", err)
	}
	if err := m.Save(ctx, l); err != nil {
		t.Fatalf("Save default: want nil, got %v", err)
	}
}

func TestRepo_GetByLoanIDForUpdate(t *testing.T) {
	ctx := context.Background()
	want := &domain.Loan{LoanID: "LN-5"}

	m := &Repo{
		GetByLoanIDForUpdateFn: func(_ context.Context, loanID string) (*domain.Loan, error) {
			if loanID != "LN-5" {
				t.Fatalf("loanID mismatch: got %s", loanID)
			}
			return want, nil
		},
	}
	got, err := m.GetByLoanIDForUpdate(ctx, "LN-5")
	if err != nil || got != want {
		t.Fatalf("GetByLoanIDForUpdate: got %+v, %v", got, err)
	}

	// Default (nil func) → context.Canceled
	m = &Repo{}
	if got, err := m.GetByLoanIDForUpdate(ctx, "LN-5"); err != context.Canceled || got != nil {
		t.Fatalf("default: want nil, context.Canceled; got %+v, %v", got, err)
	}
	if got, err := m.GetByLoanID(ctx, "LN-5"); err != context.Canceled || got != nil {
		t.Fatalf("default: want nil, context.Canceled; got %+v, %v", got, err)
	}
}

func TestRepo_Lists_Default(t *testing.T) {
	ctx := context.Background()
	m := &Repo{}

	if _, err := m.ListByUserID(ctx, "u"); err != context.Canceled {
		t.Fatalf("ListByUserID default: %v", err)
	}
	if _, err := m.ListAll(ctx); err != context.Canceled {
		t.Fatalf("ListAll default: %v", err)
	}
	if _, n, err := m.ListPending(ctx, 0, 10); err != context.Canceled || n != 0 {
		t.Fatalf("ListPending default: %d, %v", n, err)
	}
	if _, err := m.ListPendingByUserID(ctx, "u"); err != context.Canceled {
		t.Fatalf("ListPendingByUserID default: %v", err)
	}
}

func TestRepo_ListPending_ForwardsPaging(t *testing.T) {
	m := &Repo{
		ListPendingFn: func(_ context.Context, offset, limit int) ([]domain.Loan, int64, error) {
			if offset != 20 || limit != 10 {
				t.Fatalf("paging mismatch: offset=%d limit=%d", offset, limit)
			}
			return []domain.Loan{{LoanID: "LN-P"}}, 21, nil
		},
	}
	rows, total, err := m.ListPending(context.Background(), 20, 10)
	if err != nil || total != 21 || len(rows) != 1 {
		t.Fatalf("ListPending: rows=%v total=%d err=%v", rows, total, err)
	}
}
