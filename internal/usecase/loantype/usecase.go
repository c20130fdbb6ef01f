package loantype

import (
	"context"
	"log"

	"loan-service/internal/domain/loantype"
)

type LoanTypeDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Usecase struct{ repo loantype.Repository }

func NewUsecase(r loantype.Repository) *Usecase { return &Usecase{repo: r} }

// Seed inserts the catalog when the table is empty. Returns how many rows it wrote.
func (u *Usecase) Seed(ctx context.Context) (int, error) {
	n, err := u.repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	rows := loantype.Catalog()
	if err := u.repo.CreateBatch(ctx, rows); err != nil {
		return 0, err
	}
	log.Printf("loantype: seeded %d loan types", len(rows))
	return len(rows), nil
}

func (u *Usecase) List(ctx context.Context) ([]LoanTypeDTO, error) {
	rows, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]LoanTypeDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, LoanTypeDTO{ID: r.ID, Name: r.Name, Description: r.Description})
	}
	return out, nil
}
