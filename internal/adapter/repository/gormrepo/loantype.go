package gormrepo

import (
	"context"

	loantypeDomain "loan-service/internal/domain/loantype"

	"gorm.io/gorm"
)

type LoanTypeRepository struct{ db *gorm.DB }

func NewLoanTypeRepository(db *gorm.DB) *LoanTypeRepository { return &LoanTypeRepository{db: db} }

func (r *LoanTypeRepository) List(ctx context.Context) ([]loantypeDomain.LoanType, error) {
	var out []loantypeDomain.LoanType
	res := r.db.WithContext(ctx).Order("id ASC").Find(&out)
	return out, res.Error
}

func (r *LoanTypeRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&loantypeDomain.LoanType{}).Count(&n)
	return n, res.Error
}

func (r *LoanTypeRepository) CreateBatch(ctx context.Context, types []loantypeDomain.LoanType) error {
	if len(types) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&types).Error
}
