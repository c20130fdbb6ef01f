package loantype

import "loan-service/internal/domain/loan"

// Table: loan_types. Display catalog only; behaviour per type lives in domain/loan.
type LoanType struct {
	ID          string `gorm:"column:id;primaryKey;size:32" json:"id"`
	Name        string `gorm:"column:name;size:128;not null" json:"name"`
	Description string `gorm:"column:description;type:text" json:"description"`
}

func (LoanType) TableName() string { return "loan_types" }

// Catalog is the seed content, one row per loan.Type.
func Catalog() []LoanType {
	return []LoanType{
		{
			ID:          string(loan.TypeInterestOnBalance),
			Name:        "Monthly interest with capital payments",
			Description: "Interest is charged monthly on the outstanding balance; any amount above it reduces capital.",
		},
		{
			ID:          string(loan.TypeFixedInstallment),
			Name:        "Fixed installments",
			Description: "Repaid in fixed installments over a defined term and payment frequency.",
		},
	}
}
