package loan

import "errors"

var (
	ErrNotFound        = errors.New("loan not found")
	ErrInvalidState    = errors.New("invalid loan state for operation")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidUser     = errors.New("user not eligible for loans")
	ErrInvalidLoanType = errors.New("invalid loan type")
	ErrInvalidTerms    = errors.New("invalid loan terms")
)
