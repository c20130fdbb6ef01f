package payment

import (
	"time"

	"loan-service/internal/domain/payment"
	"loan-service/pkg/money"
)

type PaymentDTO struct {
	PaymentID         string    `json:"payment_id"`
	LoanID            string    `json:"loan_id"`
	PaymentDate       time.Time `json:"payment_date"`
	Manual            bool      `json:"manual"`
	AmountTendered    float64   `json:"amount_tendered"`
	AmountPaid        float64   `json:"amount_paid"`
	InterestPayment   float64   `json:"interest_payment"`
	CapitalPayment    float64   `json:"capital_payment"`
	InterestShortfall float64   `json:"interest_shortfall"`
	RemainingBalance  float64   `json:"remaining_balance"`
}

// RecordedDTO is the answer to a payment: the record plus the loan's state after it.
type RecordedDTO struct {
	Payment    PaymentDTO `json:"payment"`
	LoanStatus string     `json:"loan_status"`
	Unapplied  float64    `json:"unapplied_amount"`
}

func ToDTO(p payment.Payment) PaymentDTO {
	return PaymentDTO{
		PaymentID:         p.PaymentID,
		LoanID:            p.LoanID,
		PaymentDate:       p.Date,
		Manual:            p.Manual,
		AmountTendered:    money.Float(p.AmountTendered),
		AmountPaid:        money.Float(p.AmountPaid),
		InterestPayment:   money.Float(p.InterestCharged),
		CapitalPayment:    money.Float(p.CapitalPayment),
		InterestShortfall: money.Float(p.InterestShortfall),
		RemainingBalance:  money.Float(p.RemainingBalance),
	}
}

// ToDTOs never returns nil.
func ToDTOs(ps []payment.Payment) []PaymentDTO {
	out := make([]PaymentDTO, 0, len(ps))
	for _, p := range ps {
		out = append(out, ToDTO(p))
	}
	return out
}
