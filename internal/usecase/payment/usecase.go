package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"loan-service/internal/adapter/events"
	"loan-service/internal/domain/loan"
	"loan-service/internal/domain/payment"
	"loan-service/internal/domain/uow"
	"loan-service/internal/infrastructure/metrics"
	"loan-service/pkg/id"
	"loan-service/pkg/money"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Usecase struct {
	loanRepo    loan.Repository
	paymentRepo payment.Repository
	uow         uow.UnitOfWork

	policy  loan.ShortfallPolicy
	ids     id.Generator
	now     func() time.Time
	events  events.Publisher
	metrics *metrics.Metrics
}

type Option func(*Usecase)

func WithShortfallPolicy(p loan.ShortfallPolicy) Option { return func(u *Usecase) { u.policy = p } }
func WithIDs(g id.Generator) Option                   { return func(u *Usecase) { u.ids = g } }
func WithClock(now func() time.Time) Option           { return func(u *Usecase) { u.now = now } }
func WithPublisher(p events.Publisher) Option         { return func(u *Usecase) { u.events = p } }
func WithMetrics(m *metrics.Metrics) Option           { return func(u *Usecase) { u.metrics = m } }

func NewUsecase(loans loan.Repository, payments payment.Repository, tx uow.UnitOfWork, opts ...Option) *Usecase {
	u := &Usecase{
		loanRepo:    loans,
		paymentRepo: payments,
		uow:         tx,
		policy:      loan.ShortfallForgive,
		ids:         id.Hex32,
		now:         time.Now,
		events:      events.Noop{},
	}
	for _, o := range opts {
		o(u)
	}
	return u
}

// MakePayment applies a gross amount interest-first, dated now.
func (u *Usecase) MakePayment(ctx context.Context, loanID string, amount decimal.Decimal) (*RecordedDTO, error) {
	return u.record(ctx, loanID, u.now(), false, func(l *loan.Loan) (loan.Allocation, error) {
		return l.AllocatePayment(amount)
	})
}

// MakeManualPayment records an administrative capital payment on a caller-given date.
func (u *Usecase) MakeManualPayment(ctx context.Context, loanID string, capital decimal.Decimal, date time.Time) (*RecordedDTO, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("%w: payment date is required", loan.ErrInvalidAmount)
	}
	return u.record(ctx, loanID, date, true, func(l *loan.Loan) (loan.Allocation, error) {
		return l.AllocateCapital(capital)
	})
}

func (u *Usecase) record(ctx context.Context, loanID string, date time.Time, manual bool,
	allocate func(*loan.Loan) (loan.Allocation, error)) (*RecordedDTO, error) {
	if u.uow == nil {
		return nil, errors.New("payment: unit of work not configured")
	}

	var (
		rec   *payment.Payment
		after loan.Loan
		alloc loan.Allocation
	)
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		a, err := allocate(l)
		if err != nil {
			return err
		}
		l.Apply(a, u.policy)
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		p := payment.FromAllocation(u.ids.NewID(), l.LoanID, date, manual, a)
		if err := r.Payments.Create(ctx, p); err != nil {
			return err
		}
		rec, after, alloc = p, *l, a
		return nil
	})
	if err != nil {
		return nil, notFound(err, loanID)
	}

	u.emit(ctx, rec, after)
	kind := metrics.KindRegular
	if manual {
		kind = metrics.KindManual
	}
	u.metrics.PaymentRecorded(kind, rec.CapitalPayment)
	if after.Status == loan.StatusPaid {
		u.metrics.LoanTransitioned(string(loan.StatusPaid))
	}

	return &RecordedDTO{
		Payment:    ToDTO(*rec),
		LoanStatus: string(after.Status),
		Unapplied:  money.Float(alloc.Unapplied()),
	}, nil
}

func (u *Usecase) emit(ctx context.Context, p *payment.Payment, l loan.Loan) {
	events.Emit(ctx, u.events, events.TopicPaymentRecorded, l.LoanID, events.PaymentEvent{
		PaymentID:         p.PaymentID,
		LoanID:            p.LoanID,
		Manual:            p.Manual,
		AmountTendered:    p.AmountTendered,
		AmountPaid:        p.AmountPaid,
		InterestCharged:   p.InterestCharged,
		CapitalPayment:    p.CapitalPayment,
		InterestShortfall: p.InterestShortfall,
		RemainingBalance:  p.RemainingBalance,
		PaymentDate:       p.Date,
	})
	if l.Status != loan.StatusPaid {
		return
	}
	events.Emit(ctx, u.events, events.TopicLoanPaid, l.LoanID, events.LoanEvent{
		LoanID:           l.LoanID,
		UserID:           l.UserID,
		Status:           string(l.Status),
		Type:             string(l.Type),
		Amount:           l.Amount,
		InterestRate:     l.InterestRate,
		RemainingBalance: l.RemainingBalance,
		OccurredAt:       u.now().UTC(),
	})
}

// ListByLoan returns a loan's payments oldest first.
func (u *Usecase) ListByLoan(ctx context.Context, loanID string) ([]PaymentDTO, error) {
	if _, err := u.loanRepo.GetByLoanID(ctx, loanID); err != nil {
		return nil, notFound(err, loanID)
	}
	ps, err := u.paymentRepo.ListByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	return ToDTOs(ps), nil
}

func notFound(err error, loanID string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: loan %s", loan.ErrNotFound, loanID)
	}
	return err
}
