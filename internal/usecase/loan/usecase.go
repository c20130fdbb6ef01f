package loan

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"loan-service/internal/adapter/events"
	domain "loan-service/internal/domain/loan"
	"loan-service/internal/domain/payment"
	"loan-service/internal/domain/uow"
	"loan-service/internal/domain/user"
	"loan-service/internal/infrastructure/metrics"
	paymentUC "loan-service/internal/usecase/payment"
	"loan-service/pkg/id"

	"gorm.io/gorm"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

type Usecase struct {
	repo     domain.Repository
	payments payment.Repository
	uow      uow.UnitOfWork
	users    user.Directory

	ids     id.Generator
	now     func() time.Time
	events  events.Publisher
	metrics *metrics.Metrics
}

type Option func(*Usecase)

func WithIDs(g id.Generator) Option           { return func(u *Usecase) { u.ids = g } }
func WithClock(now func() time.Time) Option   { return func(u *Usecase) { u.now = now } }
func WithPublisher(p events.Publisher) Option { return func(u *Usecase) { u.events = p } }
func WithMetrics(m *metrics.Metrics) Option   { return func(u *Usecase) { u.metrics = m } }

func NewUsecase(r domain.Repository, payments payment.Repository, tx uow.UnitOfWork, users user.Directory, opts ...Option) *Usecase {
	u := &Usecase{
		repo:     r,
		payments: payments,
		uow:      tx,
		users:    users,
		ids:      id.Hex32,
		now:      time.Now,
		events:   events.Noop{},
	}
	for _, o := range opts {
		o(u)
	}
	return u
}

// Request files a new loan for a client user. Checks run amount, type, then user.
func (u *Usecase) Request(ctx context.Context, in RequestInput) (*LoanDTO, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be > 0", domain.ErrInvalidAmount)
	}
	t, err := domain.ParseType(in.Type)
	if err != nil {
		return nil, err
	}

	usr, err := u.users.GetUser(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: lookup %s: %v", domain.ErrInvalidUser, in.UserID, err)
	}
	if !usr.IsClient() {
		return nil, fmt.Errorf("%w: user %s has role %q", domain.ErrInvalidUser, in.UserID, usr.Role)
	}

	l, err := domain.New(u.ids.NewID(), in.UserID, in.Amount, t, u.now().UTC())
	if err != nil {
		return nil, err
	}
	if err := u.repo.Create(ctx, l); err != nil {
		return nil, err
	}

	u.transitioned(ctx, events.TopicLoanRequested, *l)
	dto := ToDTO(*l)
	return &dto, nil
}

func (u *Usecase) Approve(ctx context.Context, loanID string, in ApproveInput) (*LoanDTO, error) {
	terms, err := in.terms()
	if err != nil {
		return nil, err
	}
	return u.decide(ctx, loanID, events.TopicLoanApproved, func(l *domain.Loan) error {
		return l.Approve(terms, u.now())
	})
}

func (u *Usecase) Reject(ctx context.Context, loanID string) (*LoanDTO, error) {
	return u.decide(ctx, loanID, events.TopicLoanRejected, func(l *domain.Loan) error {
		return l.Reject()
	})
}

func (in ApproveInput) terms() (domain.ApprovalTerms, error) {
	terms := domain.ApprovalTerms{InterestRate: in.InterestRate}

	set := 0
	for _, present := range []bool{in.TermMonths != nil, in.InstallmentValue != nil, in.PaymentFrequency != nil} {
		if present {
			set++
		}
	}
	switch set {
	case 0:
		return terms, nil
	case 3:
	default:
		return terms, fmt.Errorf("%w: term_months, installment_value and payment_frequency go together", domain.ErrInvalidTerms)
	}

	freq, err := domain.ParseFrequency(*in.PaymentFrequency)
	if err != nil {
		return terms, err
	}
	terms.Installment = &domain.InstallmentTerms{
		TermMonths: *in.TermMonths,
		Value:      *in.InstallmentValue,
		Frequency:  freq,
	}
	return terms, nil
}

// decide applies an approve/reject transition under the loan row lock.
func (u *Usecase) decide(ctx context.Context, loanID, topic string, transition func(*domain.Loan) error) (*LoanDTO, error) {
	if u.uow == nil {
		return nil, errors.New("loan: unit of work not configured")
	}

	var after domain.Loan
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		if err := transition(l); err != nil {
			return err
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		after = *l
		return nil
	})
	if err != nil {
		return nil, notFound(err, loanID)
	}

	u.transitioned(ctx, topic, after)
	dto := ToDTO(after)
	return &dto, nil
}

func (u *Usecase) transitioned(ctx context.Context, topic string, l domain.Loan) {
	u.metrics.LoanTransitioned(string(l.Status))
	events.Emit(ctx, u.events, topic, l.LoanID, events.LoanEvent{
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

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, notFound(err, loanID)
	}
	ps, err := u.payments.ListByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	dto := ToDTO(*l)
	dto.Payments = paymentUC.ToDTOs(ps)
	return &dto, nil
}

// ListByUser returns a user's loans newest first, each with its payments.
func (u *Usecase) ListByUser(ctx context.Context, userID string) ([]LoanDTO, error) {
	ls, err := u.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.withPayments(ctx, ls)
}

func (u *Usecase) ListAll(ctx context.Context) ([]LoanDTO, error) {
	ls, err := u.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return u.withPayments(ctx, ls)
}

func (u *Usecase) withPayments(ctx context.Context, ls []domain.Loan) ([]LoanDTO, error) {
	byLoan, err := PaymentsByLoan(ctx, u.payments, ls)
	if err != nil {
		return nil, err
	}
	out := make([]LoanDTO, 0, len(ls))
	for _, l := range ls {
		dto := ToDTO(l)
		dto.Payments = paymentUC.ToDTOs(byLoan[l.LoanID])
		out = append(out, dto)
	}
	return out, nil
}

// PaymentsByLoan loads the payments of ls in one query, grouped by loan id.
func PaymentsByLoan(ctx context.Context, repo payment.Repository, ls []domain.Loan) (map[string][]payment.Payment, error) {
	ids := make([]string, 0, len(ls))
	for _, l := range ls {
		ids = append(ids, l.LoanID)
	}
	ps, err := repo.ListByLoanIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]payment.Payment, len(ls))
	for _, p := range ps {
		out[p.LoanID] = append(out[p.LoanID], p)
	}
	return out, nil
}

// ListPending pages through loans awaiting a decision, with borrower profiles.
// page is 1-based; out of range values fall back to defaults.
func (u *Usecase) ListPending(ctx context.Context, page, limit int) (*PendingPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	ls, total, err := u.repo.ListPending(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	profiles := map[string]user.Profile{}
	items := make([]PendingLoanDTO, 0, len(ls))
	for _, l := range ls {
		p, ok := profiles[l.UserID]
		if !ok {
			p = u.profileOrPlaceholder(ctx, l.UserID)
			profiles[l.UserID] = p
		}
		items = append(items, PendingLoanDTO{LoanDTO: ToDTO(l), User: p})
	}

	return &PendingPage{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}, nil
}

func (u *Usecase) profileOrPlaceholder(ctx context.Context, userID string) user.Profile {
	p, err := u.users.GetProfile(ctx, userID)
	if err != nil {
		log.Printf("loan: profile for %s unavailable, using placeholder: %v", userID, err)
		return user.PlaceholderProfile(userID)
	}
	return *p
}

// SearchPendingByDocument finds the pending loans of the user holding documentNumber.
func (u *Usecase) SearchPendingByDocument(ctx context.Context, documentNumber string) ([]PendingLoanDTO, error) {
	p, err := u.users.GetProfileByDocument(ctx, documentNumber)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, fmt.Errorf("%w: no user with document %s", domain.ErrNotFound, documentNumber)
		}
		return nil, err
	}

	ls, err := u.repo.ListPendingByUserID(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	out := make([]PendingLoanDTO, 0, len(ls))
	for _, l := range ls {
		out = append(out, PendingLoanDTO{LoanDTO: ToDTO(l), User: *p})
	}
	return out, nil
}

func notFound(err error, loanID string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: loan %s", domain.ErrNotFound, loanID)
	}
	return err
}
