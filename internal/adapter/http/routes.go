package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Routes struct {
	Health    *Handler
	Loans     *LoanHandler
	Payments  *PaymentHandler
	Balances  *BalanceHandler
	LoanTypes *LoanTypeHandler

	// Metrics serves /metrics when set.
	Metrics http.Handler
	// Mutating wraps the state-changing routes, e.g. idempotency. Optional.
	Mutating []echo.MiddlewareFunc
}

func RegisterRoutes(e *echo.Echo, r Routes) {
	e.GET("/health", r.Health.Health)
	if r.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(r.Metrics))
	}
	e.GET("/loan-types", r.LoanTypes.List)

	g := e.Group("/loans")

	// static segments first so they never read as a loan id
	g.GET("", r.Loans.ListAll)
	g.GET("/pending", r.Loans.ListPending)
	g.GET("/pending/search/:document_number", r.Loans.SearchPendingByDocument)
	g.GET("/balance/:user_id", r.Balances.GetBalance)
	g.GET("/my/:user_id", r.Loans.ListByUser)
	g.POST("/request", r.Loans.RequestLoan, r.Mutating...)

	g.PUT("/:loan_id/approve", r.Loans.ApproveLoan, r.Mutating...)
	g.PUT("/:loan_id/reject", r.Loans.RejectLoan, r.Mutating...)
	g.POST("/:loan_id/payments", r.Payments.MakePayment, r.Mutating...)
	g.POST("/:loan_id/payments/manual", r.Payments.MakeManualPayment, r.Mutating...)
	g.GET("/:loan_id/payments", r.Payments.ListByLoan)
	g.GET("/:loan_id", r.Loans.GetLoan)
}
