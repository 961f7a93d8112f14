package uow

import (
	"context"

	"propledger-backend/internal/domain/document"
	"propledger-backend/internal/domain/invoice"
	"propledger-backend/internal/domain/loan"
	"propledger-backend/internal/domain/payment"
	"propledger-backend/internal/domain/property"
	"propledger-backend/internal/domain/purchase"
	"propledger-backend/internal/domain/repayment"
	"propledger-backend/internal/domain/source"
)

type Repos struct {
	Properties property.Repository
	Purchases  purchase.Repository
	Loans      loan.Repository
	Repayments repayment.Repository
	Invoices   invoice.Repository
	Payments   payment.Repository
	Sources    source.Repository
	Documents  document.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the invoice row first, then pass it in; every
	// payment mutation recomputes the invoice aggregates under this lock
	WithinInvoiceTx(ctx context.Context, invoiceID string, fn func(r Repos, inv *invoice.Invoice) error) error
	// same shape for repayment mutations against a loan
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
