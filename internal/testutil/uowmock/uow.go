package uowmock

import (
	"context"
	"errors"

	"propledger-backend/internal/domain/invoice"
	"propledger-backend/internal/domain/loan"
	"propledger-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return
// errUnimplemented.
type UoW struct {
	WithinTxFn        func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinInvoiceTxFn func(ctx context.Context, invoiceID string, fn func(r uow.Repos, inv *invoice.Invoice) error) error
	WithinLoanTxFn    func(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error
}

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}
func (m *UoW) WithinInvoiceTx(ctx context.Context, invoiceID string, fn func(r uow.Repos, inv *invoice.Invoice) error) error {
	if m.WithinInvoiceTxFn != nil {
		return m.WithinInvoiceTxFn(ctx, invoiceID, fn)
	}
	return errUnimplemented
}
func (m *UoW) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error {
	if m.WithinLoanTxFn != nil {
		return m.WithinLoanTxFn(ctx, loanID, fn)
	}
	return errUnimplemented
}

// Passthrough returns a UoW whose WithinTx simply runs the body against
// repos. Invoice and loan scoped variants look the row up via the repos'
// GetByPublicIDForUpdate, mirroring the real implementation.
func Passthrough(repos uow.Repos) *UoW {
	return &UoW{
		WithinTxFn: func(ctx context.Context, fn func(r uow.Repos) error) error {
			return fn(repos)
		},
		WithinInvoiceTxFn: func(ctx context.Context, invoiceID string, fn func(r uow.Repos, inv *invoice.Invoice) error) error {
			iv, err := repos.Invoices.GetByPublicIDForUpdate(ctx, invoiceID)
			if err != nil {
				return err
			}
			return fn(repos, iv)
		},
		WithinLoanTxFn: func(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error {
			l, err := repos.Loans.GetByPublicIDForUpdate(ctx, loanID)
			if err != nil {
				return err
			}
			return fn(repos, l)
		},
	}
}
