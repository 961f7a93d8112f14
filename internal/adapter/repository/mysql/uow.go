package mysql

import (
	"context"

	"gorm.io/gorm"

	"propledger-backend/internal/domain/invoice"
	"propledger-backend/internal/domain/loan"
	"propledger-backend/internal/domain/uow"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Properties: &PropertyRepository{db: tx},
		Purchases:  &PurchaseRepository{db: tx},
		Loans:      &LoanRepository{db: tx},
		Repayments: &RepaymentRepository{db: tx},
		Invoices:   &InvoiceRepository{db: tx},
		Payments:   &PaymentRepository{db: tx},
		Sources:    &SourceRepository{db: tx},
		Documents:  &DocumentRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinInvoiceTx(ctx context.Context, invoiceID string, fn func(r uow.Repos, inv *invoice.Invoice) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock the invoice row up-front so the paid_amount/status recompute
		// sees a stable payment set
		inv, err := r.Invoices.GetByPublicIDForUpdate(ctx, invoiceID)
		if err != nil {
			return err
		}
		return fn(r, inv)
	})
}

func (u *GormUoW) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		l, err := r.Loans.GetByPublicIDForUpdate(ctx, loanID)
		if err != nil {
			return err
		}
		return fn(r, l)
	})
}
