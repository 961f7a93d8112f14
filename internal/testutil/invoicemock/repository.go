package invoicemock

import (
	"context"

	"github.com/shopspring/decimal"

	domain "propledger-backend/internal/domain/invoice"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                 func(ctx context.Context, i *domain.Invoice) error
	GetByPublicIDFn          func(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	GetByPublicIDForUpdateFn func(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	ListFn                   func(ctx context.Context, f domain.ListFilter) ([]domain.Invoice, error)
	ListByPurchaseFn         func(ctx context.Context, purchaseID uint64) ([]domain.Invoice, error)
	SumAmountByPurchaseFn    func(ctx context.Context, purchaseID, excludeID uint64) (decimal.Decimal, error)
	SaveFn                   func(ctx context.Context, i *domain.Invoice) error
	DeleteFn                 func(ctx context.Context, i *domain.Invoice) error
}

func (m *Repo) Create(ctx context.Context, i *domain.Invoice) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, i)
	}
	return nil
}
func (m *Repo) GetByPublicID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	if m.GetByPublicIDFn != nil {
		return m.GetByPublicIDFn(ctx, invoiceID)
	}
	return nil, context.Canceled
}
func (m *Repo) GetByPublicIDForUpdate(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	if m.GetByPublicIDForUpdateFn != nil {
		return m.GetByPublicIDForUpdateFn(ctx, invoiceID)
	}
	return nil, context.Canceled
}
func (m *Repo) List(ctx context.Context, f domain.ListFilter) ([]domain.Invoice, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, nil
}
func (m *Repo) ListByPurchase(ctx context.Context, purchaseID uint64) ([]domain.Invoice, error) {
	if m.ListByPurchaseFn != nil {
		return m.ListByPurchaseFn(ctx, purchaseID)
	}
	return nil, nil
}
func (m *Repo) SumAmountByPurchase(ctx context.Context, purchaseID, excludeID uint64) (decimal.Decimal, error) {
	if m.SumAmountByPurchaseFn != nil {
		return m.SumAmountByPurchaseFn(ctx, purchaseID, excludeID)
	}
	return decimal.Zero, nil
}
func (m *Repo) Save(ctx context.Context, i *domain.Invoice) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, i)
	}
	return nil
}
func (m *Repo) Delete(ctx context.Context, i *domain.Invoice) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, i)
	}
	return nil
}
