package paymentmock

import (
	"context"

	domain "propledger-backend/internal/domain/payment"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn         func(ctx context.Context, p *domain.Payment) error
	GetByPublicIDFn  func(ctx context.Context, paymentID string) (*domain.Payment, error)
	ListFn           func(ctx context.Context, f domain.ListFilter) ([]domain.Payment, error)
	ListByInvoiceFn  func(ctx context.Context, invoiceID uint64) ([]domain.Payment, error)
	ListBySourceFn   func(ctx context.Context, sourceID uint64) ([]domain.Payment, error)
	ListByPurchaseFn func(ctx context.Context, purchaseID uint64) ([]domain.Payment, error)
	SaveFn           func(ctx context.Context, p *domain.Payment) error
	DeleteFn         func(ctx context.Context, p *domain.Payment) error
	CountBySourceFn  func(ctx context.Context, sourceID uint64) (int64, error)
}

func (m *Repo) Create(ctx context.Context, p *domain.Payment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}
func (m *Repo) GetByPublicID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	if m.GetByPublicIDFn != nil {
		return m.GetByPublicIDFn(ctx, paymentID)
	}
	return nil, context.Canceled
}
func (m *Repo) List(ctx context.Context, f domain.ListFilter) ([]domain.Payment, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, nil
}
func (m *Repo) ListByInvoice(ctx context.Context, invoiceID uint64) ([]domain.Payment, error) {
	if m.ListByInvoiceFn != nil {
		return m.ListByInvoiceFn(ctx, invoiceID)
	}
	return nil, nil
}
func (m *Repo) ListBySource(ctx context.Context, sourceID uint64) ([]domain.Payment, error) {
	if m.ListBySourceFn != nil {
		return m.ListBySourceFn(ctx, sourceID)
	}
	return nil, nil
}
func (m *Repo) ListByPurchase(ctx context.Context, purchaseID uint64) ([]domain.Payment, error) {
	if m.ListByPurchaseFn != nil {
		return m.ListByPurchaseFn(ctx, purchaseID)
	}
	return nil, nil
}
func (m *Repo) Save(ctx context.Context, p *domain.Payment) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}
func (m *Repo) Delete(ctx context.Context, p *domain.Payment) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, p)
	}
	return nil
}
func (m *Repo) CountBySource(ctx context.Context, sourceID uint64) (int64, error) {
	if m.CountBySourceFn != nil {
		return m.CountBySourceFn(ctx, sourceID)
	}
	return 0, nil
}
