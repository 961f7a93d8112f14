package purchasemock

import (
	"context"

	domain "propledger-backend/internal/domain/purchase"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn          func(ctx context.Context, p *domain.Purchase) error
	GetByPublicIDFn   func(ctx context.Context, purchaseID string) (*domain.Purchase, error)
	ListFn            func(ctx context.Context, f domain.ListFilter) ([]domain.Purchase, error)
	SaveFn            func(ctx context.Context, p *domain.Purchase) error
	DeleteFn          func(ctx context.Context, p *domain.Purchase) error
	CountByPropertyFn func(ctx context.Context, propertyID uint64) (int64, error)
}

func (m *Repo) Create(ctx context.Context, p *domain.Purchase) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}
func (m *Repo) GetByPublicID(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	if m.GetByPublicIDFn != nil {
		return m.GetByPublicIDFn(ctx, purchaseID)
	}
	return nil, context.Canceled
}
func (m *Repo) List(ctx context.Context, f domain.ListFilter) ([]domain.Purchase, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, nil
}
func (m *Repo) Save(ctx context.Context, p *domain.Purchase) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}
func (m *Repo) Delete(ctx context.Context, p *domain.Purchase) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, p)
	}
	return nil
}
func (m *Repo) CountByProperty(ctx context.Context, propertyID uint64) (int64, error) {
	if m.CountByPropertyFn != nil {
		return m.CountByPropertyFn(ctx, propertyID)
	}
	return 0, nil
}
