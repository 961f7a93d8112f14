package propertymock

import (
	"context"

	domain "propledger-backend/internal/domain/property"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Fill in the function fields a test needs; unfilled getters fail.
type Repo struct {
	CreateFn        func(ctx context.Context, p *domain.Property) error
	GetByPublicIDFn func(ctx context.Context, propertyID string) (*domain.Property, error)
	ListFn          func(ctx context.Context) ([]domain.Property, error)
	SaveFn          func(ctx context.Context, p *domain.Property) error
	DeleteFn        func(ctx context.Context, p *domain.Property) error
}

func (m *Repo) Create(ctx context.Context, p *domain.Property) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}
func (m *Repo) GetByPublicID(ctx context.Context, propertyID string) (*domain.Property, error) {
	if m.GetByPublicIDFn != nil {
		return m.GetByPublicIDFn(ctx, propertyID)
	}
	return nil, context.Canceled
}
func (m *Repo) List(ctx context.Context) ([]domain.Property, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}
func (m *Repo) Save(ctx context.Context, p *domain.Property) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}
func (m *Repo) Delete(ctx context.Context, p *domain.Property) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, p)
	}
	return nil
}
