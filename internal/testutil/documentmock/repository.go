package documentmock

import (
	"context"

	domain "propledger-backend/internal/domain/document"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn        func(ctx context.Context, d *domain.Document) error
	GetByPublicIDFn func(ctx context.Context, documentID string) (*domain.Document, error)
	ListFn          func(ctx context.Context, f domain.ListFilter) ([]domain.Document, error)
	SaveFn          func(ctx context.Context, d *domain.Document) error
	DeleteFn        func(ctx context.Context, d *domain.Document) error
}

func (m *Repo) Create(ctx context.Context, d *domain.Document) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, d)
	}
	return nil
}
func (m *Repo) GetByPublicID(ctx context.Context, documentID string) (*domain.Document, error) {
	if m.GetByPublicIDFn != nil {
		return m.GetByPublicIDFn(ctx, documentID)
	}
	return nil, context.Canceled
}
func (m *Repo) List(ctx context.Context, f domain.ListFilter) ([]domain.Document, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, nil
}
func (m *Repo) Save(ctx context.Context, d *domain.Document) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, d)
	}
	return nil
}
func (m *Repo) Delete(ctx context.Context, d *domain.Document) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, d)
	}
	return nil
}
