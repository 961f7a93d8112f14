package sourcemock

import (
	"context"

	domain "propledger-backend/internal/domain/source"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn        func(ctx context.Context, s *domain.Source) error
	GetByPublicIDFn func(ctx context.Context, sourceID string) (*domain.Source, error)
	GetByLoanFn     func(ctx context.Context, loanID uint64) (*domain.Source, error)
	ListFn          func(ctx context.Context) ([]domain.Source, error)
	SaveFn          func(ctx context.Context, s *domain.Source) error
	DeleteFn        func(ctx context.Context, s *domain.Source) error
}

func (m *Repo) Create(ctx context.Context, s *domain.Source) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, s)
	}
	return nil
}
func (m *Repo) GetByPublicID(ctx context.Context, sourceID string) (*domain.Source, error) {
	if m.GetByPublicIDFn != nil {
		return m.GetByPublicIDFn(ctx, sourceID)
	}
	return nil, context.Canceled
}
func (m *Repo) GetByLoan(ctx context.Context, loanID uint64) (*domain.Source, error) {
	if m.GetByLoanFn != nil {
		return m.GetByLoanFn(ctx, loanID)
	}
	return nil, context.Canceled
}
func (m *Repo) List(ctx context.Context) ([]domain.Source, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}
func (m *Repo) Save(ctx context.Context, s *domain.Source) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, s)
	}
	return nil
}
func (m *Repo) Delete(ctx context.Context, s *domain.Source) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, s)
	}
	return nil
}
