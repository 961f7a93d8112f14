package loanmock

import (
	"context"

	domain "propledger-backend/internal/domain/loan"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                 func(ctx context.Context, l *domain.Loan) error
	GetByIDFn                func(ctx context.Context, id uint64) (*domain.Loan, error)
	GetByPublicIDFn          func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByPublicIDForUpdateFn func(ctx context.Context, loanID string) (*domain.Loan, error)
	ListFn                   func(ctx context.Context, f domain.ListFilter) ([]domain.Loan, error)
	SaveFn                   func(ctx context.Context, l *domain.Loan) error
	DeleteFn                 func(ctx context.Context, l *domain.Loan) error
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}
func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Loan, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}
func (m *Repo) GetByPublicID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByPublicIDFn != nil {
		return m.GetByPublicIDFn(ctx, loanID)
	}
	return nil, context.Canceled
}
func (m *Repo) GetByPublicIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByPublicIDForUpdateFn != nil {
		return m.GetByPublicIDForUpdateFn(ctx, loanID)
	}
	return nil, context.Canceled
}
func (m *Repo) List(ctx context.Context, f domain.ListFilter) ([]domain.Loan, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, nil
}
func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}
func (m *Repo) Delete(ctx context.Context, l *domain.Loan) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, l)
	}
	return nil
}
