package repaymentmock

import (
	"context"

	domain "propledger-backend/internal/domain/repayment"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn        func(ctx context.Context, r *domain.Repayment) error
	GetByPublicIDFn func(ctx context.Context, repaymentID string) (*domain.Repayment, error)
	ListFn          func(ctx context.Context, f domain.ListFilter) ([]domain.Repayment, error)
	ListByLoanFn    func(ctx context.Context, loanID uint64) ([]domain.Repayment, error)
	SaveFn          func(ctx context.Context, r *domain.Repayment) error
	DeleteFn        func(ctx context.Context, r *domain.Repayment) error
	CountBySourceFn func(ctx context.Context, sourceID uint64) (int64, error)
}

func (m *Repo) Create(ctx context.Context, r *domain.Repayment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}
func (m *Repo) GetByPublicID(ctx context.Context, repaymentID string) (*domain.Repayment, error) {
	if m.GetByPublicIDFn != nil {
		return m.GetByPublicIDFn(ctx, repaymentID)
	}
	return nil, context.Canceled
}
func (m *Repo) List(ctx context.Context, f domain.ListFilter) ([]domain.Repayment, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, nil
}
func (m *Repo) ListByLoan(ctx context.Context, loanID uint64) ([]domain.Repayment, error) {
	if m.ListByLoanFn != nil {
		return m.ListByLoanFn(ctx, loanID)
	}
	return nil, nil
}
func (m *Repo) Save(ctx context.Context, r *domain.Repayment) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	return nil
}
func (m *Repo) Delete(ctx context.Context, r *domain.Repayment) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, r)
	}
	return nil
}
func (m *Repo) CountBySource(ctx context.Context, sourceID uint64) (int64, error) {
	if m.CountBySourceFn != nil {
		return m.CountBySourceFn(ctx, sourceID)
	}
	return 0, nil
}
