package repayment

import (
	"context"
	"time"
)

type ListFilter struct {
	// Internal ids; zero means no filter.
	LoanID   uint64
	SourceID uint64
	FromDate *time.Time
	ToDate   *time.Time
}

type Repository interface {
	Create(ctx context.Context, r *Repayment) error
	GetByPublicID(ctx context.Context, repaymentID string) (*Repayment, error)
	List(ctx context.Context, f ListFilter) ([]Repayment, error)
	ListByLoan(ctx context.Context, loanID uint64) ([]Repayment, error)
	Save(ctx context.Context, r *Repayment) error
	Delete(ctx context.Context, r *Repayment) error
	CountBySource(ctx context.Context, sourceID uint64) (int64, error)
}
