package loan

import "context"

type ListFilter struct {
	// Internal purchase id; zero means no filter.
	PurchaseID uint64
	IsActive   *bool
}

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByID(ctx context.Context, id uint64) (*Loan, error)
	GetByPublicID(ctx context.Context, loanID string) (*Loan, error)
	// GetByPublicIDForUpdate locks the loan row for the current transaction.
	GetByPublicIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	List(ctx context.Context, f ListFilter) ([]Loan, error)
	Save(ctx context.Context, l *Loan) error
	Delete(ctx context.Context, l *Loan) error
}
