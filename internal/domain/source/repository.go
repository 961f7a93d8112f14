package source

import "context"

type Repository interface {
	Create(ctx context.Context, s *Source) error
	GetByPublicID(ctx context.Context, sourceID string) (*Source, error)
	GetByLoan(ctx context.Context, loanID uint64) (*Source, error)
	List(ctx context.Context) ([]Source, error)
	Save(ctx context.Context, s *Source) error
	Delete(ctx context.Context, s *Source) error
}
