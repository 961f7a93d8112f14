package purchase

import "context"

type ListFilter struct {
	// Internal property id; zero means no filter.
	PropertyID uint64
}

type Repository interface {
	Create(ctx context.Context, p *Purchase) error
	GetByPublicID(ctx context.Context, purchaseID string) (*Purchase, error)
	List(ctx context.Context, f ListFilter) ([]Purchase, error)
	Save(ctx context.Context, p *Purchase) error
	Delete(ctx context.Context, p *Purchase) error
	CountByProperty(ctx context.Context, propertyID uint64) (int64, error)
}
