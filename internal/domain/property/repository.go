package property

import "context"

type Repository interface {
	Create(ctx context.Context, p *Property) error
	GetByPublicID(ctx context.Context, propertyID string) (*Property, error)
	List(ctx context.Context) ([]Property, error)
	Save(ctx context.Context, p *Property) error
	Delete(ctx context.Context, p *Property) error
}
