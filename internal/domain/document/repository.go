package document

import "context"

type ListFilter struct {
	EntityKind EntityKind
	EntityID   string
}

type Repository interface {
	Create(ctx context.Context, d *Document) error
	GetByPublicID(ctx context.Context, documentID string) (*Document, error)
	List(ctx context.Context, f ListFilter) ([]Document, error)
	Save(ctx context.Context, d *Document) error
	Delete(ctx context.Context, d *Document) error
}
