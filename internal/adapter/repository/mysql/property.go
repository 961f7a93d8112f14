package mysql

import (
	"context"

	"gorm.io/gorm"

	propertyDomain "propledger-backend/internal/domain/property"
)

type PropertyRepository struct{ db *gorm.DB }

func NewPropertyRepository(db *gorm.DB) *PropertyRepository { return &PropertyRepository{db: db} }

func (r *PropertyRepository) Create(ctx context.Context, p *propertyDomain.Property) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PropertyRepository) Save(ctx context.Context, p *propertyDomain.Property) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PropertyRepository) Delete(ctx context.Context, p *propertyDomain.Property) error {
	return r.db.WithContext(ctx).Delete(p).Error
}

func (r *PropertyRepository) GetByPublicID(ctx context.Context, propertyID string) (*propertyDomain.Property, error) {
	var out propertyDomain.Property
	res := r.db.WithContext(ctx).Where("property_id = ?", propertyID).First(&out)
	return &out, res.Error
}

func (r *PropertyRepository) List(ctx context.Context) ([]propertyDomain.Property, error) {
	var out []propertyDomain.Property
	res := r.db.WithContext(ctx).Order("id").Find(&out)
	return out, res.Error
}
