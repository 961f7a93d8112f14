package mysql

import (
	"context"

	"gorm.io/gorm"

	purchaseDomain "propledger-backend/internal/domain/purchase"
)

type PurchaseRepository struct{ db *gorm.DB }

func NewPurchaseRepository(db *gorm.DB) *PurchaseRepository { return &PurchaseRepository{db: db} }

func (r *PurchaseRepository) Create(ctx context.Context, p *purchaseDomain.Purchase) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PurchaseRepository) Save(ctx context.Context, p *purchaseDomain.Purchase) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PurchaseRepository) Delete(ctx context.Context, p *purchaseDomain.Purchase) error {
	return r.db.WithContext(ctx).Delete(p).Error
}

func (r *PurchaseRepository) GetByPublicID(ctx context.Context, purchaseID string) (*purchaseDomain.Purchase, error) {
	var out purchaseDomain.Purchase
	res := r.db.WithContext(ctx).Preload("Property").Where("purchase_id = ?", purchaseID).First(&out)
	return &out, res.Error
}

func (r *PurchaseRepository) List(ctx context.Context, f purchaseDomain.ListFilter) ([]purchaseDomain.Purchase, error) {
	q := r.db.WithContext(ctx).Preload("Property")
	if f.PropertyID != 0 {
		q = q.Where("property_id = ?", f.PropertyID)
	}
	var out []purchaseDomain.Purchase
	res := q.Order("purchase_date DESC, id DESC").Find(&out)
	return out, res.Error
}

func (r *PurchaseRepository) CountByProperty(ctx context.Context, propertyID uint64) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&purchaseDomain.Purchase{}).
		Where("property_id = ?", propertyID).Count(&n)
	return n, res.Error
}
