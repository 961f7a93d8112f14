package mysql

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	invoiceDomain "propledger-backend/internal/domain/invoice"
)

type InvoiceRepository struct{ db *gorm.DB }

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository { return &InvoiceRepository{db: db} }

func (r *InvoiceRepository) Create(ctx context.Context, i *invoiceDomain.Invoice) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *InvoiceRepository) Save(ctx context.Context, i *invoiceDomain.Invoice) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *InvoiceRepository) Delete(ctx context.Context, i *invoiceDomain.Invoice) error {
	return r.db.WithContext(ctx).Delete(i).Error
}

func (r *InvoiceRepository) GetByPublicID(ctx context.Context, invoiceID string) (*invoiceDomain.Invoice, error) {
	var out invoiceDomain.Invoice
	res := r.db.WithContext(ctx).Preload("Purchase").
		Where("invoice_public_id = ?", invoiceID).First(&out)
	return &out, res.Error
}

func (r *InvoiceRepository) GetByPublicIDForUpdate(ctx context.Context, invoiceID string) (*invoiceDomain.Invoice, error) {
	q := r.db.WithContext(ctx)
	// sqlite (used in tests) has no SELECT ... FOR UPDATE
	if q.Dialector.Name() == "mysql" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var out invoiceDomain.Invoice
	res := q.Where("invoice_public_id = ?", invoiceID).First(&out)
	return &out, res.Error
}

func (r *InvoiceRepository) List(ctx context.Context, f invoiceDomain.ListFilter) ([]invoiceDomain.Invoice, error) {
	q := r.db.WithContext(ctx).Preload("Purchase")
	if f.PurchaseID != 0 {
		q = q.Where("purchase_id = ?", f.PurchaseID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Milestone != "" {
		q = q.Where("milestone = ?", f.Milestone)
	}
	if f.FromDate != nil {
		q = q.Where("invoice_date >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		q = q.Where("invoice_date <= ?", *f.ToDate)
	}
	var out []invoiceDomain.Invoice
	res := q.Order("invoice_date DESC, id DESC").Find(&out)
	return out, res.Error
}

func (r *InvoiceRepository) ListByPurchase(ctx context.Context, purchaseID uint64) ([]invoiceDomain.Invoice, error) {
	var out []invoiceDomain.Invoice
	res := r.db.WithContext(ctx).Where("purchase_id = ?", purchaseID).
		Order("invoice_date, id").Find(&out)
	return out, res.Error
}

func (r *InvoiceRepository) SumAmountByPurchase(ctx context.Context, purchaseID, excludeID uint64) (decimal.Decimal, error) {
	q := r.db.WithContext(ctx).Model(&invoiceDomain.Invoice{}).
		Where("purchase_id = ?", purchaseID)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var total sql.NullString
	if err := q.Select("COALESCE(SUM(amount), 0)").Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(total.String)
}
