package mysql

import (
	"context"

	"gorm.io/gorm"

	paymentDomain "propledger-backend/internal/domain/payment"
)

type PaymentRepository struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) *PaymentRepository { return &PaymentRepository{db: db} }

func (r *PaymentRepository) Create(ctx context.Context, p *paymentDomain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) Save(ctx context.Context, p *paymentDomain.Payment) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PaymentRepository) Delete(ctx context.Context, p *paymentDomain.Payment) error {
	return r.db.WithContext(ctx).Delete(p).Error
}

func (r *PaymentRepository) GetByPublicID(ctx context.Context, paymentID string) (*paymentDomain.Payment, error) {
	var out paymentDomain.Payment
	res := r.db.WithContext(ctx).Preload("Invoice").Preload("Source").
		Where("payment_public_id = ?", paymentID).First(&out)
	return &out, res.Error
}

func (r *PaymentRepository) List(ctx context.Context, f paymentDomain.ListFilter) ([]paymentDomain.Payment, error) {
	q := r.db.WithContext(ctx).Preload("Invoice").Preload("Source")
	if f.InvoiceID != 0 {
		q = q.Where("invoice_id = ?", f.InvoiceID)
	}
	if f.SourceID != 0 {
		q = q.Where("source_id = ?", f.SourceID)
	}
	if f.PaymentMode != "" {
		q = q.Where("payment_mode = ?", f.PaymentMode)
	}
	if f.FromDate != nil {
		q = q.Where("payment_date >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		q = q.Where("payment_date <= ?", *f.ToDate)
	}
	var out []paymentDomain.Payment
	res := q.Order("payment_date DESC, id DESC").Find(&out)
	return out, res.Error
}

func (r *PaymentRepository) ListByInvoice(ctx context.Context, invoiceID uint64) ([]paymentDomain.Payment, error) {
	var out []paymentDomain.Payment
	res := r.db.WithContext(ctx).Where("invoice_id = ?", invoiceID).
		Order("payment_date, id").Find(&out)
	return out, res.Error
}

func (r *PaymentRepository) ListBySource(ctx context.Context, sourceID uint64) ([]paymentDomain.Payment, error) {
	var out []paymentDomain.Payment
	res := r.db.WithContext(ctx).Where("source_id = ?", sourceID).
		Order("payment_date, id").Find(&out)
	return out, res.Error
}

func (r *PaymentRepository) ListByPurchase(ctx context.Context, purchaseID uint64) ([]paymentDomain.Payment, error) {
	var out []paymentDomain.Payment
	res := r.db.WithContext(ctx).Preload("Source").
		Joins("JOIN invoices ON invoices.id = payments.invoice_id").
		Where("invoices.purchase_id = ?", purchaseID).
		Order("payments.payment_date, payments.id").
		Find(&out)
	return out, res.Error
}

func (r *PaymentRepository) CountBySource(ctx context.Context, sourceID uint64) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&paymentDomain.Payment{}).
		Where("source_id = ?", sourceID).Count(&n)
	return n, res.Error
}
