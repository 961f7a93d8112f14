package payment

import (
	"context"
	"time"
)

type ListFilter struct {
	// Internal ids; zero means no filter.
	InvoiceID   uint64
	SourceID    uint64
	PaymentMode string
	FromDate    *time.Time
	ToDate      *time.Time
}

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetByPublicID(ctx context.Context, paymentID string) (*Payment, error)
	List(ctx context.Context, f ListFilter) ([]Payment, error)
	ListByInvoice(ctx context.Context, invoiceID uint64) ([]Payment, error)
	ListBySource(ctx context.Context, sourceID uint64) ([]Payment, error)
	// ListByPurchase returns all payments whose invoice belongs to the purchase.
	ListByPurchase(ctx context.Context, purchaseID uint64) ([]Payment, error)
	Save(ctx context.Context, p *Payment) error
	Delete(ctx context.Context, p *Payment) error
	CountBySource(ctx context.Context, sourceID uint64) (int64, error)
}
