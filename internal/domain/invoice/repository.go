package invoice

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type ListFilter struct {
	// Internal purchase id; zero means no filter.
	PurchaseID uint64
	Status     Status
	Milestone  string
	FromDate   *time.Time
	ToDate     *time.Time
}

type Repository interface {
	Create(ctx context.Context, i *Invoice) error
	GetByPublicID(ctx context.Context, invoiceID string) (*Invoice, error)
	// GetByPublicIDForUpdate locks the invoice row for the current transaction.
	GetByPublicIDForUpdate(ctx context.Context, invoiceID string) (*Invoice, error)
	List(ctx context.Context, f ListFilter) ([]Invoice, error)
	ListByPurchase(ctx context.Context, purchaseID uint64) ([]Invoice, error)
	// SumAmountByPurchase totals invoice amounts under a purchase, optionally
	// excluding one invoice (used when re-validating an update).
	SumAmountByPurchase(ctx context.Context, purchaseID, excludeID uint64) (decimal.Decimal, error)
	Save(ctx context.Context, i *Invoice) error
	Delete(ctx context.Context, i *Invoice) error
}
