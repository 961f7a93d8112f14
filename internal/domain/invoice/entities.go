package invoice

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"propledger-backend/internal/domain/purchase"
)

var (
	ErrNotFound               = errors.New("invoice not found")
	ErrNegativeAmount         = errors.New("invoice amount must not be negative")
	ErrCancelled              = errors.New("invoice is cancelled and accepts no further payments")
	ErrDuplicateNumber        = errors.New("invoice number already exists for this purchase")
	ErrExceedsPurchaseBalance = errors.New("invoice amount exceeds the purchase's uninvoiced balance")
	ErrHasPayments            = errors.New("invoice has payments attached")
	ErrStatusNotOverridable   = errors.New("invoice status is derived; only cancellation before any payment may be set")
)

type Status string

const (
	StatusPending       Status = "pending"
	StatusPartiallyPaid Status = "partially_paid"
	StatusPaid          Status = "paid"
	StatusCancelled     Status = "cancelled"
)

type Invoice struct {
	ID        uint64 `gorm:"primaryKey;column:id" json:"-"`
	InvoiceID string `gorm:"column:invoice_public_id;type:char(32);not null;uniqueIndex:ux_invoices_invoice_public_id" json:"invoice_id"`

	// FK to purchases.id (numeric).
	PurchaseID uint64             `gorm:"column:purchase_id;not null;index:idx_invoices_purchase" json:"-"`
	Purchase   *purchase.Purchase `gorm:"foreignKey:PurchaseID" json:"-"`

	// Unique within the purchase, not globally.
	InvoiceNumber string `gorm:"size:64;not null;index:idx_invoices_number" json:"invoice_number"`

	InvoiceDate time.Time  `gorm:"column:invoice_date;type:date;not null" json:"-"`
	DueDate     *time.Time `gorm:"column:due_date;type:date" json:"-"`

	Amount decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	// Derived from the invoice's payments inside every payment mutation.
	PaidAmount decimal.Decimal `gorm:"column:paid_amount;type:decimal(15,2)" json:"paid_amount"`
	Status     Status          `gorm:"size:32;not null;default:'pending';index:idx_invoices_status" json:"status"`

	Milestone   string `gorm:"size:128" json:"milestone"`
	Description string `gorm:"type:text" json:"description"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Invoice) TableName() string { return "invoices" }

// AcceptsPayments reports whether money may still move against the invoice.
// Cancelled is terminal for payments.
func (i *Invoice) AcceptsPayments() bool { return i.Status != StatusCancelled }

// StatusFor derives the reconciliation state from the paid total. Cancelled
// survives only while nothing has been paid; the first payment event forces
// reevaluation through this function.
func StatusFor(amount, paid decimal.Decimal) Status {
	switch {
	case amount.IsPositive() && paid.GreaterThanOrEqual(amount):
		return StatusPaid
	case paid.IsPositive():
		return StatusPartiallyPaid
	default:
		return StatusPending
	}
}
