package payment

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"propledger-backend/internal/domain/invoice"
	"propledger-backend/internal/domain/source"
)

var (
	ErrNotFound              = errors.New("payment not found")
	ErrNegativeAmount        = errors.New("payment amount must not be negative")
	ErrExceedsInvoiceBalance = errors.New("payment amount exceeds the invoice's remaining balance")
	ErrExceedsDisbursement   = errors.New("payment amount exceeds the loan's undrawn disbursement")
)

type Payment struct {
	ID        uint64 `gorm:"primaryKey;column:id" json:"-"`
	PaymentID string `gorm:"column:payment_public_id;type:char(32);not null;uniqueIndex:ux_payments_payment_public_id" json:"payment_id"`

	// FK to invoices.id (numeric).
	InvoiceID uint64           `gorm:"column:invoice_id;not null;index:idx_payments_invoice" json:"-"`
	Invoice   *invoice.Invoice `gorm:"foreignKey:InvoiceID" json:"-"`

	// FK to payment_sources.id (numeric).
	SourceID uint64         `gorm:"column:source_id;not null;index:idx_payments_source" json:"-"`
	Source   *source.Source `gorm:"foreignKey:SourceID" json:"-"`

	PaymentDate time.Time       `gorm:"column:payment_date;type:date;not null" json:"-"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`

	PaymentMode          string `gorm:"size:32;not null" json:"payment_mode"`
	TransactionReference string `gorm:"size:255" json:"transaction_reference"`

	ReceiptDate   *time.Time `gorm:"column:receipt_date;type:date" json:"-"`
	ReceiptNumber string     `gorm:"size:64" json:"receipt_number"`

	Notes string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Payment) TableName() string { return "payments" }
