package loan

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"propledger-backend/internal/domain/purchase"
)

var (
	ErrNotFound                 = errors.New("loan not found")
	ErrNegativeAmount           = errors.New("loan amounts must not be negative")
	ErrSanctionExceedsCost      = errors.New("sanction amount exceeds purchase total cost")
	ErrDisbursedExceedsInvoiced = errors.New("disbursed amount exceeds total invoiced amount for the purchase")
	ErrSourceHasPayments        = errors.New("loan payment source has payments attached")
	ErrHasRepayments            = errors.New("loan has repayments recorded")
)

type Loan struct {
	ID     uint64 `gorm:"primaryKey;column:id" json:"-"`
	LoanID string `gorm:"column:loan_id;type:char(32);not null;uniqueIndex:ux_loans_loan_id" json:"loan_id"`

	// FK to purchases.id (numeric).
	PurchaseID uint64             `gorm:"column:purchase_id;not null;index:idx_loans_purchase" json:"-"`
	Purchase   *purchase.Purchase `gorm:"foreignKey:PurchaseID" json:"-"`

	Name        string `gorm:"size:255;not null" json:"name"`
	Institution string `gorm:"size:255;not null" json:"institution"`
	Agent       string `gorm:"size:255" json:"agent"`

	SanctionDate time.Time `gorm:"column:sanction_date;type:date;not null" json:"-"`

	SanctionAmount       decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"sanction_amount"`
	TotalDisbursedAmount decimal.Decimal `gorm:"column:total_disbursed_amount;type:decimal(15,2)" json:"total_disbursed_amount"`
	ProcessingFee        decimal.Decimal `gorm:"type:decimal(15,2)" json:"processing_fee"`
	OtherCharges         decimal.Decimal `gorm:"type:decimal(15,2)" json:"other_charges"`
	LoanSanctionCharges  decimal.Decimal `gorm:"column:loan_sanction_charges;type:decimal(15,2)" json:"loan_sanction_charges"`

	InterestRate decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"interest_rate"`
	TenureMonths int             `gorm:"column:tenure_months;not null" json:"tenure_months"`

	IsActive bool `gorm:"column:is_active;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }
