package repayment

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"propledger-backend/internal/domain/loan"
	"propledger-backend/internal/domain/source"
)

var (
	ErrNotFound         = errors.New("loan repayment not found")
	ErrNegativeAmount   = errors.New("repayment amounts must not be negative")
	ErrExceedsPrincipal = errors.New("principal amount exceeds the loan's outstanding principal")
)

type Repayment struct {
	ID          uint64 `gorm:"primaryKey;column:id" json:"-"`
	RepaymentID string `gorm:"column:repayment_id;type:char(32);not null;uniqueIndex:ux_loan_repayments_repayment_id" json:"repayment_id"`

	// FK to loans.id (numeric).
	LoanID uint64     `gorm:"column:loan_id;not null;index:idx_loan_repayments_loan" json:"-"`
	Loan   *loan.Loan `gorm:"foreignKey:LoanID" json:"-"`

	// FK to payment_sources.id (numeric).
	SourceID uint64         `gorm:"column:source_id;not null;index:idx_loan_repayments_source" json:"-"`
	Source   *source.Source `gorm:"foreignKey:SourceID" json:"-"`

	PaymentDate time.Time `gorm:"column:payment_date;type:date;not null" json:"-"`

	PrincipalAmount decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"principal_amount"`
	InterestAmount  decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"interest_amount"`
	OtherFees       decimal.Decimal `gorm:"type:decimal(15,2)" json:"other_fees"`
	Penalties       decimal.Decimal `gorm:"type:decimal(15,2)" json:"penalties"`
	// Derived: always recomputed server-side as the sum of the four amount
	// fields; any client-supplied value is ignored.
	TotalPayment decimal.Decimal `gorm:"column:total_payment;type:decimal(15,2);not null" json:"total_payment"`

	PaymentMode          string `gorm:"size:32;not null" json:"payment_mode"`
	TransactionReference string `gorm:"size:255" json:"transaction_reference"`
	Notes                string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Repayment) TableName() string { return "loan_repayments" }

// ApplyTotal recomputes total_payment from the four amount fields.
func (r *Repayment) ApplyTotal() error {
	for _, d := range []decimal.Decimal{r.PrincipalAmount, r.InterestAmount, r.OtherFees, r.Penalties} {
		if d.IsNegative() {
			return ErrNegativeAmount
		}
	}
	r.TotalPayment = r.PrincipalAmount.Add(r.InterestAmount).Add(r.OtherFees).Add(r.Penalties)
	return nil
}
