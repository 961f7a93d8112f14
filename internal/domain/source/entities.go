package source

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("payment source not found")
	ErrInUse           = errors.New("payment source is referenced by payments or repayments")
	ErrUnknownType     = errors.New("unknown payment source type")
	ErrLoanRefRequired = errors.New("loan-type source requires a loan reference")
)

type Type string

const (
	TypeBankAccount   Type = "bank_account"
	TypeLoan          Type = "loan"
	TypeCreditCard    Type = "credit_card"
	TypeDigitalWallet Type = "digital_wallet"
	TypeCash          Type = "cash"
)

// Detail carries the fields that only make sense for one source type.
// Exactly one of the groups is populated, selected by Source.SourceType.
type Detail struct {
	// bank_account
	BankName      string `gorm:"size:255" json:"bank_name,omitempty"`
	AccountNumber string `gorm:"size:64" json:"account_number,omitempty"` // stored masked
	IFSCCode      string `gorm:"column:ifsc_code;size:16" json:"ifsc_code,omitempty"`
	Branch        string `gorm:"size:255" json:"branch,omitempty"`

	// loan
	LoanID uint64 `gorm:"column:loan_id;index:idx_payment_sources_loan" json:"-"`
	Lender string `gorm:"size:255" json:"lender,omitempty"`

	// credit_card
	CardNumber string `gorm:"size:32" json:"card_number,omitempty"` // stored masked
	CardExpiry string `gorm:"size:8" json:"card_expiry,omitempty"`

	// digital_wallet
	WalletProvider   string `gorm:"size:64" json:"wallet_provider,omitempty"`
	WalletIdentifier string `gorm:"size:255" json:"wallet_identifier,omitempty"`
}

type Source struct {
	ID       uint64 `gorm:"primaryKey;column:id" json:"-"`
	SourceID string `gorm:"column:source_id;type:char(32);not null;uniqueIndex:ux_payment_sources_source_id" json:"source_id"`

	Name       string `gorm:"size:255;not null" json:"name"`
	SourceType Type   `gorm:"column:source_type;size:32;not null;index:idx_payment_sources_type" json:"source_type"`

	Description string `gorm:"type:text" json:"description"`
	IsActive    bool   `gorm:"column:is_active;default:true" json:"is_active"`

	Detail Detail `gorm:"embedded" json:"detail"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Source) TableName() string { return "payment_sources" }

// Validate enforces the tagged-variant shape: the type must be known and
// the matching detail group filled in; fields from other groups are dropped.
func (s *Source) Validate() error {
	switch s.SourceType {
	case TypeBankAccount:
		s.Detail = Detail{
			BankName:      s.Detail.BankName,
			AccountNumber: s.Detail.AccountNumber,
			IFSCCode:      s.Detail.IFSCCode,
			Branch:        s.Detail.Branch,
		}
	case TypeLoan:
		if s.Detail.LoanID == 0 {
			return ErrLoanRefRequired
		}
		s.Detail = Detail{LoanID: s.Detail.LoanID, Lender: s.Detail.Lender}
	case TypeCreditCard:
		s.Detail = Detail{CardNumber: s.Detail.CardNumber, CardExpiry: s.Detail.CardExpiry}
	case TypeDigitalWallet:
		s.Detail = Detail{WalletProvider: s.Detail.WalletProvider, WalletIdentifier: s.Detail.WalletIdentifier}
	case TypeCash:
		s.Detail = Detail{}
	default:
		return ErrUnknownType
	}
	return nil
}

// IsLoan reports whether payments drawn from this source count against a
// loan's disbursement rather than as direct builder payments.
func (s *Source) IsLoan() bool { return s.SourceType == TypeLoan }
