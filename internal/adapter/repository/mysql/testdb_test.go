package mysql

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- SQLite-friendly schema only for tests (no DECIMAL/CHAR column types) ---
//
// The domain models carry mysql column types in their gorm tags. AutoMigrate
// is run with these shadow structs instead; the repositories still read and
// write through the domain models, which map onto the same tables.

type propertySQLite struct {
	ID             uint64     `gorm:"primaryKey;column:id"`
	PropertyID     string     `gorm:"size:32;column:property_id;uniqueIndex"`
	Name           string     `gorm:"column:name"`
	Address        string     `gorm:"column:address"`
	PropertyType   string     `gorm:"column:property_type"`
	CarpetArea     string     `gorm:"column:carpet_area"`
	ExclusiveArea  string     `gorm:"column:exclusive_area"`
	CommonArea     string     `gorm:"column:common_area"`
	SuperArea      string     `gorm:"column:super_area"`
	FloorNumber    int        `gorm:"column:floor_number"`
	ParkingDetails string     `gorm:"column:parking_details"`
	Developer      string     `gorm:"column:developer"`
	ReraID         string     `gorm:"column:rera_id"`
	InitialRate    string     `gorm:"column:initial_rate"`
	CurrentRate    string     `gorm:"column:current_rate"`
	CurrentPrice   string     `gorm:"column:current_price"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
}

func (propertySQLite) TableName() string { return "properties" }

type purchaseSQLite struct {
	ID               uint64     `gorm:"primaryKey;column:id"`
	PurchaseID       string     `gorm:"size:32;column:purchase_id;uniqueIndex"`
	PropertyID       uint64     `gorm:"column:property_id"`
	PurchaseDate     time.Time  `gorm:"column:purchase_date"`
	RegistrationDate *time.Time `gorm:"column:registration_date"`
	PossessionDate   *time.Time `gorm:"column:possession_date"`
	Seller           string     `gorm:"column:seller"`
	Remarks          string     `gorm:"column:remarks"`
	BaseCost         string     `gorm:"column:base_cost"`
	OtherCharges     string     `gorm:"column:other_charges"`
	IFMS             string     `gorm:"column:ifms"`
	LeaseRent        string     `gorm:"column:lease_rent"`
	AMC              string     `gorm:"column:amc"`
	GST              string     `gorm:"column:gst"`
	PropertyCost     string     `gorm:"column:property_cost"`
	TotalCost        string     `gorm:"column:total_cost"`
	TotalSaleCost    string     `gorm:"column:total_sale_cost"`
	CreatedAt        time.Time  `gorm:"column:created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at"`
}

func (purchaseSQLite) TableName() string { return "purchases" }

type loanSQLite struct {
	ID                   uint64    `gorm:"primaryKey;column:id"`
	LoanID               string    `gorm:"size:32;column:loan_id;uniqueIndex"`
	PurchaseID           uint64    `gorm:"column:purchase_id"`
	Name                 string    `gorm:"column:name"`
	Institution          string    `gorm:"column:institution"`
	Agent                string    `gorm:"column:agent"`
	SanctionDate         time.Time `gorm:"column:sanction_date"`
	SanctionAmount       string    `gorm:"column:sanction_amount"`
	TotalDisbursedAmount string    `gorm:"column:total_disbursed_amount"`
	ProcessingFee        string    `gorm:"column:processing_fee"`
	OtherCharges         string    `gorm:"column:other_charges"`
	LoanSanctionCharges  string    `gorm:"column:loan_sanction_charges"`
	InterestRate         string    `gorm:"column:interest_rate"`
	TenureMonths         int       `gorm:"column:tenure_months"`
	IsActive             bool      `gorm:"column:is_active"`
	CreatedAt            time.Time `gorm:"column:created_at"`
	UpdatedAt            time.Time `gorm:"column:updated_at"`
}

func (loanSQLite) TableName() string { return "loans" }

type repaymentSQLite struct {
	ID                   uint64    `gorm:"primaryKey;column:id"`
	RepaymentID          string    `gorm:"size:32;column:repayment_id;uniqueIndex"`
	LoanID               uint64    `gorm:"column:loan_id"`
	SourceID             uint64    `gorm:"column:source_id"`
	PaymentDate          time.Time `gorm:"column:payment_date"`
	PrincipalAmount      string    `gorm:"column:principal_amount"`
	InterestAmount       string    `gorm:"column:interest_amount"`
	OtherFees            string    `gorm:"column:other_fees"`
	Penalties            string    `gorm:"column:penalties"`
	TotalPayment         string    `gorm:"column:total_payment"`
	PaymentMode          string    `gorm:"column:payment_mode"`
	TransactionReference string    `gorm:"column:transaction_reference"`
	Notes                string    `gorm:"column:notes"`
	CreatedAt            time.Time `gorm:"column:created_at"`
	UpdatedAt            time.Time `gorm:"column:updated_at"`
}

func (repaymentSQLite) TableName() string { return "loan_repayments" }

type invoiceSQLite struct {
	ID            uint64     `gorm:"primaryKey;column:id"`
	InvoiceID     string     `gorm:"size:32;column:invoice_public_id;uniqueIndex"`
	PurchaseID    uint64     `gorm:"column:purchase_id"`
	InvoiceNumber string     `gorm:"column:invoice_number"`
	InvoiceDate   time.Time  `gorm:"column:invoice_date"`
	DueDate       *time.Time `gorm:"column:due_date"`
	Amount        string     `gorm:"column:amount"`
	PaidAmount    string     `gorm:"column:paid_amount"`
	Status        string     `gorm:"column:status"`
	Milestone     string     `gorm:"column:milestone"`
	Description   string     `gorm:"column:description"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (invoiceSQLite) TableName() string { return "invoices" }

type paymentSQLite struct {
	ID                   uint64     `gorm:"primaryKey;column:id"`
	PaymentID            string     `gorm:"size:32;column:payment_public_id;uniqueIndex"`
	InvoiceID            uint64     `gorm:"column:invoice_id"`
	SourceID             uint64     `gorm:"column:source_id"`
	PaymentDate          time.Time  `gorm:"column:payment_date"`
	Amount               string     `gorm:"column:amount"`
	PaymentMode          string     `gorm:"column:payment_mode"`
	TransactionReference string     `gorm:"column:transaction_reference"`
	ReceiptDate          *time.Time `gorm:"column:receipt_date"`
	ReceiptNumber        string     `gorm:"column:receipt_number"`
	Notes                string     `gorm:"column:notes"`
	CreatedAt            time.Time  `gorm:"column:created_at"`
	UpdatedAt            time.Time  `gorm:"column:updated_at"`
}

func (paymentSQLite) TableName() string { return "payments" }

type sourceSQLite struct {
	ID               uint64    `gorm:"primaryKey;column:id"`
	SourceID         string    `gorm:"size:32;column:source_id;uniqueIndex"`
	Name             string    `gorm:"column:name"`
	SourceType       string    `gorm:"column:source_type"`
	Description      string    `gorm:"column:description"`
	IsActive         bool      `gorm:"column:is_active"`
	BankName         string    `gorm:"column:bank_name"`
	AccountNumber    string    `gorm:"column:account_number"`
	IFSCCode         string    `gorm:"column:ifsc_code"`
	Branch           string    `gorm:"column:branch"`
	LoanID           uint64    `gorm:"column:loan_id"`
	Lender           string    `gorm:"column:lender"`
	CardNumber       string    `gorm:"column:card_number"`
	CardExpiry       string    `gorm:"column:card_expiry"`
	WalletProvider   string    `gorm:"column:wallet_provider"`
	WalletIdentifier string    `gorm:"column:wallet_identifier"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (sourceSQLite) TableName() string { return "payment_sources" }

type documentSQLite struct {
	ID         uint64    `gorm:"primaryKey;column:id"`
	DocumentID string    `gorm:"size:32;column:document_id;uniqueIndex"`
	EntityKind string    `gorm:"column:entity_type"`
	EntityID   string    `gorm:"column:entity_id"`
	FilePath   string    `gorm:"column:file_path"`
	Metadata   string    `gorm:"column:doc_metadata"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (documentSQLite) TableName() string { return "documents" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the sqlite-safe
// schema. All tables are created so the preloading queries always resolve.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&propertySQLite{},
		&purchaseSQLite{},
		&loanSQLite{},
		&repaymentSQLite{},
		&invoiceSQLite{},
		&paymentSQLite{},
		&sourceSQLite{},
		&documentSQLite{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }
