package purchase

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"propledger-backend/internal/domain/property"
)

var (
	ErrNotFound       = errors.New("purchase not found")
	ErrNegativeCharge = errors.New("charge fields must not be negative")
)

type Purchase struct {
	ID         uint64 `gorm:"primaryKey;column:id" json:"-"`
	PurchaseID string `gorm:"column:purchase_id;type:char(32);not null;uniqueIndex:ux_purchases_purchase_id" json:"purchase_id"`

	// FK to properties.id (numeric); the API speaks the property's public id.
	PropertyID uint64             `gorm:"column:property_id;not null;index:idx_purchases_property" json:"-"`
	Property   *property.Property `gorm:"foreignKey:PropertyID" json:"-"`

	PurchaseDate     time.Time  `gorm:"column:purchase_date;type:date;not null" json:"-"`
	RegistrationDate *time.Time `gorm:"column:registration_date;type:date" json:"-"`
	PossessionDate   *time.Time `gorm:"column:possession_date;type:date" json:"-"`

	Seller  string `gorm:"size:255" json:"seller"`
	Remarks string `gorm:"type:text" json:"remarks"`

	BaseCost     decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"base_cost"`
	OtherCharges decimal.Decimal `gorm:"type:decimal(15,2)" json:"other_charges"`
	IFMS         decimal.Decimal `gorm:"column:ifms;type:decimal(15,2)" json:"ifms"`
	LeaseRent    decimal.Decimal `gorm:"column:lease_rent;type:decimal(15,2)" json:"lease_rent"`
	AMC          decimal.Decimal `gorm:"column:amc;type:decimal(15,2)" json:"amc"`
	GST          decimal.Decimal `gorm:"column:gst;type:decimal(15,2)" json:"gst"`

	// Derived columns. Stored for query convenience, but recomputed inside
	// every create/update transaction; client-supplied values are ignored.
	PropertyCost  decimal.Decimal `gorm:"column:property_cost;type:decimal(15,2);not null" json:"property_cost"`
	TotalCost     decimal.Decimal `gorm:"column:total_cost;type:decimal(15,2);not null" json:"total_cost"`
	TotalSaleCost decimal.Decimal `gorm:"column:total_sale_cost;type:decimal(15,2);not null" json:"total_sale_cost"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Purchase) TableName() string { return "purchases" }

// ApplyCosts recomputes the derived cost columns from the raw charges.
func (p *Purchase) ApplyCosts() error {
	c, err := DeriveCosts(Charges{
		BaseCost:     p.BaseCost,
		OtherCharges: p.OtherCharges,
		IFMS:         p.IFMS,
		LeaseRent:    p.LeaseRent,
		AMC:          p.AMC,
		GST:          p.GST,
	})
	if err != nil {
		return err
	}
	p.PropertyCost = c.PropertyCost
	p.TotalCost = c.TotalCost
	p.TotalSaleCost = c.TotalSaleCost
	return nil
}
