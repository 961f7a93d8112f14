package property

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound     = errors.New("property not found")
	ErrHasPurchases = errors.New("property has purchases attached")
	ErrNegativeRate = errors.New("rates and areas must not be negative")
)

type Property struct {
	ID         uint64 `gorm:"primaryKey;column:id" json:"-"`
	PropertyID string `gorm:"column:property_id;type:char(32);not null;uniqueIndex:ux_properties_property_id" json:"property_id"`

	Name         string `gorm:"size:255;not null" json:"name"`
	Address      string `gorm:"type:text" json:"address"`
	PropertyType string `gorm:"size:64" json:"property_type"`

	CarpetArea    decimal.Decimal `gorm:"type:decimal(12,2)" json:"carpet_area"`
	ExclusiveArea decimal.Decimal `gorm:"type:decimal(12,2)" json:"exclusive_area"`
	CommonArea    decimal.Decimal `gorm:"type:decimal(12,2)" json:"common_area"`
	// Derived: carpet + exclusive + common. Recomputed on every write.
	SuperArea   decimal.Decimal `gorm:"type:decimal(12,2)" json:"super_area"`
	FloorNumber int             `gorm:"column:floor_number" json:"floor_number"`

	ParkingDetails string `gorm:"size:255" json:"parking_details"`
	Developer      string `gorm:"size:255" json:"developer"`
	ReraID         string `gorm:"column:rera_id;size:64" json:"rera_id"`

	InitialRate decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"initial_rate"`
	CurrentRate decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"current_rate"`
	// Derived: current_rate * super_area.
	CurrentPrice decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"current_price"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Property) TableName() string { return "properties" }

// Derive recomputes super_area and current_price from the raw fields.
// Client-supplied values for either are ignored.
func (p *Property) Derive() error {
	for _, d := range []decimal.Decimal{p.CarpetArea, p.ExclusiveArea, p.CommonArea, p.InitialRate, p.CurrentRate} {
		if d.IsNegative() {
			return ErrNegativeRate
		}
	}
	p.SuperArea = p.CarpetArea.Add(p.ExclusiveArea).Add(p.CommonArea)
	p.CurrentPrice = p.CurrentRate.Mul(p.SuperArea)
	return nil
}
