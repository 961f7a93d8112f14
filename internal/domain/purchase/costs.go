package purchase

import "github.com/shopspring/decimal"

// Charges are the raw cost components captured on a purchase.
// Absent fields decode to zero, which is a valid charge.
type Charges struct {
	BaseCost     decimal.Decimal
	OtherCharges decimal.Decimal
	IFMS         decimal.Decimal
	LeaseRent    decimal.Decimal
	AMC          decimal.Decimal
	GST          decimal.Decimal
}

// Costs is the derived cost roll-up:
//
//	property_cost   = base_cost + other_charges
//	total_cost      = property_cost + ifms + lease_rent + amc
//	total_sale_cost = total_cost + gst
type Costs struct {
	PropertyCost  decimal.Decimal `json:"property_cost"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	TotalSaleCost decimal.Decimal `json:"total_sale_cost"`
}

// DeriveCosts computes the roll-up. Negative charges have no business
// meaning and are rejected outright.
func DeriveCosts(c Charges) (Costs, error) {
	for _, d := range []decimal.Decimal{c.BaseCost, c.OtherCharges, c.IFMS, c.LeaseRent, c.AMC, c.GST} {
		if d.IsNegative() {
			return Costs{}, ErrNegativeCharge
		}
	}
	propertyCost := c.BaseCost.Add(c.OtherCharges)
	totalCost := propertyCost.Add(c.IFMS).Add(c.LeaseRent).Add(c.AMC)
	return Costs{
		PropertyCost:  propertyCost,
		TotalCost:     totalCost,
		TotalSaleCost: totalCost.Add(c.GST),
	}, nil
}
