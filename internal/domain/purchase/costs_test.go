package purchase

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestDeriveCosts_RollUp(t *testing.T) {
	got, err := DeriveCosts(Charges{
		BaseCost:     d("1000000"),
		OtherCharges: d("50000"),
		IFMS:         d("20000"),
		LeaseRent:    d("0"),
		AMC:          d("5000"),
		GST:          d("37800"),
	})
	if err != nil {
		t.Fatalf("DeriveCosts err: %v", err)
	}
	if !got.PropertyCost.Equal(d("1050000")) {
		t.Fatalf("property_cost = %s, want 1050000", got.PropertyCost)
	}
	if !got.TotalCost.Equal(d("1075000")) {
		t.Fatalf("total_cost = %s, want 1075000", got.TotalCost)
	}
	if !got.TotalSaleCost.Equal(d("1112800")) {
		t.Fatalf("total_sale_cost = %s, want 1112800", got.TotalSaleCost)
	}
}

func TestDeriveCosts_AllZero(t *testing.T) {
	got, err := DeriveCosts(Charges{})
	if err != nil {
		t.Fatalf("DeriveCosts zero err: %v", err)
	}
	if !got.PropertyCost.IsZero() || !got.TotalCost.IsZero() || !got.TotalSaleCost.IsZero() {
		t.Fatalf("zero charges must derive zero costs, got %+v", got)
	}
}

func TestDeriveCosts_FractionalPaise(t *testing.T) {
	// decimal arithmetic must not drift on 2dp values
	got, err := DeriveCosts(Charges{
		BaseCost:     d("999999.99"),
		OtherCharges: d("0.01"),
		GST:          d("0.01"),
	})
	if err != nil {
		t.Fatalf("DeriveCosts err: %v", err)
	}
	if !got.PropertyCost.Equal(d("1000000")) {
		t.Fatalf("property_cost = %s, want 1000000", got.PropertyCost)
	}
	if !got.TotalSaleCost.Equal(d("1000000.01")) {
		t.Fatalf("total_sale_cost = %s, want 1000000.01", got.TotalSaleCost)
	}
}

func TestDeriveCosts_RejectsNegative(t *testing.T) {
	cases := []Charges{
		{BaseCost: d("-1")},
		{OtherCharges: d("-0.01")},
		{IFMS: d("-5")},
		{LeaseRent: d("-5")},
		{AMC: d("-5")},
		{GST: d("-5")},
	}
	for i, c := range cases {
		if _, err := DeriveCosts(c); !errors.Is(err, ErrNegativeCharge) {
			t.Fatalf("case %d: want ErrNegativeCharge, got %v", i, err)
		}
	}
}

func TestApplyCosts_OverwritesClientValues(t *testing.T) {
	p := &Purchase{
		BaseCost:     d("500000"),
		OtherCharges: d("10000"),
		GST:          d("25000"),
		// client-supplied junk in the derived columns
		PropertyCost:  d("1"),
		TotalCost:     d("2"),
		TotalSaleCost: d("3"),
	}
	if err := p.ApplyCosts(); err != nil {
		t.Fatalf("ApplyCosts err: %v", err)
	}
	if !p.PropertyCost.Equal(d("510000")) {
		t.Fatalf("property_cost = %s, want 510000", p.PropertyCost)
	}
	if !p.TotalCost.Equal(d("510000")) {
		t.Fatalf("total_cost = %s, want 510000", p.TotalCost)
	}
	if !p.TotalSaleCost.Equal(d("535000")) {
		t.Fatalf("total_sale_cost = %s, want 535000", p.TotalSaleCost)
	}
}
