package payment

import (
	"testing"

	"github.com/shopspring/decimal"

	"propledger-backend/internal/domain/invoice"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestSumAmounts(t *testing.T) {
	ps := []Payment{
		{ID: 1, Amount: d("100.50")},
		{ID: 2, Amount: d("200.25")},
		{ID: 3, Amount: d("99.25")},
	}
	if got := SumAmounts(ps, 0); !got.Equal(d("400")) {
		t.Fatalf("sum = %s, want 400", got)
	}
	if got := SumAmounts(ps, 2); !got.Equal(d("199.75")) {
		t.Fatalf("sum excluding 2 = %s, want 199.75", got)
	}
	if got := SumAmounts(nil, 0); !got.IsZero() {
		t.Fatalf("empty sum = %s, want 0", got)
	}
}

func TestReconcile_Lifecycle(t *testing.T) {
	inv := &invoice.Invoice{Amount: d("500000"), Status: invoice.StatusPending}

	// partial payment
	ps := []Payment{{ID: 1, Amount: d("200000")}}
	Reconcile(inv, ps)
	if inv.Status != invoice.StatusPartiallyPaid {
		t.Fatalf("status = %s, want partially_paid", inv.Status)
	}
	if !inv.PaidAmount.Equal(d("200000")) {
		t.Fatalf("paid = %s, want 200000", inv.PaidAmount)
	}

	// paid in full
	ps = append(ps, Payment{ID: 2, Amount: d("300000")})
	Reconcile(inv, ps)
	if inv.Status != invoice.StatusPaid {
		t.Fatalf("status = %s, want paid", inv.Status)
	}
	if !inv.PaidAmount.Equal(d("500000")) {
		t.Fatalf("paid = %s, want 500000", inv.PaidAmount)
	}

	// deleting all payments winds the invoice back to pending
	Reconcile(inv, nil)
	if inv.Status != invoice.StatusPending {
		t.Fatalf("status = %s, want pending after payments removed", inv.Status)
	}
	if !inv.PaidAmount.IsZero() {
		t.Fatalf("paid = %s, want 0", inv.PaidAmount)
	}
}

func TestReconcile_CancelledSticksOnlyAtZeroPaid(t *testing.T) {
	inv := &invoice.Invoice{Amount: d("100000"), Status: invoice.StatusCancelled}

	Reconcile(inv, nil)
	if inv.Status != invoice.StatusCancelled {
		t.Fatalf("cancelled with no payments must stay cancelled, got %s", inv.Status)
	}

	// a payment flowing through re-derives the status
	Reconcile(inv, []Payment{{ID: 1, Amount: d("40000")}})
	if inv.Status != invoice.StatusPartiallyPaid {
		t.Fatalf("status = %s, want partially_paid once money moved", inv.Status)
	}
}

func TestStatusFor_Grid(t *testing.T) {
	cases := []struct {
		amount, paid string
		want         invoice.Status
	}{
		{"100", "0", invoice.StatusPending},
		{"100", "50", invoice.StatusPartiallyPaid},
		{"100", "100", invoice.StatusPaid},
		{"100", "150", invoice.StatusPaid},
		// zero-amount invoice never flips to paid on its own
		{"0", "0", invoice.StatusPending},
	}
	for _, c := range cases {
		if got := invoice.StatusFor(d(c.amount), d(c.paid)); got != c.want {
			t.Fatalf("StatusFor(%s, %s) = %s, want %s", c.amount, c.paid, got, c.want)
		}
	}
}
