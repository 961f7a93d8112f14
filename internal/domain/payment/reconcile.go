package payment

import (
	"github.com/shopspring/decimal"

	"propledger-backend/internal/domain/invoice"
)

// SumAmounts totals the payment amounts, optionally skipping one payment
// (used when re-validating an update against the rest of the set).
func SumAmounts(ps []Payment, excludeID uint64) decimal.Decimal {
	total := decimal.Zero
	for i := range ps {
		if excludeID != 0 && ps[i].ID == excludeID {
			continue
		}
		total = total.Add(ps[i].Amount)
	}
	return total
}

// Reconcile recomputes the invoice's paid_amount and status from its
// current payments. Cancelled sticks only while no payments exist; any
// payment event flowing through here re-derives the status.
func Reconcile(inv *invoice.Invoice, ps []Payment) {
	paid := SumAmounts(ps, 0)
	inv.PaidAmount = paid
	if inv.Status == invoice.StatusCancelled && paid.IsZero() {
		return
	}
	inv.Status = invoice.StatusFor(inv.Amount, paid)
}
