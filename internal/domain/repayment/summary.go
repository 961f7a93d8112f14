package repayment

import (
	"time"

	"github.com/shopspring/decimal"

	"propledger-backend/internal/domain/loan"
)

// LoanSummary is the derived repayment position of a single loan. It is
// never persisted; callers recompute it from the current rows on each read.
type LoanSummary struct {
	LoanID               string          `json:"loan_id"`
	LoanName             string          `json:"loan_name"`
	Institution          string          `json:"institution"`
	SanctionAmount       decimal.Decimal `json:"sanction_amount"`
	TotalDisbursedAmount decimal.Decimal `json:"total_disbursed_amount"`

	TotalPrincipalPaid decimal.Decimal `json:"total_principal_paid"`
	TotalInterestPaid  decimal.Decimal `json:"total_interest_paid"`
	TotalOtherFees     decimal.Decimal `json:"total_other_fees"`
	TotalPenalties     decimal.Decimal `json:"total_penalties"`
	TotalAmountPaid    decimal.Decimal `json:"total_amount_paid"`

	OutstandingPrincipal decimal.Decimal `json:"outstanding_principal"`
	// OverRepaid is set when cumulative principal exceeds the disbursed
	// amount. The negative outstanding value is reported as-is, never
	// clamped; it signals a data-entry problem.
	OverRepaid bool `json:"over_repaid"`

	TotalPayments     int        `json:"total_payments"`
	LastRepaymentDate *time.Time `json:"last_repayment_date,omitempty"`
}

// Summarize aggregates a loan's repayments into its current balance position.
func Summarize(l *loan.Loan, rs []Repayment) LoanSummary {
	s := LoanSummary{
		LoanID:               l.LoanID,
		LoanName:             l.Name,
		Institution:          l.Institution,
		SanctionAmount:       l.SanctionAmount,
		TotalDisbursedAmount: l.TotalDisbursedAmount,
		TotalPrincipalPaid:   decimal.Zero,
		TotalInterestPaid:    decimal.Zero,
		TotalOtherFees:       decimal.Zero,
		TotalPenalties:       decimal.Zero,
		TotalAmountPaid:      decimal.Zero,
	}
	for i := range rs {
		r := &rs[i]
		s.TotalPrincipalPaid = s.TotalPrincipalPaid.Add(r.PrincipalAmount)
		s.TotalInterestPaid = s.TotalInterestPaid.Add(r.InterestAmount)
		s.TotalOtherFees = s.TotalOtherFees.Add(r.OtherFees)
		s.TotalPenalties = s.TotalPenalties.Add(r.Penalties)
		s.TotalPayments++
		if s.LastRepaymentDate == nil || r.PaymentDate.After(*s.LastRepaymentDate) {
			d := r.PaymentDate
			s.LastRepaymentDate = &d
		}
	}
	s.TotalAmountPaid = s.TotalPrincipalPaid.
		Add(s.TotalInterestPaid).
		Add(s.TotalOtherFees).
		Add(s.TotalPenalties)
	s.OutstandingPrincipal = l.TotalDisbursedAmount.Sub(s.TotalPrincipalPaid)
	s.OverRepaid = s.OutstandingPrincipal.IsNegative()
	return s
}
