// Package acquisition computes the cross-entity money position of a
// purchase: how much has flowed toward it through loans and direct builder
// payments, and what remains against the sale cost. Nothing here is
// persisted; every call reads the current rows.
package acquisition

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"propledger-backend/internal/domain/loan"
	"propledger-backend/internal/domain/purchase"
	"propledger-backend/internal/domain/uow"
	"propledger-backend/pkg/dates"
)

type Usecase struct {
	uow uow.UnitOfWork
}

func NewUsecase(tx uow.UnitOfWork) *Usecase {
	return &Usecase{uow: tx}
}

type Summary struct {
	PurchaseID   string `json:"purchase_id"`
	PropertyName string `json:"property_name,omitempty"`

	TotalLoanPrincipal decimal.Decimal `json:"total_loan_principal"`
	TotalLoanInterest  decimal.Decimal `json:"total_loan_interest"`
	TotalLoanOthers    decimal.Decimal `json:"total_loan_others"`
	TotalLoanPayment   decimal.Decimal `json:"total_loan_payment"`

	TotalBuilderPrincipal decimal.Decimal `json:"total_builder_principal"`
	TotalBuilderPayment   decimal.Decimal `json:"total_builder_payment"`

	TotalPrincipalPayment decimal.Decimal `json:"total_principal_payment"`
	TotalSaleCost         decimal.Decimal `json:"total_sale_cost"`
	RemainingBalance      decimal.Decimal `json:"remaining_balance"`
}

// Detail kinds for the merged payment history.
const (
	KindLoanRepayment = "loan_repayment"
	KindDirectPayment = "direct payment"
)

// DetailRow is one money movement toward the purchase, either a loan
// installment or a direct builder payment.
type DetailRow struct {
	Kind        string `json:"kind"`
	PaymentDate string `json:"payment_date"`
	// Loan name for repayments, source name for direct payments.
	Via string `json:"via"`

	Principal decimal.Decimal `json:"principal"`
	Interest  decimal.Decimal `json:"interest"`
	Others    decimal.Decimal `json:"others"`
	Total     decimal.Decimal `json:"total"`

	PaymentMode string `json:"payment_mode,omitempty"`
	// Invoice number for direct payments.
	InvoiceNumber string `json:"invoice_number,omitempty"`

	date time.Time
}

type DetailsQuery struct {
	PurchaseID string
	FromDate   string
	ToDate     string
	// Optional kind filter: "loan_repayment" or "direct payment".
	Kind string
}

func (u *Usecase) Summarize(ctx context.Context, purchaseID string) (*Summary, error) {
	var out *Summary
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Purchases.GetByPublicID(ctx, purchaseID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return purchase.ErrNotFound
			}
			return err
		}

		s := &Summary{
			PurchaseID:            p.PurchaseID,
			TotalLoanPrincipal:    decimal.Zero,
			TotalLoanInterest:     decimal.Zero,
			TotalLoanOthers:       decimal.Zero,
			TotalBuilderPrincipal: decimal.Zero,
			TotalSaleCost:         p.TotalSaleCost,
		}
		if p.Property != nil {
			s.PropertyName = p.Property.Name
		}

		ls, err := r.Loans.List(ctx, loan.ListFilter{PurchaseID: p.ID})
		if err != nil {
			return err
		}
		for i := range ls {
			rs, err := r.Repayments.ListByLoan(ctx, ls[i].ID)
			if err != nil {
				return err
			}
			for j := range rs {
				s.TotalLoanPrincipal = s.TotalLoanPrincipal.Add(rs[j].PrincipalAmount)
				s.TotalLoanInterest = s.TotalLoanInterest.Add(rs[j].InterestAmount)
				s.TotalLoanOthers = s.TotalLoanOthers.Add(rs[j].OtherFees).Add(rs[j].Penalties)
			}
		}
		s.TotalLoanPayment = s.TotalLoanPrincipal.
			Add(s.TotalLoanInterest).
			Add(s.TotalLoanOthers)

		ps, err := r.Payments.ListByPurchase(ctx, p.ID)
		if err != nil {
			return err
		}
		for i := range ps {
			if ps[i].Source != nil && ps[i].Source.IsLoan() {
				// loan drawdowns already accrue as loan principal above
				continue
			}
			s.TotalBuilderPrincipal = s.TotalBuilderPrincipal.Add(ps[i].Amount)
		}
		s.TotalBuilderPayment = s.TotalBuilderPrincipal

		s.TotalPrincipalPayment = s.TotalLoanPrincipal.Add(s.TotalBuilderPrincipal)
		s.RemainingBalance = s.TotalSaleCost.Sub(s.TotalPrincipalPayment)
		out = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Details returns the purchase's payment history as one chronological list,
// loan installments and direct builder payments interleaved.
func (u *Usecase) Details(ctx context.Context, q DetailsQuery) ([]DetailRow, error) {
	from, err := dates.ParseOptional(q.FromDate)
	if err != nil {
		return nil, err
	}
	to, err := dates.ParseOptional(q.ToDate)
	if err != nil {
		return nil, err
	}

	var rows []DetailRow
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Purchases.GetByPublicID(ctx, q.PurchaseID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return purchase.ErrNotFound
			}
			return err
		}

		rows = rows[:0]
		if q.Kind == "" || q.Kind == KindLoanRepayment {
			ls, err := r.Loans.List(ctx, loan.ListFilter{PurchaseID: p.ID})
			if err != nil {
				return err
			}
			for i := range ls {
				rs, err := r.Repayments.ListByLoan(ctx, ls[i].ID)
				if err != nil {
					return err
				}
				for j := range rs {
					rp := &rs[j]
					rows = append(rows, DetailRow{
						Kind:        KindLoanRepayment,
						PaymentDate: dates.Format(rp.PaymentDate),
						Via:         ls[i].Name,
						Principal:   rp.PrincipalAmount,
						Interest:    rp.InterestAmount,
						Others:      rp.OtherFees.Add(rp.Penalties),
						Total:       rp.TotalPayment,
						PaymentMode: rp.PaymentMode,
						date:        rp.PaymentDate,
					})
				}
			}
		}
		if q.Kind == "" || q.Kind == KindDirectPayment {
			ps, err := r.Payments.ListByPurchase(ctx, p.ID)
			if err != nil {
				return err
			}
			for i := range ps {
				pm := &ps[i]
				if pm.Source != nil && pm.Source.IsLoan() {
					// loan drawdowns already show up as repayments on
					// the loan side
					continue
				}
				row := DetailRow{
					Kind:        KindDirectPayment,
					PaymentDate: dates.Format(pm.PaymentDate),
					Principal:   pm.Amount,
					Interest:    decimal.Zero,
					Others:      decimal.Zero,
					Total:       pm.Amount,
					PaymentMode: pm.PaymentMode,
					date:        pm.PaymentDate,
				}
				if pm.Source != nil {
					row.Via = pm.Source.Name
				}
				if pm.Invoice != nil {
					row.InvoiceNumber = pm.Invoice.InvoiceNumber
				}
				rows = append(rows, row)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	filtered := rows[:0]
	for _, row := range rows {
		if from != nil && row.date.Before(*from) {
			continue
		}
		if to != nil && row.date.After(*to) {
			continue
		}
		filtered = append(filtered, row)
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].date.Before(filtered[j].date)
	})
	return filtered, nil
}
