package payment

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"propledger-backend/internal/domain/invoice"
	"propledger-backend/internal/domain/payment"
	"propledger-backend/internal/domain/source"
	"propledger-backend/internal/domain/uow"
	"propledger-backend/pkg/dates"
	"propledger-backend/pkg/id"
)

type Usecase struct {
	payments payment.Repository
	uow      uow.UnitOfWork
}

func NewUsecase(payments payment.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{payments: payments, uow: tx}
}

type Input struct {
	InvoiceID   string          `json:"invoice_id" validate:"required,hex32"`
	SourceID    string          `json:"source_id" validate:"required,hex32"`
	PaymentDate string          `json:"payment_date" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`

	PaymentMode          string `json:"payment_mode" validate:"required"`
	TransactionReference string `json:"transaction_reference"`
	ReceiptDate          string `json:"receipt_date"`
	ReceiptNumber        string `json:"receipt_number"`
	Notes                string `json:"notes"`
}

type DTO struct {
	PaymentID   string          `json:"payment_id"`
	InvoiceID   string          `json:"invoice_id"`
	SourceID    string          `json:"source_id"`
	PaymentDate string          `json:"payment_date"`
	Amount      decimal.Decimal `json:"amount"`

	PaymentMode          string    `json:"payment_mode"`
	TransactionReference string    `json:"transaction_reference,omitempty"`
	ReceiptDate          string    `json:"receipt_date,omitempty"`
	ReceiptNumber        string    `json:"receipt_number,omitempty"`
	Notes                string    `json:"notes,omitempty"`
	CreatedAt            time.Time `json:"created_at"`

	// Invoice position after this payment was applied.
	InvoiceStatus     invoice.Status  `json:"invoice_status"`
	InvoicePaidAmount decimal.Decimal `json:"invoice_paid_amount"`
}

func toDTO(p *payment.Payment) *DTO {
	d := &DTO{
		PaymentID:            p.PaymentID,
		PaymentDate:          dates.Format(p.PaymentDate),
		Amount:               p.Amount,
		PaymentMode:          p.PaymentMode,
		TransactionReference: p.TransactionReference,
		ReceiptDate:          dates.FormatOptional(p.ReceiptDate),
		ReceiptNumber:        p.ReceiptNumber,
		Notes:                p.Notes,
		CreatedAt:            p.CreatedAt,
	}
	if p.Invoice != nil {
		d.InvoiceID = p.Invoice.InvoiceID
		d.InvoiceStatus = p.Invoice.Status
		d.InvoicePaidAmount = p.Invoice.PaidAmount
	}
	if p.Source != nil {
		d.SourceID = p.Source.SourceID
	}
	return d
}

// checkInvoiceBalance rejects an amount that would overpay the invoice.
func checkInvoiceBalance(ctx context.Context, r uow.Repos, iv *invoice.Invoice, amount decimal.Decimal, excludeID uint64) ([]payment.Payment, error) {
	ps, err := r.Payments.ListByInvoice(ctx, iv.ID)
	if err != nil {
		return nil, err
	}
	if payment.SumAmounts(ps, excludeID).Add(amount).GreaterThan(iv.Amount) {
		return nil, payment.ErrExceedsInvoiceBalance
	}
	return ps, nil
}

// checkDisbursement caps payments drawn from a loan-type source at the
// loan's total disbursed amount. A bank transfer, card or cash source has no
// such cap.
func checkDisbursement(ctx context.Context, r uow.Repos, s *source.Source, amount decimal.Decimal, excludeID uint64) error {
	if !s.IsLoan() {
		return nil
	}
	l, err := r.Loans.GetByID(ctx, s.Detail.LoanID)
	if err != nil {
		return err
	}
	ps, err := r.Payments.ListBySource(ctx, s.ID)
	if err != nil {
		return err
	}
	drawn := payment.SumAmounts(ps, excludeID)
	if drawn.Add(amount).GreaterThan(l.TotalDisbursedAmount) {
		return payment.ErrExceedsDisbursement
	}
	return nil
}

func (u *Usecase) Create(ctx context.Context, in Input) (*DTO, error) {
	if in.Amount.IsNegative() {
		return nil, payment.ErrNegativeAmount
	}
	pd, err := dates.Parse(in.PaymentDate)
	if err != nil {
		return nil, err
	}
	rd, err := dates.ParseOptional(in.ReceiptDate)
	if err != nil {
		return nil, err
	}

	var dto *DTO
	err = u.uow.WithinInvoiceTx(ctx, in.InvoiceID, func(r uow.Repos, iv *invoice.Invoice) error {
		if !iv.AcceptsPayments() {
			return invoice.ErrCancelled
		}
		s, err := r.Sources.GetByPublicID(ctx, in.SourceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return source.ErrNotFound
			}
			return err
		}
		ps, err := checkInvoiceBalance(ctx, r, iv, in.Amount, 0)
		if err != nil {
			return err
		}
		if err := checkDisbursement(ctx, r, s, in.Amount, 0); err != nil {
			return err
		}

		p := &payment.Payment{
			PaymentID:            id.NewID32(),
			InvoiceID:            iv.ID,
			Invoice:              iv,
			SourceID:             s.ID,
			Source:               s,
			PaymentDate:          pd,
			Amount:               in.Amount,
			PaymentMode:          in.PaymentMode,
			TransactionReference: in.TransactionReference,
			ReceiptDate:          rd,
			ReceiptNumber:        in.ReceiptNumber,
			Notes:                in.Notes,
		}
		if err := r.Payments.Create(ctx, p); err != nil {
			return err
		}

		payment.Reconcile(iv, append(ps, *p))
		if err := r.Invoices.Save(ctx, iv); err != nil {
			return err
		}
		dto = toDTO(p)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invoice.ErrNotFound
		}
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, paymentID string) (*DTO, error) {
	p, err := u.payments.GetByPublicID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payment.ErrNotFound
		}
		return nil, err
	}
	return toDTO(p), nil
}

type ListQuery struct {
	InvoiceID   string
	SourceID    string
	PaymentMode string
	FromDate    string
	ToDate      string
}

func (u *Usecase) List(ctx context.Context, q ListQuery) ([]DTO, error) {
	f := payment.ListFilter{PaymentMode: q.PaymentMode}
	var err error
	if f.FromDate, err = dates.ParseOptional(q.FromDate); err != nil {
		return nil, err
	}
	if f.ToDate, err = dates.ParseOptional(q.ToDate); err != nil {
		return nil, err
	}

	var out []DTO
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if q.InvoiceID != "" {
			iv, err := r.Invoices.GetByPublicID(ctx, q.InvoiceID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return invoice.ErrNotFound
				}
				return err
			}
			f.InvoiceID = iv.ID
		}
		if q.SourceID != "" {
			s, err := r.Sources.GetByPublicID(ctx, q.SourceID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return source.ErrNotFound
				}
				return err
			}
			f.SourceID = s.ID
		}
		ps, err := r.Payments.List(ctx, f)
		if err != nil {
			return err
		}
		out = make([]DTO, 0, len(ps))
		for i := range ps {
			out = append(out, *toDTO(&ps[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) Update(ctx context.Context, paymentID string, in Input) (*DTO, error) {
	if in.Amount.IsNegative() {
		return nil, payment.ErrNegativeAmount
	}
	pd, err := dates.Parse(in.PaymentDate)
	if err != nil {
		return nil, err
	}
	rd, err := dates.ParseOptional(in.ReceiptDate)
	if err != nil {
		return nil, err
	}

	var dto *DTO
	err = u.uow.WithinInvoiceTx(ctx, in.InvoiceID, func(r uow.Repos, iv *invoice.Invoice) error {
		p, err := r.Payments.GetByPublicID(ctx, paymentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return payment.ErrNotFound
			}
			return err
		}
		if p.InvoiceID != iv.ID {
			// payments do not move between invoices
			return payment.ErrNotFound
		}
		s, err := r.Sources.GetByPublicID(ctx, in.SourceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return source.ErrNotFound
			}
			return err
		}
		if _, err := checkInvoiceBalance(ctx, r, iv, in.Amount, p.ID); err != nil {
			return err
		}
		if err := checkDisbursement(ctx, r, s, in.Amount, p.ID); err != nil {
			return err
		}

		p.SourceID = s.ID
		p.Source = s
		p.PaymentDate = pd
		p.Amount = in.Amount
		p.PaymentMode = in.PaymentMode
		p.TransactionReference = in.TransactionReference
		p.ReceiptDate = rd
		p.ReceiptNumber = in.ReceiptNumber
		p.Notes = in.Notes
		if err := r.Payments.Save(ctx, p); err != nil {
			return err
		}

		ps, err := r.Payments.ListByInvoice(ctx, iv.ID)
		if err != nil {
			return err
		}
		payment.Reconcile(iv, ps)
		if err := r.Invoices.Save(ctx, iv); err != nil {
			return err
		}
		p.Invoice = iv
		dto = toDTO(p)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invoice.ErrNotFound
		}
		return nil, err
	}
	return dto, nil
}

// Delete removes the payment and reconciles the invoice it was applied to.
// A fully paid invoice drops back to partially_paid or pending.
func (u *Usecase) Delete(ctx context.Context, paymentID string) error {
	p, err := u.payments.GetByPublicID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return payment.ErrNotFound
		}
		return err
	}
	if p.Invoice == nil {
		return payment.ErrNotFound
	}
	err = u.uow.WithinInvoiceTx(ctx, p.Invoice.InvoiceID, func(r uow.Repos, iv *invoice.Invoice) error {
		cur, err := r.Payments.GetByPublicID(ctx, paymentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return payment.ErrNotFound
			}
			return err
		}
		if err := r.Payments.Delete(ctx, cur); err != nil {
			return err
		}
		ps, err := r.Payments.ListByInvoice(ctx, iv.ID)
		if err != nil {
			return err
		}
		payment.Reconcile(iv, ps)
		return r.Invoices.Save(ctx, iv)
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payment.ErrNotFound
	}
	return err
}
