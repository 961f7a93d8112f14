package invoice

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"propledger-backend/internal/domain/invoice"
	"propledger-backend/internal/domain/purchase"
	"propledger-backend/internal/domain/uow"
	"propledger-backend/pkg/dates"
	"propledger-backend/pkg/id"
)

type Usecase struct {
	invoices invoice.Repository
	uow      uow.UnitOfWork
}

func NewUsecase(invoices invoice.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{invoices: invoices, uow: tx}
}

type Input struct {
	PurchaseID    string          `json:"purchase_id" validate:"required,hex32"`
	InvoiceNumber string          `json:"invoice_number" validate:"required"`
	InvoiceDate   string          `json:"invoice_date" validate:"required"`
	DueDate       string          `json:"due_date"`
	Amount        decimal.Decimal `json:"amount"`
	// Only "cancelled" may be set by the client, and only while the invoice
	// has no payments. Anything else is derived and rejected.
	Status      string `json:"status"`
	Milestone   string `json:"milestone"`
	Description string `json:"description"`
}

type DTO struct {
	InvoiceID     string          `json:"invoice_id"`
	PurchaseID    string          `json:"purchase_id"`
	InvoiceNumber string          `json:"invoice_number"`
	InvoiceDate   string          `json:"invoice_date"`
	DueDate       string          `json:"due_date,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	Balance       decimal.Decimal `json:"balance"`
	Status        invoice.Status  `json:"status"`
	Milestone     string          `json:"milestone,omitempty"`
	Description   string          `json:"description,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

func toDTO(i *invoice.Invoice) *DTO {
	d := &DTO{
		InvoiceID:     i.InvoiceID,
		InvoiceNumber: i.InvoiceNumber,
		InvoiceDate:   dates.Format(i.InvoiceDate),
		DueDate:       dates.FormatOptional(i.DueDate),
		Amount:        i.Amount,
		PaidAmount:    i.PaidAmount,
		Balance:       i.Amount.Sub(i.PaidAmount),
		Status:        i.Status,
		Milestone:     i.Milestone,
		Description:   i.Description,
		CreatedAt:     i.CreatedAt,
	}
	if i.Purchase != nil {
		d.PurchaseID = i.Purchase.PurchaseID
	}
	return d
}

// checkNumber enforces per-purchase uniqueness of the invoice number.
func checkNumber(ctx context.Context, r uow.Repos, purchaseID uint64, number string, excludeID uint64) error {
	is, err := r.Invoices.ListByPurchase(ctx, purchaseID)
	if err != nil {
		return err
	}
	for i := range is {
		if is[i].ID == excludeID {
			continue
		}
		if strings.EqualFold(is[i].InvoiceNumber, number) {
			return invoice.ErrDuplicateNumber
		}
	}
	return nil
}

// checkPurchaseBalance rejects an amount that would push the purchase's
// invoiced total past its total sale cost.
func checkPurchaseBalance(ctx context.Context, r uow.Repos, p *purchase.Purchase, amount decimal.Decimal, excludeID uint64) error {
	invoiced, err := r.Invoices.SumAmountByPurchase(ctx, p.ID, excludeID)
	if err != nil {
		return err
	}
	if invoiced.Add(amount).GreaterThan(p.TotalSaleCost) {
		return invoice.ErrExceedsPurchaseBalance
	}
	return nil
}

func (u *Usecase) Create(ctx context.Context, in Input) (*DTO, error) {
	if in.Amount.IsNegative() {
		return nil, invoice.ErrNegativeAmount
	}
	if in.Status != "" && in.Status != string(invoice.StatusCancelled) {
		return nil, invoice.ErrStatusNotOverridable
	}
	idate, err := dates.Parse(in.InvoiceDate)
	if err != nil {
		return nil, err
	}
	due, err := dates.ParseOptional(in.DueDate)
	if err != nil {
		return nil, err
	}

	var dto *DTO
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Purchases.GetByPublicID(ctx, in.PurchaseID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return purchase.ErrNotFound
			}
			return err
		}
		if err := checkNumber(ctx, r, p.ID, in.InvoiceNumber, 0); err != nil {
			return err
		}
		if err := checkPurchaseBalance(ctx, r, p, in.Amount, 0); err != nil {
			return err
		}

		iv := &invoice.Invoice{
			InvoiceID:     id.NewID32(),
			PurchaseID:    p.ID,
			Purchase:      p,
			InvoiceNumber: in.InvoiceNumber,
			InvoiceDate:   idate,
			DueDate:       due,
			Amount:        in.Amount,
			PaidAmount:    decimal.Zero,
			Status:        invoice.StatusPending,
			Milestone:     in.Milestone,
			Description:   in.Description,
		}
		if in.Status == string(invoice.StatusCancelled) {
			iv.Status = invoice.StatusCancelled
		}
		if err := r.Invoices.Create(ctx, iv); err != nil {
			return err
		}
		dto = toDTO(iv)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, invoiceID string) (*DTO, error) {
	iv, err := u.invoices.GetByPublicID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invoice.ErrNotFound
		}
		return nil, err
	}
	return toDTO(iv), nil
}

type ListQuery struct {
	PurchaseID string
	Status     string
	Milestone  string
	FromDate   string
	ToDate     string
}

func (u *Usecase) List(ctx context.Context, q ListQuery) ([]DTO, error) {
	f := invoice.ListFilter{
		Status:    invoice.Status(q.Status),
		Milestone: q.Milestone,
	}
	var err error
	if f.FromDate, err = dates.ParseOptional(q.FromDate); err != nil {
		return nil, err
	}
	if f.ToDate, err = dates.ParseOptional(q.ToDate); err != nil {
		return nil, err
	}

	var out []DTO
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if q.PurchaseID != "" {
			p, err := r.Purchases.GetByPublicID(ctx, q.PurchaseID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return purchase.ErrNotFound
				}
				return err
			}
			f.PurchaseID = p.ID
		}
		is, err := r.Invoices.List(ctx, f)
		if err != nil {
			return err
		}
		out = make([]DTO, 0, len(is))
		for i := range is {
			out = append(out, *toDTO(&is[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) Update(ctx context.Context, invoiceID string, in Input) (*DTO, error) {
	if in.Amount.IsNegative() {
		return nil, invoice.ErrNegativeAmount
	}
	idate, err := dates.Parse(in.InvoiceDate)
	if err != nil {
		return nil, err
	}
	due, err := dates.ParseOptional(in.DueDate)
	if err != nil {
		return nil, err
	}

	var dto *DTO
	err = u.uow.WithinInvoiceTx(ctx, invoiceID, func(r uow.Repos, iv *invoice.Invoice) error {
		p, err := r.Purchases.GetByPublicID(ctx, in.PurchaseID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return purchase.ErrNotFound
			}
			return err
		}
		if p.ID != iv.PurchaseID {
			// invoices do not move between purchases
			return purchase.ErrNotFound
		}
		if err := checkNumber(ctx, r, p.ID, in.InvoiceNumber, iv.ID); err != nil {
			return err
		}
		if err := checkPurchaseBalance(ctx, r, p, in.Amount, iv.ID); err != nil {
			return err
		}

		switch in.Status {
		case "", string(iv.Status):
			// unchanged
		case string(invoice.StatusCancelled):
			if iv.PaidAmount.IsPositive() {
				return invoice.ErrHasPayments
			}
			iv.Status = invoice.StatusCancelled
		default:
			return invoice.ErrStatusNotOverridable
		}

		iv.InvoiceNumber = in.InvoiceNumber
		iv.InvoiceDate = idate
		iv.DueDate = due
		iv.Amount = in.Amount
		iv.Milestone = in.Milestone
		iv.Description = in.Description
		// a shrunk amount may flip the invoice back to paid, a grown one the
		// other way; rederive unless the cancel override stuck
		if iv.Status != invoice.StatusCancelled {
			iv.Status = invoice.StatusFor(iv.Amount, iv.PaidAmount)
		}
		if err := r.Invoices.Save(ctx, iv); err != nil {
			return err
		}
		iv.Purchase = p
		dto = toDTO(iv)
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

// Delete removes an invoice that has no payments. Paid history is never
// detached by deleting its invoice.
func (u *Usecase) Delete(ctx context.Context, invoiceID string) error {
	err := u.uow.WithinInvoiceTx(ctx, invoiceID, func(r uow.Repos, iv *invoice.Invoice) error {
		ps, err := r.Payments.ListByInvoice(ctx, iv.ID)
		if err != nil {
			return err
		}
		if len(ps) > 0 {
			return invoice.ErrHasPayments
		}
		return r.Invoices.Delete(ctx, iv)
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return invoice.ErrNotFound
	}
	return err
}
