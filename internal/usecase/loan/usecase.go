package loan

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"propledger-backend/internal/domain/loan"
	"propledger-backend/internal/domain/purchase"
	"propledger-backend/internal/domain/source"
	"propledger-backend/internal/domain/uow"
	"propledger-backend/pkg/dates"
	"propledger-backend/pkg/id"
)

type Usecase struct {
	loans loan.Repository
	uow   uow.UnitOfWork
}

func NewUsecase(loans loan.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{loans: loans, uow: tx}
}

type Input struct {
	PurchaseID           string          `json:"purchase_id" validate:"required,hex32"`
	Name                 string          `json:"name" validate:"required"`
	Institution          string          `json:"institution" validate:"required"`
	Agent                string          `json:"agent"`
	SanctionDate         string          `json:"sanction_date" validate:"required"`
	SanctionAmount       decimal.Decimal `json:"sanction_amount"`
	TotalDisbursedAmount decimal.Decimal `json:"total_disbursed_amount"`
	ProcessingFee        decimal.Decimal `json:"processing_fee"`
	OtherCharges         decimal.Decimal `json:"other_charges"`
	LoanSanctionCharges  decimal.Decimal `json:"loan_sanction_charges"`
	InterestRate         decimal.Decimal `json:"interest_rate"`
	TenureMonths         int             `json:"tenure_months" validate:"gte=0"`
	IsActive             *bool           `json:"is_active"`
}

type DTO struct {
	LoanID               string          `json:"loan_id"`
	PurchaseID           string          `json:"purchase_id"`
	Name                 string          `json:"name"`
	Institution          string          `json:"institution"`
	Agent                string          `json:"agent,omitempty"`
	SanctionDate         string          `json:"sanction_date"`
	SanctionAmount       decimal.Decimal `json:"sanction_amount"`
	TotalDisbursedAmount decimal.Decimal `json:"total_disbursed_amount"`
	ProcessingFee        decimal.Decimal `json:"processing_fee"`
	OtherCharges         decimal.Decimal `json:"other_charges"`
	LoanSanctionCharges  decimal.Decimal `json:"loan_sanction_charges"`
	InterestRate         decimal.Decimal `json:"interest_rate"`
	TenureMonths         int             `json:"tenure_months"`
	IsActive             bool            `json:"is_active"`
	CreatedAt            time.Time       `json:"created_at"`
}

func toDTO(l *loan.Loan) *DTO {
	d := &DTO{
		LoanID:               l.LoanID,
		Name:                 l.Name,
		Institution:          l.Institution,
		Agent:                l.Agent,
		SanctionDate:         dates.Format(l.SanctionDate),
		SanctionAmount:       l.SanctionAmount,
		TotalDisbursedAmount: l.TotalDisbursedAmount,
		ProcessingFee:        l.ProcessingFee,
		OtherCharges:         l.OtherCharges,
		LoanSanctionCharges:  l.LoanSanctionCharges,
		InterestRate:         l.InterestRate,
		TenureMonths:         l.TenureMonths,
		IsActive:             l.IsActive,
		CreatedAt:            l.CreatedAt,
	}
	if l.Purchase != nil {
		d.PurchaseID = l.Purchase.PurchaseID
	}
	return d
}

func validateAmounts(in Input) error {
	for _, d := range []decimal.Decimal{in.SanctionAmount, in.TotalDisbursedAmount, in.ProcessingFee, in.OtherCharges, in.LoanSanctionCharges, in.InterestRate} {
		if d.IsNegative() {
			return loan.ErrNegativeAmount
		}
	}
	return nil
}

// guards re-validates the loan against its purchase: sanction within total
// cost, disbursement within what has been invoiced.
func guards(ctx context.Context, r uow.Repos, p *purchase.Purchase, in Input) error {
	if in.SanctionAmount.GreaterThan(p.TotalCost) {
		return loan.ErrSanctionExceedsCost
	}
	invoiced, err := r.Invoices.SumAmountByPurchase(ctx, p.ID, 0)
	if err != nil {
		return err
	}
	if in.TotalDisbursedAmount.GreaterThan(invoiced) {
		return loan.ErrDisbursedExceedsInvoiced
	}
	return nil
}

// Create inserts the loan and its loan-type payment source in one
// transaction, so repayments and payments can reference the source at once.
func (u *Usecase) Create(ctx context.Context, in Input) (*DTO, error) {
	if err := validateAmounts(in); err != nil {
		return nil, err
	}
	sd, err := dates.Parse(in.SanctionDate)
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
		if err := guards(ctx, r, p, in); err != nil {
			return err
		}

		active := true
		if in.IsActive != nil {
			active = *in.IsActive
		}
		l := &loan.Loan{
			LoanID:               id.NewID32(),
			PurchaseID:           p.ID,
			Purchase:             p,
			Name:                 in.Name,
			Institution:          in.Institution,
			Agent:                in.Agent,
			SanctionDate:         sd,
			SanctionAmount:       in.SanctionAmount,
			TotalDisbursedAmount: in.TotalDisbursedAmount,
			ProcessingFee:        in.ProcessingFee,
			OtherCharges:         in.OtherCharges,
			LoanSanctionCharges:  in.LoanSanctionCharges,
			InterestRate:         in.InterestRate,
			TenureMonths:         in.TenureMonths,
			IsActive:             active,
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}

		s := &source.Source{
			SourceID:    id.NewID32(),
			Name:        "Loan: " + l.Name,
			SourceType:  source.TypeLoan,
			Description: "Auto-created for loan from " + l.Institution,
			IsActive:    active,
			Detail:      source.Detail{LoanID: l.ID, Lender: l.Institution},
		}
		if err := r.Sources.Create(ctx, s); err != nil {
			return err
		}

		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*DTO, error) {
	l, err := u.loans.GetByPublicID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrNotFound
		}
		return nil, err
	}
	return toDTO(l), nil
}

// List filters by the purchase's public id and/or active flag.
func (u *Usecase) List(ctx context.Context, purchaseID string, isActive *bool) ([]DTO, error) {
	var f loan.ListFilter
	f.IsActive = isActive
	var out []DTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if purchaseID != "" {
			p, err := r.Purchases.GetByPublicID(ctx, purchaseID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return purchase.ErrNotFound
				}
				return err
			}
			f.PurchaseID = p.ID
		}
		ls, err := r.Loans.List(ctx, f)
		if err != nil {
			return err
		}
		out = make([]DTO, 0, len(ls))
		for i := range ls {
			out = append(out, *toDTO(&ls[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites the loan and keeps its auto-created payment source in sync.
func (u *Usecase) Update(ctx context.Context, loanID string, in Input) (*DTO, error) {
	if err := validateAmounts(in); err != nil {
		return nil, err
	}
	sd, err := dates.Parse(in.SanctionDate)
	if err != nil {
		return nil, err
	}

	var dto *DTO
	err = u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		p, err := r.Purchases.GetByPublicID(ctx, in.PurchaseID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return purchase.ErrNotFound
			}
			return err
		}
		if p.ID != l.PurchaseID {
			// loans do not move between purchases
			return purchase.ErrNotFound
		}
		if err := guards(ctx, r, p, in); err != nil {
			return err
		}

		l.Name = in.Name
		l.Institution = in.Institution
		l.Agent = in.Agent
		l.SanctionDate = sd
		l.SanctionAmount = in.SanctionAmount
		l.TotalDisbursedAmount = in.TotalDisbursedAmount
		l.ProcessingFee = in.ProcessingFee
		l.OtherCharges = in.OtherCharges
		l.LoanSanctionCharges = in.LoanSanctionCharges
		l.InterestRate = in.InterestRate
		l.TenureMonths = in.TenureMonths
		if in.IsActive != nil {
			l.IsActive = *in.IsActive
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		s, err := r.Sources.GetByLoan(ctx, l.ID)
		switch {
		case err == nil:
			s.Name = "Loan: " + l.Name
			s.Detail.Lender = l.Institution
			s.IsActive = l.IsActive
			if err := r.Sources.Save(ctx, s); err != nil {
				return err
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		l.Purchase = p
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrNotFound
		}
		return nil, err
	}
	return dto, nil
}

// Delete removes the loan together with its auto-created payment source.
// Blocked while repayments exist, or while payments draw on the source.
func (u *Usecase) Delete(ctx context.Context, loanID string) error {
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		rs, err := r.Repayments.ListByLoan(ctx, l.ID)
		if err != nil {
			return err
		}
		if len(rs) > 0 {
			return loan.ErrHasRepayments
		}

		s, err := r.Sources.GetByLoan(ctx, l.ID)
		switch {
		case err == nil:
			n, err := r.Payments.CountBySource(ctx, s.ID)
			if err != nil {
				return err
			}
			if n > 0 {
				return loan.ErrSourceHasPayments
			}
			if err := r.Sources.Delete(ctx, s); err != nil {
				return err
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		return r.Loans.Delete(ctx, l)
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return loan.ErrNotFound
	}
	return err
}
