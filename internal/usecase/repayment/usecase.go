package repayment

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"propledger-backend/internal/domain/loan"
	"propledger-backend/internal/domain/repayment"
	"propledger-backend/internal/domain/source"
	"propledger-backend/internal/domain/uow"
	"propledger-backend/pkg/dates"
	"propledger-backend/pkg/id"
)

type Usecase struct {
	repayments repayment.Repository
	uow        uow.UnitOfWork
}

func NewUsecase(repayments repayment.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repayments: repayments, uow: tx}
}

type Input struct {
	LoanID          string          `json:"loan_id" validate:"required,hex32"`
	SourceID        string          `json:"source_id" validate:"required,hex32"`
	PaymentDate     string          `json:"payment_date" validate:"required"`
	PrincipalAmount decimal.Decimal `json:"principal_amount"`
	InterestAmount  decimal.Decimal `json:"interest_amount"`
	OtherFees       decimal.Decimal `json:"other_fees"`
	Penalties       decimal.Decimal `json:"penalties"`

	PaymentMode          string `json:"payment_mode" validate:"required"`
	TransactionReference string `json:"transaction_reference"`
	Notes                string `json:"notes"`
}

type DTO struct {
	RepaymentID     string          `json:"repayment_id"`
	LoanID          string          `json:"loan_id"`
	SourceID        string          `json:"source_id"`
	PaymentDate     string          `json:"payment_date"`
	PrincipalAmount decimal.Decimal `json:"principal_amount"`
	InterestAmount  decimal.Decimal `json:"interest_amount"`
	OtherFees       decimal.Decimal `json:"other_fees"`
	Penalties       decimal.Decimal `json:"penalties"`
	TotalPayment    decimal.Decimal `json:"total_payment"`

	PaymentMode          string    `json:"payment_mode"`
	TransactionReference string    `json:"transaction_reference,omitempty"`
	Notes                string    `json:"notes,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
}

func toDTO(r *repayment.Repayment) *DTO {
	d := &DTO{
		RepaymentID:          r.RepaymentID,
		PaymentDate:          dates.Format(r.PaymentDate),
		PrincipalAmount:      r.PrincipalAmount,
		InterestAmount:       r.InterestAmount,
		OtherFees:            r.OtherFees,
		Penalties:            r.Penalties,
		TotalPayment:         r.TotalPayment,
		PaymentMode:          r.PaymentMode,
		TransactionReference: r.TransactionReference,
		Notes:                r.Notes,
		CreatedAt:            r.CreatedAt,
	}
	if r.Loan != nil {
		d.LoanID = r.Loan.LoanID
	}
	if r.Source != nil {
		d.SourceID = r.Source.SourceID
	}
	return d
}

// checkPrincipal rejects a repayment whose principal would push the loan's
// cumulative principal beyond what was disbursed. excludeID skips the row
// being updated.
func checkPrincipal(ctx context.Context, r uow.Repos, l *loan.Loan, principal decimal.Decimal, excludeID uint64) error {
	rs, err := r.Repayments.ListByLoan(ctx, l.ID)
	if err != nil {
		return err
	}
	paid := decimal.Zero
	for i := range rs {
		if rs[i].ID == excludeID {
			continue
		}
		paid = paid.Add(rs[i].PrincipalAmount)
	}
	if paid.Add(principal).GreaterThan(l.TotalDisbursedAmount) {
		return repayment.ErrExceedsPrincipal
	}
	return nil
}

func (u *Usecase) Create(ctx context.Context, in Input) (*DTO, error) {
	pd, err := dates.Parse(in.PaymentDate)
	if err != nil {
		return nil, err
	}

	var dto *DTO
	err = u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *loan.Loan) error {
		s, err := r.Sources.GetByPublicID(ctx, in.SourceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return source.ErrNotFound
			}
			return err
		}

		rp := &repayment.Repayment{
			RepaymentID:          id.NewID32(),
			LoanID:               l.ID,
			Loan:                 l,
			SourceID:             s.ID,
			Source:               s,
			PaymentDate:          pd,
			PrincipalAmount:      in.PrincipalAmount,
			InterestAmount:       in.InterestAmount,
			OtherFees:            in.OtherFees,
			Penalties:            in.Penalties,
			PaymentMode:          in.PaymentMode,
			TransactionReference: in.TransactionReference,
			Notes:                in.Notes,
		}
		if err := rp.ApplyTotal(); err != nil {
			return err
		}
		if err := checkPrincipal(ctx, r, l, rp.PrincipalAmount, 0); err != nil {
			return err
		}
		if err := r.Repayments.Create(ctx, rp); err != nil {
			return err
		}
		dto = toDTO(rp)
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

func (u *Usecase) Get(ctx context.Context, repaymentID string) (*DTO, error) {
	rp, err := u.repayments.GetByPublicID(ctx, repaymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repayment.ErrNotFound
		}
		return nil, err
	}
	return toDTO(rp), nil
}

type ListQuery struct {
	LoanID   string
	SourceID string
	FromDate string
	ToDate   string
}

func (u *Usecase) List(ctx context.Context, q ListQuery) ([]DTO, error) {
	var f repayment.ListFilter
	var err error
	if f.FromDate, err = dates.ParseOptional(q.FromDate); err != nil {
		return nil, err
	}
	if f.ToDate, err = dates.ParseOptional(q.ToDate); err != nil {
		return nil, err
	}

	var out []DTO
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if q.LoanID != "" {
			l, err := r.Loans.GetByPublicID(ctx, q.LoanID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return loan.ErrNotFound
				}
				return err
			}
			f.LoanID = l.ID
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
		rs, err := r.Repayments.List(ctx, f)
		if err != nil {
			return err
		}
		out = make([]DTO, 0, len(rs))
		for i := range rs {
			out = append(out, *toDTO(&rs[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) Update(ctx context.Context, repaymentID string, in Input) (*DTO, error) {
	pd, err := dates.Parse(in.PaymentDate)
	if err != nil {
		return nil, err
	}

	var dto *DTO
	err = u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *loan.Loan) error {
		rp, err := r.Repayments.GetByPublicID(ctx, repaymentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repayment.ErrNotFound
			}
			return err
		}
		if rp.LoanID != l.ID {
			// repayments do not move between loans
			return repayment.ErrNotFound
		}
		s, err := r.Sources.GetByPublicID(ctx, in.SourceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return source.ErrNotFound
			}
			return err
		}

		rp.SourceID = s.ID
		rp.Source = s
		rp.PaymentDate = pd
		rp.PrincipalAmount = in.PrincipalAmount
		rp.InterestAmount = in.InterestAmount
		rp.OtherFees = in.OtherFees
		rp.Penalties = in.Penalties
		rp.PaymentMode = in.PaymentMode
		rp.TransactionReference = in.TransactionReference
		rp.Notes = in.Notes
		if err := rp.ApplyTotal(); err != nil {
			return err
		}
		if err := checkPrincipal(ctx, r, l, rp.PrincipalAmount, rp.ID); err != nil {
			return err
		}
		if err := r.Repayments.Save(ctx, rp); err != nil {
			return err
		}
		rp.Loan = l
		dto = toDTO(rp)
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

func (u *Usecase) Delete(ctx context.Context, repaymentID string) error {
	rp, err := u.repayments.GetByPublicID(ctx, repaymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return repayment.ErrNotFound
		}
		return err
	}
	if rp.Loan == nil {
		return repayment.ErrNotFound
	}
	err = u.uow.WithinLoanTx(ctx, rp.Loan.LoanID, func(r uow.Repos, l *loan.Loan) error {
		cur, err := r.Repayments.GetByPublicID(ctx, repaymentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repayment.ErrNotFound
			}
			return err
		}
		return r.Repayments.Delete(ctx, cur)
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repayment.ErrNotFound
	}
	return err
}

// Summary recomputes the loan's repayment position from its current rows.
func (u *Usecase) Summary(ctx context.Context, loanID string) (*repayment.LoanSummary, error) {
	var out *repayment.LoanSummary
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByPublicID(ctx, loanID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return loan.ErrNotFound
			}
			return err
		}
		rs, err := r.Repayments.ListByLoan(ctx, l.ID)
		if err != nil {
			return err
		}
		s := repayment.Summarize(l, rs)
		out = &s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SummaryAll returns one LoanSummary per loan, optionally only active loans.
func (u *Usecase) SummaryAll(ctx context.Context, isActive *bool) ([]repayment.LoanSummary, error) {
	var out []repayment.LoanSummary
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		ls, err := r.Loans.List(ctx, loan.ListFilter{IsActive: isActive})
		if err != nil {
			return err
		}
		out = make([]repayment.LoanSummary, 0, len(ls))
		for i := range ls {
			rs, err := r.Repayments.ListByLoan(ctx, ls[i].ID)
			if err != nil {
				return err
			}
			out = append(out, repayment.Summarize(&ls[i], rs))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
