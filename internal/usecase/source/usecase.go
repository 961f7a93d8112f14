package source

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"propledger-backend/internal/domain/loan"
	"propledger-backend/internal/domain/source"
	"propledger-backend/internal/domain/uow"
	"propledger-backend/pkg/id"
)

type Usecase struct {
	sources source.Repository
	uow     uow.UnitOfWork
}

func NewUsecase(sources source.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{sources: sources, uow: tx}
}

type DetailInput struct {
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	IFSCCode      string `json:"ifsc_code"`
	Branch        string `json:"branch"`

	// Loan's public id; resolved to the internal row inside the tx.
	LoanID string `json:"loan_id"`
	Lender string `json:"lender"`

	CardNumber string `json:"card_number"`
	CardExpiry string `json:"card_expiry"`

	WalletProvider   string `json:"wallet_provider"`
	WalletIdentifier string `json:"wallet_identifier"`
}

type Input struct {
	Name        string      `json:"name" validate:"required"`
	SourceType  string      `json:"source_type" validate:"required"`
	Description string      `json:"description"`
	IsActive    *bool       `json:"is_active"`
	Detail      DetailInput `json:"detail"`
}

type DTO struct {
	SourceID    string        `json:"source_id"`
	Name        string        `json:"name"`
	SourceType  source.Type   `json:"source_type"`
	Description string        `json:"description,omitempty"`
	IsActive    bool          `json:"is_active"`
	Detail      source.Detail `json:"detail"`
	// Public id of the linked loan, for loan-type sources.
	LoanID    string    `json:"loan_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toDTO(s *source.Source, loanPublicID string) *DTO {
	return &DTO{
		SourceID:    s.SourceID,
		Name:        s.Name,
		SourceType:  s.SourceType,
		Description: s.Description,
		IsActive:    s.IsActive,
		Detail:      s.Detail,
		LoanID:      loanPublicID,
		CreatedAt:   s.CreatedAt,
	}
}

// resolveLoanID maps a loan-type input's public loan id onto the internal
// row id, so Validate can enforce the reference.
func resolveLoanID(ctx context.Context, r uow.Repos, in Input) (uint64, error) {
	if source.Type(in.SourceType) != source.TypeLoan || in.Detail.LoanID == "" {
		return 0, nil
	}
	l, err := r.Loans.GetByPublicID(ctx, in.Detail.LoanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, loan.ErrNotFound
		}
		return 0, err
	}
	return l.ID, nil
}

func (u *Usecase) loanPublicID(ctx context.Context, r uow.Repos, s *source.Source) (string, error) {
	if !s.IsLoan() || s.Detail.LoanID == 0 {
		return "", nil
	}
	l, err := r.Loans.GetByID(ctx, s.Detail.LoanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return l.LoanID, nil
}

func (u *Usecase) Create(ctx context.Context, in Input) (*DTO, error) {
	var dto *DTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		loanRowID, err := resolveLoanID(ctx, r, in)
		if err != nil {
			return err
		}
		active := true
		if in.IsActive != nil {
			active = *in.IsActive
		}
		s := &source.Source{
			SourceID:    id.NewID32(),
			Name:        in.Name,
			SourceType:  source.Type(in.SourceType),
			Description: in.Description,
			IsActive:    active,
			Detail: source.Detail{
				BankName:         in.Detail.BankName,
				AccountNumber:    in.Detail.AccountNumber,
				IFSCCode:         in.Detail.IFSCCode,
				Branch:           in.Detail.Branch,
				LoanID:           loanRowID,
				Lender:           in.Detail.Lender,
				CardNumber:       in.Detail.CardNumber,
				CardExpiry:       in.Detail.CardExpiry,
				WalletProvider:   in.Detail.WalletProvider,
				WalletIdentifier: in.Detail.WalletIdentifier,
			},
		}
		if err := s.Validate(); err != nil {
			return err
		}
		if err := r.Sources.Create(ctx, s); err != nil {
			return err
		}
		dto = toDTO(s, in.Detail.LoanID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, sourceID string) (*DTO, error) {
	var dto *DTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		s, err := r.Sources.GetByPublicID(ctx, sourceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return source.ErrNotFound
			}
			return err
		}
		lid, err := u.loanPublicID(ctx, r, s)
		if err != nil {
			return err
		}
		dto = toDTO(s, lid)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) List(ctx context.Context) ([]DTO, error) {
	var out []DTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		ss, err := r.Sources.List(ctx)
		if err != nil {
			return err
		}
		out = make([]DTO, 0, len(ss))
		for i := range ss {
			lid, err := u.loanPublicID(ctx, r, &ss[i])
			if err != nil {
				return err
			}
			out = append(out, *toDTO(&ss[i], lid))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) Update(ctx context.Context, sourceID string, in Input) (*DTO, error) {
	var dto *DTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		s, err := r.Sources.GetByPublicID(ctx, sourceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return source.ErrNotFound
			}
			return err
		}
		loanRowID, err := resolveLoanID(ctx, r, in)
		if err != nil {
			return err
		}
		if loanRowID == 0 && source.Type(in.SourceType) == source.TypeLoan {
			// keep the existing link when the client omitted it
			loanRowID = s.Detail.LoanID
		}

		s.Name = in.Name
		s.SourceType = source.Type(in.SourceType)
		s.Description = in.Description
		if in.IsActive != nil {
			s.IsActive = *in.IsActive
		}
		s.Detail = source.Detail{
			BankName:         in.Detail.BankName,
			AccountNumber:    in.Detail.AccountNumber,
			IFSCCode:         in.Detail.IFSCCode,
			Branch:           in.Detail.Branch,
			LoanID:           loanRowID,
			Lender:           in.Detail.Lender,
			CardNumber:       in.Detail.CardNumber,
			CardExpiry:       in.Detail.CardExpiry,
			WalletProvider:   in.Detail.WalletProvider,
			WalletIdentifier: in.Detail.WalletIdentifier,
		}
		if err := s.Validate(); err != nil {
			return err
		}
		if err := r.Sources.Save(ctx, s); err != nil {
			return err
		}
		lid, err := u.loanPublicID(ctx, r, s)
		if err != nil {
			return err
		}
		dto = toDTO(s, lid)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Delete removes a source no payment or repayment references.
func (u *Usecase) Delete(ctx context.Context, sourceID string) error {
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		s, err := r.Sources.GetByPublicID(ctx, sourceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return source.ErrNotFound
			}
			return err
		}
		np, err := r.Payments.CountBySource(ctx, s.ID)
		if err != nil {
			return err
		}
		nr, err := r.Repayments.CountBySource(ctx, s.ID)
		if err != nil {
			return err
		}
		if np > 0 || nr > 0 {
			return source.ErrInUse
		}
		return r.Sources.Delete(ctx, s)
	})
}
