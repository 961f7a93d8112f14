package repayment

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"propledger-backend/internal/domain/loan"
	domain "propledger-backend/internal/domain/repayment"
	"propledger-backend/internal/domain/source"
	"propledger-backend/internal/domain/uow"
	"propledger-backend/internal/testutil/loanmock"
	"propledger-backend/internal/testutil/repaymentmock"
	"propledger-backend/internal/testutil/sourcemock"
	"propledger-backend/internal/testutil/uowmock"
)

const (
	loanPubID   = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	sourcePubID = "dddddddddddddddddddddddddddddddd"
)

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

func testLoan() *loan.Loan {
	return &loan.Loan{
		ID:                   42,
		LoanID:               loanPubID,
		TotalDisbursedAmount: d("4000000"),
	}
}

func testSource() *source.Source {
	return &source.Source{ID: 5, SourceID: sourcePubID, SourceType: source.TypeBankAccount}
}

func validInput() Input {
	return Input{
		LoanID:          loanPubID,
		SourceID:        sourcePubID,
		PaymentDate:     "2024-02-05",
		PrincipalAmount: d("50000"),
		InterestAmount:  d("30000"),
		PaymentMode:     "neft",
	}
}

func TestCreate_DerivesTotal(t *testing.T) {
	var created *domain.Repayment
	repos := uow.Repos{
		Loans: &loanmock.Repo{
			GetByPublicIDForUpdateFn: func(ctx context.Context, id string) (*loan.Loan, error) {
				return testLoan(), nil
			},
		},
		Sources: &sourcemock.Repo{
			GetByPublicIDFn: func(ctx context.Context, id string) (*source.Source, error) {
				return testSource(), nil
			},
		},
		Repayments: &repaymentmock.Repo{
			CreateFn: func(ctx context.Context, r *domain.Repayment) error {
				r.ID = 7
				created = r
				return nil
			},
		},
	}
	uc := NewUsecase(repos.Repayments, uowmock.Passthrough(repos))

	dto, err := uc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Create err: %v", err)
	}
	if len(dto.RepaymentID) != 32 {
		t.Fatalf("RepaymentID length: %d", len(dto.RepaymentID))
	}
	if !dto.TotalPayment.Equal(d("80000")) {
		t.Fatalf("total_payment = %s, want 80000", dto.TotalPayment)
	}
	if dto.LoanID != loanPubID || dto.SourceID != sourcePubID {
		t.Fatalf("parent ids not mapped: %+v", dto)
	}
	if created == nil || created.LoanID != 42 || created.SourceID != 5 {
		t.Fatalf("row not wired to internal ids: %+v", created)
	}
}

func TestCreate_PrincipalExceedsDisbursement(t *testing.T) {
	repos := uow.Repos{
		Loans: &loanmock.Repo{
			GetByPublicIDForUpdateFn: func(ctx context.Context, id string) (*loan.Loan, error) {
				return testLoan(), nil
			},
		},
		Sources: &sourcemock.Repo{
			GetByPublicIDFn: func(ctx context.Context, id string) (*source.Source, error) {
				return testSource(), nil
			},
		},
		Repayments: &repaymentmock.Repo{
			ListByLoanFn: func(ctx context.Context, loanID uint64) ([]domain.Repayment, error) {
				return []domain.Repayment{
					{ID: 1, PrincipalAmount: d("3900000")},
				}, nil
			},
			CreateFn: func(ctx context.Context, r *domain.Repayment) error {
				t.Fatal("Create must not run past the principal guard")
				return nil
			},
		},
	}
	uc := NewUsecase(repos.Repayments, uowmock.Passthrough(repos))

	in := validInput()
	in.PrincipalAmount = d("100000.01")
	in.InterestAmount = decimal.Zero
	if _, err := uc.Create(context.Background(), in); !errors.Is(err, domain.ErrExceedsPrincipal) {
		t.Fatalf("want ErrExceedsPrincipal, got %v", err)
	}
}

func TestCreate_PrincipalExactlyAtDisbursement(t *testing.T) {
	repos := uow.Repos{
		Loans: &loanmock.Repo{
			GetByPublicIDForUpdateFn: func(ctx context.Context, id string) (*loan.Loan, error) {
				return testLoan(), nil
			},
		},
		Sources: &sourcemock.Repo{
			GetByPublicIDFn: func(ctx context.Context, id string) (*source.Source, error) {
				return testSource(), nil
			},
		},
		Repayments: &repaymentmock.Repo{
			ListByLoanFn: func(ctx context.Context, loanID uint64) ([]domain.Repayment, error) {
				return []domain.Repayment{{ID: 1, PrincipalAmount: d("3900000")}}, nil
			},
		},
	}
	uc := NewUsecase(repos.Repayments, uowmock.Passthrough(repos))

	in := validInput()
	in.PrincipalAmount = d("100000")
	if _, err := uc.Create(context.Background(), in); err != nil {
		t.Fatalf("boundary repayment must pass: %v", err)
	}
}

func TestCreate_NegativeAmount(t *testing.T) {
	repos := uow.Repos{
		Loans: &loanmock.Repo{
			GetByPublicIDForUpdateFn: func(ctx context.Context, id string) (*loan.Loan, error) {
				return testLoan(), nil
			},
		},
		Sources: &sourcemock.Repo{
			GetByPublicIDFn: func(ctx context.Context, id string) (*source.Source, error) {
				return testSource(), nil
			},
		},
		Repayments: &repaymentmock.Repo{},
	}
	uc := NewUsecase(repos.Repayments, uowmock.Passthrough(repos))

	in := validInput()
	in.Penalties = d("-1")
	if _, err := uc.Create(context.Background(), in); !errors.Is(err, domain.ErrNegativeAmount) {
		t.Fatalf("want ErrNegativeAmount, got %v", err)
	}
}

func TestCreate_LoanNotFound(t *testing.T) {
	repos := uow.Repos{
		Loans: &loanmock.Repo{
			GetByPublicIDForUpdateFn: func(ctx context.Context, id string) (*loan.Loan, error) {
				return nil, gorm.ErrRecordNotFound
			},
		},
	}
	uc := NewUsecase(&repaymentmock.Repo{}, uowmock.Passthrough(repos))

	if _, err := uc.Create(context.Background(), validInput()); !errors.Is(err, loan.ErrNotFound) {
		t.Fatalf("want loan.ErrNotFound, got %v", err)
	}
}

func TestUpdate_ExcludesOwnRowFromGuard(t *testing.T) {
	// the loan is fully drawn, but the updated row contributed most of it;
	// re-validating must count everyone else plus the new amount
	repos := uow.Repos{
		Loans: &loanmock.Repo{
			GetByPublicIDForUpdateFn: func(ctx context.Context, id string) (*loan.Loan, error) {
				return testLoan(), nil
			},
		},
		Sources: &sourcemock.Repo{
			GetByPublicIDFn: func(ctx context.Context, id string) (*source.Source, error) {
				return testSource(), nil
			},
		},
		Repayments: &repaymentmock.Repo{
			GetByPublicIDFn: func(ctx context.Context, id string) (*domain.Repayment, error) {
				return &domain.Repayment{ID: 9, RepaymentID: id, LoanID: 42, PrincipalAmount: d("3000000")}, nil
			},
			ListByLoanFn: func(ctx context.Context, loanID uint64) ([]domain.Repayment, error) {
				return []domain.Repayment{
					{ID: 9, PrincipalAmount: d("3000000")},
					{ID: 10, PrincipalAmount: d("1000000")},
				}, nil
			},
		},
	}
	uc := NewUsecase(repos.Repayments, uowmock.Passthrough(repos))

	in := validInput()
	in.PrincipalAmount = d("3000000")
	in.InterestAmount = decimal.Zero
	if _, err := uc.Update(context.Background(), "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee", in); err != nil {
		t.Fatalf("Update within remaining headroom must pass: %v", err)
	}

	in.PrincipalAmount = d("3000000.01")
	if _, err := uc.Update(context.Background(), "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee", in); !errors.Is(err, domain.ErrExceedsPrincipal) {
		t.Fatalf("want ErrExceedsPrincipal, got %v", err)
	}
}

func TestUpdate_RejectsLoanMove(t *testing.T) {
	repos := uow.Repos{
		Loans: &loanmock.Repo{
			GetByPublicIDForUpdateFn: func(ctx context.Context, id string) (*loan.Loan, error) {
				return testLoan(), nil
			},
		},
		Sources: &sourcemock.Repo{},
		Repayments: &repaymentmock.Repo{
			GetByPublicIDFn: func(ctx context.Context, id string) (*domain.Repayment, error) {
				return &domain.Repayment{ID: 9, LoanID: 99}, nil
			},
		},
	}
	uc := NewUsecase(repos.Repayments, uowmock.Passthrough(repos))

	if _, err := uc.Update(context.Background(), "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee", validInput()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound for a cross-loan update, got %v", err)
	}
}

func TestSummary_SingleLoan(t *testing.T) {
	repos := uow.Repos{
		Loans: &loanmock.Repo{
			GetByPublicIDFn: func(ctx context.Context, id string) (*loan.Loan, error) {
				l := testLoan()
				l.Name = "HL-2024"
				return l, nil
			},
		},
		Repayments: &repaymentmock.Repo{
			ListByLoanFn: func(ctx context.Context, loanID uint64) ([]domain.Repayment, error) {
				return []domain.Repayment{
					{PrincipalAmount: d("50000"), InterestAmount: d("30000")},
					{PrincipalAmount: d("75000"), InterestAmount: d("29000")},
				}, nil
			},
		},
	}
	uc := NewUsecase(repos.Repayments, uowmock.Passthrough(repos))

	s, err := uc.Summary(context.Background(), loanPubID)
	if err != nil {
		t.Fatalf("Summary err: %v", err)
	}
	if !s.TotalPrincipalPaid.Equal(d("125000")) {
		t.Fatalf("principal = %s, want 125000", s.TotalPrincipalPaid)
	}
	if !s.OutstandingPrincipal.Equal(d("3875000")) {
		t.Fatalf("outstanding = %s, want 3875000", s.OutstandingPrincipal)
	}
	if s.TotalPayments != 2 {
		t.Fatalf("total_payments = %d", s.TotalPayments)
	}
}

func TestSummaryAll_FiltersActive(t *testing.T) {
	var gotFilter loan.ListFilter
	repos := uow.Repos{
		Loans: &loanmock.Repo{
			ListFn: func(ctx context.Context, f loan.ListFilter) ([]loan.Loan, error) {
				gotFilter = f
				return []loan.Loan{*testLoan(), {ID: 43, TotalDisbursedAmount: d("100")}}, nil
			},
		},
		Repayments: &repaymentmock.Repo{
			ListByLoanFn: func(ctx context.Context, loanID uint64) ([]domain.Repayment, error) {
				return nil, nil
			},
		},
	}
	uc := NewUsecase(repos.Repayments, uowmock.Passthrough(repos))

	active := true
	out, err := uc.SummaryAll(context.Background(), &active)
	if err != nil {
		t.Fatalf("SummaryAll err: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("want 2 summaries, got %d", len(out))
	}
	if gotFilter.IsActive == nil || !*gotFilter.IsActive {
		t.Fatal("active filter not forwarded to the repository")
	}
}
