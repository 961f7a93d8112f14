package invoice

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	domain "propledger-backend/internal/domain/invoice"
	"propledger-backend/internal/domain/payment"
	"propledger-backend/internal/domain/purchase"
	"propledger-backend/internal/domain/uow"
	"propledger-backend/internal/testutil/invoicemock"
	"propledger-backend/internal/testutil/paymentmock"
	"propledger-backend/internal/testutil/purchasemock"
	"propledger-backend/internal/testutil/uowmock"
)

const (
	purchasePubID = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	invoicePubID  = "ffffffffffffffffffffffffffffffff"
)

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

func testPurchase() *purchase.Purchase {
	return &purchase.Purchase{ID: 10, PurchaseID: purchasePubID, TotalSaleCost: d("1112800")}
}

func validInput() Input {
	return Input{
		PurchaseID:    purchasePubID,
		InvoiceNumber: "INV-001",
		InvoiceDate:   "2024-03-01",
		Amount:        d("500000"),
		Milestone:     "slab casting",
	}
}

func purchases() *purchasemock.Repo {
	return &purchasemock.Repo{
		GetByPublicIDFn: func(ctx context.Context, id string) (*purchase.Purchase, error) {
			if id != purchasePubID {
				return nil, gorm.ErrRecordNotFound
			}
			return testPurchase(), nil
		},
	}
}

func TestCreate_StartsPendingWithZeroPaid(t *testing.T) {
	var created *domain.Invoice
	repos := uow.Repos{
		Purchases: purchases(),
		Invoices: &invoicemock.Repo{
			CreateFn: func(ctx context.Context, i *domain.Invoice) error {
				i.ID = 3
				created = i
				return nil
			},
		},
	}
	uc := NewUsecase(repos.Invoices, uowmock.Passthrough(repos))

	dto, err := uc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Create err: %v", err)
	}
	if len(dto.InvoiceID) != 32 {
		t.Fatalf("InvoiceID length: %d", len(dto.InvoiceID))
	}
	if dto.Status != domain.StatusPending {
		t.Fatalf("status = %s, want pending", dto.Status)
	}
	if !dto.PaidAmount.IsZero() || !dto.Balance.Equal(d("500000")) {
		t.Fatalf("paid/balance = %s/%s", dto.PaidAmount, dto.Balance)
	}
	if created.PurchaseID != 10 {
		t.Fatalf("purchase fk = %d", created.PurchaseID)
	}
}

func TestCreate_DuplicateNumberWithinPurchase(t *testing.T) {
	repos := uow.Repos{
		Purchases: purchases(),
		Invoices: &invoicemock.Repo{
			ListByPurchaseFn: func(ctx context.Context, purchaseID uint64) ([]domain.Invoice, error) {
				return []domain.Invoice{{ID: 1, InvoiceNumber: "inv-001"}}, nil
			},
		},
	}
	uc := NewUsecase(repos.Invoices, uowmock.Passthrough(repos))

	// match is case-insensitive
	if _, err := uc.Create(context.Background(), validInput()); !errors.Is(err, domain.ErrDuplicateNumber) {
		t.Fatalf("want ErrDuplicateNumber, got %v", err)
	}
}

func TestCreate_ExceedsPurchaseBalance(t *testing.T) {
	repos := uow.Repos{
		Purchases: purchases(),
		Invoices: &invoicemock.Repo{
			SumAmountByPurchaseFn: func(ctx context.Context, purchaseID, excludeID uint64) (decimal.Decimal, error) {
				return d("700000"), nil
			},
		},
	}
	uc := NewUsecase(repos.Invoices, uowmock.Passthrough(repos))

	in := validInput()
	in.Amount = d("412800.01") // 700000 + this > 1112800
	if _, err := uc.Create(context.Background(), in); !errors.Is(err, domain.ErrExceedsPurchaseBalance) {
		t.Fatalf("want ErrExceedsPurchaseBalance, got %v", err)
	}

	in.Amount = d("412800") // exactly at the cap is fine
	if _, err := uc.Create(context.Background(), in); err != nil {
		t.Fatalf("boundary amount must pass: %v", err)
	}
}

func TestCreate_StatusOverride(t *testing.T) {
	repos := uow.Repos{Purchases: purchases(), Invoices: &invoicemock.Repo{}}
	uc := NewUsecase(repos.Invoices, uowmock.Passthrough(repos))

	in := validInput()
	in.Status = "paid"
	if _, err := uc.Create(context.Background(), in); !errors.Is(err, domain.ErrStatusNotOverridable) {
		t.Fatalf("want ErrStatusNotOverridable, got %v", err)
	}

	in.Status = "cancelled"
	dto, err := uc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("cancelled on create must pass: %v", err)
	}
	if dto.Status != domain.StatusCancelled {
		t.Fatalf("status = %s, want cancelled", dto.Status)
	}
}

func invoiceUnderUpdate(paid string, status domain.Status) *domain.Invoice {
	return &domain.Invoice{
		ID:            3,
		InvoiceID:     invoicePubID,
		PurchaseID:    10,
		InvoiceNumber: "INV-001",
		Amount:        d("500000"),
		PaidAmount:    d(paid),
		Status:        status,
	}
}

func TestUpdate_CancelBlockedOncePaid(t *testing.T) {
	repos := uow.Repos{
		Purchases: purchases(),
		Invoices: &invoicemock.Repo{
			GetByPublicIDForUpdateFn: func(ctx context.Context, id string) (*domain.Invoice, error) {
				return invoiceUnderUpdate("100000", domain.StatusPartiallyPaid), nil
			},
		},
	}
	uc := NewUsecase(repos.Invoices, uowmock.Passthrough(repos))

	in := validInput()
	in.Status = "cancelled"
	if _, err := uc.Update(context.Background(), invoicePubID, in); !errors.Is(err, domain.ErrHasPayments) {
		t.Fatalf("want ErrHasPayments, got %v", err)
	}
}

func TestUpdate_CancelSticksWhileUnpaid(t *testing.T) {
	repos := uow.Repos{
		Purchases: purchases(),
		Invoices: &invoicemock.Repo{
			GetByPublicIDForUpdateFn: func(ctx context.Context, id string) (*domain.Invoice, error) {
				return invoiceUnderUpdate("0", domain.StatusPending), nil
			},
		},
	}
	uc := NewUsecase(repos.Invoices, uowmock.Passthrough(repos))

	in := validInput()
	in.Status = "cancelled"
	dto, err := uc.Update(context.Background(), invoicePubID, in)
	if err != nil {
		t.Fatalf("Update err: %v", err)
	}
	if dto.Status != domain.StatusCancelled {
		t.Fatalf("status = %s, want cancelled", dto.Status)
	}
}

func TestUpdate_AmountShrinkRederivesStatus(t *testing.T) {
	repos := uow.Repos{
		Purchases: purchases(),
		Invoices: &invoicemock.Repo{
			GetByPublicIDForUpdateFn: func(ctx context.Context, id string) (*domain.Invoice, error) {
				return invoiceUnderUpdate("300000", domain.StatusPartiallyPaid), nil
			},
		},
	}
	uc := NewUsecase(repos.Invoices, uowmock.Passthrough(repos))

	in := validInput()
	in.Amount = d("300000")
	dto, err := uc.Update(context.Background(), invoicePubID, in)
	if err != nil {
		t.Fatalf("Update err: %v", err)
	}
	if dto.Status != domain.StatusPaid {
		t.Fatalf("status = %s, want paid after amount shrank to the paid total", dto.Status)
	}
	if !dto.Balance.IsZero() {
		t.Fatalf("balance = %s, want 0", dto.Balance)
	}
}

func TestUpdate_ArbitraryStatusRejected(t *testing.T) {
	repos := uow.Repos{
		Purchases: purchases(),
		Invoices: &invoicemock.Repo{
			GetByPublicIDForUpdateFn: func(ctx context.Context, id string) (*domain.Invoice, error) {
				return invoiceUnderUpdate("0", domain.StatusPending), nil
			},
		},
	}
	uc := NewUsecase(repos.Invoices, uowmock.Passthrough(repos))

	in := validInput()
	in.Status = "paid"
	if _, err := uc.Update(context.Background(), invoicePubID, in); !errors.Is(err, domain.ErrStatusNotOverridable) {
		t.Fatalf("want ErrStatusNotOverridable, got %v", err)
	}
}

func TestDelete_BlockedByPayments(t *testing.T) {
	repos := uow.Repos{
		Invoices: &invoicemock.Repo{
			GetByPublicIDForUpdateFn: func(ctx context.Context, id string) (*domain.Invoice, error) {
				return invoiceUnderUpdate("100000", domain.StatusPartiallyPaid), nil
			},
		},
		Payments: &paymentmock.Repo{
			ListByInvoiceFn: func(ctx context.Context, invoiceID uint64) ([]payment.Payment, error) {
				return []payment.Payment{{ID: 1}}, nil
			},
		},
	}
	uc := NewUsecase(repos.Invoices, uowmock.Passthrough(repos))

	if err := uc.Delete(context.Background(), invoicePubID); !errors.Is(err, domain.ErrHasPayments) {
		t.Fatalf("want ErrHasPayments, got %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repos := uow.Repos{
		Invoices: &invoicemock.Repo{
			GetByPublicIDForUpdateFn: func(ctx context.Context, id string) (*domain.Invoice, error) {
				return nil, gorm.ErrRecordNotFound
			},
		},
	}
	uc := NewUsecase(repos.Invoices, uowmock.Passthrough(repos))

	if err := uc.Delete(context.Background(), invoicePubID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
