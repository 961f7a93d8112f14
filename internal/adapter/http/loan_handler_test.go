package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	domain "propledger-backend/internal/domain/loan"
	"propledger-backend/internal/domain/purchase"
	"propledger-backend/internal/domain/source"
	"propledger-backend/internal/domain/uow"
	"propledger-backend/internal/testutil/invoicemock"
	"propledger-backend/internal/testutil/loanmock"
	"propledger-backend/internal/testutil/paymentmock"
	"propledger-backend/internal/testutil/purchasemock"
	"propledger-backend/internal/testutil/repaymentmock"
	"propledger-backend/internal/testutil/sourcemock"
	"propledger-backend/internal/testutil/uowmock"
	uc "propledger-backend/internal/usecase/loan"
)

func loanTestRepos() uow.Repos {
	return uow.Repos{
		Purchases: &purchasemock.Repo{
			GetByPublicIDFn: func(ctx context.Context, id string) (*purchase.Purchase, error) {
				if id != strings.Repeat("b", 32) {
					return nil, gorm.ErrRecordNotFound
				}
				return &purchase.Purchase{
					ID: 10, PurchaseID: id,
					TotalCost:     decimal.NewFromInt(1_075_000),
					TotalSaleCost: decimal.NewFromInt(1_112_800),
				}, nil
			},
		},
		Invoices: &invoicemock.Repo{
			SumAmountByPurchaseFn: func(ctx context.Context, purchaseID, excludeID uint64) (decimal.Decimal, error) {
				return decimal.NewFromInt(500_000), nil
			},
		},
		Loans: &loanmock.Repo{
			CreateFn: func(ctx context.Context, l *domain.Loan) error {
				l.ID = 42
				return nil
			},
		},
		Sources: &sourcemock.Repo{},
	}
}

func TestCreateLoan_Success(t *testing.T) {
	e := newEchoWithValidator()
	repos := loanTestRepos()
	h := NewLoanHandler(uc.NewUsecase(repos.Loans, uowmock.Passthrough(repos)))

	reqBody := map[string]any{
		"purchase_id":            strings.Repeat("b", 32),
		"name":                   "HL-2024",
		"institution":            "HDFC",
		"sanction_date":          "2024-01-15",
		"sanction_amount":        "1000000",
		"total_disbursed_amount": "400000",
		"interest_rate":          "8.5",
		"tenure_months":          240,
	}
	req := httptest.NewRequest(stdhttp.MethodPost, "/api/loans", mustJSON(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	var got uc.DTO
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if len(got.LoanID) != 32 || got.PurchaseID != strings.Repeat("b", 32) {
		t.Fatalf("unexpected dto: %+v", got)
	}
	if got.Name != "HL-2024" || !got.IsActive {
		t.Fatalf("unexpected dto: %+v", got)
	}
}

func TestCreateLoan_BindError(t *testing.T) {
	e := newEchoWithValidator()
	h := NewLoanHandler(uc.NewUsecase(&loanmock.Repo{}, &uowmock.UoW{}))

	req := httptest.NewRequest(stdhttp.MethodPost, "/api/loans", strings.NewReader(`{"purchase_id":`)) // broken JSON
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var er ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &er)
	if er.Error != "invalid body" {
		t.Fatalf("error = %q, want %q", er.Error, "invalid body")
	}
}

func TestCreateLoan_ValidationError(t *testing.T) {
	e := newEchoWithValidator()
	h := NewLoanHandler(uc.NewUsecase(&loanmock.Repo{}, &uowmock.UoW{})) // won't be called

	reqBody := map[string]any{
		"purchase_id":   "NOT_HEX_32",
		"institution":   "HDFC",
		"sanction_date": "2024-01-15",
		"tenure_months": -1,
	}
	req := httptest.NewRequest(stdhttp.MethodPost, "/api/loans", mustJSON(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	var er ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &er); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if er.Error != "validation failed" {
		t.Fatalf("error = %q, want %q", er.Error, "validation failed")
	}
	if !containsFieldMsg(er.Details, "PurchaseID", "32-char lowercase hex") {
		t.Fatalf("missing hex32 detail: %+v", er.Details)
	}
	if !containsFieldMsg(er.Details, "Name", "is required") {
		t.Fatalf("missing required detail for name: %+v", er.Details)
	}
	if !containsFieldMsg(er.Details, "TenureMonths", "greater than or equal to 0") {
		t.Fatalf("missing gte detail for tenure: %+v", er.Details)
	}
}

func TestCreateLoan_SanctionConflict(t *testing.T) {
	e := newEchoWithValidator()
	repos := loanTestRepos()
	h := NewLoanHandler(uc.NewUsecase(repos.Loans, uowmock.Passthrough(repos)))

	reqBody := map[string]any{
		"purchase_id":     strings.Repeat("b", 32),
		"name":            "HL-2024",
		"institution":     "HDFC",
		"sanction_date":   "2024-01-15",
		"sanction_amount": "2000000", // above the purchase's total cost
	}
	req := httptest.NewRequest(stdhttp.MethodPost, "/api/loans", mustJSON(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	var er ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &er)
	if er.Error != domain.ErrSanctionExceedsCost.Error() {
		t.Fatalf("error = %q", er.Error)
	}
}

func TestGetLoan_NotFound(t *testing.T) {
	e := echo.New()
	h := NewLoanHandler(uc.NewUsecase(&loanmock.Repo{
		GetByPublicIDFn: func(ctx context.Context, id string) (*domain.Loan, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}, &uowmock.UoW{}))

	req := httptest.NewRequest(stdhttp.MethodGet, "/api/loans/"+strings.Repeat("a", 32), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("loan_id")
	c.SetParamValues(strings.Repeat("a", 32))

	if err := h.Get(c); err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestListLoans_BadActiveFlag(t *testing.T) {
	e := echo.New()
	h := NewLoanHandler(uc.NewUsecase(&loanmock.Repo{}, &uowmock.UoW{}))

	req := httptest.NewRequest(stdhttp.MethodGet, "/api/loans?is_active=banana", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("List error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestDeleteLoan_Success(t *testing.T) {
	e := echo.New()
	repos := loanTestRepos()
	repos.Loans = &loanmock.Repo{
		GetByPublicIDForUpdateFn: func(ctx context.Context, id string) (*domain.Loan, error) {
			return &domain.Loan{ID: 42, LoanID: id}, nil
		},
	}
	repos.Repayments = &repaymentmock.Repo{}
	repos.Payments = &paymentmock.Repo{}
	repos.Sources = &sourcemock.Repo{
		GetByLoanFn: func(ctx context.Context, loanID uint64) (*source.Source, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	h := NewLoanHandler(uc.NewUsecase(repos.Loans, uowmock.Passthrough(repos)))

	req := httptest.NewRequest(stdhttp.MethodDelete, "/api/loans/"+strings.Repeat("a", 32), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("loan_id")
	c.SetParamValues(strings.Repeat("a", 32))

	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if rec.Code != stdhttp.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
}
