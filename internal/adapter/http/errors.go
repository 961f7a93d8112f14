package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"propledger-backend/internal/domain/document"
	"propledger-backend/internal/domain/invoice"
	"propledger-backend/internal/domain/loan"
	"propledger-backend/internal/domain/payment"
	"propledger-backend/internal/domain/property"
	"propledger-backend/internal/domain/purchase"
	"propledger-backend/internal/domain/repayment"
	"propledger-backend/internal/domain/source"
	purchaseuc "propledger-backend/internal/usecase/purchase"
	"propledger-backend/pkg/dates"
)

var notFoundErrs = []error{
	property.ErrNotFound,
	purchase.ErrNotFound,
	loan.ErrNotFound,
	repayment.ErrNotFound,
	invoice.ErrNotFound,
	payment.ErrNotFound,
	source.ErrNotFound,
	document.ErrNotFound,
}

var conflictErrs = []error{
	property.ErrHasPurchases,
	purchaseuc.ErrHasDependents,
	loan.ErrSanctionExceedsCost,
	loan.ErrDisbursedExceedsInvoiced,
	loan.ErrSourceHasPayments,
	loan.ErrHasRepayments,
	repayment.ErrExceedsPrincipal,
	invoice.ErrCancelled,
	invoice.ErrDuplicateNumber,
	invoice.ErrExceedsPurchaseBalance,
	invoice.ErrHasPayments,
	payment.ErrExceedsInvoiceBalance,
	payment.ErrExceedsDisbursement,
	source.ErrInUse,
}

var badRequestErrs = []error{
	property.ErrNegativeRate,
	purchase.ErrNegativeCharge,
	loan.ErrNegativeAmount,
	repayment.ErrNegativeAmount,
	invoice.ErrNegativeAmount,
	invoice.ErrStatusNotOverridable,
	payment.ErrNegativeAmount,
	source.ErrUnknownType,
	source.ErrLoanRefRequired,
	document.ErrUnknownEntity,
	document.ErrDanglingRef,
	dates.ErrInvalid,
}

// writeError maps domain sentinel errors onto HTTP status codes. Anything
// unrecognized is a 500 with the message hidden from the client.
func writeError(c echo.Context, err error) error {
	for _, e := range notFoundErrs {
		if errors.Is(err, e) {
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: e.Error()})
		}
	}
	for _, e := range conflictErrs {
		if errors.Is(err, e) {
			return c.JSON(http.StatusConflict, ErrorResponse{Error: e.Error()})
		}
	}
	for _, e := range badRequestErrs {
		if errors.Is(err, e) {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: e.Error()})
		}
	}
	c.Logger().Error(err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
