package http

import (
	"net/http"
	"strconv"

	"propledger-backend/internal/usecase/repayment"

	"github.com/labstack/echo/v4"
)

type RepaymentHandler struct{ uc *repayment.Usecase }

func NewRepaymentHandler(uc *repayment.Usecase) *RepaymentHandler {
	return &RepaymentHandler{uc: uc}
}

func (h *RepaymentHandler) Create(c echo.Context) error {
	var req repayment.Input
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Create(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *RepaymentHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("repayment_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *RepaymentHandler) List(c echo.Context) error {
	q := repayment.ListQuery{
		LoanID:   c.QueryParam("loan_id"),
		SourceID: c.QueryParam("source_id"),
		FromDate: c.QueryParam("from_date"),
		ToDate:   c.QueryParam("to_date"),
	}
	dtos, err := h.uc.List(c.Request().Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *RepaymentHandler) Update(c echo.Context) error {
	var req repayment.Input
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Update(c.Request().Context(), c.Param("repayment_id"), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *RepaymentHandler) Delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("repayment_id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// LoanSummary serves the derived balance position, either for one loan
// (?loan_id=) or for all loans.
func (h *RepaymentHandler) LoanSummary(c echo.Context) error {
	if loanID := c.QueryParam("loan_id"); loanID != "" {
		s, err := h.uc.Summary(c.Request().Context(), loanID)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, s)
	}
	var isActive *bool
	if raw := c.QueryParam("is_active"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "is_active must be a boolean"})
		}
		isActive = &b
	}
	ss, err := h.uc.SummaryAll(c.Request().Context(), isActive)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, ss)
}
