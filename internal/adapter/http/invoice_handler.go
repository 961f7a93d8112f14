package http

import (
	"net/http"

	"propledger-backend/internal/usecase/invoice"

	"github.com/labstack/echo/v4"
)

type InvoiceHandler struct{ uc *invoice.Usecase }

func NewInvoiceHandler(uc *invoice.Usecase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

func (h *InvoiceHandler) Create(c echo.Context) error {
	var req invoice.Input
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

func (h *InvoiceHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("invoice_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *InvoiceHandler) List(c echo.Context) error {
	q := invoice.ListQuery{
		PurchaseID: c.QueryParam("purchase_id"),
		Status:     c.QueryParam("status"),
		Milestone:  c.QueryParam("milestone"),
		FromDate:   c.QueryParam("from_date"),
		ToDate:     c.QueryParam("to_date"),
	}
	dtos, err := h.uc.List(c.Request().Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *InvoiceHandler) Update(c echo.Context) error {
	var req invoice.Input
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Update(c.Request().Context(), c.Param("invoice_id"), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *InvoiceHandler) Delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("invoice_id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
