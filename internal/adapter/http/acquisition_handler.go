package http

import (
	"net/http"

	"propledger-backend/internal/usecase/acquisition"

	"github.com/labstack/echo/v4"
)

type AcquisitionHandler struct{ uc *acquisition.Usecase }

func NewAcquisitionHandler(uc *acquisition.Usecase) *AcquisitionHandler {
	return &AcquisitionHandler{uc: uc}
}

func (h *AcquisitionHandler) Summary(c echo.Context) error {
	purchaseID := c.QueryParam("purchase_id")
	if purchaseID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing purchase_id query param"})
	}
	s, err := h.uc.Summarize(c.Request().Context(), purchaseID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *AcquisitionHandler) Details(c echo.Context) error {
	q := acquisition.DetailsQuery{
		PurchaseID: c.QueryParam("purchase_id"),
		FromDate:   c.QueryParam("from_date"),
		ToDate:     c.QueryParam("to_date"),
		Kind:       c.QueryParam("kind"),
	}
	if q.PurchaseID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing purchase_id query param"})
	}
	rows, err := h.uc.Details(c.Request().Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}
