package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// Handlers groups every route handler the server mounts.
type Handlers struct {
	Health      *Handler
	Properties  *PropertyHandler
	Purchases   *PurchaseHandler
	Loans       *LoanHandler
	Repayments  *RepaymentHandler
	Invoices    *InvoiceHandler
	Payments    *PaymentHandler
	Sources     *SourceHandler
	Documents   *DocumentHandler
	Acquisition *AcquisitionHandler
}

// RegisterRoutes wires the full API surface onto e. The idempotency
// middleware is mounted by the caller so tests can run without Redis.
func RegisterRoutes(e *echo.Echo, h Handlers) {
	e.GET("/health", h.Health.Health)

	api := e.Group("/api")

	api.GET("/properties", h.Properties.List)
	api.POST("/properties", h.Properties.Create)
	api.GET("/properties/:property_id", h.Properties.Get)
	api.PUT("/properties/:property_id", h.Properties.Update)
	api.DELETE("/properties/:property_id", h.Properties.Delete)

	api.GET("/purchases", h.Purchases.List)
	api.POST("/purchases", h.Purchases.Create)
	api.GET("/purchases/:purchase_id", h.Purchases.Get)
	api.PUT("/purchases/:purchase_id", h.Purchases.Update)
	api.DELETE("/purchases/:purchase_id", h.Purchases.Delete)

	api.GET("/loans", h.Loans.List)
	api.POST("/loans", h.Loans.Create)
	api.GET("/loans/summary", h.Repayments.LoanSummary)
	api.GET("/loans/:loan_id", h.Loans.Get)
	api.PUT("/loans/:loan_id", h.Loans.Update)
	api.DELETE("/loans/:loan_id", h.Loans.Delete)

	api.GET("/repayments", h.Repayments.List)
	api.POST("/repayments", h.Repayments.Create)
	api.GET("/repayments/:repayment_id", h.Repayments.Get)
	api.PUT("/repayments/:repayment_id", h.Repayments.Update)
	api.DELETE("/repayments/:repayment_id", h.Repayments.Delete)

	api.GET("/invoices", h.Invoices.List)
	api.POST("/invoices", h.Invoices.Create)
	api.GET("/invoices/:invoice_id", h.Invoices.Get)
	api.PUT("/invoices/:invoice_id", h.Invoices.Update)
	api.DELETE("/invoices/:invoice_id", h.Invoices.Delete)

	api.GET("/payments", h.Payments.List)
	api.POST("/payments", h.Payments.Create)
	api.GET("/payments/:payment_id", h.Payments.Get)
	api.PUT("/payments/:payment_id", h.Payments.Update)
	api.DELETE("/payments/:payment_id", h.Payments.Delete)

	api.GET("/payment-sources", h.Sources.List)
	api.POST("/payment-sources", h.Sources.Create)
	api.GET("/payment-sources/:source_id", h.Sources.Get)
	api.PUT("/payment-sources/:source_id", h.Sources.Update)
	api.DELETE("/payment-sources/:source_id", h.Sources.Delete)

	api.GET("/documents", h.Documents.List)
	api.POST("/documents", h.Documents.Create)
	api.GET("/documents/:document_id", h.Documents.Get)
	api.PUT("/documents/:document_id", h.Documents.Update)
	api.DELETE("/documents/:document_id", h.Documents.Delete)

	api.GET("/acquisition-cost/summary", h.Acquisition.Summary)
	api.GET("/acquisition-cost/details", h.Acquisition.Details)
}
